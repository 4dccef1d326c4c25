package email

import (
	"fmt"
	"strings"

	"github.com/emersion/go-imap/v2"
)

// BuildSearchFilter renders the filter as an IMAP SEARCH program: a HEADER
// clause for the subject, a parenthesized HEADER clause for the sender, or
// the ALL token when neither is set. Quote characters inside filter values
// are backslash-escaped so they cannot break the query syntax.
func BuildSearchFilter(f Filter) string {
	var sb strings.Builder
	if f.Subject != "" {
		fmt.Fprintf(&sb, "HEADER Subject %q ", f.Subject)
	}
	if f.Sender != "" {
		fmt.Fprintf(&sb, "(HEADER FROM %q) ", f.Sender)
	}
	if f.Subject == "" && f.Sender == "" {
		sb.WriteString("ALL")
	}
	return sb.String()
}

// searchCriteria is the wire form of BuildSearchFilter. The protocol
// library encodes header values itself, so no escaping is needed here.
func searchCriteria(f Filter) *imap.SearchCriteria {
	criteria := &imap.SearchCriteria{}
	if f.Subject != "" {
		criteria.Header = append(criteria.Header, imap.SearchCriteriaHeaderField{
			Key:   "Subject",
			Value: f.Subject,
		})
	}
	if f.Sender != "" {
		criteria.Header = append(criteria.Header, imap.SearchCriteriaHeaderField{
			Key:   "From",
			Value: f.Sender,
		})
	}
	return criteria
}
