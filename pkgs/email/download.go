package email

import (
	"bytes"
	"fmt"
	"strings"

	gomessage "github.com/emersion/go-message"
)

// mailboxMissingMarker is the text servers put in the select response when
// the requested mailbox does not exist.
const mailboxMissingMarker = "Mailbox doesn't exist"

// Download retrieves and parses messages from the configured mailbox.
//
// It opens a session, selects the mailbox, searches with the filter's
// subject/sender clauses, fetches the matching messages newest first
// (oldest first when the filter says so) up to the filter's cap, and
// returns them in fetch order. With DeleteAfterDownload set, each message
// is flagged deleted and expunged right after it has been parsed.
//
// Any failure aborts the whole call: no partial result is returned. The
// session is closed on every exit path.
func Download(cfg MailboxConfig, filter Filter) ([]Message, error) {
	session, err := OpenSession(cfg)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	if _, err := session.Select(cfg.Mailbox); err != nil {
		return nil, translateSelectError(cfg.Mailbox, err)
	}

	query := "(" + BuildSearchFilter(filter) + ")"

	uids, err := session.Search(searchCriteria(filter))
	if err != nil {
		return nil, err
	}
	if len(uids) == 0 {
		return nil, &NoMessagesFoundError{Mailbox: cfg.Mailbox, Query: query}
	}

	// Search results arrive oldest first; flip for the default
	// newest-first order.
	if !filter.OldestFirst {
		for i, j := 0, len(uids)-1; i < j; i, j = i+1, j-1 {
			uids[i], uids[j] = uids[j], uids[i]
		}
	}

	count := len(uids)
	if filter.MessagesToDownload > 0 && filter.MessagesToDownload < count {
		count = filter.MessagesToDownload
	}

	downloaded := make([]Message, 0, count)
	for _, uid := range uids[:count] {
		raw, err := session.Fetch(uid)
		if err != nil {
			return nil, err
		}

		msg, err := parseMessage(raw)
		if err != nil {
			return nil, fmt.Errorf("message UID %d: %w", uid, err)
		}
		downloaded = append(downloaded, *msg)

		if filter.DeleteAfterDownload {
			if err := session.MarkDeleted(uid); err != nil {
				return nil, err
			}
			if err := session.Expunge(); err != nil {
				return nil, err
			}
		}
	}

	return downloaded, nil
}

// ListMailboxes connects with the config's credentials and returns the
// mailbox names available on the server. Useful when the target mailbox
// name is not known up front.
func (c MailboxConfig) ListMailboxes() ([]string, error) {
	session, err := OpenSession(c)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	return session.ListMailboxes()
}

// translateSelectError turns the missing-mailbox marker in a select
// response into a MailboxNotFoundError; everything else stays a plain
// select failure.
func translateSelectError(mailbox string, err error) error {
	if strings.Contains(err.Error(), mailboxMissingMarker) {
		return &MailboxNotFoundError{Mailbox: mailbox, Detail: err.Error()}
	}
	return fmt.Errorf("failed to select mailbox %s: %w", mailbox, err)
}

// parseMessage parses raw RFC 5322 bytes into a Message: headers are
// decoded, then the MIME structure is decomposed into body and
// attachments.
func parseMessage(raw []byte) (*Message, error) {
	entity, err := gomessage.Read(bytes.NewReader(raw))
	if err != nil && !gomessage.IsUnknownCharset(err) {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	msg := &Message{}
	msg.Subject, msg.Sender, msg.Date, err = decodeHeaders(entity.Header)
	if err != nil {
		return nil, err
	}

	decomposeEntity(msg, entity)
	return msg, nil
}
