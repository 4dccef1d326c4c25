package email

import (
	"fmt"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-sasl"
)

// Session owns one authenticated IMAP connection. The protocol is strict
// request/response: a Session supports a single in-flight command and is
// not safe for concurrent use.
type Session struct {
	client *imapclient.Client
}

// OpenSession dials the server and authenticates with the config's
// credentials. Connection, TLS and login failures are all reported as
// *AuthError. The caller must Close the returned session.
func OpenSession(cfg MailboxConfig) (*Session, error) {
	cfg = cfg.withDefaults()
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	var client *imapclient.Client
	var err error
	switch {
	case cfg.StartTLS:
		client, err = imapclient.DialStartTLS(addr, &imapclient.Options{})
	case cfg.Insecure:
		client, err = imapclient.DialInsecure(addr, &imapclient.Options{})
	default:
		client, err = imapclient.DialTLS(addr, &imapclient.Options{})
	}
	if err != nil {
		return nil, &AuthError{Addr: addr, Err: err}
	}

	if cfg.SASLPlain {
		err = client.Authenticate(sasl.NewPlainClient("", cfg.EmailAddress, cfg.Password))
	} else {
		err = client.Login(cfg.EmailAddress, cfg.Password).Wait()
	}
	if err != nil {
		client.Close()
		return nil, &AuthError{Addr: addr, Err: err}
	}

	return &Session{client: client}, nil
}

// Close releases the connection.
func (s *Session) Close() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}

// Select opens the given mailbox. The select response and error are
// returned untranslated; callers inspect errors for the missing-mailbox
// marker.
func (s *Session) Select(mailbox string) (*imap.SelectData, error) {
	return s.client.Select(mailbox, nil).Wait()
}

// Search runs the criteria against the selected mailbox and returns the
// matching UIDs in ascending (oldest first) order.
func (s *Session) Search(criteria *imap.SearchCriteria) ([]imap.UID, error) {
	data, err := s.client.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return data.AllUIDs(), nil
}

// Fetch downloads the full raw RFC 5322 message for one UID.
func (s *Session) Fetch(uid imap.UID) ([]byte, error) {
	bodySection := &imap.FetchItemBodySection{}
	msgs, err := s.client.Fetch(imap.UIDSetNum(uid), &imap.FetchOptions{
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	}).Collect()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch message UID %d: %w", uid, err)
	}
	if len(msgs) == 0 {
		return nil, fmt.Errorf("message UID %d not found", uid)
	}
	raw := msgs[0].FindBodySection(bodySection)
	if raw == nil {
		return nil, fmt.Errorf("message UID %d has no body section", uid)
	}
	return raw, nil
}

// MarkDeleted sets the \Deleted flag on one message.
func (s *Session) MarkDeleted(uid imap.UID) error {
	_, err := s.client.Store(imap.UIDSetNum(uid), &imap.StoreFlags{
		Op:    imap.StoreFlagsAdd,
		Flags: []imap.Flag{imap.FlagDeleted},
	}, nil).Collect()
	if err != nil {
		return fmt.Errorf("failed to mark message UID %d as deleted: %w", uid, err)
	}
	return nil
}

// Expunge permanently removes all messages flagged \Deleted from the
// selected mailbox.
func (s *Session) Expunge() error {
	if _, err := s.client.Expunge().Collect(); err != nil {
		return fmt.Errorf("failed to expunge mailbox: %w", err)
	}
	return nil
}

// ListMailboxes returns the names of all mailboxes on the server.
func (s *Session) ListMailboxes() ([]string, error) {
	mailboxes, err := s.client.List("", "*", &imap.ListOptions{}).Collect()
	if err != nil {
		return nil, fmt.Errorf("failed to list mailboxes: %w", err)
	}
	names := make([]string, 0, len(mailboxes))
	for _, mb := range mailboxes {
		names = append(names, mb.Mailbox)
	}
	return names, nil
}
