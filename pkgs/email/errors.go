package email

import "fmt"

// AuthError indicates the server rejected the supplied credentials, or the
// connection/TLS handshake failed while opening the session.
type AuthError struct {
	Addr string
	Err  error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication with %s failed: %v", e.Addr, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// MailboxNotFoundError indicates the select response reported that the
// requested mailbox does not exist on the server. Detail carries the
// server's own message text.
type MailboxNotFoundError struct {
	Mailbox string
	Detail  string
}

func (e *MailboxNotFoundError) Error() string {
	return fmt.Sprintf("mailbox %s not found: %s", e.Mailbox, e.Detail)
}

// NoMessagesFoundError indicates the search matched no messages in the
// selected mailbox.
type NoMessagesFoundError struct {
	Mailbox string
	Query   string
}

func (e *NoMessagesFoundError) Error() string {
	return fmt.Sprintf("no messages found in mailbox %s", e.Mailbox)
}
