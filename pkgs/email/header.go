package email

import (
	"fmt"

	gomessage "github.com/emersion/go-message"

	// Register extended charsets so encoded headers and bodies in
	// non-UTF-8 charsets decode instead of erroring.
	_ "github.com/emersion/go-message/charset"
)

// decodeHeaders returns the decoded Subject, From and Date header values of
// a message. Encoded-word segments are decoded with their declared charset;
// values without one are returned as-is, and absent headers decode to "".
// A malformed encoding is fatal for the message.
func decodeHeaders(h gomessage.Header) (subject, sender, date string, err error) {
	if subject, err = h.Text("Subject"); err != nil {
		return "", "", "", fmt.Errorf("failed to decode Subject header: %w", err)
	}
	if sender, err = h.Text("From"); err != nil {
		return "", "", "", fmt.Errorf("failed to decode From header: %w", err)
	}
	if date, err = h.Text("Date"); err != nil {
		return "", "", "", fmt.Errorf("failed to decode Date header: %w", err)
	}
	return subject, sender, date, nil
}
