package email

// ContentKind identifies the text format of a message body.
type ContentKind int

const (
	// ContentKindUnset means no displayable body part was found.
	ContentKindUnset ContentKind = iota
	// ContentKindPlain is a text/plain body.
	ContentKindPlain
	// ContentKindHTML is a text/html body.
	ContentKindHTML
)

// String returns the MIME media type of the kind, or "" when unset.
func (k ContentKind) String() string {
	switch k {
	case ContentKindPlain:
		return "text/plain"
	case ContentKindHTML:
		return "text/html"
	}
	return ""
}

// MailboxConfig holds the credentials and target mailbox for one IMAP
// account. The zero Port means the standard IMAPS port 993.
type MailboxConfig struct {
	Host         string
	Port         int
	EmailAddress string
	Password     string
	Mailbox      string

	// StartTLS upgrades a plaintext connection instead of dialing
	// implicit TLS.
	StartTLS bool
	// Insecure dials without any TLS. Intended for tests and local
	// servers only.
	Insecure bool
	// SASLPlain authenticates with SASL PLAIN instead of IMAP LOGIN.
	SASLPlain bool
}

func (c MailboxConfig) withDefaults() MailboxConfig {
	if c.Port == 0 {
		c.Port = 993
	}
	return c
}

// Unbounded disables the download cap of a Filter.
const Unbounded = -1

// Filter narrows which messages Download retrieves. Subject and Sender
// are substring matches applied server-side; either or both may be empty,
// in which case every message in the mailbox matches.
type Filter struct {
	Subject string
	Sender  string

	// MessagesToDownload caps how many messages are fetched. The
	// Unbounded sentinel fetches everything that matches.
	MessagesToDownload int

	// OldestFirst downloads in ascending mailbox order. The default is
	// newest first.
	OldestFirst bool

	// DeleteAfterDownload removes each message from the server once it
	// has been fetched and parsed.
	DeleteAfterDownload bool
}

// NewFilter returns a filter matching every message, newest first, with no
// download cap. Each call returns a fresh value.
func NewFilter() Filter {
	return Filter{MessagesToDownload: Unbounded}
}

// Attachment is one attachment-disposed part of a downloaded message.
type Attachment struct {
	// Filename is empty when the sender supplied none.
	Filename string
	Contents []byte
}

// Message is one downloaded email. Sender, Subject and Date are decoded
// header values. Body holds the first displayable text part found, with
// ContentKind recording its format; both stay zero when the message has no
// text part.
type Message struct {
	Sender      string
	Subject     string
	Date        string
	Body        string
	ContentKind ContentKind
	Attachments []Attachment
}
