package email

import (
	"fmt"
	"net"
	"strconv"
	"testing"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-imap/v2/imapserver"
	"github.com/emersion/go-imap/v2/imapserver/imapmemserver"
)

const (
	imapTestUser = "testuser@example.com"
	imapTestPass = "testpass"
)

// newTestIMAPServer starts an in-memory IMAP server with an INBOX and
// returns the listen address. The server is shut down via t.Cleanup.
func newTestIMAPServer(t *testing.T, extraMailboxes ...string) string {
	t.Helper()

	user := imapmemserver.NewUser(imapTestUser, imapTestPass)
	user.Create("INBOX", nil)
	for _, name := range extraMailboxes {
		user.Create(name, nil)
	}

	memSrv := imapmemserver.New()
	memSrv.AddUser(user)

	srv := imapserver.New(&imapserver.Options{
		NewSession: func(_ *imapserver.Conn) (imapserver.Session, *imapserver.GreetingData, error) {
			return memSrv.NewSession(), nil, nil
		},
		InsecureAuth: true,
		Caps: imap.CapSet{
			imap.CapIMAP4rev1: {},
		},
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	go srv.Serve(ln)
	t.Cleanup(func() { srv.Close() })

	return ln.Addr().String()
}

// appendTestMail appends a raw RFC 5322 message to the given mailbox via a
// direct IMAP client, bypassing the code under test.
func appendTestMail(t *testing.T, addr, mailbox, rawMsg string) {
	t.Helper()

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatal(err)
	}
	c := imapclient.New(conn, nil)
	if err := c.Login(imapTestUser, imapTestPass).Wait(); err != nil {
		t.Fatal(err)
	}

	appendCmd := c.Append(mailbox, int64(len(rawMsg)), nil)
	if _, err := appendCmd.Write([]byte(rawMsg)); err != nil {
		t.Fatal(err)
	}
	if err := appendCmd.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := appendCmd.Wait(); err != nil {
		t.Fatal(err)
	}
	c.Close()
}

// testMailboxConfig builds a MailboxConfig pointed at the test server.
func testMailboxConfig(t *testing.T, addr string) MailboxConfig {
	t.Helper()

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatal(err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatal(err)
	}
	return MailboxConfig{
		Host:         host,
		Port:         port,
		EmailAddress: imapTestUser,
		Password:     imapTestPass,
		Mailbox:      "INBOX",
		Insecure:     true,
	}
}

// plainTestMail builds a minimal single-part text message.
func plainTestMail(from, subject, body string) string {
	return fmt.Sprintf("MIME-Version: 1.0\r\n"+
		"From: %s\r\n"+
		"To: rcpt@example.com\r\n"+
		"Subject: %s\r\n"+
		"Date: Mon, 10 Feb 2026 08:00:00 +0000\r\n"+
		"Content-Type: text/plain; charset=utf-8\r\n"+
		"\r\n"+
		"%s", from, subject, body)
}

// testMailMultipart is a multipart/mixed message with a text body and a
// PDF attachment.
const testMailMultipart = "MIME-Version: 1.0\r\n" +
	"From: sender@example.com\r\n" +
	"To: rcpt@example.com\r\n" +
	"Subject: Multipart Test\r\n" +
	"Date: Mon, 10 Feb 2026 08:00:00 +0000\r\n" +
	"Content-Type: multipart/mixed; boundary=\"B1\"\r\n" +
	"\r\n" +
	"--B1\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Plain text body\r\n" +
	"--B1\r\n" +
	"Content-Type: application/pdf\r\n" +
	"Content-Disposition: attachment; filename=\"a.pdf\"\r\n" +
	"\r\n" +
	"PDF-BYTES\r\n" +
	"--B1--\r\n"

// testMailEncodedSubject carries an RFC 2047 encoded subject and sender.
const testMailEncodedSubject = "MIME-Version: 1.0\r\n" +
	"From: =?utf-8?q?Caf=C3=A9_Owner?= <owner@example.com>\r\n" +
	"To: rcpt@example.com\r\n" +
	"Subject: =?utf-8?q?Caf=C3=A9_Receipt?=\r\n" +
	"Date: Mon, 10 Feb 2026 08:00:00 +0000\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Thanks for your visit."
