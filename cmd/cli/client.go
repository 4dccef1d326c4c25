package main

import (
	"fmt"

	"github.com/easymail/downloader/pkgs/config"
	"github.com/easymail/downloader/pkgs/credential"
	"github.com/easymail/downloader/pkgs/email"
)

const envConfigPathName = config.EnvConfigPath

// mailboxConfig builds the session config for an account, resolving the
// password from the keyring when the config file does not carry one.
func mailboxConfig(acc *config.AccountConfig, mailbox string) (email.MailboxConfig, error) {
	password := acc.IMAP.Password
	if password == "" {
		var err error
		password, err = credential.Get(acc.Email)
		if err != nil {
			return email.MailboxConfig{}, fmt.Errorf(
				"no password in config and none stored for %s (run 'easymail auth set'): %w",
				acc.Email, err)
		}
	}

	if mailbox == "" {
		mailbox = acc.Mailbox
	}
	if mailbox == "" {
		mailbox = "INBOX"
	}

	return email.MailboxConfig{
		Host:         acc.IMAP.Host,
		Port:         acc.IMAP.Port,
		EmailAddress: acc.Email,
		Password:     password,
		Mailbox:      mailbox,
		StartTLS:     acc.IMAP.StartTLS,
		Insecure:     acc.IMAP.Insecure,
		SASLPlain:    acc.IMAP.SASLPlain,
	}, nil
}
