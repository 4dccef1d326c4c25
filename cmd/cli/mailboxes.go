package main

import (
	"fmt"

	"github.com/easymail/downloader/pkgs/config"
)

func handleMailboxes(acc *config.AccountConfig) error {
	cfg, err := mailboxConfig(acc, "")
	if err != nil {
		return err
	}

	names, err := cfg.ListMailboxes()
	if err != nil {
		return err
	}

	fmt.Println("Mailboxes:")
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
	return nil
}
