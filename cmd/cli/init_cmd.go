package main

import (
	"fmt"
	"os"

	"github.com/easymail/downloader/pkgs/config"
)

func handleInit() error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := config.SaveConfig(path, config.ExampleConfig()); err != nil {
		return err
	}
	fmt.Printf("Created config file at: %s\n", path)
	if os.Getenv(config.EnvConfigPath) == "" {
		fmt.Printf("Tip: set %s to use a different location.\n", config.EnvConfigPath)
	}
	fmt.Println("Edit the file to add your email account, then store the password")
	fmt.Println("with 'easymail auth set' (or put it in the file's imap.password).")
	return nil
}
