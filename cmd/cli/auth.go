package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/easymail/downloader/pkgs/config"
	"github.com/easymail/downloader/pkgs/credential"
)

type authFlags struct {
	action   string
	password string
}

func parseAuthFlags(args []string) authFlags {
	fs := flag.NewFlagSet("auth", flag.ExitOnError)
	var f authFlags
	fs.StringVar(&f.password, "password", "", "Password to store (prompts on stdin when omitted)")
	if err := fs.Parse(args); err != nil {
		fatal("auth: %v", err)
	}
	if fs.NArg() > 0 {
		f.action = fs.Arg(0)
	}
	return f
}

func handleAuth(acc *config.AccountConfig, f authFlags) error {
	switch f.action {
	case "set":
		password := f.password
		if password == "" {
			fmt.Fprintf(os.Stderr, "Password for %s: ", acc.Email)
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}
		if password == "" {
			return fmt.Errorf("empty password")
		}
		if err := credential.Set(acc.Email, password); err != nil {
			return err
		}
		fmt.Printf("Password for %s stored in keyring\n", acc.Email)
	case "delete":
		if err := credential.Delete(acc.Email); err != nil {
			return err
		}
		fmt.Printf("Password for %s removed from keyring\n", acc.Email)
	case "":
		return fmt.Errorf("usage: auth <set|delete>")
	default:
		return fmt.Errorf("unknown auth action '%s'", f.action)
	}
	return nil
}
