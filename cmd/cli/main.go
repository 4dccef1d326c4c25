package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

const version = "1.0.0"

// app holds global options parsed from the command line
type app struct {
	account string
	verbose bool
}

func main() {
	a := &app{}

	// Global flags
	flag.StringVar(&a.account, "account", "", "Account name or email to use")
	flag.BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Usage = printUsage
	flag.Parse()

	if *showVersion {
		fmt.Printf("easymail CLI v%s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	cmd := args[0]
	cmdArgs := args[1:]

	// "init" doesn't need config loaded
	if cmd == "init" {
		if err := handleInit(); err != nil {
			fatal("init: %v", err)
		}
		return
	}

	// Load config and resolve account
	acc := a.loadAccount()

	switch cmd {
	case "fetch":
		opts := parseFetchFlags(cmdArgs)
		if err := handleFetch(acc, opts, a.verbose); err != nil {
			fatal("fetch: %v", err)
		}
	case "mailboxes":
		if err := handleMailboxes(acc); err != nil {
			fatal("mailboxes: %v", err)
		}
	case "auth":
		opts := parseAuthFlags(cmdArgs)
		if err := handleAuth(acc, opts); err != nil {
			fatal("auth: %v", err)
		}
	case "help":
		printUsage()
		os.Exit(0)
	default:
		fatal("unknown command '%s'", cmd)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `easymail CLI v%s - Download emails from an IMAP server

Usage:
  easymail [global options] <command> [command options]

Commands:
  fetch      Download and display emails matching a filter
  mailboxes  List all mailboxes on the server
  auth       Manage the keyring-stored password for an account
  init       Initialize configuration file

Global Options:
  --account <name>   Account name or email to use
  -v, --verbose      Verbose output
  --version          Show version information

Config Resolution:
  easymail reads its JSON config from %s when set, falling back
  to <user config dir>/easymail/config.json. Run 'easymail init' to create
  an example file. Account passwords can live in the config file or in the
  system keyring (see 'auth').

Fetch Options:
  --mailbox <name>          Mailbox to download from (default: account config, then INBOX)
  --subject <text>          Only messages whose Subject contains the text
  --sender <address>        Only messages whose From contains the address
  --limit <n>               Download at most n messages (-1 = all; default: account config)
  --oldest-first            Download oldest messages first (default: newest first)
  --delete                  Delete each message from the server after downloading
  --output <path>           Write message output to a file instead of stdout
  --format <format>         Output format: text or html (default: text)
  --save-attachments <dir>  Save attachments to directory

Auth Options:
  auth set [--password <pw>]  Store the account password in the system keyring
                              (prompts on stdin when --password is omitted)
  auth delete                 Remove the stored password

Examples:
  easymail fetch
  easymail -v fetch --subject "Invoice" --limit 5
  easymail fetch --sender billing@example.com --oldest-first
  easymail fetch --delete --save-attachments ./attachments
  easymail mailboxes
  easymail auth set
  easymail init
`, version, envConfigPathName)
}
