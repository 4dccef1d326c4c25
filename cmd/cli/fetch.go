package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/easymail/downloader/pkgs/config"
	"github.com/easymail/downloader/pkgs/email"
)

type fetchFlags struct {
	mailbox         string
	subject         string
	sender          string
	limit           int
	oldestFirst     bool
	delete          bool
	output          string
	format          string
	saveAttachments string
}

func parseFetchFlags(args []string) fetchFlags {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	var f fetchFlags
	fs.StringVar(&f.mailbox, "mailbox", "", "Mailbox to download from")
	fs.StringVar(&f.subject, "subject", "", "Only messages whose Subject contains the text")
	fs.StringVar(&f.sender, "sender", "", "Only messages whose From contains the address")
	fs.IntVar(&f.limit, "limit", 0, "Download at most n messages (-1 = all)")
	fs.BoolVar(&f.oldestFirst, "oldest-first", false, "Download oldest messages first")
	fs.BoolVar(&f.delete, "delete", false, "Delete each message after downloading")
	fs.StringVar(&f.output, "output", "", "Output file (default: stdout)")
	fs.StringVar(&f.format, "format", "text", "Output format: text or html")
	fs.StringVar(&f.saveAttachments, "save-attachments", "", "Save attachments to directory")
	if err := fs.Parse(args); err != nil {
		fatal("fetch: %v", err)
	}
	return f
}

// validateAttachmentPath checks that the resolved path stays within baseDir.
func validateAttachmentPath(baseDir, filename string) (string, error) {
	// Clean the filename to prevent path traversal
	cleaned := filepath.Base(filename)
	if cleaned == "." || cleaned == ".." || cleaned == string(filepath.Separator) {
		return "", fmt.Errorf("invalid attachment filename: %s", filename)
	}
	full := filepath.Join(baseDir, cleaned)
	absBase, _ := filepath.Abs(baseDir)
	absFull, _ := filepath.Abs(full)
	if !strings.HasPrefix(absFull, absBase+string(filepath.Separator)) && absFull != absBase {
		return "", fmt.Errorf("attachment path escapes target directory: %s", filename)
	}
	return full, nil
}

func handleFetch(acc *config.AccountConfig, f fetchFlags, verbose bool) error {
	cfg, err := mailboxConfig(acc, f.mailbox)
	if err != nil {
		return err
	}

	filter := email.NewFilter()
	filter.Subject = f.subject
	filter.Sender = f.sender
	filter.OldestFirst = f.oldestFirst
	filter.DeleteAfterDownload = f.delete
	switch {
	case f.limit != 0:
		filter.MessagesToDownload = f.limit
	case acc.FetchLimit > 0:
		filter.MessagesToDownload = acc.FetchLimit
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Searching %s on %s with (%s)\n",
			cfg.Mailbox, cfg.Host, email.BuildSearchFilter(filter))
	}

	messages, err := email.Download(cfg, filter)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if f.output != "" {
		file, err := os.Create(f.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	for i, msg := range messages {
		if err := printMessage(out, i+1, msg, f.format); err != nil {
			return err
		}
		if f.saveAttachments != "" && len(msg.Attachments) > 0 {
			if err := saveAttachments(f.saveAttachments, msg.Attachments); err != nil {
				return err
			}
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Downloaded %d message(s)\n", len(messages))
	}
	return nil
}

func printMessage(out io.Writer, n int, msg email.Message, format string) error {
	switch format {
	case "html":
		if msg.ContentKind != email.ContentKindHTML {
			return fmt.Errorf("message %d has no HTML body", n)
		}
		fmt.Fprintln(out, msg.Body)
	case "text", "":
		fmt.Fprintf(out, "=== Message %d ===\n", n)
		fmt.Fprintf(out, "From: %s\n", msg.Sender)
		fmt.Fprintf(out, "Subject: %s\n", msg.Subject)
		fmt.Fprintf(out, "Date: %s\n", msg.Date)
		if msg.ContentKind != email.ContentKindUnset {
			fmt.Fprintf(out, "Content-Type: %s\n", msg.ContentKind)
		}
		if len(msg.Attachments) > 0 {
			fmt.Fprintf(out, "Attachments (%d):\n", len(msg.Attachments))
			for i, att := range msg.Attachments {
				name := att.Filename
				if name == "" {
					name = "(unnamed)"
				}
				fmt.Fprintf(out, "  [%d] %s (%d bytes)\n", i+1, name, len(att.Contents))
			}
		}
		fmt.Fprintf(out, "\n%s\n\n", msg.Body)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	return nil
}

func saveAttachments(dir string, attachments []email.Attachment) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	for i, att := range attachments {
		name := att.Filename
		if name == "" {
			name = fmt.Sprintf("attachment-%d", i+1)
		}
		path, err := validateAttachmentPath(dir, name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", name, err)
			continue
		}
		if err := os.WriteFile(path, att.Contents, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		fmt.Fprintf(os.Stderr, "Saved: %s\n", path)
	}
	return nil
}
