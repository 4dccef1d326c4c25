package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// EnvConfigPath is the env var that overrides the default config file
// location.
const EnvConfigPath = "EASYMAIL_CONFIG_JSON"

// IMAPSettings holds the connection settings for one IMAP server.
type IMAPSettings struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password,omitempty"`

	// StartTLS upgrades a plaintext connection instead of dialing
	// implicit TLS on port 993.
	StartTLS bool `json:"starttls,omitempty"`
	// Insecure disables TLS entirely. Local/test servers only.
	Insecure bool `json:"insecure,omitempty"`
	// SASLPlain authenticates with SASL PLAIN instead of IMAP LOGIN.
	SASLPlain bool `json:"sasl_plain,omitempty"`
}

// AccountConfig holds one email account.
//
// Password may be left empty in the file; it is then resolved from the
// system keyring under the account's email address.
type AccountConfig struct {
	Name  string       `json:"name"`
	Email string       `json:"email"`
	IMAP  IMAPSettings `json:"imap"`

	// Mailbox is the default mailbox to download from. Empty means INBOX.
	Mailbox string `json:"mailbox,omitempty"`
	// FetchLimit is the default download cap. Zero means unbounded.
	FetchLimit int `json:"fetch_limit,omitempty"`
}

// Domain returns the domain part of the account email address, or
// "localhost" when none can be extracted.
func (a *AccountConfig) Domain() string {
	if idx := strings.Index(a.Email, "@"); idx >= 0 {
		return a.Email[idx+1:]
	}
	return "localhost"
}

// Config holds the application configuration: accounts keyed by name, plus
// the account used when none is specified.
type Config struct {
	Accounts       map[string]AccountConfig `json:"accounts"`
	DefaultAccount string                   `json:"default_account,omitempty"`
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "easymail", "config.json"), nil
}

// ConfigPath returns the config file path: the EnvConfigPath override when
// set, the per-user default otherwise.
func ConfigPath() (string, error) {
	if path := strings.TrimSpace(os.Getenv(EnvConfigPath)); path != "" {
		return path, nil
	}
	return DefaultConfigPath()
}

// LoadConfig loads and validates the configuration from ConfigPath.
func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads and validates configuration from a JSON file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig writes the configuration as JSON, creating the directory if
// needed. The file is private: it may carry passwords.
func SaveConfig(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetAccount returns an account by map key, name or email. An empty
// identifier selects the default account, falling back to the first key in
// sorted order.
func (c *Config) GetAccount(identifier string) (*AccountConfig, error) {
	if len(c.Accounts) == 0 {
		return nil, fmt.Errorf("no accounts configured")
	}

	if identifier == "" {
		if c.DefaultAccount != "" {
			identifier = c.DefaultAccount
		} else {
			keys := make([]string, 0, len(c.Accounts))
			for k := range c.Accounts {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			identifier = keys[0]
		}
	}

	if acc, ok := c.Accounts[identifier]; ok {
		if acc.Name == "" {
			acc.Name = identifier
		}
		return &acc, nil
	}

	for name, acc := range c.Accounts {
		if acc.Name == identifier || acc.Email == identifier {
			if acc.Name == "" {
				acc.Name = name
			}
			return &acc, nil
		}
	}

	return nil, fmt.Errorf("account not found: %s", identifier)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Accounts) == 0 {
		return fmt.Errorf("no accounts configured")
	}

	for name, acc := range c.Accounts {
		if acc.Name == "" {
			acc.Name = name
		}
		if acc.Email == "" {
			return fmt.Errorf("account %s: email is required", acc.Name)
		}
		if acc.IMAP.Host == "" {
			return fmt.Errorf("account %s: imap.host is required", acc.Name)
		}
	}

	if c.DefaultAccount != "" {
		if _, ok := c.Accounts[c.DefaultAccount]; !ok {
			return fmt.Errorf("default_account not found: %s", c.DefaultAccount)
		}
	}

	return nil
}

// ExampleConfig returns an example configuration for "init".
func ExampleConfig() *Config {
	return &Config{
		DefaultAccount: "personal",
		Accounts: map[string]AccountConfig{
			"personal": {
				Name:  "Personal Account",
				Email: "user@example.com",
				IMAP: IMAPSettings{
					Host: "mail.example.com",
					Port: 993,
				},
				Mailbox: "INBOX",
			},
		},
	}
}
