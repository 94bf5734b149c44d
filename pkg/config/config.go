// Package config loads the SnapVault configuration. Like the rest of the
// tool it is deliberately small: one NAS endpoint, one or more destination
// shares, and an optional Discord webhook.
package config

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

// 🗺️ parsers is the list of available parsers
var parsers []Parser

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🖥️ NAS describes the single NAS endpoint all destinations live on
type NAS struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port,omitempty"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Domain   string `yaml:"domain,omitempty"`
}

// 📦 Destination is one share the photos get replicated to
type Destination struct {
	Name  string `yaml:"name"`
	Share string `yaml:"share"`
	Path  string `yaml:"path,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	NAS            NAS           `yaml:"nas"`
	Destinations   []Destination `yaml:"destinations"`
	WebhookURL     string        `yaml:"webhook_url,omitempty"`
	IgnorePatterns []string      `yaml:"ignore_patterns,omitempty"`
	LogDir         string        `yaml:"log_dir,omitempty"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid and applies defaults
func (cfg *Config) Validate() error {
	if cfg.NAS.Host == "" {
		return errors.Errorf("nas.host is required")
	}
	if cfg.NAS.Username == "" {
		return errors.Errorf("nas.username is required")
	}
	if cfg.NAS.Password == "" {
		return errors.Errorf("nas.password is required")
	}
	if len(cfg.Destinations) == 0 {
		return errors.Errorf("at least one destination is required")
	}
	for i, d := range cfg.Destinations {
		if d.Name == "" {
			return errors.Errorf("destination %d: name is required", i)
		}
		if d.Share == "" {
			return errors.Errorf("destination %q: share is required", d.Name)
		}
	}

	// Secrets stay out of the file itself
	cfg.NAS.Password = os.ExpandEnv(cfg.NAS.Password)
	cfg.WebhookURL = os.ExpandEnv(cfg.WebhookURL)

	if cfg.NAS.Port == 0 {
		cfg.NAS.Port = 445
	}
	if cfg.LogDir == "" {
		cfg.LogDir = "logs"
	}

	return nil
}

// 🎛️ SelectDestinations returns the destinations matching filter. An empty
// filter or "all" keeps every configured destination; anything else is a
// case-insensitive destination name.
func (cfg *Config) SelectDestinations(filter string) []Destination {
	if filter == "" || strings.EqualFold(filter, "all") {
		return cfg.Destinations
	}
	var out []Destination
	for _, d := range cfg.Destinations {
		if strings.EqualFold(d.Name, filter) {
			out = append(out, d)
		}
	}
	return out
}

// 📁 ShareNames returns the distinct share names across destinations, in
// configuration order.
func ShareNames(dests []Destination) []string {
	seen := map[string]bool{}
	var names []string
	for _, d := range dests {
		if !seen[d.Share] {
			seen[d.Share] = true
			names = append(names, d.Share)
		}
	}
	return names
}
