// Package config loads the optional .sharpalign.yaml settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/MrSimonC/SharpAlignment/pkg/errors"
	"github.com/MrSimonC/SharpAlignment/pkg/logger"
	"github.com/MrSimonC/SharpAlignment/pkg/reorganizer"
)

// FileName is the settings file looked up from the input path upward.
const FileName = ".sharpalign.yaml"

// Config holds run settings. Command-line flags override file values, which
// override the defaults.
type Config struct {
	SortMembersByAlphabet              bool
	SortMembersByAlphabetCaseSensitive bool
	SystemUsingFirst                   bool
	PreferredPrefix                    string
	Exclude                            []string // file entries are made absolute against the file's directory
	Concurrency                        int      // 0 means one worker per CPU
	LogLevel                           string
	MemberOrder                        []string

	// Path is the file the values came from, empty for defaults.
	Path string
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		SortMembersByAlphabet: true,
		PreferredPrefix:       reorganizer.DefaultPreferredPrefix,
		LogLevel:              logger.DefaultLevel,
	}
}

type yamlConfig struct {
	SortMembersByAlphabet              *bool    `yaml:"sort_members_by_alphabet"`
	SortMembersByAlphabetCaseSensitive *bool    `yaml:"sort_members_by_alphabet_case_sensitive"`
	SystemUsingFirst                   *bool    `yaml:"system_using_first"`
	PreferredPrefix                    string   `yaml:"preferred_prefix"`
	Exclude                            []string `yaml:"exclude"`
	Concurrency                        *int     `yaml:"concurrency"`
	LogLevel                           string   `yaml:"log_level"`
	MemberOrder                        []string `yaml:"member_order"`
}

// LoadConfig reads path on top of the defaults. A missing file yields the
// defaults; a malformed one is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToLoadConfig, err)
	}

	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errors.ErrMsgFailedToLoadConfig, path, err)
	}

	if raw.SortMembersByAlphabet != nil {
		cfg.SortMembersByAlphabet = *raw.SortMembersByAlphabet
	}
	if raw.SortMembersByAlphabetCaseSensitive != nil {
		cfg.SortMembersByAlphabetCaseSensitive = *raw.SortMembersByAlphabetCaseSensitive
	}
	if raw.SystemUsingFirst != nil {
		cfg.SystemUsingFirst = *raw.SystemUsingFirst
	}
	if raw.PreferredPrefix != "" {
		cfg.PreferredPrefix = raw.PreferredPrefix
	}
	if raw.Concurrency != nil {
		cfg.Concurrency = *raw.Concurrency
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}
	cfg.MemberOrder = raw.MemberOrder

	// Relative exclusions are relative to the file, not to where sharpalign runs.
	dir := filepath.Dir(path)
	for _, e := range raw.Exclude {
		if e == "" {
			continue
		}
		if !filepath.IsAbs(e) {
			trailing := len(e) > 0 && os.IsPathSeparator(e[len(e)-1])
			e = filepath.Join(dir, e)
			if trailing {
				e += string(filepath.Separator)
			}
		}
		cfg.Exclude = append(cfg.Exclude, e)
	}

	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be caught by the YAML decoder.
func (c *Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be >= 0, got %d", c.Concurrency)
	}
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("%s: %q", errors.ErrMsgInvalidLogLevel, c.LogLevel)
	}
	if _, err := c.MemberKinds(); err != nil {
		return err
	}
	return nil
}

// MemberKinds parses MemberOrder. An empty order returns nil.
func (c *Config) MemberKinds() ([]reorganizer.MemberKind, error) {
	var kinds []reorganizer.MemberKind
	for _, name := range c.MemberOrder {
		k, err := reorganizer.ParseMemberKind(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errors.ErrMsgInvalidMemberOrder, err)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// Options builds the reorganizer settings.
func (c *Config) Options() (reorganizer.Options, error) {
	kinds, err := c.MemberKinds()
	if err != nil {
		return reorganizer.Options{}, err
	}
	return reorganizer.Options{
		Members: reorganizer.MemberOptions{
			SortByAlphabet: c.SortMembersByAlphabet,
			CaseSensitive:  c.SortMembersByAlphabetCaseSensitive,
			KindOrder:      kinds,
		},
		Directives: reorganizer.DirectiveOptions{
			PreferredPrefixFirst: c.SystemUsingFirst,
			PreferredPrefix:      c.PreferredPrefix,
		},
	}, nil
}
