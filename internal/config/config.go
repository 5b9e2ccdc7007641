package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Newline settings accepted by the newline option
const (
	NewlineLF   = "lf"
	NewlineCRLF = "crlf"
)

// Config represents the complete configuration for jsonhtml
type Config struct {
	Language         string       `yaml:"language" validate:"required"`
	IndentWidth      int          `yaml:"indent_width" validate:"gte=0,lte=16"`
	Newline          string       `yaml:"newline" validate:"oneof=lf crlf"`
	EscapeAttributes bool         `yaml:"escape_attributes"`
	Styles           StylesConfig `yaml:"styles"`
	Output           OutputConfig `yaml:"output"`
	Lint             LintConfig   `yaml:"lint"`
	Dev              DevConfig    `yaml:"dev"`
}

// StylesConfig controls how style attribute objects are written
type StylesConfig struct {
	KebabCaseProperties bool              `yaml:"kebab_case_properties"`
	PropertyMappings    map[string]string `yaml:"property_mappings"`
}

// OutputConfig controls the written HTML file
type OutputConfig struct {
	Extension string `yaml:"extension" validate:"required,startswith=.,excludes=/"`
	Minify    bool   `yaml:"minify"`
}

// LintConfig controls which document warnings are reported
type LintConfig struct {
	Enabled      bool     `yaml:"enabled"`
	UnknownTags  bool     `yaml:"unknown_tags"`
	LanguageTags bool     `yaml:"language_tags"`
	AllowedTags  []string `yaml:"allowed_tags"`

	// compiled regexes for AllowedTags (not serialized)
	allowed []*regexp.Regexp
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug   bool `yaml:"debug"`
	Verbose bool `yaml:"verbose"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Language:         "en",
		IndentWidth:      4,
		Newline:          NewlineLF,
		EscapeAttributes: true,
		Styles: StylesConfig{
			KebabCaseProperties: false,
			PropertyMappings:    make(map[string]string),
		},
		Output: OutputConfig{
			Extension: ".html",
			Minify:    false,
		},
		Lint: LintConfig{
			Enabled:      false,
			UnknownTags:  true,
			LanguageTags: true,
			AllowedTags:  []string{},
		},
		Dev: DevConfig{
			Debug:   false,
			Verbose: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.compilePatterns(); err != nil {
		return nil, fmt.Errorf("failed to compile patterns: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonhtml.yml", ".jsonhtml.yaml", "jsonhtml.yml", "jsonhtml.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks option ranges and enumerations
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("invalid config value for %s: failed %q check", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// compilePatterns compiles all regex patterns in the config
func (c *Config) compilePatterns() error {
	c.Lint.allowed = c.Lint.allowed[:0]
	for _, pattern := range c.Lint.AllowedTags {
		regex, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid allowed tag pattern '%s': %w", pattern, err)
		}
		c.Lint.allowed = append(c.Lint.allowed, regex)
	}
	return nil
}

// TagAllowed reports whether tag matches one of the allowed_tags patterns
func (l *LintConfig) TagAllowed(tag string) bool {
	if len(l.allowed) == len(l.AllowedTags) {
		for _, regex := range l.allowed {
			if regex.MatchString(tag) {
				return true
			}
		}
		return false
	}

	// Patterns set without LoadConfig; bad ones never match
	for _, pattern := range l.AllowedTags {
		if matched, err := regexp.MatchString(pattern, tag); err == nil && matched {
			return true
		}
	}
	return false
}

// NewlineString returns the line terminator for rendered output
func (c *Config) NewlineString() string {
	if c.Newline == NewlineCRLF {
		return "\r\n"
	}
	return "\n"
}

// StyleProperty returns the CSS property name to write for a style key,
// applying explicit mappings first and kebab-casing second
func (c *Config) StyleProperty(key string) string {
	if mapped, exists := c.Styles.PropertyMappings[key]; exists {
		return mapped
	}

	// Custom properties (--name) are case-sensitive and left alone
	if c.Styles.KebabCaseProperties && !strings.HasPrefix(key, "--") && strings.ToLower(key) != key {
		return strcase.ToKebab(key)
	}

	return key
}

// MergeConfigs merges CLI overrides into a base config
// Non-empty values from override take precedence over base values
func MergeConfigs(base, override *Config) *Config {
	merged := *base

	if override.Language != "" {
		merged.Language = override.Language
	}
	if override.Output.Extension != "" {
		merged.Output.Extension = override.Output.Extension
	}

	// Switches can only be turned on from the command line
	merged.Output.Minify = base.Output.Minify || override.Output.Minify
	merged.Lint.Enabled = base.Lint.Enabled || override.Lint.Enabled
	merged.Dev.Debug = base.Dev.Debug || override.Dev.Debug

	return &merged
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath, cliLanguage string, cliMinify, cliLint bool) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	override := &Config{Language: cliLanguage}
	override.Output.Minify = cliMinify
	override.Lint.Enabled = cliLint

	merged := MergeConfigs(cfg, override)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}
