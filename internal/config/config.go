package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// FileName is the config file looked up in the scan root
const FileName = ".keygrd.yaml"

// EnvPrefix prefixes environment overrides, e.g. KEYGRD_NAMESPACE
const EnvPrefix = "KEYGRD"

// Extractor modes
const (
	ExtractorRegex = "regex"
	ExtractorAST   = "ast"
)

// Config represents the keygrd configuration
type Config struct {
	Source    string         `mapstructure:"source"`    // Source file or directory to scan
	Namespace string         `mapstructure:"namespace"` // Key namespace, e.g. quizOverview
	Functions []string       `mapstructure:"functions"` // Call tokens that take a key, e.g. t
	Extractor string         `mapstructure:"extractor"` // regex or ast
	Locales   []LocaleConfig `mapstructure:"locales"`
	Include   []string       `mapstructure:"include"` // Source globs to include
	Exclude   []string       `mapstructure:"exclude"` // Source globs to exclude
	Ignores   IgnoresConfig  `mapstructure:"ignores"`
	Log       LogConfig      `mapstructure:"log"`

	// File is the config file that was read, empty when defaults were used
	File string `mapstructure:"-"`

	missingGlobs []glob.Glob
}

// LocaleConfig names one locale file
type LocaleConfig struct {
	Tag  string `mapstructure:"tag"`
	Path string `mapstructure:"path"`
}

// Label returns the display label of the locale, e.g. "EN" for "en"
func (l LocaleConfig) Label() string {
	return strings.ToUpper(l.Tag)
}

// IgnoresConfig contains ignore rules
type IgnoresConfig struct {
	Missing []string `mapstructure:"missing"` // Full key globs never reported as missing, e.g. quizOverview.debug.*
	Folders []string `mapstructure:"folders"` // Folders whose references don't count
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

// setDefaults registers the values used when no config file is present.
// They match the page and locale files the checker was first written for.
func setDefaults(v *viper.Viper) {
	v.SetDefault("source", "src/features/quiz/pages/QuizPreviewPage.tsx")
	v.SetDefault("namespace", "quizOverview")
	v.SetDefault("functions", []string{"t"})
	v.SetDefault("extractor", ExtractorRegex)
	v.SetDefault("locales", []map[string]interface{}{
		{"tag": "en", "path": "public/locales/en/common.json"},
		{"tag": "vi", "path": "public/locales/vi/common.json"},
	})
	v.SetDefault("include", []string{})
	v.SetDefault("exclude", []string{})
	v.SetDefault("ignores.missing", []string{})
	v.SetDefault("ignores.folders", []string{})
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
}

// LoadConfig loads the configuration for rootPath.
// configFile overrides the default lookup of .keygrd.yaml in rootPath; it
// must exist when given. Changed flags in flags override file and env values
// when their names match config keys.
func LoadConfig(rootPath, configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(rootPath)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for _, key := range []string{"source", "namespace", "functions", "extractor", "include", "exclude"} {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", key, err)
				}
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.File = v.ConfigFileUsed()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the configuration and normalizes locale tags
func (c *Config) Validate() error {
	if c.Namespace == "" {
		return fmt.Errorf("namespace must not be empty")
	}
	for _, seg := range strings.Split(c.Namespace, ".") {
		if seg == "" {
			return fmt.Errorf("namespace %q has an empty segment", c.Namespace)
		}
	}
	if c.Source == "" {
		return fmt.Errorf("source must not be empty")
	}
	if len(c.Functions) == 0 {
		return fmt.Errorf("at least one call function is required")
	}
	switch c.Extractor {
	case ExtractorRegex, ExtractorAST:
	default:
		return fmt.Errorf("unknown extractor %q (want %s or %s)", c.Extractor, ExtractorRegex, ExtractorAST)
	}

	if len(c.Locales) == 0 {
		return fmt.Errorf("at least one locale is required")
	}
	labels := make(map[string]bool)
	for i, l := range c.Locales {
		tag, err := language.Parse(l.Tag)
		if err != nil {
			return fmt.Errorf("locale %d: invalid tag %q: %w", i, l.Tag, err)
		}
		if l.Path == "" {
			return fmt.Errorf("locale %s: path must not be empty", tag)
		}
		c.Locales[i].Tag = tag.String()
		label := c.Locales[i].Label()
		if labels[label] {
			return fmt.Errorf("locale %s is configured twice", tag)
		}
		labels[label] = true
	}

	c.missingGlobs = c.missingGlobs[:0]
	for _, pattern := range c.Ignores.Missing {
		g, err := glob.Compile(pattern, '.')
		if err != nil {
			return fmt.Errorf("invalid ignores.missing pattern %q: %w", pattern, err)
		}
		c.missingGlobs = append(c.missingGlobs, g)
	}
	return nil
}

// SetLocales replaces the configured locales with `tag=path` pairs
func (c *Config) SetLocales(pairs []string) error {
	locales := make([]LocaleConfig, 0, len(pairs))
	for _, pair := range pairs {
		tag, path, ok := strings.Cut(pair, "=")
		if !ok || tag == "" || path == "" {
			return fmt.Errorf("invalid locale %q (want tag=path)", pair)
		}
		locales = append(locales, LocaleConfig{Tag: tag, Path: path})
	}
	c.Locales = locales
	return c.Validate()
}

// ShouldIgnoreMissing checks if a full dotted key should be ignored when
// reporting it as missing
func (c *Config) ShouldIgnoreMissing(key string) bool {
	for _, g := range c.ignoreGlobs() {
		if g.Match(key) {
			return true
		}
	}
	return false
}

// ignoreGlobs returns the compiled ignores.missing patterns, compiling them
// when the config was built without Validate. Invalid patterns only match
// themselves.
func (c *Config) ignoreGlobs() []glob.Glob {
	if len(c.missingGlobs) == len(c.Ignores.Missing) {
		return c.missingGlobs
	}
	globs := make([]glob.Glob, 0, len(c.Ignores.Missing))
	for _, pattern := range c.Ignores.Missing {
		g, err := glob.Compile(pattern, '.')
		if err != nil {
			g = glob.MustCompile(glob.QuoteMeta(pattern))
		}
		globs = append(globs, g)
	}
	c.missingGlobs = globs
	return globs
}

// WriteTemplate creates a commented config file at path. It refuses to
// overwrite an existing file.
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(Template), 0644); err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	return nil
}

// Template is the file written by `keygrd init-config`
const Template = `# .keygrd.yaml
# Configuration file for keygrd

# Source file or directory whose translation calls are checked
source: src/features/quiz/pages/QuizPreviewPage.tsx

# Only keys under this namespace are required, e.g. t('quizOverview.title')
namespace: quizOverview

# Call tokens that take a translation key as their first argument
functions:
  - t

# regex: textual match (default), ast: tree-sitter parse of the source
extractor: regex

# Locale files compared against the source, in report order
locales:
  - tag: en
    path: public/locales/en/common.json
  - tag: vi
    path: public/locales/vi/common.json

ignores:
  # Full keys (globs allowed) that are never reported as missing
  missing:
    # - quizOverview.debug.*
  # Folders whose references are not required. Names (stories) are skipped,
  # paths relative to the root (src/stories) are scanned but not counted
  folders:
    # - stories

log:
  level: warn
  format: console
`
