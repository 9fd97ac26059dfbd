// Package config loads the optional YAML profile and merges it with
// environment variables and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/modelselect"
	"github.com/abhisek/tutor/internal/tutor"
)

// DefaultAddr is where `tutor serve` listens when nothing else is set.
const DefaultAddr = "127.0.0.1:8501"

// Profile is the on-disk configuration file.
type Profile struct {
	Provider string        `yaml:"provider"`
	BaseURL  string        `yaml:"base_url"`
	Tiers    []string      `yaml:"tiers"`
	Persona  tutor.Persona `yaml:"persona"`
	Server   ServerProfile `yaml:"server"`
	Usage    *bool         `yaml:"usage"`
}

// ServerProfile configures `tutor serve`.
type ServerProfile struct {
	Addr string `yaml:"addr"`
}

// Overrides are values given on the command line. Empty fields are unset.
type Overrides struct {
	Provider string
	Addr     string
	NoUsage  bool
}

// Settings is the fully resolved configuration.
type Settings struct {
	LLM          llm.Config
	Tutor        tutor.Config
	Addr         string
	UsageEnabled bool
}

// DefaultPath resolves the profile path in priority order:
// 1. TUTOR_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/tutor/config.yaml
// 3. ~/.config/tutor/config.yaml
func DefaultPath() string {
	if p := os.Getenv("TUTOR_CONFIG"); p != "" {
		return p
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "tutor", "config.yaml")
}

// Load reads and validates the profile at path. A missing file yields an
// empty profile.
func Load(path string) (Profile, error) {
	var p Profile
	if path == "" {
		return p, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("read config: %w", err)
	}
	return Parse(raw)
}

// Parse validates and decodes a YAML profile.
func Parse(raw []byte) (Profile, error) {
	var p Profile

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return p, fmt.Errorf("parse config: %w", err)
	}
	if doc == nil {
		return p, nil
	}
	if err := validateDocument(doc); err != nil {
		return p, err
	}

	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("decode config: %w", err)
	}
	return p, nil
}

// Resolve merges defaults, the profile, the environment and overrides, in
// increasing order of precedence.
func Resolve(p Profile, o Overrides) (Settings, error) {
	cfg := llm.DefaultConfig()
	if p.Provider != "" {
		cfg.Provider = p.Provider
	}
	cfg = llm.ConfigFromEnv(cfg)
	if o.Provider != "" {
		cfg.Provider = o.Provider
	}
	// The profile's base_url follows whichever provider won, unless that
	// provider's own env variable already set one.
	if p.BaseURL != "" && os.Getenv(baseURLEnv(cfg.Provider)) == "" {
		cfg = withBaseURL(cfg, p.BaseURL)
	}
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}

	t := tutor.Config{
		Tiers:   p.Tiers,
		Persona: overlayPersona(tutor.DefaultPersona(), p.Persona),
	}
	if len(t.Tiers) == 0 {
		t.Tiers = DefaultTiers(cfg.Provider)
	}
	if lang := os.Getenv("TUTOR_LANGUAGE"); lang != "" {
		t.Persona.Language = lang
	}

	s := Settings{
		LLM:          cfg,
		Tutor:        t,
		Addr:         DefaultAddr,
		UsageEnabled: true,
	}

	if p.Server.Addr != "" {
		s.Addr = p.Server.Addr
	}
	if a := os.Getenv("TUTOR_ADDR"); a != "" {
		s.Addr = a
	}
	if o.Addr != "" {
		s.Addr = o.Addr
	}

	if p.Usage != nil {
		s.UsageEnabled = *p.Usage
	}
	if v := strings.ToLower(os.Getenv("TUTOR_USAGE")); v == "off" || v == "false" || v == "0" {
		s.UsageEnabled = false
	}
	if o.NoUsage {
		s.UsageEnabled = false
	}

	return s, nil
}

// DefaultTiers returns the model preference tiers for a provider.
func DefaultTiers(provider string) []string {
	switch provider {
	case llm.ProviderOpenAI:
		return []string{"mini", "gpt-4o"}
	case llm.ProviderAnthropic:
		return []string{"haiku", "sonnet"}
	case llm.ProviderOpenRouter:
		return []string{"gemini-2.0-flash", "flash"}
	default:
		return append([]string(nil), modelselect.DefaultTiers...)
	}
}

// withBaseURL applies a profile base URL to the selected provider.
func baseURLEnv(provider string) string {
	return "TUTOR_" + strings.ToUpper(provider) + "_BASE_URL"
}

// overlayPersona replaces fields of base with the ones p sets.
func overlayPersona(base, p tutor.Persona) tutor.Persona {
	if strings.TrimSpace(p.Grade) != "" {
		base.Grade = p.Grade
	}
	if len(p.Subjects) > 0 {
		base.Subjects = p.Subjects
	}
	if strings.TrimSpace(p.Language) != "" {
		base.Language = p.Language
	}
	base.Rules = p.Rules
	base.Override = p.Override
	return base
}

func withBaseURL(cfg llm.Config, url string) llm.Config {
	if url == "" {
		return cfg
	}
	switch cfg.Provider {
	case llm.ProviderGemini:
		cfg.Gemini.BaseURL = url
	case llm.ProviderOpenAI:
		cfg.OpenAI.BaseURL = url
	case llm.ProviderAnthropic:
		cfg.Anthropic.BaseURL = url
	case llm.ProviderOpenRouter:
		cfg.OpenRouter.BaseURL = url
	}
	return cfg
}
