// Package credential resolves the API key used for a submission from an
// ordered list of sources.
package credential

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/tutor/internal/llm"
)

// Source yields a credential for a backend provider, or "" when it has none.
type Source interface {
	Name() string
	Lookup(provider string) (string, error)
}

// SourceError reports a credential source that could not be read, such as a
// malformed secrets file.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Chain tries sources in order; the first non-blank credential wins.
type Chain []Source

// Resolve returns the first non-blank credential and the name of the source
// it came from. An empty result is not an error.
func (c Chain) Resolve(provider string) (string, string, error) {
	for _, src := range c {
		if src == nil {
			continue
		}
		v, err := src.Lookup(provider)
		if err != nil {
			return "", "", &SourceError{Source: src.Name(), Err: err}
		}
		if v = strings.TrimSpace(v); v != "" {
			return v, src.Name(), nil
		}
	}
	return "", "", nil
}

// Static is a credential typed by the user (flag, form field, TUI field).
type Static string

func (s Static) Name() string { return "input" }

func (s Static) Lookup(string) (string, error) { return string(s), nil }

// Env reads TUTOR_<PROVIDER>_API_KEY, then the vendor variable.
type Env struct {
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

func (e Env) Name() string { return "environment" }

func (e Env) Lookup(provider string) (string, error) {
	getenv := e.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, name := range llm.APIKeyEnvVars(provider) {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			return v, nil
		}
	}
	return "", nil
}

// SecretsFile is an operator-managed YAML file holding keys per provider:
//
//	api_key: shared-key
//	api_keys:
//	  gemini: gemini-key
//
// The file is read once; a missing file yields no credential.
type SecretsFile struct {
	Path string

	once sync.Once
	data secretsDoc
	err  error
}

type secretsDoc struct {
	APIKey  string            `yaml:"api_key"`
	APIKeys map[string]string `yaml:"api_keys"`
}

// NewSecretsFile returns a SecretsFile for path.
func NewSecretsFile(path string) *SecretsFile {
	return &SecretsFile{Path: path}
}

func (f *SecretsFile) Name() string { return "secrets file" }

func (f *SecretsFile) Lookup(provider string) (string, error) {
	if f == nil {
		return "", nil
	}
	f.once.Do(f.load)
	if f.err != nil {
		return "", f.err
	}
	if v := f.data.APIKeys[provider]; strings.TrimSpace(v) != "" {
		return v, nil
	}
	return f.data.APIKey, nil
}

func (f *SecretsFile) load() {
	if f.Path == "" {
		return
	}
	raw, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return
	}
	if err != nil {
		f.err = fmt.Errorf("read %s: %w", f.Path, err)
		return
	}
	if err := yaml.Unmarshal(raw, &f.data); err != nil {
		f.err = fmt.Errorf("parse %s: %w", f.Path, err)
	}
}

// DefaultSecretsPath resolves the secrets file path in priority order:
// 1. TUTOR_SECRETS environment variable
// 2. $XDG_CONFIG_HOME/tutor/secrets.yaml
// 3. ~/.config/tutor/secrets.yaml
func DefaultSecretsPath() string {
	if p := os.Getenv("TUTOR_SECRETS"); p != "" {
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
	return filepath.Join(configHome, "tutor", "secrets.yaml")
}

// Preconfigured is the chain without user input: secrets file, then
// environment. Surfaces use it to decide whether to ask for a key.
func Preconfigured(secrets *SecretsFile) Chain {
	return Chain{secrets, Env{}}
}

// WithInput puts a user-supplied credential ahead of the preconfigured ones.
func WithInput(input string, rest Chain) Chain {
	return append(Chain{Static(input)}, rest...)
}
