package credential

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	value string
	err   error
	calls int
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Lookup(string) (string, error) {
	f.calls++
	return f.value, f.err
}

func writeSecrets(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secrets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestChain_FirstNonBlankWins(t *testing.T) {
	later := &fakeSource{value: "from-later"}

	tests := []struct {
		name       string
		chain      Chain
		want       string
		wantSource string
	}{
		{"input first", Chain{Static("typed"), later}, "typed", "input"},
		{"blank input skipped", Chain{Static("   "), later}, "from-later", "fake"},
		{"trimmed", Chain{Static("  key\n")}, "key", "input"},
		{"nil source skipped", Chain{nil, later}, "from-later", "fake"},
		{"nothing", Chain{Static("")}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, src, err := tt.chain.Resolve("gemini")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSource, src)
		})
	}
}

func TestChain_StopsAtFirstHit(t *testing.T) {
	later := &fakeSource{value: "unused"}
	_, _, err := Chain{Static("typed"), later}.Resolve("gemini")
	require.NoError(t, err)
	assert.Zero(t, later.calls)
}

func TestChain_SourceError(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := Chain{&fakeSource{err: boom}}.Resolve("gemini")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "fake", srcErr.Source)
}

func TestEnv(t *testing.T) {
	env := map[string]string{
		"GEMINI_API_KEY":       "vendor",
		"TUTOR_OPENAI_API_KEY": "tutor-openai",
		"OPENAI_API_KEY":       "vendor-openai",
	}
	src := Env{Getenv: func(k string) string { return env[k] }}

	got, err := src.Lookup("gemini")
	require.NoError(t, err)
	assert.Equal(t, "vendor", got)

	got, err = src.Lookup("openai")
	require.NoError(t, err)
	assert.Equal(t, "tutor-openai", got, "tutor-prefixed variable takes precedence")

	got, err = src.Lookup("anthropic")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSecretsFile(t *testing.T) {
	path := writeSecrets(t, "api_key: shared\napi_keys:\n  gemini: gem-key\n")
	f := NewSecretsFile(path)

	got, err := f.Lookup("gemini")
	require.NoError(t, err)
	assert.Equal(t, "gem-key", got)

	got, err = f.Lookup("openai")
	require.NoError(t, err)
	assert.Equal(t, "shared", got)
}

func TestSecretsFile_ReadOnce(t *testing.T) {
	path := writeSecrets(t, "api_key: first\n")
	f := NewSecretsFile(path)

	got, err := f.Lookup("gemini")
	require.NoError(t, err)
	require.Equal(t, "first", got)

	require.NoError(t, os.WriteFile(path, []byte("api_key: second\n"), 0o600))

	got, err = f.Lookup("gemini")
	require.NoError(t, err)
	assert.Equal(t, "first", got)
}

func TestSecretsFile_Missing(t *testing.T) {
	f := NewSecretsFile(filepath.Join(t.TempDir(), "nope.yaml"))
	got, err := f.Lookup("gemini")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSecretsFile_Malformed(t *testing.T) {
	f := NewSecretsFile(writeSecrets(t, "api_keys: [oops\n"))
	_, err := f.Lookup("gemini")
	assert.Error(t, err)
}

func TestPreconfiguredOrder(t *testing.T) {
	t.Setenv("TUTOR_GEMINI_API_KEY", "from-env")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	secrets := NewSecretsFile(writeSecrets(t, "api_keys:\n  gemini: from-file\n"))

	got, src, err := Preconfigured(secrets).Resolve("gemini")
	require.NoError(t, err)
	assert.Equal(t, "from-file", got)
	assert.Equal(t, "secrets file", src)

	got, src, err = WithInput("typed", Preconfigured(secrets)).Resolve("gemini")
	require.NoError(t, err)
	assert.Equal(t, "typed", got)
	assert.Equal(t, "input", src)

	empty := NewSecretsFile(filepath.Join(t.TempDir(), "none.yaml"))
	got, src, err = Preconfigured(empty).Resolve("gemini")
	require.NoError(t, err)
	assert.Equal(t, "from-env", got)
	assert.Equal(t, "environment", src)
}

func TestDefaultSecretsPath(t *testing.T) {
	t.Setenv("TUTOR_SECRETS", "")
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	assert.Equal(t, filepath.Join("/cfg", "tutor", "secrets.yaml"), DefaultSecretsPath())

	t.Setenv("TUTOR_SECRETS", "/elsewhere/s.yaml")
	assert.Equal(t, "/elsewhere/s.yaml", DefaultSecretsPath())
}
