package commands

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelsAllProviders(t *testing.T) {
	h := newHarness(t, "", nil)

	require.NoError(t, h.run("models"))

	out := h.stdout.String()
	assert.Contains(t, out, "PROVIDER")
	assert.Contains(t, out, "gemini-2.5-flash")
	assert.Contains(t, out, "gpt-4o-mini")
	assert.Empty(t, h.created, "listing catalogs needs no provider instance")
}

func TestModelsOneProviderJSON(t *testing.T) {
	h := newHarness(t, "", nil)

	require.NoError(t, h.run("models", "--json", "-p", "openai"))

	var entries []modelEntry
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &entries))
	require.Len(t, entries, 13)

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		assert.Equal(t, "openai", e.Provider)
		assert.NotEmpty(t, e.Name)
		ids = append(ids, e.ID)
	}
	assert.Contains(t, ids, "o3")
	assert.Contains(t, ids, "gpt-4o")
	assert.NotContains(t, ids, "gemini-2.5-flash")
}

func TestModelsRemote(t *testing.T) {
	h := newHarness(t, "", nil)
	h.ks.keys["openrouter"] = "or-key"

	require.NoError(t, h.run("models", "--remote", "-p", "openrouter"))
	assert.Contains(t, h.stdout.String(), "openai/gpt-4o")
	assert.Contains(t, h.stdout.String(), "OpenAI: GPT-4o")
	assert.EqualValues(t, 1, h.fake.closed.Load())
}

func TestModelsRemoteUnsupported(t *testing.T) {
	h := newHarness(t, "", nil)
	h.ks.keys["gemini"] = "g-key"

	err := h.run("models", "--remote", "-p", "gemini")
	requireExitCode(t, err, ExitValidation)
	assert.Contains(t, h.stderr.String(), "does not support --remote")
}

func TestModelsUnknownProvider(t *testing.T) {
	h := newHarness(t, "", nil)

	err := h.run("models", "-p", "nope")
	requireExitCode(t, err, ExitValidation)
}

func TestProvidersCommand(t *testing.T) {
	h := newHarness(t, "", nil)
	h.ks.keys["gemini"] = "g-key"
	h.env["OPENAI_API_KEY"] = "o-key"

	require.NoError(t, h.run("providers", "--json", "-p", "openai"))

	var entries []providerEntry
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &entries))
	assert.Equal(t, []providerEntry{
		{Name: "gemini", EnvVar: "GEMINI_API_KEY", KeySource: "keystore"},
		{Name: "openai", EnvVar: "OPENAI_API_KEY", KeySource: "env", Default: true},
		{Name: "openrouter", EnvVar: "OPENROUTER_API_KEY"},
	}, entries)
}

func TestKeysLifecycle(t *testing.T) {
	h := newHarness(t, "sk-secret-value\n", nil)

	require.NoError(t, h.run("keys", "set", "openai"))
	assert.Contains(t, h.stdout.String(), "API key for openai stored successfully.")
	assert.Equal(t, "sk-secret-value", h.ks.keys["openai"])
	assert.NotContains(t, h.stdout.String()+h.stderr.String(), "sk-secret-value")

	h.stdout.Reset()
	require.NoError(t, h.run("keys", "list"))
	assert.Equal(t, "Stored keys:\n  - openai\n", h.stdout.String())

	h.stdout.Reset()
	require.NoError(t, h.run("keys", "delete", "openai"))
	assert.Contains(t, h.stdout.String(), "API key for openai deleted.")
	assert.Empty(t, h.ks.keys)
}

func TestKeysSetEmpty(t *testing.T) {
	h := newHarness(t, "\n", nil)

	err := h.run("keys", "set", "openai")
	requireExitCode(t, err, ExitValidation)
	assert.Contains(t, h.stderr.String(), "API key cannot be empty")
}

func TestKeysSetUnregisteredWarns(t *testing.T) {
	h := newHarness(t, "k\n", nil)

	require.NoError(t, h.run("keys", "set", "custom"))
	assert.Contains(t, h.stderr.String(), "custom is not a registered provider")
}

func TestKeysDeleteMissing(t *testing.T) {
	h := newHarness(t, "", nil)

	err := h.run("keys", "delete", "gemini")
	requireExitCode(t, err, ExitValidation)
	assert.Contains(t, h.stderr.String(), "no key stored for gemini")
}

func TestKeysListEmptyJSON(t *testing.T) {
	h := newHarness(t, "", nil)

	require.NoError(t, h.run("keys", "list", "--json"))
	assert.JSONEq(t, `{"keys":[]}`, h.stdout.String())
}

func TestVersionCommand(t *testing.T) {
	h := newHarness(t, "", nil)

	require.NoError(t, h.run("version"))
	assert.Contains(t, h.stdout.String(), "latchlm "+Version)
	assert.Contains(t, h.stdout.String(), runtime.Version())
}

func TestVersionCommandJSON(t *testing.T) {
	h := newHarness(t, "", nil)

	require.NoError(t, h.run("version", "--json"))

	var info versionInfo
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &info))
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}
