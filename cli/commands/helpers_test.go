package commands

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latchlm/latchlm/cli/config"
	"github.com/latchlm/latchlm/cli/keystore"
	"github.com/latchlm/latchlm/core"
	"github.com/latchlm/latchlm/providers"
)

// memKeystore is an in-memory keystore.Keystore.
type memKeystore struct {
	mu   sync.Mutex
	keys map[string]string
}

func newMemKeystore() *memKeystore {
	return &memKeystore{keys: make(map[string]string)}
}

func (m *memKeystore) Set(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[name] = value
	return nil
}

func (m *memKeystore) Get(name string) (core.Secret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.keys[name]
	if !ok {
		return core.Secret{}, &keystore.ErrKeyNotFound{Name: name}
	}
	return core.NewSecret(v), nil
}

func (m *memKeystore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.keys[name]; !ok {
		return &keystore.ErrKeyNotFound{Name: name}
	}
	delete(m.keys, name)
	return nil
}

func (m *memKeystore) List() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.keys))
	for name := range m.keys {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// fakeProvider answers with canned text, fragments or an error.
type fakeProvider struct {
	name      string
	text      string
	fragments []string
	err       error
	usage     core.TokenUsage

	lastModel string
	lastText  string
	closed    atomic.Int32
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) SendRequest(_ context.Context, model core.Model, req core.Request) (*core.Response, error) {
	f.lastModel, f.lastText = model.ID(), req.Text
	if f.err != nil {
		return nil, f.err
	}
	return &core.Response{Text: f.text, Model: model.ID(), Usage: f.usage}, nil
}

func (f *fakeProvider) SendStreaming(_ context.Context, model core.Model, req core.Request) *core.Stream {
	f.lastModel, f.lastText = model.ID(), req.Text
	return core.NewStream(func(yield func(*core.Response, error) bool) {
		for _, frag := range f.fragments {
			if !yield(&core.Response{Text: frag}, nil) {
				return
			}
		}
		if f.err != nil {
			yield(nil, f.err)
			return
		}
		yield(&core.Response{Usage: f.usage}, nil)
	})
}

func (f *fakeProvider) Close() error {
	f.closed.Add(1)
	return nil
}

// listingProvider adds remote model listing.
type listingProvider struct {
	*fakeProvider
	models []core.ModelInfo
}

func (l *listingProvider) ListModels(context.Context) ([]core.ModelInfo, error) {
	return l.models, nil
}

type harness struct {
	app    *App
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	ks     *memKeystore
	fake   *fakeProvider
	env    map[string]string

	created  []string
	settings providers.Settings
}

func newHarness(t *testing.T, stdin string, cfg *config.Config) *harness {
	t.Helper()
	t.Chdir(t.TempDir())

	if cfg == nil {
		cfg = &config.Config{}
	}

	h := &harness{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		ks:     newMemKeystore(),
		fake:   &fakeProvider{text: "Example answer"},
		env:    make(map[string]string),
	}

	h.app = NewApp(
		WithIO(strings.NewReader(stdin), h.stdout, h.stderr),
		WithConfigLoader(func(string) (*config.Config, error) { return cfg, nil }),
		WithKeystoreFactory(func() (keystore.Keystore, error) { return h.ks, nil }),
		WithEnv(func(key string) (string, bool) {
			v, ok := h.env[key]
			return v, ok
		}),
		WithProviderFactory(func(name string, s providers.Settings) (core.Provider, error) {
			h.created = append(h.created, name)
			h.settings = s
			h.fake.name = name
			if name == "openrouter" {
				return &listingProvider{fakeProvider: h.fake, models: []core.ModelInfo{
					{ID: "openai/gpt-4o", Name: "OpenAI: GPT-4o"},
				}}, nil
			}
			return h.fake, nil
		}),
	)
	return h
}

func (h *harness) run(args ...string) error {
	h.app.SetArgs(args...)
	return h.app.ExecuteContext(context.Background())
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	ee, ok := err.(*exitError)
	require.True(t, ok, "expected *exitError, got %T", err)
	require.Equal(t, code, ee.ExitCode(), "error: %v", err)
}
