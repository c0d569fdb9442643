package keystore

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

// fastKDF keeps Argon2id cheap in tests.
var fastKDF = kdfParams{time: 1, memory: 1024, threads: 1, keyLen: 32}

func newTestKeystore(t *testing.T, path string, masterKey string) *FileKeystore {
	t.Helper()
	ks, err := NewFileKeystore(path, StaticSource(masterKey))
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}
	ks.kdf = fastKDF
	return ks
}

func TestFileKeystoreSetAndGet(t *testing.T) {
	ks := newTestKeystore(t, filepath.Join(t.TempDir(), "keys.enc"), "master")

	if err := ks.Set("openai", "sk-test-key-12345"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, err := ks.Get("openai")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value.Expose() != "sk-test-key-12345" {
		t.Errorf("Get() = %q, want sk-test-key-12345", value.Expose())
	}
	if value.String() == "sk-test-key-12345" {
		t.Error("Get() value should be redacted when printed")
	}
}

func TestFileKeystoreGetNotFound(t *testing.T) {
	ks := newTestKeystore(t, filepath.Join(t.TempDir(), "keys.enc"), "master")

	_, err := ks.Get("nonexistent")
	var nf *ErrKeyNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("Get() error = %v, want *ErrKeyNotFound", err)
	}
	if nf.Name != "nonexistent" {
		t.Errorf("Name = %q", nf.Name)
	}
}

func TestFileKeystoreDelete(t *testing.T) {
	ks := newTestKeystore(t, filepath.Join(t.TempDir(), "keys.enc"), "master")

	if err := ks.Set("gemini", "g-key"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := ks.Delete("gemini"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var nf *ErrKeyNotFound
	if _, err := ks.Get("gemini"); !errors.As(err, &nf) {
		t.Error("Get() should return ErrKeyNotFound after Delete()")
	}
	if err := ks.Delete("gemini"); !errors.As(err, &nf) {
		t.Errorf("second Delete() error = %v, want *ErrKeyNotFound", err)
	}
}

func TestFileKeystoreList(t *testing.T) {
	ks := newTestKeystore(t, filepath.Join(t.TempDir(), "keys.enc"), "master")

	names, err := ks.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List() on empty keystore returned %d items", len(names))
	}

	for _, name := range []string{"openrouter", "gemini", "openai"} {
		if err := ks.Set(name, "key-"+name); err != nil {
			t.Fatalf("Set(%q) error = %v", name, err)
		}
	}

	names, err = ks.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	expected := []string{"gemini", "openai", "openrouter"}
	if strings.Join(names, ",") != strings.Join(expected, ",") {
		t.Errorf("List() = %v, want %v", names, expected)
	}
}

func TestFileKeystoreOverwrite(t *testing.T) {
	ks := newTestKeystore(t, filepath.Join(t.TempDir(), "keys.enc"), "master")

	if err := ks.Set("openai", "original-key"); err != nil {
		t.Fatal(err)
	}
	if err := ks.Set("openai", "updated-key"); err != nil {
		t.Fatal(err)
	}

	value, err := ks.Get("openai")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value.Expose() != "updated-key" {
		t.Errorf("Get() = %q, want updated-key", value.Expose())
	}
}

func TestFileKeystorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.enc")

	if err := newTestKeystore(t, path, "master").Set("openai", "persistent-key"); err != nil {
		t.Fatal(err)
	}

	value, err := newTestKeystore(t, path, "master").Get("openai")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value.Expose() != "persistent-key" {
		t.Errorf("Get() = %q, want persistent-key", value.Expose())
	}
}

func TestFileKeystoreWrongMasterKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.enc")

	if err := newTestKeystore(t, path, "right").Set("openai", "k"); err != nil {
		t.Fatal(err)
	}

	_, err := newTestKeystore(t, path, "wrong").Get("openai")
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("Get() error = %v, want ErrCorrupt", err)
	}
}

func TestFileKeystoreTamperedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.enc")
	ks := newTestKeystore(t, path, "master")

	if err := ks.Set("openai", "k"); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	raw[len(raw)-1] ^= 0xff
	if err := os.WriteFile(path, raw, 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := ks.List(); !errors.Is(err, ErrCorrupt) {
		t.Errorf("List() error = %v, want ErrCorrupt", err)
	}
}

func TestFileKeystoreEncrypted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.enc")
	ks := newTestKeystore(t, path, "master")

	if err := ks.Set("openai", "sk-plaintext-marker"); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(raw), magicHeader) {
		t.Error("file should start with the magic header")
	}
	if strings.Contains(string(raw), "sk-plaintext-marker") || strings.Contains(string(raw), "openai") {
		t.Error("file should not contain plaintext names or values")
	}
}

func TestFileKeystoreFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file permissions not supported on Windows")
	}

	path := filepath.Join(t.TempDir(), "keys.enc")
	if err := newTestKeystore(t, path, "master").Set("test", "value"); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		t.Errorf("File permissions = %o, want 0600", mode)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestFileKeystoreConcurrentSet(t *testing.T) {
	ks := newTestKeystore(t, filepath.Join(t.TempDir(), "keys.enc"), "master")

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ks.Set(string(rune('a'+i)), "v"); err != nil {
				t.Errorf("Set() error = %v", err)
			}
		}()
	}
	wg.Wait()

	names, err := ks.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 10 {
		t.Errorf("List() returned %d names, want 10", len(names))
	}
}

func TestMasterKeySources(t *testing.T) {
	t.Setenv(EnvMasterKey, "")
	if _, ok := DefaultMasterKeySource().(MachineSource); !ok {
		t.Error("DefaultMasterKeySource() should fall back to the machine identity")
	}

	first, err := MachineSource{}.MasterKey()
	if err != nil {
		t.Fatal(err)
	}
	second, _ := MachineSource{}.MasterKey()
	if string(first) != string(second) {
		t.Error("MachineSource should be stable")
	}

	if _, err := (EnvSource{Var: EnvMasterKey}).MasterKey(); err == nil {
		t.Error("EnvSource should fail when the variable is empty")
	}

	t.Setenv(EnvMasterKey, "passphrase")
	src := DefaultMasterKeySource()
	key, err := src.MasterKey()
	if err != nil {
		t.Fatal(err)
	}
	if string(key) != "passphrase" {
		t.Errorf("MasterKey() = %q, want passphrase", key)
	}

	if _, err := NewFileKeystore("x", StaticSource(nil)); err == nil {
		t.Error("NewFileKeystore() should reject an empty master key")
	}
}
