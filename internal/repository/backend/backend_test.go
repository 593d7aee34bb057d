package backend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS_ReadMissing(t *testing.T) {
	b := NewLocalFS(filepath.Join(t.TempDir(), "mapping.json"))

	_, err := b.ReadAll()
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalFS_WriteThenRead(t *testing.T) {
	b := NewLocalFS(filepath.Join(t.TempDir(), "mapping.json"))

	want := []byte(`{"ផ្ទះ": "https://example.com/home"}`)
	require.NoError(t, b.WriteAll(want))

	got, err := b.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLocalFS_WriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	b := NewLocalFS(filepath.Join(dir, "mapping.json"))

	require.NoError(t, b.WriteAll([]byte("{}")))
	require.NoError(t, b.WriteAll([]byte(`{"a":"b"}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "mapping.json", entries[0].Name())
}

func TestSeeded_CopiesBootstrapOnFirstRead(t *testing.T) {
	dir := t.TempDir()

	seedPath := filepath.Join(dir, "seed.json")
	seed := []byte(`{"abc": "https://example.com/other"}`)
	require.NoError(t, os.WriteFile(seedPath, seed, 0o644))

	writable := filepath.Join(dir, "mapping.json")
	b := NewSeeded(NewLocalFS(writable), seedPath)

	got, err := b.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, seed, got)

	// the writable copy must exist now
	_, err = os.Stat(writable)
	require.NoError(t, err)
}

func TestSeeded_DoesNotOverwriteExistingFile(t *testing.T) {
	dir := t.TempDir()

	seedPath := filepath.Join(dir, "seed.json")
	require.NoError(t, os.WriteFile(seedPath, []byte(`{"seed":"x"}`), 0o644))

	writable := filepath.Join(dir, "mapping.json")
	current := []byte(`{"live":"y"}`)
	require.NoError(t, os.WriteFile(writable, current, 0o644))

	b := NewSeeded(NewLocalFS(writable), seedPath)

	got, err := b.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, current, got)
}

func TestSeeded_ReseedsAfterWritableFileDisappears(t *testing.T) {
	dir := t.TempDir()

	seedPath := filepath.Join(dir, "seed.json")
	seed := []byte(`{"abc": "https://example.com/other"}`)
	require.NoError(t, os.WriteFile(seedPath, seed, 0o644))

	writable := filepath.Join(dir, "mapping.json")
	b := NewSeeded(NewLocalFS(writable), seedPath)

	got, err := b.ReadAll()
	require.NoError(t, err)
	require.Equal(t, seed, got)

	// the writable copy can vanish between accesses, e.g. a wiped temp dir
	require.NoError(t, os.Remove(writable))

	got, err = b.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, seed, got)
}

func TestSeeded_MissingBootstrapIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	b := NewSeeded(
		NewLocalFS(filepath.Join(dir, "mapping.json")),
		filepath.Join(dir, "no-such-seed.json"),
	)

	_, err := b.ReadAll()
	require.ErrorIs(t, err, os.ErrNotExist)

	// writes still work
	require.NoError(t, b.WriteAll([]byte("{}")))
}
