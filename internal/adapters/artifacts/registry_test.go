package artifacts

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, fields port.Fields)             {}
func (nopLogger) Warn(msg string, fields port.Fields)             {}
func (nopLogger) Error(msg string, err error, fields port.Fields) {}
func (nopLogger) Debug(msg string, fields port.Fields)            {}
func (n nopLogger) WithFields(fields port.Fields) port.LoggerPort { return n }

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(t.TempDir(), 0, nopLogger{})
	require.NoError(t, err)
	t.Cleanup(r.Stop)
	return r
}

func TestSafeFileName(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	t.Run("address becomes a slug with a timestamp", func(t *testing.T) {
		assert.Equal(t, "property-report-123-Main-St-1700000000000.pdf", SafeFileName("123 Main St", now))
	})

	t.Run("diacritics reduced to ascii", func(t *testing.T) {
		assert.Equal(t, "property-report-12-Calle-Jose-1700000000000.pdf", SafeFileName("12 Callé Josè", now))
	})

	t.Run("unsafe characters collapsed", func(t *testing.T) {
		assert.Equal(t, "property-report-5-Oak-Ave-Apt-2-1700000000000.pdf", SafeFileName("5 Oak Ave, Apt #2!", now))
	})

	t.Run("empty address falls back to a placeholder", func(t *testing.T) {
		assert.Equal(t, "property-report-property-1700000000000.pdf", SafeFileName("", now))
	})
}

func TestRegistryPutResolve(t *testing.T) {
	r := newTestRegistry(t)

	artifact, err := r.Put(context.Background(), "123 Main St", []byte("%PDF-fake"), time.Minute)
	require.NoError(t, err)
	assert.FileExists(t, artifact.Path)
	assert.Equal(t, int64(len("%PDF-fake")), artifact.Size)

	resolved, err := r.Resolve(artifact.FileName)
	require.NoError(t, err)
	assert.Equal(t, artifact.Path, resolved.Path)

	// Resolve нормализует путь: обход каталога не работает
	_, err = r.Resolve("../" + artifact.FileName)
	assert.NoError(t, err)

	_, err = r.Resolve("no-such-file.pdf")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestRegistryExpiry(t *testing.T) {
	t.Run("expired artifact removed on access", func(t *testing.T) {
		r := newTestRegistry(t)

		artifact, err := r.Put(context.Background(), "123 Main St", []byte("%PDF-fake"), -time.Second)
		require.NoError(t, err)

		_, err = r.Resolve(artifact.FileName)
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
		assert.NoFileExists(t, artifact.Path)
	})

	t.Run("sweep removes only expired artifacts", func(t *testing.T) {
		r := newTestRegistry(t)

		expired, err := r.Put(context.Background(), "1 Old St", []byte("%PDF-old"), -time.Second)
		require.NoError(t, err)
		alive, err := r.Put(context.Background(), "2 New St", []byte("%PDF-new"), time.Hour)
		require.NoError(t, err)

		r.sweep(time.Now())

		assert.NoFileExists(t, expired.Path)
		assert.FileExists(t, alive.Path)

		_, err = r.Resolve(alive.FileName)
		assert.NoError(t, err)
	})
}

func TestRegistryCleansStaleFilesOnStart(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "property-report-old-1.pdf")
	require.NoError(t, os.WriteFile(stale, []byte("%PDF-old"), 0o644))
	unrelated := filepath.Join(dir, "keep.txt")
	require.NoError(t, os.WriteFile(unrelated, []byte("notes"), 0o644))

	r, err := NewRegistry(dir, 0, nopLogger{})
	require.NoError(t, err)
	t.Cleanup(r.Stop)

	// От прошлого запуска выживает только не-PDF
	assert.NoFileExists(t, stale)
	assert.FileExists(t, unrelated)
}
