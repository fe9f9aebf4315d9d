package artifacts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9-]+`)

// SafeFileName строит имя файла отчета из адреса объекта:
// диакритика убирается, пробелы и прочие символы заменяются дефисами,
// временная метка гарантирует уникальность.
func SafeFileName(streetAddress string, now time.Time) string {
	base := streetAddress
	if base == "" {
		base = "property"
	}

	// Сводим не-ASCII буквы к базовым: "Josè" -> "Jose"
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), base)
	if err == nil {
		base = stripped
	}

	base = unsafeChars.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "property"
	}

	return fmt.Sprintf("property-report-%s-%d.pdf", base, now.UnixMilli())
}

type entry struct {
	artifact domain.ReportArtifact
}

// Registry - реестр временных PDF-файлов с ограниченным временем жизни.
// Каждый файл регистрируется со сроком истечения; истекшие файлы
// удаляются и при обращении, и фоновым обходчиком. Перезапуск процесса
// не оставляет сирот: каталог чистится при создании реестра.
type Registry struct {
	dir    string
	logger port.LoggerPort

	mu      sync.Mutex
	entries map[string]entry

	stopOnce sync.Once
	stop     chan struct{}
}

func NewRegistry(dir string, sweepInterval time.Duration, logger port.LoggerPort) (*Registry, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifacts directory: %w", err)
	}

	// Файлы от прошлого запуска уже никому не выдать: их записей нет.
	removed := cleanDir(dir)
	if removed > 0 {
		logger.Info("Removed stale report files from previous run", port.Fields{"files_count": removed})
	}

	r := &Registry{
		dir:     dir,
		logger:  logger,
		entries: make(map[string]entry),
		stop:    make(chan struct{}),
	}

	if sweepInterval > 0 {
		go r.sweepLoop(sweepInterval)
	}
	return r, nil
}

// Put сохраняет данные и регистрирует срок жизни. Имя файла выводится
// из адреса объекта; временная метка делает его уникальным.
func (r *Registry) Put(ctx context.Context, streetAddress string, data []byte, ttl time.Duration) (*domain.ReportArtifact, error) {
	fileName := SafeFileName(streetAddress, time.Now())
	path := filepath.Join(r.dir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write artifact file: %w", err)
	}

	now := time.Now()
	artifact := domain.ReportArtifact{
		FileName:  fileName,
		Path:      path,
		Size:      int64(len(data)),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	r.mu.Lock()
	r.entries[artifact.FileName] = entry{artifact: artifact}
	r.mu.Unlock()

	r.logger.Info("Report artifact registered", port.Fields{
		"file_name":  artifact.FileName,
		"size_bytes": artifact.Size,
		"expires_at": artifact.ExpiresAt.Format(time.RFC3339),
	})
	return &artifact, nil
}

// Resolve возвращает метаданные живого артефакта.
// Истекший артефакт удаляется на месте, обращение к нему равнозначно
// обращению к несуществующему.
func (r *Registry) Resolve(fileName string) (*domain.ReportArtifact, error) {
	key := filepath.Base(fileName)

	r.mu.Lock()
	e, ok := r.entries[key]
	if ok && time.Now().After(e.artifact.ExpiresAt) {
		delete(r.entries, key)
		r.mu.Unlock()
		r.removeFile(e.artifact.Path, key)
		return nil, domain.ErrArtifactNotFound
	}
	r.mu.Unlock()

	if !ok {
		return nil, domain.ErrArtifactNotFound
	}
	artifact := e.artifact
	return &artifact, nil
}

// Stop останавливает фоновый обходчик.
func (r *Registry) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *Registry) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.sweep(time.Now())
		}
	}
}

// sweep удаляет все истекшие артефакты за один проход.
func (r *Registry) sweep(now time.Time) {
	var expired []entry

	r.mu.Lock()
	for key, e := range r.entries {
		if now.After(e.artifact.ExpiresAt) {
			expired = append(expired, e)
			delete(r.entries, key)
		}
	}
	r.mu.Unlock()

	for _, e := range expired {
		r.removeFile(e.artifact.Path, e.artifact.FileName)
	}
}

func (r *Registry) removeFile(path, fileName string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		r.logger.Error("Failed to remove expired report file", err, port.Fields{"file_name": fileName})
		return
	}
	r.logger.Info("Expired report file removed", port.Fields{"file_name": fileName})
}

func cleanDir(dir string) int {
	removed := 0
	items, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	for _, item := range items {
		if item.IsDir() || !strings.HasSuffix(item.Name(), ".pdf") {
			continue
		}
		if os.Remove(filepath.Join(dir, item.Name())) == nil {
			removed++
		}
	}
	return removed
}
