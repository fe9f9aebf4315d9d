package port

import (
	"context"
	"time"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
)

// DocumentRendererPort выполняет РОВНО ОДНУ попытку рендера HTML в PDF.
// Политика повторов (количество попыток, задержки) живет уровнем выше,
// в use case генерации отчёта.
type DocumentRendererPort interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// ArtifactStorePort - реестр временных файлов отчётов с TTL.
// Файл доступен через Resolve до истечения срока; после - удаляется
// и с диска, и из реестра.
type ArtifactStorePort interface {
	// Put сохраняет данные и регистрирует срок жизни. Имя файла
	// выводится из адреса объекта самим реестром.
	Put(ctx context.Context, streetAddress string, data []byte, ttl time.Duration) (*domain.ReportArtifact, error)

	// Resolve возвращает метаданные живого артефакта.
	// Для неизвестного или истекшего имени - domain.ErrArtifactNotFound.
	Resolve(fileName string) (*domain.ReportArtifact, error)
}

// ReportComposerPort собирает печатный HTML-документ отчета из данных
// объекта и текстового нарратива.
type ReportComposerPort interface {
	ComposeHTML(listing domain.ReportListing, narrative string, generatedAt time.Time) (string, error)
}

// TextExtractorPort извлекает плоский текст из загруженного документа
// (PDF, DOCX, XLSX, TXT/CSV) для последующего анализа.
type TextExtractorPort interface {
	Extract(fileName string, data []byte) (string, error)
}
