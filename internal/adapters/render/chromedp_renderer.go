package render

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/contextkeys"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
)

// PDF меньше этого размера считается битым.
const minValidPDFBytes = 1000

// A4 в дюймах; поля - 20px при 96 DPI.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginInches      = 20.0 / 96.0
)

// ChromedpRenderer - реализация DocumentRendererPort поверх headless Chrome.
// Выполняет РОВНО ОДНУ попытку: запуск браузера, загрузка документа,
// ожидание стабилизации верстки, экспорт в PDF. Повторы и взрывная
// задержка между ними - ответственность вызывающего use case.
type ChromedpRenderer struct {
	renderTimeout time.Duration
	settleDelay   time.Duration
}

func NewChromedpRenderer(renderTimeout, settleDelay time.Duration) *ChromedpRenderer {
	return &ChromedpRenderer{
		renderTimeout: renderTimeout,
		settleDelay:   settleDelay,
	}
}

func (r *ChromedpRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	rendererLogger := logger.WithFields(port.Fields{
		"component": "ChromedpRenderer",
		"method":    "RenderPDF",
	})

	ctx, cancel := context.WithTimeout(ctx, r.renderTimeout)
	defer cancel()

	// 1. Запускаем изолированный экземпляр браузера.
	// cancel-функции закрывают и вкладку, и процесс браузера;
	// ошибки остановки здесь не всплывают - их гасит сам chromedp.
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelTask()

	// Документ уже собран шаблоном, но активное содержимое
	// вычищаем непосредственно перед загрузкой в движок.
	sanitized := ScrubActiveContent(html)

	var pdfData []byte
	err := chromedp.Run(taskCtx,
		// 2. Открываем пустую вкладку и подменяем ее содержимое документом
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return fmt.Errorf("failed to get frame tree: %w", err)
			}
			return page.SetDocumentContent(frameTree.Frame.ID, sanitized).Do(ctx)
		}),
		// 3. Даем верстке стабилизироваться
		chromedp.Sleep(r.settleDelay),
		// 4. Экспортируем страницу в PDF
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				WithMarginTop(marginInches).
				WithMarginBottom(marginInches).
				WithMarginLeft(marginInches).
				WithMarginRight(marginInches).
				Do(ctx)
			if err != nil {
				return fmt.Errorf("failed to print page to pdf: %w", err)
			}
			pdfData = buf
			return nil
		}),
	)
	if err != nil {
		rendererLogger.Error("PDF rendering attempt failed", err, nil)
		return nil, err
	}

	// Пустой или подозрительно маленький документ - отказ попытки
	if len(pdfData) < minValidPDFBytes {
		err := fmt.Errorf("generated pdf is too small: %d bytes", len(pdfData))
		rendererLogger.Error("PDF validation failed", err, nil)
		return nil, err
	}

	rendererLogger.Info("PDF rendered successfully", port.Fields{"size_bytes": len(pdfData)})
	return pdfData, nil
}
