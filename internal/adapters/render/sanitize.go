package render

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// Регулярные выражения для зачистки активного содержимого перед
// передачей документа движку печати.
var (
	scriptTagPattern    = regexp.MustCompile(`(?is)<script\b[^<]*(?:(?:<(?:/script>)?)?[^<]*)*</script>`)
	iframeTagPattern    = regexp.MustCompile(`(?is)<iframe\b[^<]*(?:(?:<(?:/iframe>)?)?[^<]*)*</iframe>`)
	jsProtocolPattern   = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerPattern = regexp.MustCompile(`(?i)on\w+\s*=`)
)

var narrativePolicy = newNarrativePolicy()

func newNarrativePolicy() *bluemonday.Policy {
	// UGC-политика покрывает заголовки, списки и остальную разметку
	// нарратива; таблицы разрешаем отдельно.
	p := bluemonday.UGCPolicy()
	p.AllowTables()
	return p
}

// SanitizeNarrative чистит сгенерированный моделью HTML-нарратив:
// остаются только безопасные структурные теги.
func SanitizeNarrative(narrative string) string {
	return narrativePolicy.Sanitize(narrative)
}

// ScrubActiveContent снимает последний слой защиты с готового документа:
// теги script/iframe, javascript:-протоколы и inline-обработчики событий.
func ScrubActiveContent(html string) string {
	html = scriptTagPattern.ReplaceAllString(html, "")
	html = iframeTagPattern.ReplaceAllString(html, "")
	html = jsProtocolPattern.ReplaceAllString(html, "")
	html = eventHandlerPattern.ReplaceAllString(html, "")
	return html
}
