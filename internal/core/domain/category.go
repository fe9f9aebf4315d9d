package domain

import "strings"

// Category - закрытое множество типов запроса. Сырые строки от LLM
// декодируются в него один раз на границе классификатора и дальше
// по коду не гуляют.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryListing
	CategoryAnalysis
)

func (c Category) String() string {
	switch c {
	case CategoryListing:
		return "listing"
	case CategoryAnalysis:
		return "analysis"
	default:
		return "unknown"
	}
}

// ParseCategory декодирует односложный ответ модели.
// Все, что не "listing" и не "analysis" - CategoryUnknown.
func ParseCategory(raw string) Category {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "listing":
		return CategoryListing
	case "analysis":
		return CategoryAnalysis
	default:
		return CategoryUnknown
	}
}

// Affirmation - результат проверки ответа "да/нет" на уточняющий вопрос.
type Affirmation int

const (
	// AffirmationUnknown означает "считать текущий ввод новым независимым вопросом".
	AffirmationUnknown Affirmation = iota
	AffirmationYes
	AffirmationNo
)

// ParseAffirmation декодирует односложный ответ модели ("true"/"false").
// Любой другой ответ, включая "null", трактуется как новый вопрос.
func ParseAffirmation(raw string) Affirmation {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return AffirmationYes
	case "false":
		return AffirmationNo
	default:
		return AffirmationUnknown
	}
}
