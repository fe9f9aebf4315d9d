// Package textparse содержит извлечение чисел и заголовков из свободного
// текста. Паттерны вынесены сюда из пайплайна анализа, чтобы их можно
// было тестировать независимо.
package textparse

import (
	"regexp"
	"strconv"
	"strings"
)

// countPattern ловит явный запрос количества объектов, привязанный к
// "недвижимостным" существительным: "show me 5 houses", "find 3 properties".
var countPattern = regexp.MustCompile(`(?i)(?:show me|find|I want|get|display|list)\s+(\d+)\s+(?:houses?|properties?|homes?|listings?)`)

// titlePattern находит фрагменты, оканчивающиеся одним и более "!".
// Последнее совпадение - это follow-up вопрос, которым модель обязана
// завершать каждый ответ.
var titlePattern = regexp.MustCompile(`[^!]*!+`)

// titleTrimPattern срезает не-алфанумерику по краям заголовка,
// оставляя завершающий "?" если он есть.
var (
	titleTrimLeading  = regexp.MustCompile(`^[^a-zA-Z0-9]+`)
	titleTrimTrailing = regexp.MustCompile(`[^a-zA-Z0-9?]+$`)
)

var codeFencePattern = regexp.MustCompile("```[a-zA-Z]*")

// ExplicitLimit возвращает явно запрошенное пользователем количество
// объектов и признак того, что оно вообще было названо.
func ExplicitLimit(userInput string) (int, bool) {
	match := countPattern.FindStringSubmatch(userInput)
	if match == nil {
		return 0, false
	}
	limit, err := strconv.Atoi(match[1])
	if err != nil || limit <= 0 {
		return 0, false
	}
	return limit, true
}

// LimitOrDefault - то же самое, но с подстановкой дефолта.
func LimitOrDefault(userInput string, defaultLimit int) int {
	if limit, ok := ExplicitLimit(userInput); ok {
		return limit
	}
	return defaultLimit
}

// TrailingTitle извлекает follow-up заголовок: последний фрагмент текста,
// завершенный восклицательными знаками, очищенный от пунктуации по краям.
// Пустая строка - заголовка нет.
func TrailingTitle(description string) string {
	matches := titlePattern.FindAllString(description, -1)
	if len(matches) == 0 {
		return ""
	}
	title := strings.TrimSpace(matches[len(matches)-1])
	title = titleTrimLeading.ReplaceAllString(title, "")
	title = titleTrimTrailing.ReplaceAllString(title, "")
	return title
}

// StripCodeFences убирает остаточные маркеры markdown-блоков,
// которые модель иногда добавляет вопреки инструкциям.
func StripCodeFences(text string) string {
	return strings.TrimSpace(codeFencePattern.ReplaceAllString(text, ""))
}
