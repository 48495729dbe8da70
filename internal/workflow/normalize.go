package workflow

import "strings"

// Наследие старой CRM: свободный текст вместо кодов статусов.
// Эти значения считаются завершением этапа в любой группе.
var legacyDoneSynonyms = map[string]struct{}{
	"done":      {},
	"completed": {},
	"виконано":  {},
	"завершено": {},
	"готово":    {},
}

// Normalize приводит статус к канонической форме перед проверками
// на принадлежность множествам.
func Normalize(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// IsCompletedForStage - истина, когда нормализованный статус входит в
// завершающий набор группы этапа либо является легаси-синонимом "виконано".
func IsCompletedForStage(stageKey, status string) bool {
	normalized := Normalize(status)
	if _, ok := legacyDoneSynonyms[normalized]; ok {
		return true
	}
	completionSet := groupCompletionSets[StageGroupOf(stageKey)]
	_, ok := completionSet[normalized]
	return ok
}

// ResolveStatusMeta возвращает метаданные статуса для пары (этап, статус).
// Неизвестные значения не теряются: синтезируется вариант с исходным
// текстом и нейтральным цветом.
func ResolveStatusMeta(stageKey, status string) StatusOption {
	normalized := Normalize(status)
	for _, opt := range groupStatuses[StageGroupOf(stageKey)] {
		if opt.Value == normalized {
			return opt
		}
	}
	return StatusOption{Value: status, Label: status, Color: fallbackColor}
}

// StatusOptionsForStage - упорядоченный список выбираемых статусов этапа.
// Если текущий статус записи не входит в словарь группы, он добавляется
// первым, чтобы интерфейс не терял неизвестные данные молча.
func StatusOptionsForStage(stageKey, currentStatus string) []StatusOption {
	options := StatusOptions(StageGroupOf(stageKey))

	current := Normalize(currentStatus)
	if current == "" {
		return options
	}
	for _, opt := range options {
		if opt.Value == current {
			return options
		}
	}

	synthesized := StatusOption{Value: currentStatus, Label: currentStatus, Color: fallbackColor}
	return append([]StatusOption{synthesized}, options...)
}
