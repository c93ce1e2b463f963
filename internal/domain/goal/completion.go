// Package goal содержит доменную модель целей и прогресса.
package goal

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETION CALCULATOR
// ══════════════════════════════════════════════════════════════════════════════

// CompletionPercent вычисляет процент выполнения цели по последней записи
// прогресса. Чистая функция без побочных эффектов.
//
// Правила:
//   - целевое значение отсутствует или равно нулю → 0 (деления нет);
//   - нет записей прогресса → 0;
//   - иначе (value/target)*100, сверху ограничено 100.
//
// Нижней границы нет: отрицательные значения прогресса дают отрицательный
// процент, это осознанный сквозной проход.
func CompletionPercent(target *float64, latest *Entry) float64 {
	if target == nil || *target == 0 {
		return 0
	}
	if latest == nil {
		return 0
	}
	percent := (latest.Value / *target) * 100
	if percent > 100 {
		return 100
	}
	return percent
}

// CompletionPercentOf вычисляет процент выполнения для произвольного значения
// прогресса относительно целевого, с тем же ограничением сверху.
func CompletionPercentOf(target *float64, value float64) float64 {
	if target == nil || *target == 0 {
		return 0
	}
	percent := (value / *target) * 100
	if percent > 100 {
		return 100
	}
	return percent
}

// Milestones - фиксированные пороги прогресса, при первом пересечении которых
// создаётся уведомление о milestone.
var Milestones = []int{25, 50, 75}

// CrossedMilestones возвращает пороги, впервые пересечённые при переходе
// процента выполнения от prev к current.
func CrossedMilestones(prev, current float64) []int {
	var crossed []int
	for _, m := range Milestones {
		if prev < float64(m) && current >= float64(m) {
			crossed = append(crossed, m)
		}
	}
	return crossed
}
