// Package goal содержит доменную модель целей и прогресса.
package goal

import (
	"math"
	"time"

	"github.com/fitsphere/fitsphere-api/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// TREND PREDICTOR
// ══════════════════════════════════════════════════════════════════════════════

// Качественные метки тренда. Пороговое значение силы корреляции 0.7 фиксировано.
const (
	TrendStrongPositive   = "Strong positive growth"
	TrendModeratePositive = "Moderate positive growth"
	TrendStrongNegative   = "Strong negative growth"
	TrendModerateNegative = "Moderate negative growth"
	TrendNoChange         = "No significant change"
	TrendInsufficientData = "Insufficient data for prediction"
)

// Prediction - результат прогноза завершения цели.
// Нулевые предиктивные поля (все указатели nil) с меткой
// TrendInsufficientData - это штатный ответ, а не ошибка.
type Prediction struct {
	GoalID                  string     `json:"goal_id"`
	PredictedCompletionDate *time.Time `json:"predicted_completion_date"`
	PredictedFinalValue     *float64   `json:"predicted_final_value"`
	WillMeetDeadline        *bool      `json:"will_meet_deadline"`
	DaysAheadBehind         *int       `json:"days_ahead_behind"`
	Trend                   string     `json:"trend"`
}

// regression - результат аппроксимации методом наименьших квадратов.
type regression struct {
	slope     float64
	intercept float64
	r         float64 // коэффициент корреляции Пирсона
}

// linearRegression выполняет МНК-аппроксимацию по парам (x, y).
// Предусловие: len(xs) == len(ys) >= 2.
// Если все x совпадают (вертикальная линия), наклон считается нулевым.
func linearRegression(xs, ys []float64) regression {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX, sumYY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
		sumYY += ys[i] * ys[i]
	}

	denomX := n*sumXX - sumX*sumX
	if denomX == 0 {
		return regression{slope: 0, intercept: sumY / n, r: 0}
	}

	slope := (n*sumXY - sumX*sumY) / denomX
	intercept := (sumY - slope*sumX) / n

	denomY := n*sumYY - sumY*sumY
	r := 0.0
	if denomY > 0 {
		r = (n*sumXY - sumX*sumY) / math.Sqrt(denomX*denomY)
	}
	return regression{slope: slope, intercept: intercept, r: r}
}

// trendLabel переводит наклон и силу корреляции в качественную метку.
func trendLabel(reg regression) string {
	switch {
	case reg.slope > 0:
		if reg.r > 0.7 {
			return TrendStrongPositive
		}
		return TrendModeratePositive
	case reg.slope < 0:
		if reg.r < -0.7 {
			return TrendStrongNegative
		}
		return TrendModerateNegative
	default:
		return TrendNoChange
	}
}

// Predict строит прогноз завершения цели по истории прогресса.
// Чистая функция: пересчитывается на каждый запрос, без кеширования.
//
// Семантика:
//   - меньше 2 записей → деградированный результат с TrendInsufficientData;
//   - есть целевое значение и наклон > 0 → прогнозная дата завершения
//     start + (target-intercept)/slope дней; при наличии дедлайна — флаг
//     will_meet_deadline и знаковая разница в днях;
//   - нулевой наклон при наличии целевого значения → прогноз недоступен
//     (nil дата), без ошибки;
//   - дедлайн без целевого значения → прогноз итогового значения на дедлайн.
func Predict(g *Goal, entries []*Entry) Prediction {
	p := Prediction{GoalID: g.ID}

	if len(entries) < 2 {
		p.Trend = TrendInsufficientData
		return p
	}

	sorted := make([]*Entry, len(entries))
	copy(sorted, entries)
	SortEntriesByDate(sorted)

	xs := make([]float64, len(sorted))
	ys := make([]float64, len(sorted))
	for i, e := range sorted {
		xs[i] = timeutil.ElapsedDays(g.StartDate, e.Date)
		ys[i] = e.Value
	}

	reg := linearRegression(xs, ys)
	p.Trend = trendLabel(reg)

	switch {
	case g.TargetValue != nil && reg.slope > 0:
		daysNeeded := (*g.TargetValue - reg.intercept) / reg.slope
		predicted := timeutil.AddDays(g.StartDate, daysNeeded)
		p.PredictedCompletionDate = &predicted

		if g.Deadline != nil {
			meets := !predicted.After(*g.Deadline)
			p.WillMeetDeadline = &meets
			delta := timeutil.DaysUntil(predicted, *g.Deadline)
			p.DaysAheadBehind = &delta
		}

	case g.TargetValue == nil && g.Deadline != nil:
		days := timeutil.ElapsedDays(g.StartDate, *g.Deadline)
		final := math.Round((reg.intercept+reg.slope*days)*100) / 100
		p.PredictedFinalValue = &final
	}

	return p
}
