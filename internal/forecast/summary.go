package forecast

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kjstillabower/trip-planner-service/internal/models"
)

const dateLayout = "2006-01-02"

// filterSamples keeps samples whose timestamp falls within [start, end+1d).
// The extra day pads for timezone skew and last-day coverage. A nil bound on
// either side disables filtering entirely.
func filterSamples(samples []models.ForecastSample, start, end *time.Time) []models.ForecastSample {
	if start == nil || end == nil {
		return samples
	}
	upper := end.Add(24 * time.Hour)
	filtered := make([]models.ForecastSample, 0, len(samples))
	for _, s := range samples {
		if !s.Timestamp.Before(*start) && s.Timestamp.Before(upper) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// buildDailySummaries groups samples by calendar date and computes one summary
// per day. Days are returned in ascending date order regardless of sample order.
func buildDailySummaries(samples []models.ForecastSample) []models.DailySummary {
	type dayAccum struct {
		temps     []float64
		humidity  []int
		winds     []float64
		condOrder []string
		condCount map[string]int
	}

	days := make(map[string]*dayAccum)
	for _, s := range samples {
		date := s.Timestamp.Format(dateLayout)
		acc, ok := days[date]
		if !ok {
			acc = &dayAccum{condCount: make(map[string]int)}
			days[date] = acc
		}
		acc.temps = append(acc.temps, s.Temperature)
		acc.humidity = append(acc.humidity, s.Humidity)
		acc.winds = append(acc.winds, s.WindSpeed)
		if _, seen := acc.condCount[s.Condition]; !seen {
			acc.condOrder = append(acc.condOrder, s.Condition)
		}
		acc.condCount[s.Condition]++
	}

	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	summaries := make([]models.DailySummary, 0, len(dates))
	for _, date := range dates {
		acc := days[date]
		summaries = append(summaries, models.DailySummary{
			Date:        date,
			AvgTemp:     mean(acc.temps),
			MinTemp:     minOf(acc.temps),
			MaxTemp:     maxOf(acc.temps),
			Condition:   dominantCondition(acc.condOrder, acc.condCount),
			AvgHumidity: meanInt(acc.humidity),
			AvgWind:     mean(acc.winds),
		})
	}
	return summaries
}

// dominantCondition returns the most frequent condition. Ties break toward the
// condition first encountered among those sharing the max count.
func dominantCondition(order []string, counts map[string]int) string {
	best := ""
	bestCount := 0
	for _, cond := range order {
		if counts[cond] > bestCount {
			best = cond
			bestCount = counts[cond]
		}
	}
	return best
}

// renderReport produces the per-city text report: a header line naming the
// city, then one line per day.
func renderReport(city string, days []models.DailySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Weather forecast for %s:\n", city)
	for _, d := range days {
		fmt.Fprintf(&b, "- %s: %.1f°C (min: %.1f°C, max: %.1f°C), %s, humidity: %.0f%%, wind: %.1f m/s\n",
			d.Date, d.AvgTemp, d.MinTemp, d.MaxTemp, d.Condition, d.AvgHumidity, d.AvgWind)
	}
	return b.String()
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func meanInt(vals []int) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return float64(sum) / float64(len(vals))
}

func minOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
