package analyze

import (
	"sort"
	"time"

	"github.com/avolkov/keyprof/internal/model"
)

// DigraphStat is the reportable median latency for one key pair.
type DigraphStat struct {
	Digraph  string  `json:"digraph"`
	MedianMs float64 `json:"median_ms"`
	Samples  int     `json:"samples"`
}

// HoldStat summarizes hold durations for one key.
type HoldStat struct {
	Key    string  `json:"key"`
	MeanMs float64 `json:"mean_ms"`
	MaxMs  float64 `json:"max_ms"`
	Count  int     `json:"count"`
}

// IdleDistribution buckets producer-measured idle gaps before presses.
type IdleDistribution struct {
	ShortUnder100Ms    int `json:"short_under_100ms"`
	Medium100To500Ms   int `json:"medium_100_500ms"`
	Long500To2000Ms    int `json:"long_500_2000ms"`
	VeryLongOver2000Ms int `json:"very_long_over_2000ms"`
}

// PeriodStats is one time-of-day bucket.
type PeriodStats struct {
	Presses   int     `json:"presses"`
	Errors    int     `json:"errors"`
	Chars     int     `json:"chars"`
	ErrorRate float64 `json:"error_rate"`
}

// Summary is the complete analysis output, consumable as JSON. All
// timestamps are rendered as ISO-8601 strings here, at the boundary.
type Summary struct {
	TotalKeystrokes    int                    `json:"total_keystrokes"`
	TotalPressEvents   int                    `json:"total_press_events"`
	ErrorCount         int                    `json:"error_count"`
	ErrorRate          float64                `json:"error_rate"`
	SessionCount       int                    `json:"session_count"`
	FirstEvent         string                 `json:"first_event,omitempty"`
	LastEvent          string                 `json:"last_event,omitempty"`
	DurationHours      float64                `json:"duration_hours"`
	TotalChars         int                    `json:"total_chars"`
	TotalTypingMinutes float64                `json:"total_typing_minutes"`
	AverageWPM         float64                `json:"average_wpm"`
	TopKeys            []KeyCount             `json:"top_keys"`
	SlowDigraphs       []DigraphStat          `json:"slow_digraphs"`
	FastDigraphs       []DigraphStat          `json:"fast_digraphs"`
	ErrorContexts      []KeyCount             `json:"error_contexts"`
	HoldDurationStats  []HoldStat             `json:"hold_duration_stats"`
	LongHoldCount      int                    `json:"long_hold_count"`
	IdleDistribution   IdleDistribution       `json:"idle_time_distribution"`
	TimeOfDay          map[string]PeriodStats `json:"time_of_day"`
	TypoPatterns       []TypoPattern          `json:"typo_patterns"`
	Modifiers          ModifierReport         `json:"modifier_analysis"`
	RootCauses         RootCauseReport        `json:"root_cause_analysis"`
	Fatigue            []SessionFatigue       `json:"fatigue_analysis"`
	Sessions           []model.Session        `json:"sessions"`
}

// Summarize shapes a Result for presentation: percentiles, top-N
// rankings, and time-of-day breakdowns. It performs no new passes over
// the raw event sequence beyond the bounded sub-analyzers.
func Summarize(res *Result, opts Options) Summary {
	s := Summary{
		TotalKeystrokes:  res.TotalKeystrokes,
		TotalPressEvents: res.TotalPressEvents,
		ErrorCount:       res.ErrorCount,
		SessionCount:     len(res.Sessions),
		LongHoldCount:    len(res.LongHolds),
		Sessions:         res.Sessions,
	}
	if res.TotalPressEvents > 0 {
		s.ErrorRate = float64(res.ErrorCount) / float64(res.TotalPressEvents)
	}
	if res.FirstEvent != 0 && res.LastEvent != 0 {
		s.FirstEvent = FormatTimestamp(res.FirstEvent)
		s.LastEvent = FormatTimestamp(res.LastEvent)
		s.DurationHours = (res.LastEvent - res.FirstEvent) / 3600
	}

	s.TopKeys = topKeyCounts(res.KeyFrequency, 20)
	s.SlowDigraphs, s.FastDigraphs = digraphRankings(res.DigraphTimes)
	s.ErrorContexts = topKeyCounts(res.ErrorContexts, 10)
	s.HoldDurationStats = holdRankings(res.HoldDurations)
	s.IdleDistribution = idleDistribution(res.IdleTimes)
	s.TimeOfDay = timeOfDay(res.Presses)

	for _, sess := range res.Sessions {
		s.TotalChars += sess.Chars
		s.TotalTypingMinutes += sess.DurationSeconds() / 60
	}
	if s.TotalTypingMinutes > 0 {
		s.AverageWPM = (float64(s.TotalChars) / 5) / s.TotalTypingMinutes
	}

	s.TypoPatterns = DetectTypoPatterns(res.Presses)
	s.Modifiers = AnalyzeModifiers(res.Presses, opts)
	s.RootCauses = AnalyzeRootCauses(res.Presses)
	s.Fatigue = AnalyzeFatigue(res.Sessions, res.Presses, opts.FatigueWindowMinutes)
	return s
}

// FormatTimestamp renders an epoch-seconds timestamp as ISO-8601.
func FormatTimestamp(ts float64) string {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).Format(time.RFC3339)
}

func digraphRankings(times map[string][]float64) (slow, fast []DigraphStat) {
	stats := make([]DigraphStat, 0, len(times))
	for digraph, samples := range times {
		if len(samples) < minDigraphSamples {
			continue
		}
		stats = append(stats, DigraphStat{
			Digraph:  digraph,
			MedianMs: median(samples),
			Samples:  len(samples),
		})
	}
	sort.Slice(stats, func(a, b int) bool {
		if stats[a].MedianMs != stats[b].MedianMs {
			return stats[a].MedianMs > stats[b].MedianMs
		}
		return stats[a].Digraph < stats[b].Digraph
	})
	slow = append([]DigraphStat(nil), stats...)
	if len(slow) > 20 {
		slow = slow[:20]
	}
	sort.Slice(stats, func(a, b int) bool {
		if stats[a].MedianMs != stats[b].MedianMs {
			return stats[a].MedianMs < stats[b].MedianMs
		}
		return stats[a].Digraph < stats[b].Digraph
	})
	fast = stats
	if len(fast) > 20 {
		fast = fast[:20]
	}
	return slow, fast
}

func holdRankings(holds map[string][]float64) []HoldStat {
	stats := make([]HoldStat, 0, len(holds))
	for key, samples := range holds {
		if len(samples) < minHoldSamples {
			continue
		}
		_, maxD := minMax(samples)
		stats = append(stats, HoldStat{
			Key:    key,
			MeanMs: mean(samples),
			MaxMs:  maxD,
			Count:  len(samples),
		})
	}
	sort.Slice(stats, func(a, b int) bool {
		if stats[a].MaxMs != stats[b].MaxMs {
			return stats[a].MaxMs > stats[b].MaxMs
		}
		return stats[a].Key < stats[b].Key
	})
	if len(stats) > 15 {
		stats = stats[:15]
	}
	return stats
}

func idleDistribution(idleMs []float64) IdleDistribution {
	var dist IdleDistribution
	for _, ms := range idleMs {
		switch {
		case ms < 100:
			dist.ShortUnder100Ms++
		case ms < 500:
			dist.Medium100To500Ms++
		case ms < 2000:
			dist.Long500To2000Ms++
		default:
			dist.VeryLongOver2000Ms++
		}
	}
	return dist
}

// Time-of-day bucket boundaries, local time.
func periodForHour(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 18:
		return "afternoon"
	case hour >= 18:
		return "evening"
	default:
		return "night"
	}
}

func timeOfDay(presses []Press) map[string]PeriodStats {
	buckets := make(map[string]PeriodStats)
	for _, p := range presses {
		hour := time.Unix(int64(p.Timestamp), 0).Hour()
		period := periodForHour(hour)
		stats := buckets[period]
		stats.Presses++
		if p.Key == KeyDelete {
			stats.Errors++
		}
		if IsPrintableKey(p.Key) {
			stats.Chars++
		}
		buckets[period] = stats
	}
	for period, stats := range buckets {
		if stats.Presses > 0 {
			stats.ErrorRate = float64(stats.Errors) / float64(stats.Presses)
		}
		buckets[period] = stats
	}
	return buckets
}
