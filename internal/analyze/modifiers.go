package analyze

import (
	"fmt"
	"sort"
)

// ModifierFailure is the signature of a dual-role key firing as its
// plain character: modifier and target typed as separate characters,
// then corrected with a delete.
type ModifierFailure struct {
	Modifier  string  `json:"modifier"`
	Target    string  `json:"target"`
	TimingMs  float64 `json:"timing_ms"`
	Corrected bool    `json:"corrected"`
}

// ModifierPairStats aggregates timings for one modifier->key pair.
type ModifierPairStats struct {
	Pair            string  `json:"pair"`
	Count           int     `json:"count"`
	MeanMs          float64 `json:"mean_ms"`
	MinMs           float64 `json:"min_ms"`
	MaxMs           float64 `json:"max_ms"`
	UnderTapTimePct float64 `json:"under_tap_time_pct"`
}

// ModifierReport is the full modifier-timing rollup.
type ModifierReport struct {
	SampleCount     int                 `json:"sample_count"`
	MeanMs          float64             `json:"mean_ms"`
	MedianMs        float64             `json:"median_ms"`
	P95Ms           float64             `json:"p95_ms"`
	MaxMs           float64             `json:"max_ms"`
	Pairs           []ModifierPairStats `json:"pairs"`
	FailureCount    int                 `json:"failure_count"`
	FailureRate     float64             `json:"failure_rate"`
	Failures        []ModifierFailure   `json:"failures"`
	Recommendations []string            `json:"recommendations"`
}

// AnalyzeModifiers evaluates press timing around the configured
// dual-role keys. For each press of a mapped key, only the first
// qualifying following key yields a sample; failure detection applies to
// shift-like roles whose target set contains that key.
func AnalyzeModifiers(presses []Press, opts Options) ModifierReport {
	var (
		allTimings  []float64
		pairTimings = make(map[string][]float64)
		failures    []ModifierFailure
	)

	for idx, p := range presses {
		role, mapped := opts.Modifiers[p.Key]
		if !mapped {
			continue
		}
		for k := idx + 1; k <= idx+modifierScanKeys && k < len(presses); k++ {
			q := presses[k]
			if q.Timestamp-p.Timestamp > modifierScanGap {
				break
			}
			if q.Key == p.Key {
				continue
			}
			if _, qMapped := opts.Modifiers[q.Key]; qMapped {
				continue
			}

			timing := (q.Timestamp - p.Timestamp) * 1000
			pair := p.Key + "->" + q.Key
			pairTimings[pair] = append(pairTimings[pair], timing)
			allTimings = append(allTimings, timing)

			if role.ShiftLike() {
				if _, isTarget := role.Targets[q.Key]; isTarget {
					if correctedSoon(presses, k+1) {
						failures = append(failures, ModifierFailure{
							Modifier:  p.Key,
							Target:    q.Key,
							TimingMs:  timing,
							Corrected: true,
						})
					}
				}
			}
			break
		}
	}

	report := ModifierReport{
		SampleCount:  len(allTimings),
		FailureCount: len(failures),
		Failures:     failures,
	}
	if len(report.Failures) > 50 {
		report.Failures = report.Failures[:50]
	}
	if len(allTimings) > 0 {
		_, maxT := minMax(allTimings)
		report.MeanMs = mean(allTimings)
		report.MedianMs = median(allTimings)
		report.P95Ms = percentile(allTimings, 0.95)
		report.MaxMs = maxT
		report.FailureRate = float64(len(failures)) / float64(len(allTimings))
	}

	report.Pairs = make([]ModifierPairStats, 0, len(pairTimings))
	for pair, timings := range pairTimings {
		minT, maxT := minMax(timings)
		under := 0
		for _, t := range timings {
			if t < opts.TapTimeMs {
				under++
			}
		}
		report.Pairs = append(report.Pairs, ModifierPairStats{
			Pair:            pair,
			Count:           len(timings),
			MeanMs:          mean(timings),
			MinMs:           minT,
			MaxMs:           maxT,
			UnderTapTimePct: float64(under) / float64(len(timings)) * 100,
		})
	}
	sort.Slice(report.Pairs, func(a, b int) bool {
		if report.Pairs[a].Count != report.Pairs[b].Count {
			return report.Pairs[a].Count > report.Pairs[b].Count
		}
		return report.Pairs[a].Pair < report.Pairs[b].Pair
	})

	report.Recommendations = modifierRecommendations(failures, opts.TapTimeMs)
	return report
}

// correctedSoon looks ahead a few presses for a delete arriving before
// another full letter key.
func correctedSoon(presses []Press, from int) bool {
	for f := from; f <= from+failureScanKeys-1 && f < len(presses); f++ {
		key := presses[f].Key
		if key == KeyDelete {
			return true
		}
		if IsLetterKey(key) {
			return false
		}
	}
	return false
}

// modifierRecommendations derives advisory text from the failure set.
// These are suggestions for the key-remapping configuration, never
// control actions.
func modifierRecommendations(failures []ModifierFailure, tapTimeMs float64) []string {
	if len(failures) == 0 {
		return nil
	}
	timings := make([]float64, len(failures))
	mods := make(map[string]int)
	for i, f := range failures {
		timings[i] = f.TimingMs
		mods[f.Modifier]++
	}
	avgFail := mean(timings)

	var recs []string
	if avgFail < tapTimeMs*0.75 {
		recs = append(recs, fmt.Sprintf(
			"Misfires average %.0fms, well below the %.0fms tap-time; a permissive-hold resolution strategy would catch most of them.",
			avgFail, tapTimeMs))
	}
	if len(mods) == 1 {
		for mod := range mods {
			recs = append(recs, fmt.Sprintf(
				"All %d misfires involve %s; a same-key bilateral restriction on that modifier would eliminate them.",
				len(failures), mod))
		}
	}
	if avgFail < tapTimeMs*0.5 {
		recs = append(recs, fmt.Sprintf(
			"Misfires average %.0fms, under half the tap-time; lowering tap-time below %.0fms is worth trying.",
			avgFail, tapTimeMs))
	}
	return recs
}
