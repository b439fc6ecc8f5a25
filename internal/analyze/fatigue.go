package analyze

import (
	"math"

	"github.com/avolkov/keyprof/internal/model"
)

// SessionFatigue compares windowed error rates within one session.
type SessionFatigue struct {
	Session         model.Session `json:"session"`
	WindowRates     []float64     `json:"window_error_rates"`
	FirstWindowRate float64       `json:"first_window_rate"`
	LastWindowRate  float64       `json:"last_window_rate"`
	ChangePercent   float64       `json:"change_percent"`
	FatigueDetected bool          `json:"fatigue_detected"`
}

// AnalyzeFatigue flags sessions whose error rate degrades from the first
// time window to the last. Sessions shorter than one window or with too
// few presses are silently excluded.
func AnalyzeFatigue(sessions []model.Session, presses []Press, windowMinutes float64) []SessionFatigue {
	if windowMinutes <= 0 {
		return nil
	}
	windowSec := windowMinutes * 60

	var out []SessionFatigue
	pi := 0
	for _, sess := range sessions {
		// Sessions are ordered and non-overlapping, so a single cursor
		// covers all of them.
		for pi < len(presses) && presses[pi].Timestamp < sess.Start {
			pi++
		}
		start := pi
		for pi < len(presses) && presses[pi].Timestamp <= sess.End {
			pi++
		}
		inSession := presses[start:pi]
		if sess.DurationSeconds() < windowSec {
			continue
		}
		if len(inSession) < minSessionPresses {
			continue
		}

		// Ceiling, so a duration that is an exact multiple of the window
		// does not open an extra window holding only the boundary press.
		windowCount := int(math.Ceil(sess.DurationSeconds() / windowSec))
		counts := make([]int, windowCount)
		deletes := make([]int, windowCount)
		for _, p := range inSession {
			idx := int((p.Timestamp - sess.Start) / windowSec)
			if idx >= windowCount {
				idx = windowCount - 1
			}
			counts[idx]++
			if p.Key == KeyDelete {
				deletes[idx]++
			}
		}

		var rates []float64
		for w := 0; w < windowCount; w++ {
			if counts[w] == 0 {
				continue
			}
			rates = append(rates, float64(deletes[w])/float64(counts[w]))
		}
		if len(rates) < 2 {
			continue
		}

		first, last := rates[0], rates[len(rates)-1]
		change := 0.0
		if first > 0 {
			change = (last - first) / first * 100
		}
		out = append(out, SessionFatigue{
			Session:         sess,
			WindowRates:     rates,
			FirstWindowRate: first,
			LastWindowRate:  last,
			ChangePercent:   change,
			FatigueDetected: change > fatigueThresholdPc,
		})
	}
	return out
}
