package analyze

import (
	"github.com/avolkov/keyprof/internal/model"
)

// Press is one element of the filtered press subsequence that the
// sub-analyzers scan.
type Press struct {
	Key       string
	Timestamp float64
}

// LongHold records a release held past the configured threshold.
type LongHold struct {
	Key        string  `json:"key"`
	DurationMs float64 `json:"duration_ms"`
	Timestamp  float64 `json:"timestamp"`
}

// Result holds the raw accumulators from one pass over the event
// sequence. Summarize shapes it for presentation.
type Result struct {
	TotalKeystrokes  int
	TotalPressEvents int
	KeyFrequency     map[string]int
	DigraphTimes     map[string][]float64
	ErrorCount       int
	ErrorContexts    map[string]int
	Sessions         []model.Session
	FirstEvent       float64
	LastEvent        float64
	HoldDurations    map[string][]float64
	LongHolds        []LongHold
	IdleTimes        []float64
	Presses          []Press
}

func newResult() *Result {
	return &Result{
		KeyFrequency:  make(map[string]int),
		DigraphTimes:  make(map[string][]float64),
		ErrorContexts: make(map[string]int),
		HoldDurations: make(map[string][]float64),
	}
}

// Run analyzes an ordered event sequence in a single pass. The shared
// previous-press context drives session segmentation, digraph timing,
// and error contexts together; a session boundary resets it, so neither
// digraphs nor error contexts cross sessions.
func Run(events []model.Event, opts Options) *Result {
	res := newResult()
	if len(events) == 0 {
		return res
	}
	res.FirstEvent = events[0].Timestamp
	res.LastEvent = events[len(events)-1].Timestamp

	var (
		prevKey     string
		prevTime    float64
		havePrev    bool
		sessionOpen bool
		sessStart   float64
		sessKeys    int
		sessChars   int
	)

	for _, ev := range events {
		res.TotalKeystrokes++

		switch ev.Kind {
		case model.KindRelease:
			if ev.HoldDurationMs != nil {
				d := *ev.HoldDurationMs
				res.HoldDurations[ev.Key] = append(res.HoldDurations[ev.Key], d)
				if d >= opts.LongHoldThresholdMs {
					res.LongHolds = append(res.LongHolds, LongHold{
						Key:        ev.Key,
						DurationMs: d,
						Timestamp:  ev.Timestamp,
					})
				}
			}
			continue
		case model.KindPress:
		default:
			continue
		}

		res.TotalPressEvents++
		key, ts := ev.Key, ev.Timestamp
		res.KeyFrequency[key]++
		res.Presses = append(res.Presses, Press{Key: key, Timestamp: ts})
		if ev.IdleBeforeMs != nil {
			res.IdleTimes = append(res.IdleTimes, *ev.IdleBeforeMs)
		}

		if !sessionOpen {
			sessStart = ts
			sessionOpen = true
		}
		if havePrev && ts-prevTime > opts.SessionGap {
			res.Sessions = append(res.Sessions, model.Session{
				Start:      sessStart,
				End:        prevTime,
				Keystrokes: sessKeys,
				Chars:      sessChars,
			})
			sessStart = ts
			sessKeys = 0
			sessChars = 0
			prevKey = ""
			havePrev = false
		}

		sessKeys++
		if IsPrintableKey(key) {
			sessChars++
		}

		if key == KeyDelete {
			res.ErrorCount++
			if prevKey != "" {
				res.ErrorContexts[prevKey]++
			}
		}

		if havePrev {
			delta := ts - prevTime
			if delta > 0 && delta < digraphPauseCutoff {
				digraph := prevKey + "->" + key
				res.DigraphTimes[digraph] = append(res.DigraphTimes[digraph], delta*1000)
			}
		}

		prevKey = key
		prevTime = ts
		havePrev = true
	}

	if sessionOpen && havePrev {
		res.Sessions = append(res.Sessions, model.Session{
			Start:      sessStart,
			End:        prevTime,
			Keystrokes: sessKeys,
			Chars:      sessChars,
		})
	}

	return res
}
