package analyze

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/avolkov/keyprof/internal/model"
)

func TestSummarizeAverageWPM(t *testing.T) {
	// 50 printable presses over 10 seconds: (50/5) words in 1/6 minute.
	events := make([]model.Event, 50)
	for i := range events {
		events[i] = press(float64(i)*10.0/49.0, "KEY_A")
	}
	opts := DefaultOptions()
	s := Summarize(Run(events, opts), opts)
	if s.SessionCount != 1 {
		t.Fatalf("expected 1 session, got %d", s.SessionCount)
	}
	if math.Abs(s.AverageWPM-60) > 0.5 {
		t.Fatalf("expected ~60 WPM, got %.2f", s.AverageWPM)
	}
	if s.TotalChars != 50 {
		t.Fatalf("expected 50 chars, got %d", s.TotalChars)
	}
}

func TestSummarizeErrorRate(t *testing.T) {
	events := []model.Event{
		press(0, "KEY_A"),
		press(1, "KEY_B"),
		press(2, "KEY_BACKSPACE"),
		press(3, "KEY_C"),
	}
	opts := DefaultOptions()
	s := Summarize(Run(events, opts), opts)
	if s.ErrorCount != 1 {
		t.Fatalf("expected 1 error, got %d", s.ErrorCount)
	}
	if math.Abs(s.ErrorRate-0.25) > 1e-9 {
		t.Fatalf("expected 0.25 error rate, got %f", s.ErrorRate)
	}
}

func TestSummarizeDigraphRankings(t *testing.T) {
	var events []model.Event
	ts := 0.0
	addDigraphs := func(first, second string, latency float64, n int) {
		for i := 0; i < n; i++ {
			events = append(events, press(ts, first), press(ts+latency, second))
			ts += 10
		}
	}
	addDigraphs("KEY_A", "KEY_B", 0.3, 5)
	addDigraphs("KEY_C", "KEY_D", 0.05, 5)
	addDigraphs("KEY_E", "KEY_F", 0.1, 3) // below the sample floor

	opts := DefaultOptions()
	s := Summarize(Run(events, opts), opts)
	if len(s.SlowDigraphs) == 0 || s.SlowDigraphs[0].Digraph != "KEY_A->KEY_B" {
		t.Fatalf("unexpected slow digraphs: %v", s.SlowDigraphs)
	}
	if len(s.FastDigraphs) == 0 || s.FastDigraphs[0].Digraph != "KEY_C->KEY_D" {
		t.Fatalf("unexpected fast digraphs: %v", s.FastDigraphs)
	}
	for _, ds := range s.SlowDigraphs {
		if ds.Digraph == "KEY_E->KEY_F" {
			t.Fatalf("digraph below sample floor was ranked: %v", s.SlowDigraphs)
		}
	}
}

func TestSummarizeIdleDistribution(t *testing.T) {
	idles := []float64{50, 200, 1000, 3000}
	events := []model.Event{press(0, "KEY_A")}
	for i := range idles {
		events = append(events, model.Event{
			Timestamp:    float64(i + 1),
			Key:          "KEY_B",
			Kind:         model.KindPress,
			IdleBeforeMs: &idles[i],
		})
	}
	opts := DefaultOptions()
	s := Summarize(Run(events, opts), opts)
	d := s.IdleDistribution
	if d.ShortUnder100Ms != 1 || d.Medium100To500Ms != 1 || d.Long500To2000Ms != 1 || d.VeryLongOver2000Ms != 1 {
		t.Fatalf("unexpected idle distribution: %+v", d)
	}
}

func TestSummarizeTimeOfDay(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	at := func(hour int) float64 {
		return float64(day.Add(time.Duration(hour) * time.Hour).Unix())
	}
	events := []model.Event{
		press(at(2), "KEY_BACKSPACE"),
		press(at(7), "KEY_A"),
		press(at(13), "KEY_B"),
		press(at(19), "KEY_C"),
	}
	opts := DefaultOptions()
	s := Summarize(Run(events, opts), opts)
	for _, period := range []string{"morning", "afternoon", "evening", "night"} {
		stats, ok := s.TimeOfDay[period]
		if !ok || stats.Presses != 1 {
			t.Fatalf("expected one press in %s, got %+v", period, s.TimeOfDay)
		}
	}
	if s.TimeOfDay["night"].Errors != 1 {
		t.Fatalf("expected the night press to be an error: %+v", s.TimeOfDay["night"])
	}
}

func TestSummarizeHoldRankings(t *testing.T) {
	var events []model.Event
	for i := 0; i < 3; i++ {
		events = append(events,
			press(float64(i), "KEY_A"),
			release(float64(i)+0.3, "KEY_A", 300),
		)
	}
	events = append(events, press(10, "KEY_B"), release(10.1, "KEY_B", 100))
	opts := DefaultOptions()
	s := Summarize(Run(events, opts), opts)
	if len(s.HoldDurationStats) != 1 || s.HoldDurationStats[0].Key != "KEY_A" {
		t.Fatalf("expected only KEY_A past the sample floor: %v", s.HoldDurationStats)
	}
	if s.LongHoldCount != 3 {
		t.Fatalf("expected 3 long holds, got %d", s.LongHoldCount)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	idle := 150.0
	events := []model.Event{
		press(0, "KEY_T"), press(0.1, "KEY_E"), press(0.2, "KEY_H"),
		press(0.3, "KEY_BACKSPACE"), press(0.4, "KEY_BACKSPACE"),
		press(0.5, "KEY_H"), press(0.6, "KEY_E"),
		release(0.7, "KEY_E", 250),
		{Timestamp: 0.9, Key: "KEY_D", Kind: model.KindPress, IdleBeforeMs: &idle},
		press(1.0, "KEY_U"),
		press(100, "KEY_A"), press(100.5, "KEY_SPACE"),
	}
	opts := DefaultOptions()

	first, err := json.Marshal(Summarize(Run(events, opts), opts))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	second, err := json.Marshal(Summarize(Run(events, opts), opts))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("summaries differ across identical runs:\n%s\n%s", first, second)
	}
}

func TestMathHelpers(t *testing.T) {
	if got := median([]float64{3, 1, 2}); got != 2 {
		t.Fatalf("median odd: got %f", got)
	}
	if got := median([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Fatalf("median even: got %f", got)
	}
	if got := mean([]float64{1, 2, 3}); got != 2 {
		t.Fatalf("mean: got %f", got)
	}
	lo, hi := minMax([]float64{5, 1, 9})
	if lo != 1 || hi != 9 {
		t.Fatalf("minMax: got %f %f", lo, hi)
	}
	if got := percentile([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.95); got != 10 {
		t.Fatalf("p95 of 10 values: got %f", got)
	}
}
