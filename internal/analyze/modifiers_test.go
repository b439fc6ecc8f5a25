package analyze

import (
	"strings"
	"testing"

	"github.com/avolkov/keyprof/internal/model"
)

func TestAnalyzeModifiersTiming(t *testing.T) {
	presses := []Press{
		{Key: "KEY_F", Timestamp: 0},
		{Key: "KEY_G", Timestamp: 0.15},
	}
	report := AnalyzeModifiers(presses, DefaultOptions())
	if report.SampleCount != 1 {
		t.Fatalf("expected 1 sample, got %d", report.SampleCount)
	}
	if report.MeanMs < 149 || report.MeanMs > 151 {
		t.Fatalf("expected ~150ms mean, got %.2f", report.MeanMs)
	}
	if len(report.Pairs) != 1 || report.Pairs[0].Pair != "KEY_F->KEY_G" {
		t.Fatalf("unexpected pairs: %v", report.Pairs)
	}
	if report.Pairs[0].UnderTapTimePct != 100 {
		t.Fatalf("150ms sample should be under the 200ms tap-time: %+v", report.Pairs[0])
	}
}

func TestAnalyzeModifiersSkipsMappedAndSameKeys(t *testing.T) {
	presses := []Press{
		{Key: "KEY_F", Timestamp: 0},
		{Key: "KEY_F", Timestamp: 0.05},
		{Key: "KEY_J", Timestamp: 0.1},
		{Key: "KEY_G", Timestamp: 0.2},
	}
	opts := DefaultOptions()
	report := AnalyzeModifiers(presses, opts)
	for _, p := range report.Pairs {
		if p.Pair == "KEY_F->KEY_F" || p.Pair == "KEY_F->KEY_J" {
			t.Fatalf("sampled a skipped key: %v", p.Pair)
		}
	}
	found := false
	for _, p := range report.Pairs {
		if p.Pair == "KEY_F->KEY_G" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected KEY_F->KEY_G sample, got %v", report.Pairs)
	}
}

func TestAnalyzeModifiersGapStopsScan(t *testing.T) {
	presses := []Press{
		{Key: "KEY_F", Timestamp: 0},
		{Key: "KEY_G", Timestamp: 0.8},
	}
	report := AnalyzeModifiers(presses, DefaultOptions())
	if report.SampleCount != 0 {
		t.Fatalf("expected no samples past the scan gap, got %d", report.SampleCount)
	}
}

func TestAnalyzeModifiersFailureDetection(t *testing.T) {
	opts := DefaultOptions()
	opts.Modifiers = map[string]model.ModifierRole{
		"KEY_D": {Role: "shift", Targets: map[string]struct{}{"KEY_U": {}}},
	}
	presses := []Press{
		{Key: "KEY_D", Timestamp: 0},
		{Key: "KEY_U", Timestamp: 0.08},
		{Key: "KEY_BACKSPACE", Timestamp: 0.3},
	}
	report := AnalyzeModifiers(presses, opts)
	if report.FailureCount != 1 {
		t.Fatalf("expected 1 failure, got %d", report.FailureCount)
	}
	f := report.Failures[0]
	if f.Modifier != "KEY_D" || f.Target != "KEY_U" || !f.Corrected {
		t.Fatalf("unexpected failure: %+v", f)
	}
	if f.TimingMs < 79 || f.TimingMs > 81 {
		t.Fatalf("expected ~80ms failure timing, got %.2f", f.TimingMs)
	}
}

func TestAnalyzeModifiersNoFailureWhenLetterIntervenes(t *testing.T) {
	opts := DefaultOptions()
	opts.Modifiers = map[string]model.ModifierRole{
		"KEY_D": {Role: "shift", Targets: map[string]struct{}{"KEY_U": {}}},
	}
	presses := []Press{
		{Key: "KEY_D", Timestamp: 0},
		{Key: "KEY_U", Timestamp: 0.08},
		{Key: "KEY_E", Timestamp: 0.2},
		{Key: "KEY_BACKSPACE", Timestamp: 0.3},
	}
	report := AnalyzeModifiers(presses, opts)
	if report.FailureCount != 0 {
		t.Fatalf("letter before the delete should cancel the failure, got %d", report.FailureCount)
	}
}

func TestModifierRecommendations(t *testing.T) {
	failures := []ModifierFailure{
		{Modifier: "KEY_D", Target: "KEY_U", TimingMs: 80, Corrected: true},
		{Modifier: "KEY_D", Target: "KEY_I", TimingMs: 90, Corrected: true},
	}
	recs := modifierRecommendations(failures, 200)
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d: %v", len(recs), recs)
	}
	joined := strings.Join(recs, "\n")
	if !strings.Contains(joined, "permissive-hold") {
		t.Fatalf("expected permissive-hold advice: %v", recs)
	}
	if !strings.Contains(joined, "bilateral") {
		t.Fatalf("expected bilateral restriction advice: %v", recs)
	}
	if !strings.Contains(joined, "tap-time") {
		t.Fatalf("expected tap-time advice: %v", recs)
	}
}

func TestModifierRecommendationsEmptyWithoutFailures(t *testing.T) {
	if recs := modifierRecommendations(nil, 200); recs != nil {
		t.Fatalf("expected no recommendations, got %v", recs)
	}
}
