package resultsui

import (
	"strings"
	"testing"

	"github.com/avolkov/keyprof/internal/analyze"
)

func sampleDigraphSummary() analyze.Summary {
	return analyze.Summary{
		SlowDigraphs: []analyze.DigraphStat{{Digraph: "KEY_A->KEY_B", MedianMs: 300, Samples: 6}},
		FastDigraphs: []analyze.DigraphStat{{Digraph: "KEY_C->KEY_D", MedianMs: 50, Samples: 8}},
	}
}

func TestFitLines(t *testing.T) {
	out := fitLines("a\nb", 4, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if len(line) != 4 {
			t.Fatalf("line %d not padded to width: %q", i, line)
		}
	}
	if out := fitLines("a\nb\nc\nd", 1, 2); strings.Count(out, "\n") != 1 {
		t.Fatalf("expected truncation to 2 lines, got %q", out)
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("abcdef", 5); got != "ab..." {
		t.Fatalf("got %q", got)
	}
	if got := truncateLine("abc", 5); got != "abc" {
		t.Fatalf("got %q", got)
	}
	if got := truncateLine("abcdef", 2); got != "ab" {
		t.Fatalf("got %q", got)
	}
}

func TestMetricCard(t *testing.T) {
	card := metricCard("Avg WPM", "42.5")
	if !strings.Contains(card, "Avg WPM") || !strings.Contains(card, "42.5") {
		t.Fatalf("card should contain label and value: %q", card)
	}
}

func TestRenderOverviewCards(t *testing.T) {
	s := analyze.Summary{
		TotalPressEvents:   500,
		SessionCount:       2,
		AverageWPM:         40,
		ErrorRate:          0.05,
		TotalTypingMinutes: 12,
	}
	out := renderOverview(s, 100)
	for _, want := range []string{"Keystrokes", "Sessions", "Avg WPM", "Error rate", "Typing time"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q card in overview:\n%s", want, out)
		}
	}
	if out := renderOverview(analyze.Summary{}, 100); !strings.Contains(out, "No keystroke data") {
		t.Fatalf("expected empty-state message, got %q", out)
	}
}

func TestBuildDigraphRows(t *testing.T) {
	s := sampleDigraphSummary()
	rows := buildDigraphRows(s)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][1] != "slow" || rows[1][1] != "fast" {
		t.Fatalf("unexpected class ordering: %v", rows)
	}
}
