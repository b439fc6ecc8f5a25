package analyze

import "testing"

func TestAnalyzeRootCausesIgnoresSingleDeletes(t *testing.T) {
	presses := pressSeq("KEY_A", "KEY_BACKSPACE", "KEY_B", "KEY_BACKSPACE", "KEY_C")
	report := AnalyzeRootCauses(presses)
	if report.ChainCount != 0 {
		t.Fatalf("single deletes are not chains, got %d", report.ChainCount)
	}
}

func TestAnalyzeRootCausesChainStats(t *testing.T) {
	presses := pressSeq(
		"KEY_H", "KEY_I",
		"KEY_BACKSPACE", "KEY_BACKSPACE", "KEY_BACKSPACE",
		"KEY_Y", "KEY_O",
	)
	report := AnalyzeRootCauses(presses)
	if report.ChainCount != 1 {
		t.Fatalf("expected 1 chain, got %d", report.ChainCount)
	}
	if len(report.ChainLengths) != 1 || report.ChainLengths[0].Length != 3 || report.ChainLengths[0].Count != 1 {
		t.Fatalf("unexpected chain lengths: %v", report.ChainLengths)
	}
	if len(report.ImmediateBefore) != 1 || report.ImmediateBefore[0].Key != "KEY_I" {
		t.Fatalf("unexpected immediate-before keys: %v", report.ImmediateBefore)
	}
	if len(report.PrecedingPairs) != 1 || report.PrecedingPairs[0].First != "KEY_H" || report.PrecedingPairs[0].Second != "KEY_I" {
		t.Fatalf("unexpected preceding pairs: %v", report.PrecedingPairs)
	}
	if len(report.RetypedAfter) != 1 || report.RetypedAfter[0].Key != "KEY_Y" {
		t.Fatalf("unexpected retyped-after keys: %v", report.RetypedAfter)
	}
}

func TestAnalyzeRootCausesHomerowMisfire(t *testing.T) {
	presses := pressSeq(
		"KEY_A", "KEY_SPACE",
		"KEY_BACKSPACE", "KEY_BACKSPACE",
		"KEY_B",
	)
	report := AnalyzeRootCauses(presses)
	if len(report.Causes) != 1 || report.Causes[0].Cause != CauseHomerowModMisfire {
		t.Fatalf("expected homerow misfire cause, got %v", report.Causes)
	}
}

func TestAnalyzeRootCausesCapslockEscape(t *testing.T) {
	presses := pressSeq(
		"KEY_A", "KEY_CAPSLOCK",
		"KEY_BACKSPACE", "KEY_BACKSPACE",
	)
	report := AnalyzeRootCauses(presses)
	if len(report.Causes) != 1 || report.Causes[0].Cause != CauseCapslockEscape {
		t.Fatalf("expected capslock escape cause, got %v", report.Causes)
	}
}

func TestAnalyzeRootCausesMisfirePrecedesWordDeletion(t *testing.T) {
	// A letter followed by space matches both the misfire and the
	// word-deletion signatures; the misfire classification wins.
	presses := pressSeq(
		"KEY_X", "KEY_SPACE",
		"KEY_BACKSPACE", "KEY_BACKSPACE",
	)
	report := AnalyzeRootCauses(presses)
	for _, c := range report.Causes {
		if c.Cause == CauseWordDeletion {
			t.Fatalf("word deletion should lose precedence: %v", report.Causes)
		}
	}
}

func TestAnalyzeRootCausesShiftPairMisfire(t *testing.T) {
	presses := pressSeq(
		"KEY_U", "KEY_LEFTSHIFT",
		"KEY_BACKSPACE", "KEY_BACKSPACE",
	)
	report := AnalyzeRootCauses(presses)
	if len(report.Causes) != 1 || report.Causes[0].Cause != CauseHomerowModMisfire {
		t.Fatalf("expected misfire cause for letter+shift pair, got %v", report.Causes)
	}
}
