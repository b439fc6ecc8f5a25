package analyze

import (
	"testing"

	"github.com/avolkov/keyprof/internal/model"
)

// fatigueSession builds a 20-minute session whose two 10-minute windows
// carry the given delete counts, 100 presses per window.
func fatigueSession(deletesFirst, deletesLast int) ([]model.Session, []Press) {
	var presses []Press
	emit := func(offset float64, deletes int) {
		for i := 0; i < 100; i++ {
			key := "KEY_A"
			if i < deletes {
				key = KeyDelete
			}
			presses = append(presses, Press{Key: key, Timestamp: offset + float64(i)*5})
		}
	}
	emit(0, deletesFirst)
	emit(600, deletesLast)
	sessions := []model.Session{{Start: 0, End: 1095, Keystrokes: len(presses)}}
	return sessions, presses
}

func TestAnalyzeFatigueDetectsDegradation(t *testing.T) {
	sessions, presses := fatigueSession(1, 10)
	out := AnalyzeFatigue(sessions, presses, DefaultFatigueWindowMinutes)
	if len(out) != 1 {
		t.Fatalf("expected 1 fatigue entry, got %d", len(out))
	}
	sf := out[0]
	if sf.FirstWindowRate != 0.01 || sf.LastWindowRate != 0.10 {
		t.Fatalf("unexpected window rates: %+v", sf)
	}
	if sf.ChangePercent < 899 || sf.ChangePercent > 901 {
		t.Fatalf("expected ~900%% change, got %.1f", sf.ChangePercent)
	}
	if !sf.FatigueDetected {
		t.Fatalf("expected fatigue detection")
	}
}

func TestAnalyzeFatigueFlatSession(t *testing.T) {
	sessions, presses := fatigueSession(5, 5)
	out := AnalyzeFatigue(sessions, presses, DefaultFatigueWindowMinutes)
	if len(out) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(out))
	}
	if out[0].ChangePercent != 0 || out[0].FatigueDetected {
		t.Fatalf("flat session should not flag fatigue: %+v", out[0])
	}
}

func TestAnalyzeFatigueZeroFirstWindow(t *testing.T) {
	sessions, presses := fatigueSession(0, 10)
	out := AnalyzeFatigue(sessions, presses, DefaultFatigueWindowMinutes)
	if len(out) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(out))
	}
	if out[0].ChangePercent != 0 || out[0].FatigueDetected {
		t.Fatalf("zero first-window rate should yield zero change: %+v", out[0])
	}
}

func TestAnalyzeFatigueBoundaryPressStaysInLastWindow(t *testing.T) {
	// Session duration is an exact multiple of the window; the final
	// press sits on the boundary and must not open a one-sample window.
	var presses []Press
	emit := func(offset float64, count, deletes int) {
		for i := 0; i < count; i++ {
			key := "KEY_A"
			if i < deletes {
				key = KeyDelete
			}
			presses = append(presses, Press{Key: key, Timestamp: offset + float64(i)*5})
		}
	}
	emit(0, 100, 3)
	emit(600, 99, 2)
	presses = append(presses, Press{Key: KeyDelete, Timestamp: 1200})
	sessions := []model.Session{{Start: 0, End: 1200, Keystrokes: len(presses)}}

	out := AnalyzeFatigue(sessions, presses, DefaultFatigueWindowMinutes)
	if len(out) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(out))
	}
	sf := out[0]
	if len(sf.WindowRates) != 2 {
		t.Fatalf("expected 2 windows, got %v", sf.WindowRates)
	}
	if sf.FirstWindowRate != 0.03 || sf.LastWindowRate != 0.03 {
		t.Fatalf("expected flat 3%% rates, got %+v", sf)
	}
	if sf.ChangePercent != 0 || sf.FatigueDetected {
		t.Fatalf("flat session must not flag fatigue: %+v", sf)
	}
}

func TestAnalyzeFatigueSkipsShortSessions(t *testing.T) {
	presses := make([]Press, 30)
	for i := range presses {
		presses[i] = Press{Key: "KEY_A", Timestamp: float64(i)}
	}
	sessions := []model.Session{{Start: 0, End: 29, Keystrokes: 30}}
	if out := AnalyzeFatigue(sessions, presses, DefaultFatigueWindowMinutes); len(out) != 0 {
		t.Fatalf("short session should be skipped, got %v", out)
	}
}

func TestAnalyzeFatigueSkipsSparseSessions(t *testing.T) {
	presses := []Press{
		{Key: "KEY_A", Timestamp: 0},
		{Key: "KEY_A", Timestamp: 1100},
	}
	sessions := []model.Session{{Start: 0, End: 1100, Keystrokes: 2}}
	if out := AnalyzeFatigue(sessions, presses, DefaultFatigueWindowMinutes); len(out) != 0 {
		t.Fatalf("sparse session should be skipped, got %v", out)
	}
}
