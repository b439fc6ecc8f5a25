package analyze

import "github.com/avolkov/keyprof/internal/model"

// Defaults for the engine configuration surface.
const (
	DefaultSessionGap           = 60.0
	DefaultLongHoldThresholdMs  = 200.0
	DefaultTapTimeMs            = 200.0
	DefaultFatigueWindowMinutes = 10.0

	digraphPauseCutoff = 2.0  // seconds; larger gaps are pauses, not digraphs
	modifierScanGap    = 0.5  // seconds; forward scan stops past this gap
	modifierScanKeys   = 5    // presses inspected after a mapped key
	failureScanKeys    = 3    // presses inspected for a correcting delete
	minDigraphSamples  = 5    // median support gate
	minHoldSamples     = 3    // hold stats support gate
	minSessionPresses  = 20   // fatigue eligibility gate
	fatigueThresholdPc = 50.0 // percent increase flagged as fatigue
)

// Options configures a single analysis run. The zero value is not
// usable; start from DefaultOptions.
type Options struct {
	// SessionGap is the inactivity threshold (seconds) that closes a
	// typing session.
	SessionGap float64
	// LongHoldThresholdMs marks a release as a long hold, a candidate
	// accidental modifier activation.
	LongHoldThresholdMs float64
	// TapTimeMs is the dual-role tap/hold boundary, used only for
	// modifier percentage reporting and recommendations.
	TapTimeMs float64
	// FatigueWindowMinutes sizes the fixed windows compared within long
	// sessions.
	FatigueWindowMinutes float64
	// Modifiers maps dual-role keys to their roles and target sets.
	Modifiers map[string]model.ModifierRole
}

// DefaultOptions returns the documented defaults, including the default
// homerow modifier table.
func DefaultOptions() Options {
	return Options{
		SessionGap:           DefaultSessionGap,
		LongHoldThresholdMs:  DefaultLongHoldThresholdMs,
		TapTimeMs:            DefaultTapTimeMs,
		FatigueWindowMinutes: DefaultFatigueWindowMinutes,
		Modifiers:            DefaultModifiers(),
	}
}

// DefaultModifiers returns the standard homerow modifier layout: GACS on
// the left hand mirrored on the right, with shift-like roles targeting
// the letter keys.
func DefaultModifiers() map[string]model.ModifierRole {
	return map[string]model.ModifierRole{
		"KEY_A":         {Role: "meta"},
		"KEY_S":         {Role: "alt"},
		"KEY_D":         {Role: "shift", Targets: letterKeySet()},
		"KEY_F":         {Role: "ctrl"},
		"KEY_J":         {Role: "ctrl"},
		"KEY_K":         {Role: "shift", Targets: letterKeySet()},
		"KEY_L":         {Role: "alt"},
		"KEY_SEMICOLON": {Role: "meta"},
	}
}

func letterKeySet() map[string]struct{} {
	set := make(map[string]struct{}, 26)
	for c := 'A'; c <= 'Z'; c++ {
		set[keyPrefix+string(c)] = struct{}{}
	}
	return set
}
