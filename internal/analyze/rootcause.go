package analyze

import "sort"

// Root-cause categories for multi-keystroke correction chains.
const (
	CauseHomerowModMisfire = "homerow_mod_misfire"
	CauseCapslockEscape    = "capslock_escape"
	CauseWordDeletion      = "word_deletion"
)

const (
	chainContextBefore = 10
	chainContextAfter  = 5
)

// KeyCount pairs a key identifier with an occurrence count.
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// PairCount pairs a two-key sequence with an occurrence count.
type PairCount struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Count  int    `json:"count"`
}

// LengthCount is one bucket of the chain-length histogram.
type LengthCount struct {
	Length int `json:"length"`
	Count  int `json:"count"`
}

// CauseCount pairs a causal category with an occurrence count.
type CauseCount struct {
	Cause string `json:"cause"`
	Count int    `json:"count"`
}

// RootCauseReport aggregates backspace-chain context statistics.
type RootCauseReport struct {
	ChainCount      int           `json:"chain_count"`
	ChainLengths    []LengthCount `json:"chain_lengths"`
	ImmediateBefore []KeyCount    `json:"immediate_before"`
	PrecedingPairs  []PairCount   `json:"preceding_pairs"`
	RetypedAfter    []KeyCount    `json:"retyped_after"`
	Causes          []CauseCount  `json:"causes"`
}

// AnalyzeRootCauses classifies backspace chains (runs of two or more
// consecutive deletes) by the keys around them. Classification order is
// deliberate: misfire is checked before word deletion, so a pair whose
// second key is a shift variant or space lands in the misfire bucket.
func AnalyzeRootCauses(presses []Press) RootCauseReport {
	var (
		immediateBefore = make(map[string]int)
		precedingPairs  = make(map[[2]string]int)
		retypedAfter    = make(map[string]int)
		chainLengths    = make(map[int]int)
		causes          = make(map[string]int)
		chainCount      int
	)

	i := 0
	for i < len(presses) {
		if presses[i].Key != KeyDelete {
			i++
			continue
		}
		j := i
		for j < len(presses) && presses[j].Key == KeyDelete {
			j++
		}
		n := j - i
		if n < 2 {
			i = j
			continue
		}
		chainCount++
		chainLengths[n]++

		lo := i - chainContextBefore
		if lo < 0 {
			lo = 0
		}
		before := pressKeys(presses[lo:i])
		hi := j + chainContextAfter
		if hi > len(presses) {
			hi = len(presses)
		}
		after := pressKeys(presses[j:hi])

		if len(before) >= 1 {
			immediateBefore[before[len(before)-1]]++
		}
		if len(before) >= 2 {
			pair := [2]string{before[len(before)-2], before[len(before)-1]}
			precedingPairs[pair]++
			switch {
			case isSingleCharKey(pair[0]) && (IsShiftKey(pair[1]) || pair[1] == KeySpace):
				causes[CauseHomerowModMisfire]++
			case pair[1] == KeyCapsLock || pair[1] == KeyEsc:
				causes[CauseCapslockEscape]++
			case isSingleCharKey(pair[0]) && pair[1] == KeySpace:
				causes[CauseWordDeletion]++
			}
		} else if len(before) == 1 && (before[0] == KeyCapsLock || before[0] == KeyEsc) {
			causes[CauseCapslockEscape]++
		}
		if len(after) >= 1 {
			retypedAfter[after[0]]++
		}

		i = j
	}

	return RootCauseReport{
		ChainCount:      chainCount,
		ChainLengths:    sortedLengthCounts(chainLengths),
		ImmediateBefore: topKeyCounts(immediateBefore, 10),
		PrecedingPairs:  topPairCounts(precedingPairs, 10),
		RetypedAfter:    topKeyCounts(retypedAfter, 10),
		Causes:          sortedCauseCounts(causes),
	}
}

func topKeyCounts(counts map[string]int, n int) []KeyCount {
	out := make([]KeyCount, 0, len(counts))
	for key, count := range counts {
		out = append(out, KeyCount{Key: key, Count: count})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Count != out[b].Count {
			return out[a].Count > out[b].Count
		}
		return out[a].Key < out[b].Key
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func topPairCounts(counts map[[2]string]int, n int) []PairCount {
	out := make([]PairCount, 0, len(counts))
	for pair, count := range counts {
		out = append(out, PairCount{First: pair[0], Second: pair[1], Count: count})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Count != out[b].Count {
			return out[a].Count > out[b].Count
		}
		if out[a].First != out[b].First {
			return out[a].First < out[b].First
		}
		return out[a].Second < out[b].Second
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func sortedLengthCounts(counts map[int]int) []LengthCount {
	out := make([]LengthCount, 0, len(counts))
	for length, count := range counts {
		out = append(out, LengthCount{Length: length, Count: count})
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].Length < out[b].Length
	})
	return out
}

func sortedCauseCounts(counts map[string]int) []CauseCount {
	out := make([]CauseCount, 0, len(counts))
	for cause, count := range counts {
		out = append(out, CauseCount{Cause: cause, Count: count})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Count != out[b].Count {
			return out[a].Count > out[b].Count
		}
		return out[a].Cause < out[b].Cause
	})
	return out
}
