package analyze

import "sort"

// TypoPattern is a reconstructed deleted/retyped text pair.
type TypoPattern struct {
	Deleted   string `json:"deleted"`
	Corrected string `json:"corrected"`
	Count     int    `json:"count"`
}

// typoBackwardSlack extends the backward decode window past the delete
// run length, absorbing non-printing keys that decode to nothing.
const typoBackwardSlack = 5

// DetectTypoPatterns reconstructs delete-and-retype incidents from the
// press subsequence. The reconstruction is heuristic: it has no access
// to ground-truth text, so both fragments must decode to at least two
// characters and differ before a pair is recorded, which suppresses
// single-character correction noise.
func DetectTypoPatterns(presses []Press) []TypoPattern {
	counts := make(map[[2]string]int)

	i := 0
	for i < len(presses) {
		if presses[i].Key != KeyDelete {
			i++
			continue
		}
		// Length of the delete run.
		n := 0
		j := i
		for j < len(presses) && presses[j].Key == KeyDelete {
			j++
			n++
		}

		// Decode backward context; the last n characters are what was
		// deleted.
		lo := i - (n + typoBackwardSlack)
		if lo < 0 {
			lo = 0
		}
		deleted := decodeKeys(pressKeys(presses[lo:i]))
		if len(deleted) > n {
			deleted = deleted[len(deleted)-n:]
		}

		// Decode the replacement typed after the run, stopping early at
		// another delete.
		var fwd []string
		limit := len(deleted) + 2
		for k := j; k < len(presses) && k < j+limit; k++ {
			if presses[k].Key == KeyDelete {
				break
			}
			fwd = append(fwd, presses[k].Key)
		}
		corrected := decodeKeys(fwd)
		if len(corrected) > len(deleted)+1 {
			corrected = corrected[:len(deleted)+1]
		}

		if len(deleted) >= 2 && len(corrected) >= 2 && string(deleted) != string(corrected) {
			counts[[2]string{string(deleted), string(corrected)}]++
		}

		i = j
	}

	out := make([]TypoPattern, 0, len(counts))
	for pair, count := range counts {
		out = append(out, TypoPattern{Deleted: pair[0], Corrected: pair[1], Count: count})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Count != out[b].Count {
			return out[a].Count > out[b].Count
		}
		if out[a].Deleted != out[b].Deleted {
			return out[a].Deleted < out[b].Deleted
		}
		return out[a].Corrected < out[b].Corrected
	})
	if len(out) > 20 {
		out = out[:20]
	}
	return out
}

func pressKeys(presses []Press) []string {
	keys := make([]string, len(presses))
	for i, p := range presses {
		keys[i] = p.Key
	}
	return keys
}
