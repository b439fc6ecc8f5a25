// Package events loads keystroke event logs from JSONL files.
package events

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/avolkov/keyprof/internal/model"
)

// maxLineBytes bounds a single log line; capture records are tiny, so
// anything larger is garbage.
const maxLineBytes = 1 << 20

// Load reads one event per line from the provided file path, skipping
// lines that fail to parse or lack required fields. Events are returned
// sorted by timestamp (stable for ties) after applying the optional
// inclusive time-range filter.
func Load(path string, cfg model.LoadConfig) ([]model.Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only log.
			_ = cerr
		}
	}()
	return Read(file, cfg)
}

// Read parses events from an open JSONL stream. See Load.
func Read(r io.Reader, cfg model.LoadConfig) ([]model.Event, error) {
	var out []model.Event
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var ev model.Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			continue
		}
		if !ev.Valid() {
			continue
		}
		if cfg.Start != nil && ev.Timestamp < timeToSeconds(*cfg.Start) {
			continue
		}
		if cfg.End != nil && ev.Timestamp > timeToSeconds(*cfg.End) {
			continue
		}
		out = append(out, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out, nil
}

func timeToSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
