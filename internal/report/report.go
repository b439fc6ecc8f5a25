package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/avolkov/keyprof/internal/analyze"
)

const sectionRule = "----------------------------------------"

// Render prints a formatted report for the analysis summary.
func Render(w io.Writer, s analyze.Summary) error {
	width := terminalWidth()
	p := &printer{w: w, width: width}

	p.line(strings.Repeat("=", 60))
	p.line("TYPING ANALYSIS REPORT")
	p.line(strings.Repeat("=", 60))
	p.line("")

	if s.FirstEvent != "" {
		p.linef("Period: %s to %s", clipDate(s.FirstEvent), clipDate(s.LastEvent))
		p.linef("Total duration: %.1f hours", s.DurationHours)
		p.line("")
	}

	p.section("OVERALL STATISTICS")
	p.linef("Total keystrokes: %d", s.TotalPressEvents)
	p.linef("Typing sessions: %d", s.SessionCount)
	p.linef("Total typing time: %.1f minutes", s.TotalTypingMinutes)
	p.linef("Average WPM: %.1f", s.AverageWPM)
	p.linef("Errors (backspaces): %d", s.ErrorCount)
	p.linef("Error rate: %.1f%%", s.ErrorRate*100)
	p.line("")

	if len(s.SlowDigraphs) > 0 {
		p.section("SLOWEST KEY TRANSITIONS (practice these)")
		p.digraphTable(s.SlowDigraphs)
	}
	if len(s.ErrorContexts) > 0 {
		p.section("KEYS BEFORE BACKSPACE (error-prone keys)")
		rows := make([][]string, 0, len(s.ErrorContexts))
		for _, kc := range s.ErrorContexts {
			rows = append(rows, []string{FormatKey(kc.Key), fmt.Sprintf("%d", kc.Count)})
		}
		p.table([]string{"Key", "Errors"}, rows, map[int]bool{1: true})
	}
	if len(s.TopKeys) > 0 {
		p.section("MOST USED KEYS")
		rows := make([][]string, 0, 10)
		for i, kc := range s.TopKeys {
			if i >= 10 {
				break
			}
			rows = append(rows, []string{FormatKey(kc.Key), fmt.Sprintf("%d", kc.Count)})
		}
		p.table([]string{"Key", "Presses"}, rows, map[int]bool{1: true})
	}
	if len(s.FastDigraphs) > 0 {
		p.section("FASTEST KEY TRANSITIONS (your strengths)")
		p.digraphTable(s.FastDigraphs)
	}
	if len(s.HoldDurationStats) > 0 {
		p.section("KEY HOLD DURATIONS")
		rows := make([][]string, 0, len(s.HoldDurationStats))
		for _, hs := range s.HoldDurationStats {
			rows = append(rows, []string{
				FormatKey(hs.Key),
				fmt.Sprintf("%.0fms", hs.MeanMs),
				fmt.Sprintf("%.0fms", hs.MaxMs),
				fmt.Sprintf("%d", hs.Count),
			})
		}
		p.table([]string{"Key", "Mean", "Max", "Samples"}, rows, map[int]bool{1: true, 2: true, 3: true})
		if s.LongHoldCount > 0 {
			p.linef("Long holds: %d", s.LongHoldCount)
			p.line("")
		}
	}
	if len(s.TypoPatterns) > 0 {
		p.section("RECONSTRUCTED TYPOS")
		rows := make([][]string, 0, len(s.TypoPatterns))
		for _, tp := range s.TypoPatterns {
			rows = append(rows, []string{
				fmt.Sprintf("%q", tp.Deleted),
				fmt.Sprintf("%q", tp.Corrected),
				fmt.Sprintf("%d", tp.Count),
			})
		}
		p.table([]string{"Deleted", "Retyped", "Count"}, rows, map[int]bool{2: true})
	}
	p.modifierSection(s.Modifiers)
	p.rootCauseSection(s.RootCauses)
	p.fatigueSection(s.Fatigue)
	p.timeOfDaySection(s.TimeOfDay)
	p.idleSection(s.IdleDistribution)

	return p.err
}

type printer struct {
	w     io.Writer
	width int
	err   error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	if p.width > 0 {
		s = runewidth.Truncate(s, p.width, "")
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func (p *printer) linef(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

func (p *printer) section(title string) {
	p.line(title)
	p.line(sectionRule)
}

func (p *printer) table(headers []string, rows [][]string, rightAlign map[int]bool) {
	for _, line := range formatTable(headers, rows, rightAlign) {
		p.line("  " + line)
	}
	p.line("")
}

func (p *printer) digraphTable(stats []analyze.DigraphStat) {
	rows := make([][]string, 0, 10)
	for i, ds := range stats {
		if i >= 10 {
			break
		}
		rows = append(rows, []string{
			FormatDigraph(ds.Digraph),
			fmt.Sprintf("%.0fms", ds.MedianMs),
			fmt.Sprintf("%d", ds.Samples),
		})
	}
	p.table([]string{"Transition", "Median", "Samples"}, rows, map[int]bool{1: true, 2: true})
}

func (p *printer) modifierSection(m analyze.ModifierReport) {
	if m.SampleCount == 0 {
		return
	}
	p.section("HOMEROW MODIFIER TIMING")
	p.linef("Samples: %d  mean %.0fms  median %.0fms  p95 %.0fms  max %.0fms",
		m.SampleCount, m.MeanMs, m.MedianMs, m.P95Ms, m.MaxMs)
	p.linef("Misfires: %d (%.1f%% of samples)", m.FailureCount, m.FailureRate*100)
	p.line("")
	if len(m.Pairs) > 0 {
		rows := make([][]string, 0, 10)
		for i, pair := range m.Pairs {
			if i >= 10 {
				break
			}
			rows = append(rows, []string{
				FormatDigraph(pair.Pair),
				fmt.Sprintf("%d", pair.Count),
				fmt.Sprintf("%.0fms", pair.MeanMs),
				fmt.Sprintf("%.0fms", pair.MinMs),
				fmt.Sprintf("%.0fms", pair.MaxMs),
				fmt.Sprintf("%.0f%%", pair.UnderTapTimePct),
			})
		}
		p.table([]string{"Pair", "Count", "Mean", "Min", "Max", "Under tap-time"}, rows,
			map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true})
	}
	for _, rec := range m.Recommendations {
		p.line("  * " + rec)
	}
	if len(m.Recommendations) > 0 {
		p.line("")
	}
}

func (p *printer) rootCauseSection(rc analyze.RootCauseReport) {
	if rc.ChainCount == 0 {
		return
	}
	p.section("CORRECTION ROOT CAUSES")
	p.linef("Backspace chains: %d", rc.ChainCount)
	if len(rc.Causes) > 0 {
		rows := make([][]string, 0, len(rc.Causes))
		for _, cc := range rc.Causes {
			rows = append(rows, []string{cc.Cause, fmt.Sprintf("%d", cc.Count)})
		}
		p.table([]string{"Cause", "Chains"}, rows, map[int]bool{1: true})
	}
	if len(rc.ImmediateBefore) > 0 {
		rows := make([][]string, 0, len(rc.ImmediateBefore))
		for _, kc := range rc.ImmediateBefore {
			rows = append(rows, []string{FormatKey(kc.Key), fmt.Sprintf("%d", kc.Count)})
		}
		p.line("Keys immediately before a chain:")
		p.table([]string{"Key", "Chains"}, rows, map[int]bool{1: true})
	}
	if len(rc.ChainLengths) > 0 {
		counts := make([]float64, 0, len(rc.ChainLengths))
		labels := make([]string, 0, len(rc.ChainLengths))
		for _, lc := range rc.ChainLengths {
			counts = append(counts, float64(lc.Count))
			labels = append(labels, fmt.Sprintf("%d", lc.Length))
		}
		p.linef("Chain lengths (%s): %s", strings.Join(labels, ","), Sparkline(counts))
		p.line("")
	}
}

func (p *printer) fatigueSection(fatigue []analyze.SessionFatigue) {
	if len(fatigue) == 0 {
		return
	}
	p.section("FATIGUE")
	for _, f := range fatigue {
		flag := ""
		if f.FatigueDetected {
			flag = "  <- fatigue"
		}
		p.linef("Session %s (%s): error rate %.1f%% -> %.1f%% (%+.0f%%) %s%s",
			clipDate(formatSeconds(f.Session.Start)),
			FormatDuration(f.Session.DurationSeconds()),
			f.FirstWindowRate*100, f.LastWindowRate*100, f.ChangePercent,
			Sparkline(f.WindowRates), flag)
	}
	p.line("")
}

func (p *printer) timeOfDaySection(periods map[string]analyze.PeriodStats) {
	if len(periods) == 0 {
		return
	}
	p.section("TIME OF DAY")
	order := []string{"morning", "afternoon", "evening", "night"}
	rows := make([][]string, 0, len(order))
	for _, name := range order {
		stats, ok := periods[name]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d", stats.Presses),
			fmt.Sprintf("%d", stats.Errors),
			fmt.Sprintf("%.1f%%", stats.ErrorRate*100),
		})
	}
	p.table([]string{"Period", "Presses", "Errors", "Error rate"}, rows,
		map[int]bool{1: true, 2: true, 3: true})
}

func (p *printer) idleSection(dist analyze.IdleDistribution) {
	total := dist.ShortUnder100Ms + dist.Medium100To500Ms + dist.Long500To2000Ms + dist.VeryLongOver2000Ms
	if total == 0 {
		return
	}
	p.section("IDLE TIME BEFORE PRESSES")
	rows := [][]string{
		{"< 100ms", fmt.Sprintf("%d", dist.ShortUnder100Ms)},
		{"100-500ms", fmt.Sprintf("%d", dist.Medium100To500Ms)},
		{"500-2000ms", fmt.Sprintf("%d", dist.Long500To2000Ms)},
		{"> 2000ms", fmt.Sprintf("%d", dist.VeryLongOver2000Ms)},
	}
	p.table([]string{"Gap", "Presses"}, rows, map[int]bool{1: true})
}

// clipDate keeps the date part of an ISO-8601 timestamp.
func clipDate(iso string) string {
	if len(iso) >= 10 {
		return iso[:10]
	}
	return iso
}

func formatSeconds(ts float64) string {
	return analyze.FormatTimestamp(ts)
}
