// Package resultsui provides the Bubble Tea analysis browser.
package resultsui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avolkov/keyprof/internal/analyze"
	"github.com/avolkov/keyprof/internal/events"
	"github.com/avolkov/keyprof/internal/model"
	"github.com/avolkov/keyprof/internal/report"
)

const (
	tabOverview = iota
	tabDigraphs
	tabErrors
	tabModifiers
	tabFatigue
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	sectionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0")).Bold(true)
	warnStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// Model implements the Bubble Tea results browser.
type Model struct {
	path    string
	opts    analyze.Options
	loadCfg model.LoadConfig

	summary analyze.Summary
	errMsg  string

	tabs          []string
	activeTab     int
	viewports     []viewport.Model
	digraphTable  table.Model
	digraphLayout tableLayout

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
}

// NewModel constructs a results browser over an already-computed summary.
// The input path is kept so the settings form can re-run the analysis.
func NewModel(summary analyze.Summary, opts analyze.Options, path string) *Model {
	m := &Model{
		path:    path,
		opts:    opts,
		summary: summary,
		tabs:    []string{"Overview", "Digraphs", "Errors", "Modifiers", "Fatigue"},
	}
	m.initInputs()
	m.initDigraphTable()
	m.initViewports()
	m.applyDigraphTable(true)
	m.renderTabContents()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		if m.activeTab == tabDigraphs {
			m.digraphTable.Focus()
		} else {
			m.digraphTable.Blur()
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			return m.startFilter()
		case "g", "home":
			if m.activeTab == tabDigraphs {
				m.digraphTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabDigraphs {
				m.digraphTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabDigraphs {
				var cmd tea.Cmd
				m.digraphTable, cmd = m.digraphTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Session gap (s): "),
		newFilterInput("Start (YYYY-MM-DD): "),
		newFilterInput("End (YYYY-MM-DD): "),
		newFilterInput("Fatigue window (min): "),
	}
	m.setInputsFromConfig()
}

func (m *Model) initDigraphTable() {
	m.digraphTable = table.New(
		table.WithColumns(digraphColumns()),
		table.WithHeight(1),
	)
	m.digraphTable.SetStyles(digraphTableStyles())
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	if len(m.filterInputs) == 0 {
		return
	}
	m.filterInputs[0].SetValue(strconv.FormatFloat(m.opts.SessionGap, 'f', -1, 64))
	if m.loadCfg.Start != nil {
		m.filterInputs[1].SetValue(m.loadCfg.Start.Format("2006-01-02"))
	} else {
		m.filterInputs[1].SetValue("")
	}
	if m.loadCfg.End != nil {
		m.filterInputs[2].SetValue(m.loadCfg.End.Format("2006-01-02"))
	} else {
		m.filterInputs[2].SetValue("")
	}
	m.filterInputs[3].SetValue(strconv.FormatFloat(m.opts.FatigueWindowMinutes, 'f', -1, 64))
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.setDigraphTableSize(m.width, vpHeight)
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabDigraphs {
		m.digraphTable.Focus()
	} else {
		m.digraphTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderFilterSummary() string {
	start := "any"
	if m.loadCfg.Start != nil {
		start = m.loadCfg.Start.Format("2006-01-02")
	}
	end := "any"
	if m.loadCfg.End != nil {
		end = m.loadCfg.End.Format("2006-01-02")
	}
	summary := fmt.Sprintf("Settings: gap=%.0fs  start=%s  end=%s  fatigue-window=%.0fm",
		m.opts.SessionGap, start, end, m.opts.FatigueWindowMinutes)
	summary = truncateLine(summary, m.width)
	return headerStyle.Render(summary)
}

func (m *Model) renderHelp() string {
	return headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Settings: /  Quit: q")
}

func (m *Model) renderFilterHelp() string {
	return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel  quit: q")
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return m.renderFilterHelp()
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Settings (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if m.activeTab == tabDigraphs {
		if len(m.summary.SlowDigraphs) == 0 && len(m.summary.FastDigraphs) == 0 {
			return fitLines("No digraph samples. A transition needs at least 5 occurrences.", m.width, height)
		}
		view := tableMutedStyle.Render(m.digraphTable.View())
		return fitLines(view, m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshSummary() {
	evs, err := events.Load(m.path, m.loadCfg)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	res := analyze.Run(evs, m.opts)
	m.summary = analyze.Summarize(res, m.opts)
	m.applyDigraphTable(true)
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.summary, width))
	m.viewports[tabErrors].SetContent(renderErrors(m.summary))
	m.viewports[tabModifiers].SetContent(renderModifiers(m.summary.Modifiers))
	m.viewports[tabFatigue].SetContent(renderFatigue(m.summary.Fatigue))
}

func renderOverview(s analyze.Summary, width int) string {
	if s.TotalPressEvents == 0 {
		return "No keystroke data found."
	}
	cards := []string{
		metricCard("Keystrokes", fmt.Sprintf("%d", s.TotalPressEvents)),
		metricCard("Sessions", fmt.Sprintf("%d", s.SessionCount)),
		metricCard("Avg WPM", fmt.Sprintf("%.1f", s.AverageWPM)),
		metricCard("Error rate", fmt.Sprintf("%.1f%%", s.ErrorRate*100)),
		metricCard("Typing time", fmt.Sprintf("%.0fm", s.TotalTypingMinutes)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}

	lines := []string{summary, ""}
	if s.FirstEvent != "" {
		lines = append(lines, headerStyle.Render(fmt.Sprintf("Period: %s to %s", s.FirstEvent, s.LastEvent)), "")
	}
	if wpms := sessionWPMs(s.Sessions); len(wpms) >= 2 {
		lines = append(lines, sectionStyle.Render("Session WPM trend"))
		lines = append(lines, "  "+report.Sparkline(wpms))
		lines = append(lines, "")
	}
	if len(s.TopKeys) > 0 {
		lines = append(lines, sectionStyle.Render("Most used keys"))
		for i, kc := range s.TopKeys {
			if i >= 10 {
				break
			}
			lines = append(lines, fmt.Sprintf("  %-12s %d", report.FormatKey(kc.Key), kc.Count))
		}
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderErrors(s analyze.Summary) string {
	lines := []string{sectionStyle.Render("Keys before backspace")}
	if len(s.ErrorContexts) == 0 {
		lines = append(lines, "  none")
	}
	for _, kc := range s.ErrorContexts {
		lines = append(lines, fmt.Sprintf("  %-12s %d", report.FormatKey(kc.Key), kc.Count))
	}

	lines = append(lines, "", sectionStyle.Render("Reconstructed typos"))
	if len(s.TypoPatterns) == 0 {
		lines = append(lines, "  none")
	}
	for _, tp := range s.TypoPatterns {
		lines = append(lines, fmt.Sprintf("  %q -> %q  x%d", tp.Deleted, tp.Corrected, tp.Count))
	}

	rc := s.RootCauses
	lines = append(lines, "", sectionStyle.Render(fmt.Sprintf("Correction chains: %d", rc.ChainCount)))
	for _, cc := range rc.Causes {
		lines = append(lines, fmt.Sprintf("  %-22s %d", cc.Cause, cc.Count))
	}
	if len(rc.ImmediateBefore) > 0 {
		lines = append(lines, "", sectionStyle.Render("Keys right before a chain"))
		for _, kc := range rc.ImmediateBefore {
			lines = append(lines, fmt.Sprintf("  %-12s %d", report.FormatKey(kc.Key), kc.Count))
		}
	}
	if len(rc.PrecedingPairs) > 0 {
		lines = append(lines, "", sectionStyle.Render("Pairs right before a chain"))
		for _, pc := range rc.PrecedingPairs {
			lines = append(lines, fmt.Sprintf("  %s %s  x%d", report.FormatKey(pc.First), report.FormatKey(pc.Second), pc.Count))
		}
	}
	return strings.Join(lines, "\n")
}

func renderModifiers(mr analyze.ModifierReport) string {
	if mr.SampleCount == 0 {
		return "No dual-role modifier activity recorded."
	}
	lines := []string{
		sectionStyle.Render("Homerow modifier timing"),
		fmt.Sprintf("  samples %d  mean %.0fms  median %.0fms  p95 %.0fms  max %.0fms",
			mr.SampleCount, mr.MeanMs, mr.MedianMs, mr.P95Ms, mr.MaxMs),
		fmt.Sprintf("  misfires %d (%.1f%%)", mr.FailureCount, mr.FailureRate*100),
		"",
		sectionStyle.Render("Per pair"),
	}
	for _, p := range mr.Pairs {
		lines = append(lines, fmt.Sprintf("  %-28s x%-4d mean %.0fms  min %.0f  max %.0f  under-tap %.0f%%",
			p.Pair, p.Count, p.MeanMs, p.MinMs, p.MaxMs, p.UnderTapTimePct))
	}
	if len(mr.Recommendations) > 0 {
		lines = append(lines, "", sectionStyle.Render("Recommendations"))
		for _, rec := range mr.Recommendations {
			lines = append(lines, warnStyle.Render("  * "+rec))
		}
	}
	return strings.Join(lines, "\n")
}

func renderFatigue(fatigue []analyze.SessionFatigue) string {
	if len(fatigue) == 0 {
		return "No session was long enough for fatigue analysis."
	}
	lines := []string{sectionStyle.Render("Error rate drift per session")}
	for _, sf := range fatigue {
		line := fmt.Sprintf("  %s  %5.1f%% -> %5.1f%%  (%+.0f%%)  %s",
			analyze.FormatTimestamp(sf.Session.Start),
			sf.FirstWindowRate*100, sf.LastWindowRate*100, sf.ChangePercent,
			report.Sparkline(sf.WindowRates))
		if sf.FatigueDetected {
			line = warnStyle.Render(line + "  <- fatigue")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func digraphColumns() []table.Column {
	return []table.Column{
		{Title: "Transition", Width: 14},
		{Title: "Class", Width: 5},
		{Title: "Median (ms)", Width: 11},
		{Title: "Samples", Width: 7},
	}
}

func (m *Model) applyDigraphTable(force bool) {
	rows := buildDigraphRows(m.summary)
	if !force && m.digraphLayout.rowCount == len(rows) {
		return
	}
	m.digraphTable.SetRows(rows)
	m.digraphLayout.rowCount = len(rows)
}

func buildDigraphRows(s analyze.Summary) []table.Row {
	rows := make([]table.Row, 0, len(s.SlowDigraphs)+len(s.FastDigraphs))
	for _, ds := range s.SlowDigraphs {
		rows = append(rows, table.Row{
			report.FormatDigraph(ds.Digraph),
			"slow",
			fmt.Sprintf("%.0f", ds.MedianMs),
			fmt.Sprintf("%d", ds.Samples),
		})
	}
	for _, ds := range s.FastDigraphs {
		rows = append(rows, table.Row{
			report.FormatDigraph(ds.Digraph),
			"fast",
			fmt.Sprintf("%.0f", ds.MedianMs),
			fmt.Sprintf("%d", ds.Samples),
		})
	}
	return rows
}

func (m *Model) setDigraphTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	if m.digraphLayout.width == width && m.digraphLayout.height == viewportHeight {
		return
	}
	m.digraphLayout.width = width
	m.digraphLayout.height = viewportHeight
	m.digraphTable.SetWidth(width)
	m.digraphTable.SetHeight(viewportHeight)
}

func digraphTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refreshSummary()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	gapInput := strings.TrimSpace(m.filterInputs[0].Value())
	gap := analyze.DefaultSessionGap
	if gapInput != "" {
		parsed, err := strconv.ParseFloat(gapInput, 64)
		if err != nil || parsed <= 0 {
			return fmt.Errorf("invalid session gap (use positive seconds)")
		}
		gap = parsed
	}

	startInput := strings.TrimSpace(m.filterInputs[1].Value())
	var start *time.Time
	if startInput != "" {
		parsed, err := time.ParseInLocation("2006-01-02", startInput, time.Local)
		if err != nil {
			return fmt.Errorf("invalid start date (expected YYYY-MM-DD)")
		}
		start = &parsed
	}

	endInput := strings.TrimSpace(m.filterInputs[2].Value())
	var end *time.Time
	if endInput != "" {
		parsed, err := time.ParseInLocation("2006-01-02", endInput, time.Local)
		if err != nil {
			return fmt.Errorf("invalid end date (expected YYYY-MM-DD)")
		}
		end = &parsed
	}

	windowInput := strings.TrimSpace(m.filterInputs[3].Value())
	window := analyze.DefaultFatigueWindowMinutes
	if windowInput != "" {
		parsed, err := strconv.ParseFloat(windowInput, 64)
		if err != nil || parsed <= 0 {
			return fmt.Errorf("invalid fatigue window (use positive minutes)")
		}
		window = parsed
	}

	m.opts.SessionGap = gap
	m.opts.FatigueWindowMinutes = window
	m.loadCfg = model.LoadConfig{Start: start, End: end}
	return nil
}

func sessionWPMs(sessions []model.Session) []float64 {
	out := make([]float64, 0, len(sessions))
	for _, s := range sessions {
		minutes := s.DurationSeconds() / 60
		if minutes <= 0 {
			continue
		}
		out = append(out, float64(s.Chars)/5/minutes)
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
