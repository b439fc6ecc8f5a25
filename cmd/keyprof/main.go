// Package main provides the CLI entrypoint for keyprof.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/avolkov/keyprof/internal/analyze"
	"github.com/avolkov/keyprof/internal/config"
	"github.com/avolkov/keyprof/internal/events"
	"github.com/avolkov/keyprof/internal/model"
	"github.com/avolkov/keyprof/internal/report"
	"github.com/avolkov/keyprof/internal/resultsui"
	"github.com/avolkov/keyprof/internal/store"
)

var (
	filterStart string
	filterEnd   string
	filterToday bool
	filterWeek  bool

	optSessionGap    float64
	optLongHoldMs    float64
	optTapTimeMs     float64
	optFatigueWindow float64

	analyzeOutput string
	reportJSON    bool

	archiveDB   string
	historyDB   string
	historyLast int
	historyJSON bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keyprof [file]",
		Short:         "Keystroke log analyzer",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runReportCmd,
	}
	addFilterFlags(rootCmd)
	addEngineFlags(rootCmd)
	rootCmd.Flags().BoolVar(&reportJSON, "json", false, "output raw JSON instead of formatted report")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newUICmd())
	rootCmd.AddCommand(newArchiveCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&filterStart, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filterEnd, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&filterToday, "today", false, "only analyze today's data")
	cmd.Flags().BoolVar(&filterWeek, "week", false, "only analyze the past 7 days")
}

func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&optSessionGap, "session-gap", analyze.DefaultSessionGap, "seconds of inactivity that end a session")
	cmd.Flags().Float64Var(&optLongHoldMs, "long-hold-ms", analyze.DefaultLongHoldThresholdMs, "hold duration flagged as a long hold (ms)")
	cmd.Flags().Float64Var(&optTapTimeMs, "tap-time-ms", analyze.DefaultTapTimeMs, "dual-role tap/hold boundary used for reporting (ms)")
	cmd.Flags().Float64Var(&optFatigueWindow, "fatigue-window", analyze.DefaultFatigueWindowMinutes, "fatigue comparison window (minutes)")
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a keystroke log and emit summary JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyzeCmd,
	}
	addFilterFlags(cmd)
	addEngineFlags(cmd)
	cmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "output JSON file (default: stdout)")
	return cmd
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Print a human-readable typing report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReportCmd,
	}
	addFilterFlags(cmd)
	addEngineFlags(cmd)
	cmd.Flags().BoolVar(&reportJSON, "json", false, "output raw JSON instead of formatted report")
	return cmd
}

func newUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui [file]",
		Short: "Browse analysis results interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runUICmd,
	}
	addFilterFlags(cmd)
	addEngineFlags(cmd)
	return cmd
}

func newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive [file]",
		Short: "Analyze a log and store the summary in the archive",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runArchiveCmd,
	}
	addFilterFlags(cmd)
	addEngineFlags(cmd)
	cmd.Flags().StringVar(&archiveDB, "db", "", "archive database path")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show archived analysis runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyDB, "db", "", "archive database path")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N runs")
	cmd.Flags().BoolVar(&historyJSON, "json", false, "output runs as JSON")
	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

// loadAnalysis is the shared front half of every analysis command: load
// config, resolve the input log, load and filter events, run the engine.
func loadAnalysis(cmd *cobra.Command, args []string) (analyze.Summary, analyze.Options, string, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return analyze.Summary{}, analyze.Options{}, "", fmt.Errorf("failed to load config: %w", err)
	}
	opts := buildOptions(cmd, fileCfg)

	path := config.DefaultLogPath()
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return analyze.Summary{}, analyze.Options{}, "", fmt.Errorf("input file not found: %s (run the capture daemon first)", path)
		}
		return analyze.Summary{}, analyze.Options{}, "", fmt.Errorf("failed to stat input: %w", err)
	}

	loadCfg, err := buildLoadConfig()
	if err != nil {
		return analyze.Summary{}, analyze.Options{}, "", err
	}
	evs, err := events.Load(path, loadCfg)
	if err != nil {
		return analyze.Summary{}, analyze.Options{}, "", fmt.Errorf("failed to load events: %w", err)
	}

	res := analyze.Run(evs, opts)
	return analyze.Summarize(res, opts), opts, path, nil
}

func buildOptions(cmd *cobra.Command, fileCfg config.FileConfig) analyze.Options {
	applyFloatConfig(cmd, "session-gap", &optSessionGap, fileCfg.Analysis.SessionGap)
	applyFloatConfig(cmd, "long-hold-ms", &optLongHoldMs, fileCfg.Analysis.LongHoldThresholdMs)
	applyFloatConfig(cmd, "tap-time-ms", &optTapTimeMs, fileCfg.Analysis.TapTimeMs)
	applyFloatConfig(cmd, "fatigue-window", &optFatigueWindow, fileCfg.Analysis.FatigueWindowMinutes)

	opts := analyze.DefaultOptions()
	opts.SessionGap = optSessionGap
	opts.LongHoldThresholdMs = optLongHoldMs
	opts.TapTimeMs = optTapTimeMs
	opts.FatigueWindowMinutes = optFatigueWindow
	if roles := fileCfg.ModifierRoles(); roles != nil {
		opts.Modifiers = roles
	}
	return opts
}

func buildLoadConfig() (model.LoadConfig, error) {
	var cfg model.LoadConfig
	now := time.Now()
	switch {
	case filterToday:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		cfg.Start = &start
	case filterWeek:
		start := now.AddDate(0, 0, -7)
		cfg.Start = &start
	case filterStart != "":
		parsed, err := time.ParseInLocation("2006-01-02", filterStart, time.Local)
		if err != nil {
			return model.LoadConfig{}, fmt.Errorf("invalid --start value: %w", err)
		}
		cfg.Start = &parsed
	}
	if filterEnd != "" {
		parsed, err := time.ParseInLocation("2006-01-02", filterEnd, time.Local)
		if err != nil {
			return model.LoadConfig{}, fmt.Errorf("invalid --end value: %w", err)
		}
		cfg.End = &parsed
	}
	return cfg, nil
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	summary, _, _, err := loadAnalysis(cmd, args)
	if err != nil {
		return err
	}
	payload, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if analyzeOutput != "" {
		if err := os.WriteFile(analyzeOutput, append(payload, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		logErrf("Analysis written to %s\n", analyzeOutput)
		return nil
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(payload)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runReportCmd(cmd *cobra.Command, args []string) error {
	summary, _, _, err := loadAnalysis(cmd, args)
	if err != nil {
		return err
	}
	if summary.TotalKeystrokes == 0 {
		return fmt.Errorf("no keystroke data found for the specified period")
	}
	if reportJSON {
		payload, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(payload)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	return report.Render(cmd.OutOrStdout(), summary)
}

func runUICmd(cmd *cobra.Command, args []string) error {
	summary, opts, path, err := loadAnalysis(cmd, args)
	if err != nil {
		return err
	}
	m := resultsui.NewModel(summary, opts, path)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run results UI: %w", err)
	}
	return nil
}

func runArchiveCmd(cmd *cobra.Command, args []string) error {
	summary, _, path, err := loadAnalysis(cmd, args)
	if err != nil {
		return err
	}
	dbPath := archiveDB
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	run := store.Run{
		CreatedAt:    time.Now(),
		Source:       path,
		PressEvents:  summary.TotalPressEvents,
		ErrorCount:   summary.ErrorCount,
		ErrorRate:    summary.ErrorRate,
		SessionCount: summary.SessionCount,
		AverageWPM:   summary.AverageWPM,
	}
	id, err := st.InsertRun(cmd.Context(), run, summary, summary.Sessions)
	if err != nil {
		return fmt.Errorf("failed to archive run: %w", err)
	}
	logErrf("Archived analysis run %d (%d presses, %.1f WPM)\n", id, summary.TotalPressEvents, summary.AverageWPM)
	return nil
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	dbPath := historyDB
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	runs, err := st.ListRuns(cmd.Context(), historyLast)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if historyJSON {
		payload, err := json.MarshalIndent(runs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode runs: %w", err)
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(payload)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	return report.RenderHistory(cmd.OutOrStdout(), runs)
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# keyprof configuration
# Uncomment a value to enable it. CLI flags override config values.

[analysis]
# session-gap = %.1f        # Seconds of inactivity that end a session
# long-hold-ms = %.0f       # Hold duration flagged as a long hold
# tap-time-ms = %.0f        # Dual-role tap/hold boundary (reporting only)
# fatigue-window-min = %.0f # Fatigue comparison window in minutes

# Dual-role key mapping. Shift-like roles list the keys they combine
# with; other roles omit targets.
#
# [modifiers.KEY_D]
# role = "shift"
# targets = ["KEY_A", "KEY_B", "KEY_C"]
#
# [modifiers.KEY_F]
# role = "ctrl"
`,
		analyze.DefaultSessionGap,
		analyze.DefaultLongHoldThresholdMs,
		analyze.DefaultTapTimeMs,
		analyze.DefaultFatigueWindowMinutes,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
