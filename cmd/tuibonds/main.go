// Package main provides the CLI entrypoint for tuibonds.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuibonds/internal/config"
	"github.com/verte-zerg/tuibonds/internal/game"
	"github.com/verte-zerg/tuibonds/internal/generator"
	"github.com/verte-zerg/tuibonds/internal/model"
	"github.com/verte-zerg/tuibonds/internal/prefs"
	"github.com/verte-zerg/tuibonds/internal/stats"
	"github.com/verte-zerg/tuibonds/internal/statsui"
	"github.com/verte-zerg/tuibonds/internal/store"
	"github.com/verte-zerg/tuibonds/internal/tui"
)

const (
	defaultStatsWindow = 10
	defaultHistoryRows = 20
	textPlotHeight     = 8
)

var (
	playFlags     difficultyFlags
	playEphemeral bool

	settingsFlags difficultyFlags

	statsPlayer string
	statsSince  string
	statsLast   int
	statsWindow int
	statsText   bool

	resetYes bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuibonds",
		Short:         "TUI arithmetic matching game",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}
	playFlags.register(rootCmd)
	rootCmd.Flags().BoolVar(&playEphemeral, "ephemeral", false, "play without reading or writing the database")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newBadgesCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newResetCmd())
	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	base, err := loadFileDefaults(env.ConfigPath)
	if err != nil {
		return err
	}

	var kv prefs.KV = prefs.NewMemory()
	var history tui.History
	if !playEphemeral {
		st, err := store.Open(env.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer closeStore(st)
		kv = st
		history = st
	}

	p, err := prefs.LoadOver(ctx, kv, base)
	if err != nil {
		logErrf("some preferences could not be read, using defaults: %v\n", err)
	}
	changed, err := playFlags.apply(cmd, &p)
	if err != nil {
		return err
	}
	if changed {
		if err := prefs.Validate(p.Difficulty); err != nil {
			return err
		}
	}

	fx := tui.NewFeedback()
	engine := game.New(p, kv,
		game.WithEffects(fx),
		game.WithGenerator(newGenerator(env.Seed)),
		game.WithLogf(logErrf),
	)
	program := tea.NewProgram(tui.NewModel(engine, fx, history), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// loadFileDefaults layers the TOML file over the built-in defaults.
func loadFileDefaults(path string) (prefs.Prefs, error) {
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return prefs.Prefs{}, fmt.Errorf("failed to load config: %w", err)
	}
	base := prefs.Prefs{Difficulty: prefs.DefaultDifficulty()}
	if base.Difficulty, err = fileCfg.Game.Apply(base.Difficulty); err != nil {
		return prefs.Prefs{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if fileCfg.Player.Name != nil {
		base.PlayerName = strings.TrimSpace(*fileCfg.Player.Name)
	}
	return base, nil
}

func newGenerator(seed int64) *generator.Generator {
	if seed != 0 {
		return generator.NewWithSeed(seed)
	}
	return generator.New()
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	path := env.ConfigPath
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

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Validate and save player name and difficulty",
		Args:  cobra.NoArgs,
		RunE:  runSettingsCmd,
	}
	settingsFlags.register(cmd)
	return cmd
}

func runSettingsCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	base, err := loadFileDefaults(env.ConfigPath)
	if err != nil {
		return err
	}
	st, err := store.Open(env.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	p, err := prefs.LoadOver(ctx, st, base)
	if err != nil {
		logErrf("some preferences could not be read, using defaults: %v\n", err)
	}
	if _, err := settingsFlags.apply(cmd, &p); err != nil {
		return err
	}
	if err := prefs.SaveSettings(ctx, st, p.PlayerName, p.Difficulty); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return printSettings(cmd.OutOrStdout(), p)
}

func printSettings(w io.Writer, p prefs.Prefs) error {
	player := p.PlayerName
	if player == "" {
		player = "-"
	}
	lines := []string{
		fmt.Sprintf("Player:     %s", player),
		fmt.Sprintf("Difficulty: %s", prefs.Label(p.Difficulty)),
		fmt.Sprintf("Problems:   %d", p.Difficulty.ProblemCount),
		fmt.Sprintf("Decoys:     %d", p.Difficulty.DecoyCount),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newBadgesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "badges",
		Short: "Show the badge catalog and earned badges",
		Args:  cobra.NoArgs,
		RunE:  runBadgesCmd,
	}
}

func runBadgesCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	st, err := store.Open(env.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	p, err := prefs.Load(ctx, st)
	if err != nil {
		logErrf("some preferences could not be read: %v\n", err)
	}
	return stats.RenderBadges(cmd.OutOrStdout(), p.EarnedBadges)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsPlayer, "player", "", "player filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N games")
	cmd.Flags().IntVar(&statsWindow, "window", defaultStatsWindow, "moving average window")
	cmd.Flags().BoolVar(&statsText, "text", false, "print a plain text report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := statsConfig(statsPlayer, statsSince, statsLast, statsWindow)
	if err != nil {
		return err
	}
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	st, err := store.Open(env.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	if statsText || !term.IsTerminal(int(os.Stdout.Fd())) {
		return printStats(cmd.OutOrStdout(), st, cfg)
	}
	program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func statsConfig(player, since string, last, window int) (model.StatsConfig, error) {
	if last < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if window < 1 {
		return model.StatsConfig{}, fmt.Errorf("--window must be >= 1")
	}
	var sinceTime *time.Time
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	return model.StatsConfig{
		Player: strings.TrimSpace(player),
		Since:  sinceTime,
		Last:   last,
		Window: window,
	}, nil
}

func printStats(w io.Writer, src stats.Source, cfg model.StatsConfig) error {
	report, err := stats.BuildReport(context.Background(), src, cfg)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	if err := stats.RenderSummary(w, report.Games, cfg.Window); err != nil {
		return err
	}
	if err := stats.RenderCurves(w, report.Games, cfg.Window, 0, textPlotHeight, true); err != nil {
		return err
	}
	return stats.RenderHistory(w, report.Games, defaultHistoryRows)
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase preferences, badges and game history",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVar(&resetYes, "yes", false, "confirm the reset")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	if !resetYes {
		return fmt.Errorf("refusing to reset without --yes")
	}
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	st, err := store.Open(env.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	ctx := context.Background()
	if err := errors.Join(st.Clear(ctx), st.ClearGames(ctx)); err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), "Progress reset."); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func defaultConfigTemplate() string {
	d := prefs.DefaultDifficulty()
	return fmt.Sprintf(`# tuibonds configuration
# Uncomment a value to enable it. Saved settings and CLI flags override config values.

[player]
# name = "Ada"            # Player name shown in the game and history

[game]
# preset = "easy"         # beginner|easy|medium|hard|expert, applied before the values below
# min = %d                 # Smallest operand (>= 1)
# max = %d                # Largest operand (> min)
# operands = %d            # Operands per problem (%d-%d)
# problems = %d            # Problems per round (%d-%d)
# decoys = %d              # Extra answer tiles that match no problem
# ops = ["addition"]      # addition, subtraction, multiplication, division
`,
		d.MinNumber,
		d.MaxNumber,
		d.OperandCount, prefs.MinOperands, prefs.MaxOperands,
		d.ProblemCount, prefs.MinProblems, prefs.MaxProblems,
		d.DecoyCount,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
