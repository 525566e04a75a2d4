// Package main provides the CLI entrypoint for wordlesolve.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordlesolve/internal/config"
	"github.com/verte-zerg/wordlesolve/internal/model"
	"github.com/verte-zerg/wordlesolve/internal/protocol"
	"github.com/verte-zerg/wordlesolve/internal/solver"
	"github.com/verte-zerg/wordlesolve/internal/store"
	"github.com/verte-zerg/wordlesolve/internal/tui"
	"github.com/verte-zerg/wordlesolve/internal/wordlist"
)

const defaultTieBreak = "first"

var (
	playDict     string
	playTieBreak string
	playTUI      bool
	playNoSave   bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordlesolve",
		Short:         "Wordle solver and benchmark harness",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}
	addPlayFlags(rootCmd)

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Solve interactively; you answer each guess with _gy feedback",
		Args:  cobra.NoArgs,
		RunE:  runPlayCmd,
	}
	addPlayFlags(playCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(newBenchCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newDictCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&playDict, "dict", "", "dictionary path (default: "+config.DefaultDictPath()+")")
	cmd.Flags().StringVar(&playTieBreak, "tie-break", defaultTieBreak, "guess tie-break: first or lexical")
	cmd.Flags().BoolVar(&playTUI, "tui", false, "use the full-screen tiles interface")
	cmd.Flags().BoolVar(&playNoSave, "no-save", false, "do not record the game")
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "dict", &playDict, fileCfg.Solver.Dict)
	applyStringConfig(cmd, "tie-break", &playTieBreak, fileCfg.Solver.TieBreak)

	cfg := model.PlayConfig{
		DictPath: resolveDictPath(playDict),
		TieBreak: playTieBreak,
		TUI:      playTUI,
		Save:     !playNoSave,
	}
	tie, err := solver.ParseTieBreak(cfg.TieBreak)
	if err != nil {
		return fmt.Errorf("invalid --tie-break: %w", err)
	}
	dict, err := wordlist.LoadDictionary(cfg.DictPath, solver.WordLength)
	if err != nil {
		return dictLoadError(cfg.DictPath, err)
	}
	session, err := solver.NewSession(dict, solver.WithTieBreak(tie))
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	var st *store.Store
	if cfg.Save {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	if cfg.TUI {
		return runTUI(cmd, session, st)
	}

	startedAt := time.Now()
	console := protocol.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
	out, err := session.Run(cmd.Context(), console)
	if errors.Is(err, io.EOF) {
		logErrln("input closed; game aborted")
		out.Aborted = true
		err = nil
	}
	if st != nil {
		saveGame(cmd.Context(), st, model.GameRecord{
			StartedAt: startedAt,
			EndedAt:   time.Now(),
			Answer:    out.Answer,
			Rounds:    out.Rounds,
			Aborted:   out.Aborted || out.Answer == "",
		})
	}
	return err
}

func runTUI(cmd *cobra.Command, session *solver.Session, st *store.Store) error {
	var saver tui.GameSaver
	if st != nil {
		saver = st
	}
	m := tui.NewModel(session, saver)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if err := m.Err(); err != nil {
		return err
	}
	if out := m.Outcome(); out.Answer != "" {
		if _, err := io.WriteString(cmd.OutOrStdout(), protocol.FormatAnswer(out.Answer)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func saveGame(ctx context.Context, st *store.Store, game model.GameRecord) {
	// The game is recorded even when ctx was cancelled mid-session.
	ctx = context.WithoutCancel(ctx)
	if _, err := st.InsertGame(ctx, game); err != nil {
		logErrf("failed to save game: %v\n", err)
	}
}

func resolveDictPath(path string) string {
	if strings.TrimSpace(path) == "" {
		return config.DefaultDictPath()
	}
	return path
}

func dictLoadError(path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load dictionary: %v", err),
		fmt.Sprintf("expected dictionary at: %s", path),
		"Import one with: wordlesolve dict import <word-list>",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

// applyNegatedBoolConfig maps a positive config key onto a --no-* flag.
func applyNegatedBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = !*value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
