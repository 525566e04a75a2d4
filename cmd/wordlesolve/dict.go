package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordlesolve/internal/config"
	"github.com/verte-zerg/wordlesolve/internal/solver"
	"github.com/verte-zerg/wordlesolve/internal/wordlist"
)

var (
	dictOut   string
	dictForce bool
)

func newDictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Manage the solver dictionary",
	}
	importCmd := &cobra.Command{
		Use:   "import SRC",
		Short: "Normalize a word list into a five-letter dictionary",
		Args:  cobra.ExactArgs(1),
		RunE:  runDictImportCmd,
	}
	importCmd.Flags().StringVar(&dictOut, "out", "", "output path (default: "+config.DefaultDictPath()+")")
	importCmd.Flags().BoolVar(&dictForce, "force", false, "overwrite an existing dictionary")
	cmd.AddCommand(importCmd)
	return cmd
}

func runDictImportCmd(_ *cobra.Command, args []string) error {
	raw, err := wordlist.LoadWords(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	words := wordlist.Prepare(raw, wordlist.FilterForLength(solver.WordLength))
	if len(words) == 0 {
		return fmt.Errorf("%s has no %d-letter words", args[0], solver.WordLength)
	}

	outPath := resolveDictPath(dictOut)
	if !dictForce {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("dictionary already exists: %s (use --force to overwrite)", outPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat dictionary: %w", err)
		}
	}
	if err := writeWordList(outPath, words); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	logErrf("Wrote %d of %d words to %s\n", len(words), len(raw), outPath)
	return nil
}

func writeWordList(path string, words []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create dictionary dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "words-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp dictionary: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, word := range words {
		if _, err := fmt.Fprintln(writer, word); err != nil {
			return fmt.Errorf("failed to write dictionary: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush dictionary: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close dictionary: %w", err)
	}
	return os.Rename(tmpPath, path)
}
