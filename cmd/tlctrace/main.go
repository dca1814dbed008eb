package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/modelcheck/tlctrace/pkgs/errors"
)

// Exit code contract. The downstream test generator keys off these, so they
// are part of the tool's public interface.
const (
	ExitSuccess         = 0
	ExitNoTrace         = 1
	ExitIOError         = 2
	ExitInvalidDocument = 3
	ExitStrictWarnings  = 4
)

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "tlctrace [input-file]",
		Short: "Extract TLC counterexample traces as JSON",
		Long: `tlctrace reads TLC model checker console output and reconstructs the
counterexample trace as a JSON document for downstream test generation.

Input comes from a file argument, from '-', or from piped stdin.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.spec, "spec", "s", "Unknown", "Name of the TLA+ specification")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "Output file (default: stdout)")
	rootCmd.PersistentFlags().BoolVar(&opts.validate, "validate", false, "Validate the emitted document against the trace schema")
	rootCmd.PersistentFlags().BoolVar(&opts.strict, "strict", false, "Treat extraction warnings as failures")
	rootCmd.PersistentFlags().StringArrayVar(&opts.vars, "var", nil, "Keep only the named variable (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress warnings on stderr")

	watchCmd := &cobra.Command{
		Use:   "watch <input-file>",
		Short: "Re-emit the trace document whenever the checker log changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), opts, args[0])
		},
	}

	hashCmd := &cobra.Command{
		Use:   "hash [input-file]",
		Short: "Print the canonical fingerprint of the extracted trace",
		Long: `hash prints the hex SHA-256 of the trace's canonical CBOR form.
Identical counterexamples from different checker runs hash identically,
which makes the fingerprint usable for deduplication across runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHash(opts, args)
		},
	}

	rootCmd.AddCommand(watchCmd, hashCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps typed errors onto the exit code contract.
func exitCode(err error) int {
	switch {
	case errors.IsErrorType(err, errors.ErrNoTraceFound):
		return ExitNoTrace
	case errors.IsErrorType(err, errors.ErrInputRead),
		errors.IsErrorType(err, errors.ErrOutputWrite),
		errors.IsErrorType(err, errors.ErrWatchFailed):
		return ExitIOError
	case errors.IsErrorType(err, errors.ErrDocumentInvalid),
		errors.IsErrorType(err, errors.ErrDocumentEncode):
		return ExitInvalidDocument
	case errors.IsErrorType(err, errors.ErrStrictMode):
		return ExitStrictWarnings
	default:
		return ExitNoTrace
	}
}

// newLogger builds the stderr logger. Debug level is gated by the
// TLCTRACE_DEBUG environment variable; --quiet drops everything below error.
func newLogger(quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("TLCTRACE_DEBUG") != "" {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove timestamp for cleaner output
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
