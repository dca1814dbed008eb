package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/modelcheck/tlctrace/pkgs/errors"
	"github.com/modelcheck/tlctrace/pkgs/schema"
	"github.com/modelcheck/tlctrace/pkgs/trace"
)

type options struct {
	spec     string
	output   string
	validate bool
	strict   bool
	vars     []string
	quiet    bool
}

func runParse(opts *options, args []string) error {
	logger := newLogger(opts.quiet)

	in, closeIn, err := openInput(args, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeIn() }()

	t, err := extract(in, opts, logger)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()

	return emit(out, t, opts)
}

func runHash(opts *options, args []string) error {
	logger := newLogger(opts.quiet)

	in, closeIn, err := openInput(args, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeIn() }()

	t, err := extract(in, opts, logger)
	if err != nil {
		return err
	}

	fp, err := t.Fingerprint()
	if err != nil {
		return errors.Wrap(errors.ErrDocumentEncode, "failed to fingerprint trace", err)
	}

	out, closeOut, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()

	if _, err := fmt.Fprintln(out, fp); err != nil {
		return errors.NewOutputError("failed writing fingerprint", err)
	}
	return nil
}

// extract runs the builder over the input and applies the variable filter.
func extract(in io.Reader, opts *options, logger *slog.Logger) (*trace.Trace, error) {
	t, diags, err := trace.Extract(in, opts.spec, trace.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	for _, d := range diags {
		logger.Warn("extraction warning", "line", d.Line, "detail", d.Message, "text", d.Text)
	}
	if opts.strict && len(diags) > 0 {
		return nil, errors.New(errors.ErrStrictMode,
			fmt.Sprintf("%d extraction warning(s) in strict mode", len(diags)))
	}

	for _, name := range t.FilterVariables(opts.vars...) {
		if hint := t.SuggestVariable(name); hint != "" {
			logger.Warn("unknown variable in --var filter", "name", name, "did_you_mean", hint)
		} else {
			logger.Warn("unknown variable in --var filter", "name", name)
		}
	}

	if !t.Resolved() {
		logger.Warn("trace contains unparsed raw values")
	}

	return t, nil
}

// emit serializes the trace, optionally validating the document first.
func emit(w io.Writer, t *trace.Trace, opts *options) error {
	if opts.validate {
		doc, err := t.MarshalJSON()
		if err != nil {
			return errors.Wrap(errors.ErrDocumentEncode, "failed to encode trace document", err)
		}
		if err := schema.Validate(doc); err != nil {
			return err
		}
	}
	return trace.EncodeJSON(w, t)
}

// openInput handles the three input modes: explicit stdin with '-', piped
// stdin when no file is given, or a named file.
func openInput(args []string, logger *slog.Logger) (io.Reader, func() error, error) {
	noop := func() error { return nil }

	if len(args) == 0 || args[0] == "-" {
		if len(args) == 0 && !hasPipedInput() {
			logger.Info("reading checker output from terminal; pipe TLC output or pass a file")
		}
		return os.Stdin, noop, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, errors.NewInputError(fmt.Sprintf("cannot open %s", args[0]), err)
	}
	return f, f.Close, nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.NewOutputError(fmt.Sprintf("cannot create %s", path), err)
	}
	return f, f.Close, nil
}

// hasPipedInput detects if there's data piped to stdin
func hasPipedInput() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}

	// Check if stdin is not a character device (i.e., it's piped)
	// Note: We don't check Size() > 0 because pipes may not report size correctly
	return (stat.Mode() & os.ModeCharDevice) == 0
}
