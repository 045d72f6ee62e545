package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/codalotl/udiff/internal/render"
	"github.com/codalotl/udiff/internal/simplelogger"
	"github.com/codalotl/udiff/internal/udiff"
	"github.com/spf13/cobra"
)

// Version is the udiff version. It is a var (not a const) so build tooling can override it (for example via `-ldflags "-X .../internal/cli.Version=1.2.3"`).
var Version = "0.3.0"

// Out/Err override standard I/O. If nil, defaults are used. Overriding is useful for testing.
type RunOptions struct {
	Out io.Writer
	Err io.Writer
}

// Run runs the CLI with args (typically you'd use os.Args).
//
// It returns a recommended exit code (0, 1, or 2) and an error, if any:
//   - 0 -> err == nil
//   - 1 -> err != nil, an input couldn't be read or output couldn't be written. Also returned with --exit-code when the inputs differ.
//   - 2 -> err != nil, args parse error, misuse of flags, or invalid configuration.
//
// Note that in cases of errors, Run has already displayed an error message to opts.Err || Stderr. Callers may use os.Exit with the exit code.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}

	var out io.Writer = os.Stdout
	var errW io.Writer = os.Stderr
	if opts != nil {
		if opts.Out != nil {
			out = opts.Out
		}
		if opts.Err != nil {
			errW = opts.Err
		}
	}

	root := newRootCommand()
	root.SetArgs(argv)
	root.SetOut(out)
	root.SetErr(errW)

	err := root.Execute()
	code := exitCode(err)
	if err == nil {
		return code, nil
	}

	var usageErr UsageError
	var exitErr ExitError
	switch {
	case errors.As(err, &usageErr):
		fmt.Fprintf(errW, "udiff: %s\n\n%s", usageErr.Message, root.UsageString())
	case errors.As(err, &exitErr) && exitErr.Err == nil:
		// Silent exit code; nothing to report.
	default:
		fmt.Fprintf(errW, "udiff: %v\n", err)
	}
	simplelogger.Debug("exiting", "code", code, "err", err)
	return code, err
}

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "udiff [flags] FILE1 FILE2",
		Short: "Stream a unified diff of two large files",
		Long: `udiff compares FILE1 and FILE2 line by line and writes a unified diff to stdout.

Both files are read sequentially with bounded memory, so udiff can compare files far larger than RAM (database dumps, logs). When lines diverge, udiff looks
at most --lookahead lines ahead on each side for a match; differences that can't be resynchronized within that window are shown as substitutions.

gzip and zstd inputs are decompressed transparently.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return usageErrorf("expected 2 arguments (FILE1 FILE2), got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, configPath)
			if err != nil {
				return err
			}
			return runDiff(cmd.OutOrStdout(), cfg, args[0], args[1])
		},
	}

	defaults := defaultConfig()
	flags := cmd.Flags()
	flags.IntP("context", "U", defaults.Context, "lines of context around each change")
	flags.Int("lookahead", defaults.Lookahead, "max lines searched ahead on each side to resynchronize after a difference")
	flags.String("color", defaults.Color, "colorize output: auto, always, or never")
	flags.Bool("exact", defaults.Exact, "compute a minimal diff in memory when both inputs are at most --exact-limit bytes")
	flags.Int64("exact-limit", defaults.ExactLimit, "max decompressed input size, in bytes, for --exact")
	flags.Bool("decompress", defaults.Decompress, "transparently decompress gzip and zstd inputs")
	flags.Bool("exit-code", defaults.ExitCode, "exit with status 1 if the files differ")
	flags.StringVar(&configPath, "config", "", "config file (default ~/.udiff/config.json)")
	flags.SortFlags = false

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return UsageError{Message: err.Error()}
	})

	return cmd
}

func runDiff(out io.Writer, cfg Config, oldPath, newPath string) error {
	// validateConfig already checked the color mode.
	color, _ := render.ParseColorMode(cfg.Color)

	res, err := udiff.Run(udiff.Options{
		OldPath:      oldPath,
		NewPath:      newPath,
		MaxContext:   cfg.Context,
		MaxLookahead: cfg.Lookahead,
		Color:        color.Enabled(out),
		Exact:        cfg.Exact,
		ExactLimit:   cfg.ExactLimit,
		Decompress:   cfg.Decompress,
	}, out)
	if err != nil {
		return err
	}
	if cfg.ExitCode && res.Changed {
		return errDifferencesFound
	}
	return nil
}
