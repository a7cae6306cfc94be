// Command abbrjson merges plain-text abbreviation glossaries into a single
// structured dictionary.
//
// Usage:
//
//	abbrjson [flags] OUT.json IN1.txt [IN2.txt ...]
//
// Each input line holds an abbreviation and its meaning separated by a tab or
// by two or more spaces. Inputs are merged in the order given. Files whose
// name contains "lang" are treated as language-name lists.
//
// Flags:
//
//	--config            path to YAML config file
//	--format            output format, json or yaml (default: json)
//	--report-malformed  log the number of unparseable lines per file
//	--version           print version and exit
//
// Only LOG_LEVEL and LOG_FORMAT are read from the environment. Output
// settings come from --config and the flags.
//
// Exit codes: 0 = success, 1 = error, 2 = usage error.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gorsicleo/hjp-tools/internal/app"
	"github.com/gorsicleo/hjp-tools/internal/app/glossary"
	"github.com/gorsicleo/hjp-tools/internal/config"
	"github.com/gorsicleo/hjp-tools/internal/domain"
	"github.com/gorsicleo/hjp-tools/pkg/ctxutil"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath      string
	format          string
	reportMalformed bool
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, domain.ErrUsage):
		fmt.Fprintf(stderr, "%v\n%s", err, cmd.UsageString())
		return exitUsage
	default:
		fmt.Fprintf(stderr, "abbrjson: %v\n", err)
		return exitError
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "abbrjson OUT.json IN1.txt [IN2.txt ...]",
		Short: "Merge abbreviation glossaries into one dictionary",
		Long: `abbrjson reads tab- or multi-space-delimited "abbreviation  meaning" lists
and writes a single {"abbr": {...}} document classifying every abbreviation
as a relation marker, a language name or a generic label.`,
		Version:       app.BuildVersion(),
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 2 {
				return domain.NewUsageError("need an output path and at least one input (got %d arguments)", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd.Context(), cmd, opts, args[0], args[1:])
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return domain.NewUsageError("%v", err)
	})

	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: json or yaml")
	cmd.Flags().BoolVar(&opts.reportMalformed, "report-malformed", false, "log unparseable line counts per file")

	return cmd
}

func generate(ctx context.Context, cmd *cobra.Command, opts options, out string, inputs []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	// CLI flags override config.
	if cmd.Flags().Changed("format") {
		cfg.Glossary.Format = opts.format
	}
	if opts.reportMalformed {
		cfg.Glossary.ReportMalformed = true
	}

	format, err := glossary.ParseFormat(cfg.Glossary.Format)
	if err != nil {
		return err
	}

	logger := app.NewLogger(cfg.Log)
	logger.Debug("starting", slog.String("version", app.BuildVersion()), slog.Int("inputs", len(inputs)))

	ctx = ctxutil.WithRunID(ctx, uuid.New())
	pipeline := glossary.NewPipeline(logger, glossary.RulesFromConfig(cfg.Glossary), cfg.Glossary.ReportMalformed)
	result, err := pipeline.Run(ctx, inputs)
	if err != nil {
		return err
	}

	if err := glossary.Write(out, result.Table, format, cfg.Glossary.Indent); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s with %d entries\n", out, result.Table.Len())
	return nil
}
