package main

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dmagro/checkcoinbase/internal/config"
	"github.com/dmagro/checkcoinbase/internal/env"
	"github.com/dmagro/checkcoinbase/internal/logger"
	"github.com/dmagro/checkcoinbase/internal/node"
	"github.com/dmagro/checkcoinbase/internal/output"
	"github.com/dmagro/checkcoinbase/internal/scan"
)

type rootOptions struct {
	cfgPath   string
	cli       string
	cliArgs   []string
	verbosity int
	script    bool
	summary   bool
	noColor   bool
	logLevel  string
}

func rootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "checkcoinbase <block> | <start_block> <end_block>",
		Short: "Print the coinbase text of one or more blocks",
		Long: `Resolve each block in the range with the node CLI, fetch it with decoded
transactions and print the coinbase of its first transaction as text.

Errors on a single block are reported and the scan moves on; a node CLI
that cannot be started stops the scan.

Examples:
  checkcoinbase 0
  checkcoinbase 840000 840010
  checkcoinbase 840000 840010 --summary
  checkcoinbase 2500000 --cli-arg=-testnet --script`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, opts)
		},
	}

	cmd.SetFlagErrorFunc(flagUsageError)

	cmd.Flags().StringVar(&opts.cfgPath, "config", config.DefaultPath, "Config file path")
	cmd.Flags().StringVar(&opts.cli, "cli", "", "Node CLI executable (overrides node.command)")
	cmd.Flags().StringArrayVar(&opts.cliArgs, "cli-arg", nil, "Extra argument passed to the node CLI before the method (repeatable)")
	cmd.Flags().IntVar(&opts.verbosity, "verbosity", 2, "Block-fetch verbosity (overrides node.verbosity)")
	cmd.Flags().BoolVar(&opts.script, "script", false, "Also print the coinbase script pushes")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Print a summary table after the scan")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Diagnostic log level: debug|info|warn|error (overrides log_level)")

	return cmd
}

// negativeArg matches the flag parser's complaint about "-5" style
// arguments, e.g. "unknown shorthand flag: '5' in -5".
var negativeArg = regexp.MustCompile(`in (-[0-9]+)$`)

// flagUsageError reports flag parse failures the same way as a bad block
// range: error plus usage line on stderr, exit status 0. A negative number
// is reported as the block number it was meant to be.
func flagUsageError(cmd *cobra.Command, err error) error {
	if m := negativeArg.FindStringSubmatch(err.Error()); m != nil {
		if _, rangeErr := scan.ParseRange([]string{m[1]}); rangeErr != nil {
			err = rangeErr
		}
	}
	output.NewTerminal(cmd.OutOrStdout(), cmd.ErrOrStderr()).Usage(err)
	return nil
}

func runScan(cmd *cobra.Command, args []string, opts rootOptions) error {
	term := output.NewTerminal(cmd.OutOrStdout(), cmd.ErrOrStderr())

	if opts.noColor {
		output.DisableColors()
	}

	// Arguments are checked before anything touches the node CLI.
	r, err := scan.ParseRange(args)
	if err != nil {
		var usageErr *scan.UsageError
		if errors.As(err, &usageErr) {
			term.Usage(err)
			return nil
		}
		return err
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	for _, w := range cfg.Warnings() {
		term.Warn(w)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync()

	if !opts.noColor {
		output.SetColorMode(cfg.Output.Color)
	}

	client := node.NewClient(node.ClientConfig{
		Command:     cfg.Node.Command,
		Args:        cfg.Node.Args,
		HashMethod:  cfg.Node.HashMethod,
		BlockMethod: cfg.Node.BlockMethod,
		Verbosity:   cfg.Node.Verbosity,
	})

	scanner := scan.NewScanner(client, term, scan.Options{
		Script:       cfg.Output.Script,
		KeepOutcomes: cfg.Output.Summary,
	})

	logger.Log.Debug("starting scan",
		zap.String("cli", client.Command()),
		zap.Stringer("range", r),
		zap.Uint64("blocks", r.Len()),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sum, err := scanner.Run(ctx, r)
	if cfg.Output.Summary {
		term.Summary(sum)
	}
	if err != nil {
		return fmt.Errorf("scan aborted at block #%d: %w", r.Start+uint64(sum.Scanned), err)
	}
	return nil
}

// loadConfig reads .env and the YAML config, then applies flags that were
// set explicitly on the command line.
func loadConfig(cmd *cobra.Command, opts rootOptions) (*config.Config, error) {
	if err := env.Load(env.DefaultFile); err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.cfgPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	changed := false
	if flags.Changed("cli") {
		cfg.Node.Command = opts.cli
		changed = true
	}
	if flags.Changed("cli-arg") {
		cfg.Node.Args = append(cfg.Node.Args, opts.cliArgs...)
	}
	if flags.Changed("verbosity") {
		cfg.Node.Verbosity = opts.verbosity
		changed = true
	}
	if flags.Changed("script") {
		cfg.Output.Script = opts.script
	}
	if flags.Changed("summary") {
		cfg.Output.Summary = opts.summary
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
		changed = true
	}

	if changed {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
