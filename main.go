package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagConfig     string
	flagSource     string
	flagDest       string
	flagForce      bool
	flagRun        bool
	flagVerbose    bool
	flagNoValidate bool
	flagKeepHelper bool

	cfg    *Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "unit2spec",
	Short: "Migrate Test::Unit tests to RSpec",
	Long: `unit2spec copies test/ into spec/ with the RSpec layout and rewrites
every copied test into RSpec syntax, line by line.

Run it from the plugin directory. Constructs it cannot convert are left
as is or marked with xit; an assert_equal it cannot split stops the run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		if logger, err = newLogger(flagVerbose); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		if cfg, err = loadConfig(flagConfig); err != nil {
			return err
		}
		if flagSource != "" {
			cfg.Source = flagSource
		}
		if flagDest != "" {
			cfg.Dest = flagDest
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		workdir, err := os.Getwd()
		if err != nil {
			return err
		}
		g := newGate(os.Stdin, os.Stdout)
		g.preset = map[string]bool{cfg.ForceEnv: flagForce, cfg.RunEnv: flagRun}

		runner := newCommandRunner(cfg, workdir)
		var checker syntaxChecker
		if !flagNoValidate {
			checker = runner
		}
		return newMigrator(cfg, workdir, g, checker, runner, logger).run(cmd.Context())
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <file>...",
	Short: "Rewrite already copied files in place",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workdir, err := os.Getwd()
		if err != nil {
			return err
		}
		var checker syntaxChecker
		if !flagNoValidate {
			checker = newCommandRunner(cfg, workdir)
		}
		m := newMigrator(cfg, workdir, nil, checker, nil, logger)
		for _, name := range args {
			if err := m.converter.convertFile(cmd.Context(), m.location(name), flagKeepHelper); err != nil {
				return err
			}
		}
		return nil
	},
}

var splitCmd = &cobra.Command{
	Use:   "split <assert_equal arguments>",
	Short: "Show how assert_equal arguments are split",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		expected, actual, err := splitAssertEqual(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "expected: %s\nactual:   %s\n", expected, actual)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "YAML file overriding the default layout and commands")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log dropped lines and other details")
	pf.BoolVar(&flagNoValidate, "no-validate", false, "skip the ruby syntax check of converted files")

	f := rootCmd.Flags()
	f.StringVar(&flagSource, "source", "", "test tree to migrate (default test)")
	f.StringVar(&flagDest, "dest", "", "spec tree to create (default spec)")
	f.BoolVar(&flagForce, "force", false, "do not ask before migrating")
	f.BoolVar(&flagRun, "run", false, "run the spec suite without asking")

	convertCmd.Flags().BoolVar(&flagKeepHelper, "keep-helper", true, "rename test_helper requires instead of replacing them")

	rootCmd.AddCommand(convertCmd, splitCmd)
}

func newCommandRunner(cfg *Config, workdir string) *commandRunner {
	suite := cfg.Runner
	if !filepath.IsAbs(suite.Dir) {
		suite.Dir = filepath.Join(workdir, suite.Dir)
	}
	return &commandRunner{
		validator: cfg.Validator,
		suite:     suite,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		logger:    logger,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errDeclined) {
			fmt.Fprintln(os.Stderr, "exiting...")
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		stop()
		os.Exit(1)
	}
}
