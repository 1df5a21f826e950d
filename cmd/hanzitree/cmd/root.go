// Package cmd contains all CLI commands for the hanzitree tool.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/f3rmion/hanzitree/internal/config"
	"github.com/f3rmion/hanzitree/internal/engine"
	"github.com/f3rmion/hanzitree/internal/logging"
	"github.com/f3rmion/hanzitree/internal/store"
)

// app carries the state shared by one command invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	json    bool

	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
}

// Execute builds the command tree and runs it against os.Args.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: "+err.Error()))
		return err
	}
	return nil
}

// NewRootCmd returns the hanzitree command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "hanzitree",
		Short: "Explore how Chinese characters are built from each other",
		Long: `hanzitree navigates a read-only corpus of Chinese characters and their
decomposition into at most two components.

Starting from any character you can:
  - look it up by grapheme or U+ codepoint
  - grow it into the characters that contain it (left, right, above, below,
    surrounding or overlaid)
  - see which growth directions lead anywhere at all
  - search by pronunciation or meaning

The corpus is built once with 'hanzitree import' and never written again.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.config/hanzitree/config.yaml)")
	flags.String("database", "", "corpus database path")
	flags.String("log-mode", "", "log preset: dev or prod")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.BoolVar(&a.json, "json", false, "print results as JSON")

	a.v.BindPFlag("database", flags.Lookup("database"))
	a.v.BindPFlag("log.mode", flags.Lookup("log-mode"))
	a.v.BindPFlag("log.level", flags.Lookup("log-level"))

	root.AddCommand(
		newLookupCmd(a),
		newRandomCmd(a),
		newGrowCmd(a),
		newAvailabilityCmd(a),
		newSearchCmd(a),
		newStartsCmd(a),
		newImportCmd(a),
		newCheckCmd(a),
		newInitCmd(a),
	)
	// PostRun hooks are skipped when RunE fails; the store must close anyway.
	for _, c := range root.Commands() {
		run := c.RunE
		c.RunE = func(cmd *cobra.Command, args []string) error {
			defer a.teardown()
			return run(cmd, args)
		}
	}
	return root
}

// setup reads config from defaults, the config file, HANZITREE_* variables
// and flags, in increasing priority, then builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	dir, err := config.GetConfigDir()
	if err != nil {
		return fmt.Errorf("finding config directory: %w", err)
	}
	config.SetDefaults(a.v, dir)

	a.v.SetEnvPrefix("HANZITREE")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(dir)
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// init writes the file --config names, so it may not exist yet.
		missingOK := errors.As(err, &notFound) || (cmd.Name() == "init" && os.IsNotExist(err))
		if !missingOK {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return err
	}
	a.logger = logger
	if path := a.v.ConfigFileUsed(); path != "" {
		a.logger.Debug("config loaded", zap.String("file", path))
	}
	return nil
}

func (a *app) teardown() {
	if a.store != nil {
		a.store.Close()
		a.store = nil
	}
	if a.logger != nil {
		a.logger.Sync()
	}
}

// engine opens the corpus read-only and checks that it holds records
// before any query runs.
func (a *app) engine(ctx context.Context) (*engine.Engine, error) {
	s, err := store.Open(ctx, a.cfg.Database)
	if err != nil {
		return nil, err
	}
	n, err := s.Count(ctx)
	if err != nil {
		s.Close()
		return nil, err
	}
	a.logger.Info("corpus opened", zap.String("database", a.cfg.Database), zap.Int("characters", n))
	a.store = s

	return engine.New(s,
		engine.WithLogger(a.logger),
		engine.WithSearchLimits(a.cfg.Search.DefaultLimit, a.cfg.Search.MaxLimit),
	), nil
}
