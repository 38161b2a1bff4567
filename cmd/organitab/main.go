package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/organitab/internal/app"
	"github.com/nikbrunner/organitab/internal/storage"
	"github.com/nikbrunner/organitab/internal/tabs"
)

// env is what every subcommand works with. It is filled in by the root
// command's PersistentPreRunE.
type env struct {
	app      *app.App
	cfg      *storage.Config
	log      *logrus.Logger
	dataPath string
	closeKV  func() error
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		e          env
	)

	rootCmd := &cobra.Command{
		Use:   "organitab",
		Short: "Organize saved browser tabs into groups and folders",
		Long: `organitab saves browser tabs as named groups, files groups into folders,
and keeps a bookmark list and a todo list next to them.

Data Storage:
  ~/.config/organitab/store.json (or store.db with the sqlite backend)`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(configPath)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if e.closeKV != nil {
				return e.closeKV()
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $HOME/.config/organitab/config.json)")

	rootCmd.AddCommand(newGroupsCmd(&e))
	rootCmd.AddCommand(newSaveCmd(&e))
	rootCmd.AddCommand(newSaveAllCmd(&e))
	rootCmd.AddCommand(newRenameCmd(&e))
	rootCmd.AddCommand(newDeleteCmd(&e))
	rootCmd.AddCommand(newOpenCmd(&e))
	rootCmd.AddCommand(newCopyCmd(&e))
	rootCmd.AddCommand(newFolderCmd(&e))
	rootCmd.AddCommand(newBookmarkCmd(&e))
	rootCmd.AddCommand(newTodoCmd(&e))
	rootCmd.AddCommand(newExportCmd(&e))
	rootCmd.AddCommand(newImportCmd(&e))
	rootCmd.AddCommand(newSortCmd(&e))
	rootCmd.AddCommand(newCheckCmd(&e))
	rootCmd.AddCommand(newWatchCmd(&e))
	return rootCmd
}

// setup loads config, builds the logger and opens storage.
func (e *env) setup(configPath string) error {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	e.log = logger

	if configPath == "" {
		var err error
		configPath, err = storage.DefaultConfigFilePath()
		if err != nil {
			return fmt.Errorf("failed to resolve config path: %w", err)
		}
	}
	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	e.cfg = cfg

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.WithField("logLevel", cfg.LogLevel).Warn("Unknown log level, using warn")
	}

	e.dataPath = cfg.DataPath
	if e.dataPath == "" {
		e.dataPath, err = storage.DefaultDataPath(cfg.Backend)
		if err != nil {
			return fmt.Errorf("failed to resolve data path: %w", err)
		}
	}
	kv, closeKV, err := storage.Open(cfg.Backend, e.dataPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	e.closeKV = closeKV
	logger.WithFields(logrus.Fields{"backend": cfg.Backend, "path": e.dataPath}).Debug("Opened storage")

	e.app = app.New(app.Params{
		KV:     kv,
		Logger: logger,
		Source: tabs.FirefoxSource{ProfileDir: cfg.FirefoxProfile},
		Opener: tabs.NewCommandOpener(cfg.Browser),
	})
	return nil
}
