package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"graphol/config"
	"graphol/diagram"
	"graphol/editor"
	"graphol/export"
	"graphol/profile"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var configPath string
	var verbose bool

	root := &cobra.Command{
		Use:   "graphol [file]",
		Short: "Terminal editor for Graphol ontology diagrams",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer log.Sync()

			if configPath == "" {
				configPath = config.DefaultPath()
			}
			settings, err := config.Load(configPath)
			if err != nil {
				log.Warn("using default settings", zap.Error(err))
				settings = config.Default()
			}

			ed := editor.New(settings, log)
			if len(args) == 1 {
				if err := ed.Open(args[0]); err != nil {
					return err
				}
				settings.Touch(args[0])
				if err := config.Save(configPath, settings); err != nil {
					log.Warn("could not update recent files", zap.Error(err))
				}
			}

			watcher, err := config.NewWatcher(configPath, log, ed.QueueSettings)
			if err != nil {
				log.Warn("config hot reload disabled", zap.Error(err))
			} else {
				defer watcher.Close()
			}

			return ed.Run()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	root.AddCommand(checkCommand(&verbose))
	return root
}

// checkCommand validates a diagram file against the structural profile
// rules without opening the editor.
func checkCommand(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Check a diagram against the structural profile rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(*verbose)
			if err != nil {
				return err
			}
			defer log.Sync()

			scene := diagram.NewScene(config.Default().GridSize, config.Default().UndoLimit, log)
			if err := export.Load(args[0], scene); err != nil {
				return err
			}

			issues := profile.NewSweep(scene, profile.BasicRules{}).Run()
			if len(issues) == 0 {
				color.Green("%s: ok (%d nodes, %d edges)", args[0], len(scene.Nodes()), len(scene.Edges()))
				return nil
			}
			for _, issue := range issues {
				fmt.Printf("%s %s: %s\n", color.RedString("✗"), issue.EdgeID, issue.Message)
			}
			return fmt.Errorf("%d profile violation(s)", len(issues))
		},
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	// The editor owns the terminal, so interactive logs go to a file
	// rather than stderr.
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.OutputPaths = []string{"graphol.log"}
	cfg.ErrorOutputPaths = []string{"graphol.log"}
	return cfg.Build()
}
