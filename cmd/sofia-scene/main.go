package main

import (
	"fmt"
	"os"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/oxygene76/sofia-scene/internal/config"
	"github.com/oxygene76/sofia-scene/internal/logging"
)

const (
	appName = "sofia-scene"
	version = "v0.3.0"
)

// app carries what PersistentPreRunE prepared for the subcommands
type app struct {
	cfgFile  string
	logLevel string
	logJSON  bool

	cfg    *config.Config
	logger log.Logger
}

func main() {
	a := &app{}
	if err := newRootCmd(a).Execute(); err != nil {
		logger := a.logger
		if logger == nil {
			logger = log.NewLogger(os.Stderr)
		}
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Assemble soft robot leg simulation scenes",
		Long: `sofia-scene builds the scene graph of Sofia soft robot legs: FEM bodies,
box regions of interest placed with translation-rotation-scale transforms,
actuators, visual models and controllers. The scene is validated and
exported as YAML or JSON lines for the simulation host.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./sofia-scene.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "log as JSON lines")

	rootCmd.AddCommand(
		initCmd(a),
		buildCmd(a),
		validateCmd(a),
		boxCmd(a),
		transformCmd(a),
		versionCmd(),
	)

	return rootCmd
}

// setup loads the configuration and sets up the logger. Flags win over the
// config file.
func (a *app) setup(cmd *cobra.Command) error {
	level, jsonOut := a.logLevel, a.logJSON

	if cmd.Name() != "init" && cmd.Name() != "version" {
		cfg, err := config.LoadConfig(a.cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		a.cfg = cfg
		if !cmd.Flags().Changed("log-level") {
			level = cfg.Log.Level
		}
		if !cmd.Flags().Changed("log-json") {
			jsonOut = cfg.Log.JSON
		}
	}

	logger, err := logging.New(cmd.ErrOrStderr(), level, jsonOut)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) configPath() string {
	if a.cfgFile != "" {
		return a.cfgFile
	}
	return config.DefaultFile
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, version)
			return nil
		},
	}
}
