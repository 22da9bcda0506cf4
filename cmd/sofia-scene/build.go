package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxygene76/sofia-scene/internal/config"
	"github.com/oxygene76/sofia-scene/pkg/scene"
	"github.com/oxygene76/sofia-scene/pkg/sofialeg"
)

func initCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default scene configuration",
		Long: `Write the default configuration: the two leg demo scene with the
SoftRobots header. Edit the file and run build.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			path := a.configPath()

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}

			if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
				return err
			}
			a.logger.Info("configuration written", "path", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to: %s\n", path)
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "overwrite an existing config file")
	return cmd
}

// assemble builds and validates the configured scene
func (a *app) assemble() (*scene.Node, []*sofialeg.Leg, error) {
	so, err := a.cfg.SceneOptions()
	if err != nil {
		return nil, nil, err
	}

	root := scene.NewRoot()
	legs, err := sofialeg.NewBuilder(a.logger).CreateScene(root, so)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create scene: %w", err)
	}

	if err := scene.Validate(root); err != nil {
		return nil, nil, fmt.Errorf("scene has broken links: %w", err)
	}
	return root, legs, nil
}

func buildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the scene and export it",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := a.cfg.Output.Path
			format := a.cfg.Output.Format
			if cmd.Flags().Changed("output") {
				output, _ = cmd.Flags().GetString("output")
			}
			if cmd.Flags().Changed("format") {
				format, _ = cmd.Flags().GetString("format")
			}

			root, _, err := a.assemble()
			if err != nil {
				return err
			}

			var sink scene.Sink
			if output == "" || output == "-" {
				sink, err = scene.NewSink(format, cmd.OutOrStdout())
			} else {
				sink, err = scene.CreateFileSink(format, output)
			}
			if err != nil {
				return err
			}
			defer sink.Close()

			if err := scene.Export(root, sink); err != nil {
				return fmt.Errorf("failed to export scene: %w", err)
			}

			nodes, objects := scene.Count(root)
			a.logger.Info("scene exported", "output", output, "format", format, "nodes", nodes, "objects", objects)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "output file, - for stdout (default from config)")
	cmd.Flags().StringP("format", "f", "", "output format: yaml or jsonl (default from config)")
	return cmd
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Build the scene and check every link",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, legs, err := a.assemble()
			if err != nil {
				return err
			}
			nodes, objects := scene.Count(root)
			fmt.Fprintf(cmd.OutOrStdout(), "Scene OK: %d legs, %d nodes, %d objects\n", len(legs), nodes, objects)
			return nil
		},
	}
}
