package main

import (
	"fmt"

	"github.com/danmuck/compositectl/internal/config"
	"github.com/danmuck/compositectl/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var configPath string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP inspection service",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := config.DefaultServerConfig()
			if configPath != "" {
				loaded, err := config.LoadServerConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
				log.Info().Str("path", configPath).Msg("loaded server config")
			}
			inspector := server.Appear(cfg)
			if err := inspector.Serve(); err != nil {
				log.Error().Err(err).Msg("inspector stopped")
				return err
			}
			return nil
		},
	}

	c.Flags().StringVarP(&configPath, "config", "c", "", "server config file (TOML)")
	return c
}

func configCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Write or validate config files",
	}

	var (
		kind   string
		output string
		force  bool
	)
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config template",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.WriteTemplate(output, kind, force); err != nil {
				return err
			}
			cmd.Printf("Wrote %s config template to %s\n", kind, output)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&kind, "kind", "k", "server", "config kind: server|cli")
	initCmd.Flags().StringVarP(&output, "output", "o", "compositectl.toml", "output path")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	var (
		validateKind string
		input        string
	)
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			switch validateKind {
			case "server":
				_, err = config.LoadServerConfig(input)
			case "cli":
				_, err = loadCLIConfig(input)
			default:
				return fmt.Errorf("unknown config kind: %s", validateKind)
			}
			if err != nil {
				return err
			}
			cmd.Printf("Validated %s config at %s\n", validateKind, input)
			return nil
		},
	}
	validateCmd.Flags().StringVarP(&validateKind, "kind", "k", "server", "config kind: server|cli")
	validateCmd.Flags().StringVarP(&input, "input", "i", "compositectl.toml", "config path")

	c.AddCommand(initCmd, validateCmd)
	return c
}
