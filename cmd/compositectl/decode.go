package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/compositectl/internal/composite"
	"github.com/danmuck/compositectl/internal/view"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func decodeCmd() *cobra.Command {
	var (
		configPath string
		file       string
		flags      cliConfig
	)

	c := &cobra.Command{
		Use:   "decode [input]",
		Short: "Decode one column name given as an argument, a file, or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := defaultCLIConfig()
			if configPath != "" {
				loaded, err := loadCLIConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("encoding") {
				cfg.Encoding = flags.Encoding
			}
			if cmd.Flags().Changed("dynamic") {
				cfg.Dynamic = flags.Dynamic
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = flags.Format
			}
			if err := validateCLIConfig(cfg); err != nil {
				return err
			}

			raw, err := readInput(cmd, args, file)
			if err != nil {
				return err
			}
			buf := raw
			if cfg.Encoding != encodingRaw {
				if buf, err = view.ParseInput(string(raw), cfg.Encoding); err != nil {
					return err
				}
			}

			result, err := decode(buf, cfg.Dynamic)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), result, cfg.Format)
		},
	}

	c.Flags().StringVarP(&configPath, "config", "c", "", "CLI defaults file (TOML)")
	c.Flags().StringVarP(&file, "file", "f", "", "read input from a file instead of an argument or stdin")
	c.Flags().StringVarP(&flags.Encoding, "encoding", "e", view.EncodingHex, "input encoding: hex|base64|raw")
	c.Flags().BoolVarP(&flags.Dynamic, "dynamic", "d", false, "decode as a dynamic composite")
	c.Flags().StringVarP(&flags.Format, "format", "o", formatText, "output format: text|json")
	return c
}

func readInput(cmd *cobra.Command, args []string, file string) ([]byte, error) {
	switch {
	case len(args) == 1 && file != "":
		return nil, fmt.Errorf("give input as an argument or --file, not both")
	case len(args) == 1:
		return []byte(args[0]), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read input file: %w", err)
		}
		return data, nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
}

func decode(buf []byte, dynamic bool) (view.Result, error) {
	d := composite.NewDecoder(composite.Limits{}, composite.WithLogger(log.Logger))
	if dynamic {
		out, err := d.Dynamic(buf)
		if err != nil {
			return view.Result{}, err
		}
		return view.FromDynamic(out), nil
	}
	out, err := d.Composite(buf)
	if err != nil {
		return view.Result{}, err
	}
	return view.FromComposite(out), nil
}

func writeResult(w io.Writer, result view.Result, format string) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return result.WriteText(w)
}
