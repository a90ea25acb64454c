package main

import (
	"github.com/danmuck/compositectl/internal/observability"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "compositectl",
		Short:        "Decode composite and dynamic composite column names",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			observability.InitLogger("compositectl")
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")
	cmd.AddCommand(decodeCmd(), serveCmd(), configCmd())
	return cmd
}
