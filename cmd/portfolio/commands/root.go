// ABOUTME: Root command and global flags for the portfolio CLI
// ABOUTME: Wires every subcommand and enforces --verbose/--quiet exclusivity
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
█▀█ █▀█ █▀█ ▀█▀ █▀▀ █▀█ █   █ █▀█
█▀▀ █▄█ █▀▄  █  █▀  █▄█ █▄▄ █ █▄█`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Portfolio backend: content API and RAG chat",
		Long: banner + `

Portfolio backend serving projects and certificates over HTTP,
with admin-only writes and a chat endpoint that answers in the
owner's voice using retrieval-augmented generation.

Configuration comes from environment variables (and .env).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch outputFormat {
			case "auto", "text", "json":
				return nil
			default:
				return fmt.Errorf("invalid --format %q (want auto, text, or json)", outputFormat)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors and suppress summaries")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, text, or json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewServeCmd(),
		NewAskCmd(),
		NewListCmd(),
		NewEmbedCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
