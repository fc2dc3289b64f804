package main

import (
	"fmt"
	"os"

	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/PallasUI/panda-vscode-pallas/internal/version"
	"github.com/PallasUI/panda-vscode-pallas/lsp"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	// glsp logs through commonlog, which needs a backend
	_ "github.com/tliron/commonlog/simple"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "panda-language-server",
		Short:         "Language server for Panda CSS projects",
		Long:          "Serves hovers, completions, colors and inlay hints for Panda CSS tokens and recipes over stdio.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(log.LevelDebug)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	// Editors commonly pass --stdio; it is the only transport
	root.Flags().Bool("stdio", true, "communicate over stdin and stdout")

	root.AddCommand(newRecipesCommand(), newTokensCommand(), newVersionCommand())
	return root
}

func serve() error {
	// Keep glsp's own logging quiet unless asked for
	commonlog.Configure(0, nil)

	server, err := lsp.NewServer()
	if err != nil {
		log.Error("Failed to create LSP server: %v", err)
		return err
	}
	defer server.Close()

	if err := server.RunStdio(); err != nil {
		log.Error("Server error: %v", err)
		return err
	}
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetFullVersion())
		},
	}
}
