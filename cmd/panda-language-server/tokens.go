package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/PallasUI/panda-vscode-pallas/internal/panda"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newTokensCommand() *cobra.Command {
	var (
		root         string
		designTokens bool
	)

	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Summarize the tokens of a Panda project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := panda.Load(afero.NewOsFs(), root, panda.LoadOptions{DesignTokensConfig: designTokens})
			if ctx == nil {
				return err
			}
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			return writeTokenSummary(cmd.OutOrStdout(), ctx)
		},
	}
	cmd.Flags().StringVarP(&root, "root", "r", ".", "project root")
	cmd.Flags().BoolVar(&designTokens, "design-tokens-config", true, "also import files listed in .config/design-tokens")
	return cmd
}

func writeTokenSummary(w io.Writer, ctx *panda.Context) error {
	config := ctx.Config.Path
	if config == "" {
		config = "(preset only)"
	}
	fmt.Fprintf(w, "config: %s\n", config)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tTOKENS")
	for _, category := range ctx.Tokens.Categories() {
		fmt.Fprintf(tw, "%s\t%d\n", category, len(ctx.Tokens.Category(category)))
	}
	fmt.Fprintf(tw, "total\t%d\n", ctx.Tokens.Len())
	return tw.Flush()
}
