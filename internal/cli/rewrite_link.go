package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prooflib/declgen/internal/linkrewrite"
)

// rewriteLinkCmd represents the rewrite-link command
var rewriteLinkCmd = &cobra.Command{
	Use:   "rewrite-link <url>",
	Short: "Rewrite a source link to its pinned-commit form",
	Long: `Rewrite-link applies the same mapping the documentation website's
browser snippet uses: links under the unpinned branch prefix are redirected
to the commit the export was generated from; everything else passes through
unchanged.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), linkrewrite.Rewrite(args[0]))
	},
}

func init() {
	rootCmd.AddCommand(rewriteLinkCmd)
}
