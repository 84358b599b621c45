package cli

import (
	"encoding/json"
	"fmt"

	"github.com/editor-extensions/extgen/internal/config"
	"github.com/editor-extensions/extgen/internal/descriptor"
	"github.com/editor-extensions/extgen/internal/render"
	"github.com/spf13/cobra"
)

var (
	contextRepo   string
	contextConfig string
)

func init() {
	contextCmd.Flags().StringVar(&contextRepo, "repo", ".", "Root of the editor-extensions checkout")
	contextCmd.Flags().StringVarP(&contextConfig, "config", "c", "", "Also resolve the template context for this descriptor")
	rootCmd.AddCommand(contextCmd)
}

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print the values templates are rendered with",
	Long: `Print the repository context (version, release tags, org and repo) as JSON.
With -c, print the full template context for that extension descriptor.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, repo, err := readRepo(contextRepo)
		if err != nil {
			return err
		}

		var v interface{} = repo
		if contextConfig != "" {
			ext, err := descriptor.LoadFile(contextConfig)
			if err != nil {
				return err
			}
			v = render.NewContext(ext, repo, config.Layout().ExtensionsDir)
		}

		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling context: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}
