package cli

import (
	"github.com/editor-extensions/extgen/internal/generator"
	"github.com/editor-extensions/extgen/internal/ui"
	"github.com/spf13/cobra"
)

var (
	statusConfig string
	statusRepo   string
)

func init() {
	statusCmd.Flags().StringVarP(&statusConfig, "config", "c", "", "Path to the extension descriptor")
	statusCmd.Flags().StringVar(&statusRepo, "repo", ".", "Root of the editor-extensions checkout")
	_ = statusCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which shared files still need to be patched for an extension",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(statusConfig, statusRepo, "")
		if err != nil {
			return err
		}
		outcomes, err := generator.Status(opts)
		if err != nil {
			return err
		}
		ui.New(cmd.OutOrStdout()).Status(outcomes)
		return nil
	},
}
