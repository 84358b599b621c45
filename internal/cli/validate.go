package cli

import (
	"fmt"

	"github.com/editor-extensions/extgen/internal/descriptor"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate an extension descriptor against the schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		result, err := descriptor.ValidateFile(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !result.Valid {
			fmt.Fprintf(out, "%s %s\n", color.RedString("✗"), path)
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "  %s\n", issue)
			}
			return fmt.Errorf("%s has %d validation issue(s)", path, len(result.Issues))
		}

		fmt.Fprintf(out, "%s %s is valid\n", color.GreenString("✓"), path)
		return nil
	},
}
