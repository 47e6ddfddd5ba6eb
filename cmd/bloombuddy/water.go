package bloombuddy

import "github.com/spf13/cobra"

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Water the plant and print its state as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tendAndPrintJSON(cmd, true)
	},
}

func init() {
	rootCmd.AddCommand(waterCmd)
}
