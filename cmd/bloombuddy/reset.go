package bloombuddy

import (
	"fmt"

	"github.com/ipergamali/BloomBuddy/internal/service"
	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Plant a new seed, discarding the current plant",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetForce {
			return fmt.Errorf("reset discards the current plant; pass --force to confirm")
		}
		return withPlant(cmd, func(s *session) error {
			if s.openErr != nil {
				return s.openErr
			}
			snap, err := service.Reset(s.store, s.cfg.Growth(), s.now)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Planted a new %s (day %d)\n", snap.Stage, snap.Day)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Confirm discarding the current plant")
}
