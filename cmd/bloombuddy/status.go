package bloombuddy

import (
	"fmt"

	"github.com/ipergamali/BloomBuddy/internal/service"
	"github.com/spf13/cobra"
)

var statusWater bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the plant's stage, age and health",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlant(cmd, func(s *session) error {
			growth := s.cfg.Growth()
			snap := service.Tend(s.store, growth, s.now, statusWater, s.logger)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Stage: %s (%d of %d)\n", snap.Stage, snap.StageIndex+1, len(growth.Stages))
			fmt.Fprintf(out, "Day: %d\n", snap.Day)
			fmt.Fprintf(out, "Days idle: %d\n", snap.DaysIdle)
			if snap.IsWilted {
				fmt.Fprintln(out, "Health: wilted (water me!)")
			} else {
				fmt.Fprintln(out, "Health: healthy")
			}
			if next := snap.StageIndex + 1; next < len(growth.Stages) {
				fmt.Fprintf(out, "Next stage: %s on day %d\n", growth.Stages[next].Name, growth.Stages[next].MinDay)
			}
			fmt.Fprintf(out, "Image: %s\n", snap.Image)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusWater, "water", false, "Water the plant first")
}
