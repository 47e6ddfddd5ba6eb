package bloombuddy

import (
	"fmt"

	"github.com/ipergamali/BloomBuddy/internal/store"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List growth, watering and reset events (sqlite store)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyLimit <= 0 {
			return fmt.Errorf("--limit must be > 0")
		}
		return withPlant(cmd, func(s *session) error {
			if s.openErr != nil {
				return s.openErr
			}
			hs, ok := s.store.(store.HistoryStore)
			if !ok {
				return store.ErrHistoryUnsupported
			}
			events, err := hs.History(historyLimit)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No care events yet")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tKIND\tDAY\tDAY_COUNT")
			for _, ev := range events {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%d\n", ev.ID, ev.Kind, ev.Day, ev.DayCount)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum events to show")
}
