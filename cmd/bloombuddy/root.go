package bloombuddy

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ipergamali/BloomBuddy/internal/service"
	"github.com/spf13/cobra"
)

var (
	dataPath   string
	storeKind  string
	configPath string
	nowDate    string
	verbose    bool
	waterFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "bloombuddy",
	Short: "bloombuddy grows a virtual plant as you show up each day",
	Long: "bloombuddy tracks the BloomBuddy plant: each new day advances its growth, watering keeps it healthy, " +
		"and a few days of neglect wilt it. Without a subcommand it prints the plant state as JSON for the desktop widget.",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tendAndPrintJSON(cmd, waterFlag)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Path to the plant record (JSON file or SQLite database)")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "", "Record store: json or sqlite (default from config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml")
	rootCmd.PersistentFlags().StringVar(&nowDate, "date", "", "Evaluate as of date YYYY-MM-DD (default today)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.Flags().BoolVar(&waterFlag, "water", false, "Water the plant before reporting its state")
}

// tendAndPrintJSON is the widget contract: it always prints a payload.
func tendAndPrintJSON(cmd *cobra.Command, watered bool) error {
	return withPlant(cmd, func(s *session) error {
		snap := service.Tend(s.store, s.cfg.Growth(), s.now, watered, s.logger)
		return json.NewEncoder(cmd.OutOrStdout()).Encode(snap)
	})
}
