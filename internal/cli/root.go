package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stwalsh4118/neowatch/internal/database"
	"github.com/stwalsh4118/neowatch/internal/ingest"
	"github.com/stwalsh4118/neowatch/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "neowatch",
	Short: "Explore near-Earth objects and their close approaches",
	Long: "Neowatch loads NASA's small-body and close-approach datasets into an\n" +
		"in-memory database and answers lookups and filtered queries over them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("neo-csv", "data/neos.csv", "path to the NEO CSV dataset")
	rootCmd.PersistentFlags().String("cad-json", "data/cad.json", "path to the close-approach JSON dataset")
}

func initConfig() {
	viper.SetEnvPrefix("NEOWATCH")
	viper.AutomaticEnv()

	_ = viper.BindPFlag("neo_csv", rootCmd.PersistentFlags().Lookup("neo-csv"))
	_ = viper.BindPFlag("cad_json", rootCmd.PersistentFlags().Lookup("cad-json"))
}

// loadDatabase reads both dataset files and builds the in-memory database.
func loadDatabase() (*database.Database, error) {
	neoPath := viper.GetString("neo_csv")
	cadPath := viper.GetString("cad_json")

	neos, err := ingest.LoadNeos(neoPath)
	if err != nil {
		return nil, fmt.Errorf("loading NEOs from %s: %w", neoPath, err)
	}

	approaches, err := ingest.LoadApproaches(cadPath)
	if err != nil {
		return nil, fmt.Errorf("loading close approaches from %s: %w", cadPath, err)
	}

	return database.New(neos, approaches, logger.New("production"))
}
