// Package cmd defines the command-line interface for locus.
package cmd

import (
	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(weightsCmd)
	rootCmd.AddCommand(criteriaCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the session subcommands to the parent session command
	sessionCmd.AddCommand(sessionSaveCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionEditCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	sessionCmd.AddCommand(sessionClearCmd)
	sessionCmd.AddCommand(sessionStatusCmd)
	sessionCmd.AddCommand(sessionMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("criteria", "", "Comma-separated criterion codes to include")
	rootCmd.PersistentFlags().String("criterion-weights", "", "Raw criterion weights as 'pillar.code:weight' pairs (e.g., 'env.co2_pc:2')")
	rootCmd.PersistentFlags().String("data", "", "Path to the entity data table (CSV)")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-criterion metadata (year, source)")
	rootCmd.PersistentFlags().String("entities", "", "Comma-separated entity ids to include")
	rootCmd.PersistentFlags().String("exclude-criteria", "", "Comma-separated criterion codes to ignore")
	rootCmd.PersistentFlags().String("exclude-entities", "", "Comma-separated entity ids to ignore")
	rootCmd.PersistentFlags().String("hierarchy", "", "Path to the hierarchy definition JSON file")
	rootCmd.PersistentFlags().String("id-column", contract.DefaultIDColumn, "Entity id column in the data table")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("names", "", "Path to the entity names JSON file")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("pillar-weights", "", "Raw pillar weights as 'id:weight' pairs (e.g., 'env:2,econ:1')")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("session", "", "Saved session id or name to merge into this run")
	rootCmd.PersistentFlags().String("strict", "", "Drop entities missing selected data before scoring (yes/no; defaults to yes)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Session store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of rankCmd to Viper
	rankCmd.Flags().Bool("explain", false, "Print per-entity weighted contribution breakdown")
	if err := viper.BindPFlags(rankCmd.Flags()); err != nil {
		contract.LogFatal("Error binding rank flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().Float64("min-coverage", contract.DefaultMinCoverage, "Required fraction of entities with data per selected criterion")
	checkCmd.Flags().Int("min-rows", contract.DefaultMinRows, "Required number of rows surviving the strict completeness drop")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of sessionMigrateCmd to Viper
	sessionMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(sessionMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding session migrate flags", err)
	}
}
