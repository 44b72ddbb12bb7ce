package cmd

import (
	"fmt"
	"strings"

	"github.com/locusproject/locus/core"
	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/internal/outwriter"
	"github.com/locusproject/locus/internal/statestore"
	"github.com/locusproject/locus/internal/tui"
	"github.com/locusproject/locus/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// sessionSetup loads minimal configuration needed for session store operations.
// This is used by commands that need store access without full shared setup.
func sessionSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize persistence with the loaded config
	if err := statestore.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	// Output knobs still apply because list/show/status render through the
	// regular writers.
	return applyOutputConfig(cfg)
}

// sessionSetupWrapper wraps sessionSetup to provide PreRunE for session commands.
func sessionSetupWrapper(_ *cobra.Command, _ []string) error {
	return sessionSetup()
}

// sessionMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func sessionMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = statestore.GetStoreDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// sessionMigrateSetupWrapper wraps sessionMigrateSetup to provide PreRunE for migrate command.
func sessionMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return sessionMigrateSetup()
}

// applyOutputConfig fills the output knobs the writers need from viper, for
// commands that skip the full validation pipeline.
func applyOutputConfig(cfg *contract.Config) error {
	output := schema.OutputMode(strings.ToLower(viper.GetString("output")))
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", output)
	}
	cfg.Output = output
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Precision = viper.GetInt("precision")
	cfg.Width = viper.GetInt("width")

	colors, err := contract.ParseBoolString(viper.GetString("color"))
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	emojis, err := contract.ParseBoolString(viper.GetString("emoji"))
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	return nil
}

// sessionCmd focused on saved session management.
//
// Note: Most session subcommands use minimal initialization (sessionSetup)
// instead of the full sharedSetup used by comparison commands. Save and edit
// are the exception because they need the hierarchy and data inputs.
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage saved comparison sessions",
	Long: `Manage saved sessions that capture comparison inputs between runs.

A session stores selections and raw weights only; rankings are recomputed
from the current data on every run, so saved sessions never go stale.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  save    - Capture the current flags under a session name
  list    - List all saved sessions
  show    - Show one session's stored inputs
  edit    - Edit a session in an interactive form
  delete  - Remove one session
  clear   - Remove all saved sessions
  status  - Show session store statistics
  migrate - Run database schema migrations

Examples:
  # Save today's weighting experiment
  locus rank data/countries.csv --pillar-weights "env:2,econ:1"
  locus session save relocation-2026 --pillar-weights "env:2,econ:1"

  # Re-rank with it later
  locus rank data/countries.csv --session relocation-2026`,
}

// sessionSaveCmd captures the current inputs under a name.
var sessionSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Capture the current selections and weights under a session name",
	Long: `Save the resolved comparison inputs as a named session.

The stored payload carries the criteria and entity selections, the raw
pillar and criterion weights, and the strict flag if set explicitly.
Saving to an existing name replaces that session's payload.

Examples:
  # Save a weighting experiment
  locus session save relocation-2026 --pillar-weights "env:2,econ:1"

  # Save a shortlist with its criteria focus
  locus session save europe-short --data examples/data/data.csv --entities "FRA,DEU,ESP" --criteria "co2_pc,gdp_pc"`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// The positional argument is the session name, not a data path.
		return sharedSetup(rootCtx, cmd, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		if cfg.StoreBackend == schema.NoneBackend {
			contract.LogFatal("Cannot save session", fmt.Errorf("session storage is disabled, set store-backend to sqlite, mysql or postgresql"))
		}
		payload, err := core.ResolveSavePayload(cfg)
		if err != nil {
			contract.LogFatal("Cannot save session", err)
		}
		id, err := statestore.Manager.GetSessionStore().SaveSession(args[0], payload)
		if err != nil {
			contract.LogFatal("Cannot save session", err)
		}
		fmt.Printf("Session %q saved with id %s.\n", args[0], id)
	},
}

// sessionListCmd lists all saved sessions.
var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved sessions",
	Long: `List every saved session, most recently updated first.

Examples:
  # See what is saved
  locus session list

  # Machine-readable listing
  locus session list --output json`,
	PreRunE: sessionSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		records, err := statestore.Manager.GetSessionStore().ListSessions()
		if err != nil {
			contract.LogFatal("Cannot list sessions", err)
		}
		ow := outwriter.NewOutWriter()
		if err := ow.WriteSessions(records, cfg); err != nil {
			contract.LogFatal("Cannot write sessions", err)
		}
	},
}

// sessionShowCmd shows one session's stored inputs.
var sessionShowCmd = &cobra.Command{
	Use:   "show <id|name>",
	Short: "Show the stored inputs of one session",
	Long: `Display a saved session's payload: selections, raw weights, and the
strict flag if the session pins one.

Examples:
  # Inspect by name
  locus session show relocation-2026

  # Inspect by id
  locus session show 550e8400-e29b-41d4-a716-446655440000`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sessionSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		record, err := statestore.Manager.GetSessionStore().GetSession(args[0])
		if err != nil {
			contract.LogFatal("Cannot show session", err)
		}
		ow := outwriter.NewOutWriter()
		if err := ow.WriteSession(record, cfg); err != nil {
			contract.LogFatal("Cannot write session", err)
		}
	},
}

// sessionEditCmd edits a session through an interactive form.
var sessionEditCmd = &cobra.Command{
	Use:   "edit <id|name>",
	Short: "Edit a saved session in an interactive form",
	Long: `Open a saved session in a terminal form for editing.

The form walks through criteria pickers per pillar, entity pickers per
region, raw weight inputs, and the strict flag. Discarding at the final
confirmation leaves the stored session untouched.

The hierarchy is required to render the pickers; pass the data table too
so the entity pages list what is actually rankable.

Examples:
  # Edit selections and weights interactively
  locus session edit relocation-2026 --hierarchy examples/data/hierarchy.yaml --data examples/data/data.csv`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// The positional argument is the session name, not a data path.
		return sharedSetup(rootCtx, cmd, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		store := statestore.Manager.GetSessionStore()
		record, err := store.GetSession(args[0])
		if err != nil {
			contract.LogFatal("Cannot load session", err)
		}

		in, err := core.LoadFormInputs(cfg)
		if err != nil {
			contract.LogFatal("Cannot load comparison inputs", err)
		}

		form := tui.NewSessionForm(record.Name, in.Hierarchy, in.EntityIDs, in.Names, record.Payload)
		payload, confirmed, err := form.Run()
		if err != nil {
			contract.LogFatal("Session edit failed", err)
		}
		if !confirmed {
			fmt.Println("Session left unchanged.")
			return
		}

		if _, err := store.SaveSession(record.Name, payload); err != nil {
			contract.LogFatal("Cannot save session", err)
		}
		fmt.Printf("Session %q updated.\n", record.Name)
	},
}

// sessionDeleteCmd removes one session.
var sessionDeleteCmd = &cobra.Command{
	Use:   "delete <id|name>",
	Short: "Remove one saved session",
	Long: `Delete a single saved session by id or name.

Examples:
  # Delete by name
  locus session delete relocation-2026`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sessionSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := statestore.Manager.GetSessionStore().DeleteSession(args[0]); err != nil {
			contract.LogFatal("Cannot delete session", err)
		}
		fmt.Printf("Session %q deleted.\n", args[0])
	},
}

// sessionClearCmd removes all saved sessions.
var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all saved sessions",
	Long: `Delete every saved session from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the sessions table

WARNING: This action cannot be undone.

Examples:
  # Clear the local SQLite store (default)
  locus session clear

  # Clear a MySQL store (set connection string via env variable)
  LOCUS_STORE_BACKEND=mysql LOCUS_STORE_DB_CONNECT="..." locus session clear`,
	PreRunE: sessionSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := statestore.ClearStore(cfg.StoreBackend, statestore.GetStoreDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear sessions", err)
		}
		fmt.Println("Sessions cleared successfully.")
	},
}

// sessionStatusCmd shows session store status.
var sessionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display session store statistics and connection details",
	Long: `Show detailed information about the session store.

Displays:
- Backend type and connection status
- Total number of saved sessions
- Last and oldest session timestamps
- Store database size

Examples:
  # Check store health
  locus session status`,
	PreRunE: sessionSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := statestore.Manager.GetSessionStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get session store status", err)
		}
		ow := outwriter.NewOutWriter()
		if err := ow.WriteStatus(status, cfg); err != nil {
			contract.LogFatal("Cannot write store status", err)
		}
	},
}

// sessionMigrateCmd runs database migrations for the session store.
var sessionMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the session store.

Migrations allow:
- Upgrading to new schema versions when locus is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  locus session migrate

  # Migrate to specific version
  locus session migrate --target-version 1

  # Rollback to previous version
  locus session migrate --target-version 0`,
	PreRunE: sessionMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := statestore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
