// ABOUTME: Root Cobra command for vitals CLI.
// ABOUTME: Handles config, logger, storage, and notifier lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/vitals/internal/config"
	"github.com/harperreed/vitals/internal/notify"
	"github.com/harperreed/vitals/internal/storage"
	"github.com/spf13/cobra"
)

var (
	dbPath  string
	verbose bool

	cfg      *config.Config
	repo     storage.Repository
	notifier notify.Notifier
	logger   *log.Logger
)

// noStorage lists commands that never touch the database.
var noStorage = map[string]bool{
	"help":       true,
	"completion": true,
	"classify":   true,
	"workout":    true,
}

var rootCmd = &cobra.Command{
	Use:   "vitals",
	Short: "Vital-sign classifier and tracker",
	Long: `Vitals classifies and tracks blood pressure, respiratory rate, BMI, and heart rate.

WHAT IT CLASSIFIES:

  blood_pressure    (bp)  Normal, Elevated, High        e.g. 118/79
  respiratory_rate  (rr)  Low, Normal, High             breaths/min
  bmi                     Underweight, Normal, Overweight, Obese
  heart_rate        (hr)  Low, Normal, High             bpm

  Missing or malformed values are shown as N/A.

QUICK START:

  $ vitals classify bp 135/85             # Classify a single value
  $ vitals add bp 118/79                  # Record a reading
  $ vitals add hr 72 --notes "resting"    # Record with notes
  $ vitals dashboard                      # Latest value and badge per vital
  $ vitals report analyze lab.txt --save  # Analyze a medical report
  $ vitals workout --level beginner       # Suggest exercises

ALERTS:

  Readings classified as alert severity are published to RabbitMQ when
  amqp_url is set in the config file or VITALS_AMQP_URL is exported.

MCP INTEGRATION:

  Run 'vitals mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "vitals": { "command": "vitals", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Readings and reports live in SQLite at ~/.local/share/vitals/vitals.db.
  Settings are read from ~/.config/vitals/config.json. Only the newest
  report_keep saved reports (default 6) are retained.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.GetLogLevel()
		if verbose {
			level = log.DebugLevel
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			Level:           level,
			ReportTimestamp: true,
		})

		if noStorage[cmd.Name()] {
			return nil
		}

		closeResources()

		if dbPath != "" {
			db, err := storage.Open(config.ExpandPath(dbPath))
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			repo = db
		} else {
			repo, err = cfg.OpenStorage()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
		}
		logger.Debug("opened database", "path", databasePath(cfg))

		notifier, err = cfg.OpenPublisher(logger)
		if err != nil {
			logger.Warn("alerts disabled", "err", err)
			notifier = notify.Nop{}
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeResources()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func databasePath(cfg *config.Config) string {
	if dbPath != "" {
		return config.ExpandPath(dbPath)
	}
	return cfg.GetDBPath()
}

func closeResources() error {
	var firstErr error
	if notifier != nil {
		if err := notifier.Close(); err != nil {
			firstErr = err
		}
		notifier = nil
	}
	if repo != nil {
		if err := repo.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		repo = nil
	}
	return firstErr
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: data_dir/vitals.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
