package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathfacts/internal/addition"
	"github.com/abhisek/mathfacts/internal/config"
	"github.com/abhisek/mathfacts/internal/logging"
	"github.com/abhisek/mathfacts/internal/store"
	"github.com/abhisek/mathfacts/internal/tracker"
)

var (
	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "mathfacts",
	Short: "Spaced-repetition tracker for arithmetic facts",
	Long: `mathfacts records answers to arithmetic facts, schedules reviews with the
SM-2 algorithm and reports which facts a learner should practice next.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		c, err := config.Load(config.Options{ConfigFile: configFile, Flags: cmd.Flags()})
		if err != nil {
			return err
		}
		l, err := logging.New(c.Log.Level, c.Log.Development)
		if err != nil {
			return err
		}
		cfg, logger = c, l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default ./mathfacts.yaml)")
	pf.String("db", "", "Database DSN or SQLite file (overrides MATHFACTS_DB)")
	pf.String("db-driver", "", "Database driver: sqlite or postgres")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.Bool("dev", false, "Human-readable development logs")
	pf.StringP("user", "u", "", "Learner ID")
	pf.Bool("json", false, "Print results as JSON")

	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(weakCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(additionCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

// openStore opens the configured database, defaulting to the XDG SQLite
// path.
func openStore() (*store.Store, error) {
	dsn, err := cfg.Database.ResolveDSN()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(cfg.Database.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func newTracker(st *store.Store) *tracker.Service {
	return tracker.NewService(st, tracker.WithLogger(logger.Named("tracker")))
}

func newAddition(st *store.Store) *addition.Service {
	return addition.NewService(st, addition.WithLogger(logger.Named("addition")))
}

func requireUser(cmd *cobra.Command) (string, error) {
	u, _ := cmd.Flags().GetString("user")
	if u == "" {
		return "", errors.New("a learner is required: pass --user")
	}
	return u, nil
}

func wantJSON(cmd *cobra.Command) bool {
	j, _ := cmd.Flags().GetBool("json")
	return j
}
