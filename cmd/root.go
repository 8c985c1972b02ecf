package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/nkapoor/mathex/internal/app"
	"github.com/nkapoor/mathex/internal/profile"
	"github.com/nkapoor/mathex/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathex",
	Short: "Adaptive mental arithmetic trainer",
	Long:  "Mathex — a terminal drill app that adapts difficulty and schedules reviews as you practice.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return err
		}
		return app.Run(dbPath)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHEX_DB env var)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MATHEX_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openProfile opens the store and loads the learner profile for
// non-interactive subcommands. The caller must close the store.
func openProfile(cmd *cobra.Command) (*store.Store, *profile.UserProfile, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	prof, err := st.LoadProfile(cmd.Context(), time.Now())
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return st, prof, nil
}
