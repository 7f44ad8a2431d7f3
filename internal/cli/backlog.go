package cli

import (
	"github.com/spf13/cobra"

	"github.com/tartampluch/go-keepintouch/internal/engine"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "backlog",
		Short: "Show the ranked list of friends worth reaching out to",
		RunE:  runBacklog,
	})
}

func runBacklog(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer closeQuietly(db)

	eng, _ := newLocalizedEngine(cmd.Context(), db)

	friends, err := db.ListFriends(cmd.Context(), "")
	if err != nil {
		return err
	}
	settings, err := db.Settings(cmd.Context())
	if err != nil {
		return err
	}

	now := engine.RealClock{}.Now()
	_, urgent := eng.DeriveTimeline(friends, settings, now)
	items := eng.DeriveBacklog(friends, settings, now, urgent)
	return printItems(items, "Backlog is clear.")
}
