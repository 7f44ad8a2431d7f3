package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/engine"
	"github.com/tartampluch/go-keepintouch/internal/model"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "timeline",
		Short: "Show today's urgent items: birthdays and overdue check-ins",
		RunE:  runTimeline,
	})
}

func runTimeline(cmd *cobra.Command, args []string) error {
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

	items, _ := eng.DeriveTimeline(friends, settings, engine.RealClock{}.Now())
	return printItems(items, "Nothing urgent today.")
}

func printItems(items []model.TimelineItem, emptyMsg string) error {
	if len(items) == 0 {
		fmt.Println(emptyMsg)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHO\tWHAT\tWHEN\tKIND")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			it.Title, it.Subtitle, it.Date.Format(config.DateFormatFullDash), it.Kind)
	}
	return w.Flush()
}
