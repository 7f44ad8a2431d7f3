package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-keepintouch/internal/calendar"
	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/engine"
)

func init() {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Export birthdays as an iCalendar (.ics) file",
		RunE:  runCalendar,
	}

	cmd.Flags().StringP("out", "o", "birthdays"+config.ExtICS, "Output file path")
	cmd.Flags().String("reminder", "", "Alarm trigger as an ISO8601 duration, e.g. -P1D (empty: no alarms)")

	RootCmd.AddCommand(cmd)
}

func runCalendar(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	reminder, _ := cmd.Flags().GetString("reminder")

	db, err := openDB()
	if err != nil {
		return err
	}
	defer closeQuietly(db)

	_, tr := newLocalizedEngine(cmd.Context(), db)

	friends, err := db.ListFriends(cmd.Context(), "")
	if err != nil {
		return err
	}

	builder := &calendar.Builder{Summary: tr.EventSummary}
	data, today, err := builder.Build(friends, engine.RealClock{}.Now(), reminder)
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, data, config.FilePermUserRW); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d bytes, %d birthday(s) today)\n", out, len(data), today)
	return nil
}
