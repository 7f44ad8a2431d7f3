package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-keepintouch/internal/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "log <friend> [note...]",
		Short: "Log an interaction with a friend",
		Long: "Log an interaction with a friend, referenced by ID or name.\n" +
			"This moves the friend's last-contacted date, which drives the\n" +
			"timeline and backlog.",
		Args: cobra.MinimumNArgs(1),
		RunE: runLog,
	}

	cmd.Flags().String("date", "", "When it happened, YYYY-MM-DD (default: now)")

	RootCmd.AddCommand(cmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	note := strings.Join(args[1:], " ")
	dateStr, _ := cmd.Flags().GetString("date")

	occurredAt := time.Now()
	if dateStr != "" {
		t, err := time.Parse(config.DateFormatFullDash, dateStr)
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrDateParse, err)
		}
		occurredAt = t
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer closeQuietly(db)

	f, err := db.FindFriend(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if _, err := db.AddInteraction(cmd.Context(), f.ID, note, occurredAt); err != nil {
		return err
	}

	fmt.Printf("Logged contact with %s on %s\n", f.Name, occurredAt.Format(config.DateFormatFullDash))
	return nil
}
