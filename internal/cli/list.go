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
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List friends with their contact status",
		RunE:  runList,
	}

	cmd.Flags().StringP("tier", "t", "", "Filter by tier")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) error {
	tierStr, _ := cmd.Flags().GetString("tier")

	var tier model.Tier
	if tierStr != "" {
		parsed, err := model.ParseTier(tierStr)
		if err != nil {
			return err
		}
		tier = parsed
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer closeQuietly(db)

	friends, err := db.ListFriends(cmd.Context(), tier)
	if err != nil {
		return err
	}
	if len(friends) == 0 {
		fmt.Println("No friends yet. Add one with: keepintouch add <name>")
		return nil
	}

	now := engine.RealClock{}.Now()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTIER\tSTATUS\tBIRTHDAY\tLAST CONTACT\tID")
	for _, f := range friends {
		birthdayToday := false
		birthday := "-"
		if f.Birthday != nil {
			birthday = engine.FormatBirthday(*f.Birthday)
			_, daysUntil := engine.NextOccurrence(*f.Birthday, now)
			birthdayToday = daysUntil == 0
		}

		last := "-"
		if f.LastContactedAt != nil {
			last = f.LastContactedAt.Format(config.DateFormatFullDash)
		}

		status := engine.ClassifyStatus(f.LastContactedAt, f.ContactFrequencyDays, birthdayToday, now)

		star := ""
		if f.Starred {
			star = " *"
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\t%s\t%s\n", f.Name, star, f.Tier, status, birthday, last, f.ID)
	}
	return w.Flush()
}
