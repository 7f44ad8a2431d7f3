package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-keepintouch/internal/engine"
	"github.com/tartampluch/go-keepintouch/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a friend",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAdd,
	}

	cmd.Flags().StringP("birthday", "b", "", "Birthday (YYYY-MM-DD or --MM-DD when the year is unknown)")
	cmd.Flags().StringP("tier", "t", string(model.TierCordialities), "Tier: top, close, cordialities, other")
	cmd.Flags().Int("freq", 0, "Contact frequency in days (default: the configured default)")
	cmd.Flags().Bool("starred", false, "Star this friend (boosts backlog ranking)")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	birthdayStr, _ := cmd.Flags().GetString("birthday")
	tierStr, _ := cmd.Flags().GetString("tier")
	freq, _ := cmd.Flags().GetInt("freq")
	starred, _ := cmd.Flags().GetBool("starred")

	tier, err := model.ParseTier(tierStr)
	if err != nil {
		return err
	}

	f := model.Friend{
		Name:                 strings.Join(args, " "),
		Tier:                 tier,
		Starred:              starred,
		ContactFrequencyDays: freq,
	}
	if birthdayStr != "" {
		b, err := engine.ParseBirthday(birthdayStr)
		if err != nil {
			return err
		}
		f.Birthday = b
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer closeQuietly(db)

	if freq == 0 {
		if settings, err := db.Settings(cmd.Context()); err == nil {
			f.ContactFrequencyDays = settings.DefaultContactFrequencyDays
		}
	}

	if err := db.CreateFriend(cmd.Context(), &f); err != nil {
		return err
	}

	fmt.Printf("Added %s (%s, every %d days) id=%s\n", f.Name, f.Tier, f.ContactFrequencyDays, f.ID)
	return nil
}
