package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-keepintouch/internal/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "set [key value]",
		Short: "Show or change settings",
		Long: "Show the current settings, or change one.\n\nKeys:\n" +
			"  " + config.SettingDefaultFrequency + "   default contact frequency in days\n" +
			"  " + config.SettingCheckInReminders + "   true/false\n" +
			"  " + config.SettingLanguage + "                     en, fr",
		Args: cobra.RangeArgs(0, 2),
		RunE: runSet,
	}

	RootCmd.AddCommand(cmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer closeQuietly(db)

	if len(args) == 0 {
		settings, err := db.Settings(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "%s\t%d\n", config.SettingDefaultFrequency, settings.DefaultContactFrequencyDays)
		fmt.Fprintf(w, "%s\t%t\n", config.SettingCheckInReminders, settings.CheckInRemindersEnabled)
		fmt.Fprintf(w, "%s\t%s\n", config.SettingLanguage, settings.Language)
		return w.Flush()
	}
	if len(args) != 2 {
		return fmt.Errorf("expected a key and a value")
	}

	if err := db.SetSetting(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("%s = %s\n", args[0], args[1])
	return nil
}
