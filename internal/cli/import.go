package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/importer"
	"github.com/tartampluch/go-keepintouch/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import friends from a vCard file or URL",
		Long: "Import friends from a .vcf/.vcard file or a CardDAV/WebDAV export URL.\n" +
			"Passwords for protected URLs are kept in the OS keychain, never in\n" +
			"flags or the database.",
		RunE: runImport,
	}

	cmd.Flags().StringP("file", "f", "", "Path to a vCard file")
	cmd.Flags().StringP("url", "u", "", "URL of a vCard export")
	cmd.Flags().String("user", "", "Username for basic auth (with --url)")
	cmd.Flags().Bool("save-password", false, "Prompt for a password and store it in the keychain")
	cmd.Flags().StringP("tier", "t", string(model.TierCordialities), "Tier assigned to imported friends")
	cmd.Flags().Int("freq", 0, "Contact frequency assigned to imported friends")

	cmd.MarkFlagsMutuallyExclusive("file", "url")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	url, _ := cmd.Flags().GetString("url")
	user, _ := cmd.Flags().GetString("user")
	savePassword, _ := cmd.Flags().GetBool("save-password")
	tierStr, _ := cmd.Flags().GetString("tier")
	freq, _ := cmd.Flags().GetInt("freq")

	if file == "" && url == "" {
		return errors.New(config.ErrLocalPathEmpty)
	}

	tier, err := model.ParseTier(tierStr)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer closeQuietly(db)

	if freq == 0 {
		if settings, err := db.Settings(cmd.Context()); err == nil {
			freq = settings.DefaultContactFrequencyDays
		} else {
			freq = config.DefaultContactFrequencyDays
		}
	}

	var source io.ReadCloser
	if file != "" {
		source, err = os.Open(file)
		if err != nil {
			return err
		}
	} else {
		pass, err := resolvePassword(user, savePassword)
		if err != nil {
			return err
		}
		source, err = importer.NewHTTPFetcher().Fetch(cmd.Context(), url, user, pass)
		if err != nil {
			return err
		}
	}
	defer closeQuietly(source)

	stats, err := importer.Run(cmd.Context(), db, source, importer.Options{
		Tier:          tier,
		FrequencyDays: freq,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d of %d cards (%d skipped)\n", stats.Imported, stats.Cards, stats.Skipped)
	return nil
}

// resolvePassword loads the stored keychain password, or prompts for a new
// one and stores it when --save-password is given.
func resolvePassword(user string, save bool) (string, error) {
	if user == "" {
		return "", nil
	}
	if !save {
		return importer.LoadPassword(user)
	}

	fmt.Fprintf(os.Stderr, "Password for %s: ", user)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	pass := strings.TrimRight(line, "\r\n")

	if err := importer.SavePassword(user, pass); err != nil {
		return "", err
	}
	return pass, nil
}
