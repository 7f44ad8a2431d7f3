// Package cli implements the keepintouch commands.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/engine"
	"github.com/tartampluch/go-keepintouch/internal/i18n"
	"github.com/tartampluch/go-keepintouch/internal/store"
)

var (
	dbPath    string
	langFlag  string
	debugFlag bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "keepintouch",
	Short: "Keep track of the people you care about",
	Long: "keepintouch tracks friends, their birthdays and how long it has been\n" +
		"since you last reached out, and derives a prioritized timeline and\n" +
		"backlog from that. SQLite-backed, single binary.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(debugFlag)
		logStartupInfo()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $KEEPINTOUCH_DB or ~/.keepintouch/keepintouch.db)")
	RootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "Output language (en, fr); default from settings")
	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}

// setupLogging configures the default slog logger. Logs go to stderr so that
// command output on stdout stays pipeable.
func setupLogging(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, opts)))
}

// logStartupInfo logs environment details useful for debugging; debug level
// since most commands are short-lived one-shots.
func logStartupInfo() {
	slog.Debug(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

func openDB() (*store.DB, error) {
	path := dbPath
	if path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return store.Open(path)
}

// newLocalizedEngine wires the translation bundle into the derivation engine.
// The --lang flag wins over the persisted language setting.
func newLocalizedEngine(ctx context.Context, db *store.DB) (*engine.Engine, *i18n.Translator) {
	lang := langFlag
	if lang == "" {
		if settings, err := db.Settings(ctx); err == nil {
			lang = settings.Language
		}
	}

	tr := i18n.New(lang)
	eng := engine.New()
	eng.FormatBirthdaySubtitle = tr.BirthdaySubtitle
	eng.FormatCheckInSubtitle = tr.CheckInSubtitle
	return eng, tr
}

func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Debug("close failed",
			config.LogKeyComponent, config.CompCLI,
			config.LogKeyError, err,
		)
	}
}
