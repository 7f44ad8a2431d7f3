package cli

import (
	"github.com/spf13/cobra"

	"github.com/tartampluch/go-keepintouch/internal/calendar"
	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/server"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the API and the birthday calendar over localhost HTTP",
		Long: "Serve the timeline, backlog and friends API as JSON, plus the\n" +
			"birthday calendar at " + config.RouteCalendar + " for calendar apps\n" +
			"to subscribe to. Binds to " + config.LocalhostBindAddr + " only.",
		RunE: runServe,
	}

	cmd.Flags().StringP("port", "p", config.DefaultPort, "TCP port to listen on")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	port, _ := cmd.Flags().GetString("port")

	db, err := openDB()
	if err != nil {
		return err
	}
	defer closeQuietly(db)

	eng, tr := newLocalizedEngine(cmd.Context(), db)
	builder := &calendar.Builder{Summary: tr.EventSummary}

	srv := server.New(db, eng, builder, nil)
	return srv.Start(cmd.Context(), port)
}
