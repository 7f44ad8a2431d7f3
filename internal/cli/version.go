package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-keepintouch/internal/config"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s %s (%s, %s) %s/%s\n",
				config.AppName, config.Version, config.Commit, config.Date,
				runtime.GOOS, runtime.GOARCH,
			)
		},
	})
}
