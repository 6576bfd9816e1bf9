package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "devfolio",
	Short: "Portfolio site and API",
	Long: `devfolio runs a personal portfolio as two servers: the rendered
web app and the JSON API. Use serve to run one in the foreground, or
start/stop to manage both as background processes.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
