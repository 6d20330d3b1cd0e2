package cmd

import (
	"fmt"
	"runtime"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Actual version can be specified in build command.
var version = "unknown"

type versionInfo struct {
	App     string `json:"app"`
	Version string `json:"version"`
	Go      string `json:"go"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		info := versionInfo{App: app, Version: version, Go: runtime.Version()}

		if !viper.GetBool("json") {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s (%s)\n", info.App, info.Version, info.Go)
			return nil
		}

		return json.NewEncoder(cmd.OutOrStdout()).Encode(info)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
