// Package cmd implements the CLI commands for gopherseo-od.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tariktz/gopherseo-od/internal/odlog"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "gopherseo-od",
	Short:         "gopherseo-od — scrape and download content from open directories",
	SilenceErrors: true,
	SilenceUsage:  true,
	Long: `gopherseo-od recursively traverses open-directory (OD) listings —
Apache/NGINX/IIS autoindexes, OLAINDEX, AutoIndex PHP, Directory Lister and
similar — identifies the flavor of listing a server is running, harvests
file and sub-directory links up to a bounded depth, and either downloads
the files it finds, records their URLs, or lists them in a dry run.

Homepage: https://github.com/tariktz/gopherseo-od`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		odlog.Configure(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (trace-level) logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version of gopherseo-od",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("gopherseo-od", Version)
		},
	})
}

// Execute runs the root command. It is the single entry point called by main.
func Execute() error {
	return rootCmd.Execute()
}
