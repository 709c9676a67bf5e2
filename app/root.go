// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio is a portfolio site with a small admin panel",
	Long: `folio serves a public portfolio showcase (projects, skills, CV and
profile images, a contact form) and an admin panel to manage it. Images and
documents live on an external media host, everything else in a document store.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(
		&configPath,
		"config",
		"c",
		"./etc/",
		"Directory holding main.toml",
	)
}

var configPath string // Path to the configuration directory

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
