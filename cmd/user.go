package cmd

import (
	"github.com/spf13/cobra"
)

var userCommand = cobra.Command{
	Use:   "user",
	Short: "user related commands",
	Long:  `Contains subcommands to manage user accounts from the command line`,
}
