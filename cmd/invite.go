package cmd

import (
	"github.com/spf13/cobra"
)

var inviteCommand = cobra.Command{
	Use:   "invite",
	Short: "invite related commands",
	Long:  `Contains subcommands to manage invites from the command line`,
}
