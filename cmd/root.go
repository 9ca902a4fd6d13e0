package cmd

import (
	"fmt"
	"os"

	"github.com/crewline/crewline/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ConfigFileLocation is of the config to load
var ConfigFileLocation string

// TopLevelLogger is the logger all loggers come from
var TopLevelLogger *zap.Logger

// LoadedConfig is the currently loaded configuration after initial bootstrapping
var LoadedConfig *config.Configuration

var rootCommand = cobra.Command{
	Use:   "crewline",
	Short: "crewline a restaurant staff management service",
	Long: `crewline is a multi-tenant staff management service for restaurants,
	it handles invitations, registration, tasks, resources and feedback`,
	Run: func(cmd *cobra.Command, args []string) {
		serveCommand.Run(cmd, args)
	},
}

func Execute() {
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {

	rootCommand.PersistentFlags().
		StringVar(&ConfigFileLocation, "config", "", "config file to be used")

	verifyCommand.AddCommand(&sendTestMailCommand)

	inviteCommand.AddCommand(&seedInviteCommand)
	inviteCommand.AddCommand(&listInvitesCommand)

	userCommand.AddCommand(&userCreateCommand)
	userCommand.AddCommand(&listUsersCommand)

	rootCommand.AddCommand(&verifyCommand)
	rootCommand.AddCommand(&inviteCommand)
	rootCommand.AddCommand(&userCommand)
	rootCommand.AddCommand(&serveCommand)
}
