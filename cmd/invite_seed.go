package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/crewline/crewline/invites"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var inviteRole string
var inviteRestaurant int
var inviteEmail string

var seedInviteCommand = cobra.Command{
	Use:   "seed",
	Short: "generates an invite token for a restaurant",
	Long:  `this can and may be used to seed an initial invite token for a restaurant`,
	Run: func(cmd *cobra.Command, args []string) {
		//setup datastore
		dataStore := mustResolveUsableDataStore()
		//setup mailer
		mailer := mustResolveMailer()
		//events dispatcher
		dispatcher := bootstrapDispatcher(dataStore.Auditor())

		service := invites.New(
			dataStore,
			TopLevelLogger.Named("invite_service"),
			LoadedConfig,
			mailer,
			dispatcher,
		)
		var email *string
		if inviteEmail != "" {
			email = &inviteEmail
		}
		invite, err := service.Create(context.Background(), 0, inviteRole, inviteRestaurant, email, nil)
		if err != nil {
			log.Fatal("could not generate invite", zap.Error(err))
		}
		fmt.Printf("Your new invite token is %s \r\n", invite.Token)
		fmt.Printf("Registration link: %s", invite.Link)
	},
}

func init() {
	seedInviteCommand.Flags().
		StringVar(&inviteRole, "role", "staff", "role granted on redemption (general_manager or staff)")
	seedInviteCommand.Flags().
		IntVar(&inviteRestaurant, "restaurant", 1, "id of the restaurant the invite binds to")
	seedInviteCommand.Flags().
		StringVar(&inviteEmail, "email", "", "optional email address the invite is sent to")
}
