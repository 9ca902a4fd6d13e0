package cmd

import (
	"context"

	"github.com/crewline/crewline/api"
	"github.com/crewline/crewline/invites"
	"github.com/crewline/crewline/manage"
	"github.com/crewline/crewline/tokens"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCommand = cobra.Command{
	Use:   "serve",
	Short: "starts the http server",
	Long:  `Starts a http server and serves the service`,
	Run: func(cmd *cobra.Command, args []string) {
		//this is our composite root - might wanna shift that somewhere else later

		//setup datastore
		dataStore := mustResolveUsableDataStore()

		if LoadedConfig.Behaviour.SeedDemoData {
			if err := dataStore.SeedDemoData(context.Background()); err != nil {
				TopLevelLogger.Fatal("Failed to seed demo data", zap.Error(err))
			}
		}

		//setup token issuer
		issuer := tokens.NewIssuer(TopLevelLogger.Named("token_issuer"), LoadedConfig.JWT)

		//setup mailer
		mailer := mustResolveMailer()

		//events dispatcher
		dispatcher := bootstrapDispatcher(dataStore.Auditor())

		//setup management services
		userManager := manage.NewUserService(dataStore, TopLevelLogger.Named("user_manager"), LoadedConfig, dispatcher)
		restaurantManager := manage.NewRestaurantService(dataStore, TopLevelLogger.Named("restaurant_manager"), dispatcher)
		taskManager := manage.NewTaskService(dataStore, TopLevelLogger.Named("task_manager"), dispatcher)
		resourceManager := manage.NewResourceService(dataStore, TopLevelLogger.Named("resource_manager"), dispatcher)
		feedbackManager := manage.NewFeedbackService(dataStore, TopLevelLogger.Named("feedback_manager"), dispatcher)
		logManager := manage.NewLogService(dataStore, TopLevelLogger.Named("log_manager"))

		//setup invite workflow service
		inviteService := invites.New(dataStore, TopLevelLogger.Named("invite_service"), LoadedConfig, mailer, dispatcher)

		server, err := api.NewServer(LoadedConfig, TopLevelLogger.Named("server"),
			issuer,
			dataStore,
			inviteService,
			userManager,
			restaurantManager,
			taskManager,
			resourceManager,
			feedbackManager,
			logManager,
		)
		if err != nil {
			TopLevelLogger.Fatal("Failed to create server", zap.Error(err))
		}
		if err := server.Start(); err != nil {
			TopLevelLogger.Fatal("Server terminated", zap.Error(err))
		}
		TopLevelLogger.Info("Shutdown complete")
	},
}
