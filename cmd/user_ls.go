package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/crewline/crewline/manage"
	"github.com/spf13/cobra"
)

var listUsersCommand = cobra.Command{
	Use:   "ls",
	Short: "Lists all users",
	Long:  `This will list all users`,
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		dispatcher := bootstrapDispatcher(dataStore.Auditor())
		service := manage.NewUserService(
			dataStore,
			TopLevelLogger.Named("user_manager"),
			LoadedConfig,
			dispatcher)
		lst, err := service.List(context.Background())
		if err != nil {
			fmt.Printf("Unable to load users: %s", err)
			os.Exit(1)
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 1, 1, 1, ' ', 0)
		fmt.Fprintf(
			w,
			"%s\t%s\t%s\t%s\t%s\r\n",
			"ID",
			"Email",
			"Username",
			"Role",
			"RestaurantID",
		)
		for _, v := range lst {
			rid := "-"
			if v.RestaurantID != nil {
				rid = fmt.Sprintf("%d", *v.RestaurantID)
			}
			fmt.Fprintf(
				w,
				"%d\t%s\t%s\t%s\t%s \r\n",
				v.ID,
				v.Email,
				v.Username,
				v.Role,
				rid,
			)
		}

		fmt.Fprintf(w, "------------------------------------------------- \r\n")
		fmt.Fprintf(w, "%d entries loaded", len(lst))
		w.Flush()
	},
}
