package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var listInvitesRestaurant int

var listInvitesCommand = cobra.Command{
	Use:   "ls",
	Short: "Lists all invites of a restaurant",
	Long:  `This will list all invites of a restaurant`,
	Run: func(cmd *cobra.Command, args []string) {
		//setup datastore
		dataStore := mustResolveUsableDataStore()
		entries, err := dataStore.InvitesByRestaurant(context.Background(), listInvitesRestaurant)
		if err != nil {
			fmt.Printf("Unable to load invites: %s", err)
			os.Exit(1)
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 1, 1, 1, ' ', 0)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s \r\n", "ID", "Email", "Token", "Role", "Used", "CreatedAt", "ExpiresAt")
		formatDt := func(t *time.Time) string {
			if t != nil {
				return t.Format("2006-01-02")
			}
			return "-"
		}
		for _, v := range entries {
			e := ""
			if v.Email != nil {
				e = *v.Email
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\t%s\t%s \r\n", v.ID, e, v.Token, v.Role, v.Used, formatDt(&v.CreatedAt), formatDt(v.ExpiresAt))
		}
		fmt.Fprintf(w, "------------------------------------------------- \r\n")
		fmt.Fprintf(w, "%d entries loaded", len(entries))
		w.Flush()
	},
}

func init() {
	listInvitesCommand.Flags().
		IntVar(&listInvitesRestaurant, "restaurant", 1, "id of the restaurant to list invites for")
}
