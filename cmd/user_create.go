package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/crewline/crewline/manage"
	"github.com/crewline/crewline/roles"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var createUserRole string
var createUserRestaurant int

var userCreateCommand = cobra.Command{
	Use:   "create",
	Short: "launches a on terminal user creation dialog",
	Long:  `this command may be used to create a user account from command line`,
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		dispatcher := bootstrapDispatcher(dataStore.Auditor())
		userManager := manage.NewUserService(
			dataStore,
			TopLevelLogger.Named("user_manager"),
			LoadedConfig,
			dispatcher,
		)
		reader := bufio.NewReader(os.Stdin)

		fmt.Println("email?")
		email, err := reader.ReadString('\n')
		if err != nil {
			fmt.Printf("Unable to read email: %s", err)
			os.Exit(1)
			return
		}
		email = strings.Trim(email, " \t\r\n")

		fmt.Println("username?")
		username, err := reader.ReadString('\n')
		if err != nil {
			fmt.Printf("Unable to read username: %s", err)
			os.Exit(1)
			return
		}
		username = strings.Trim(username, " \t\r\n")

		fmt.Println("password?")
		pwd, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			fmt.Printf("Unable to read password: %s", err)
			os.Exit(1)
			return
		}
		for len(pwd) < LoadedConfig.Behaviour.PasswordMinLength {
			fmt.Printf(
				"password needs to be at least %d long.\r\n",
				LoadedConfig.Behaviour.PasswordMinLength,
			)
			fmt.Println("password?")
			pwd, err = term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				fmt.Printf("Unable to read password: %s", err)
				os.Exit(1)
				return
			}
		}
		var restaurantID *int
		if createUserRole != roles.SuperAdmin {
			restaurantID = &createUserRestaurant
		}
		user, err := userManager.Create(
			cmd.Context(),
			0,
			email,
			username,
			string(pwd),
			createUserRole,
			restaurantID,
		)
		if err != nil {
			fmt.Printf("Unable to create user: %s \r\n", err)
			os.Exit(1)
			return
		}
		fmt.Printf("Created user for email %s with id: %v", email, user.ID)
	},
}

func init() {
	userCreateCommand.Flags().
		StringVar(&createUserRole, "role", roles.Staff, "role of the new user")
	userCreateCommand.Flags().
		IntVar(&createUserRestaurant, "restaurant", 1, "id of the restaurant the user belongs to")
}
