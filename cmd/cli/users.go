package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/formlift-io/iform/internal/export"
	"github.com/formlift-io/iform/internal/models"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage profile users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every user in the profile",
	RunE: func(cmd *cobra.Command, args []string) error {

		profileID, err := requireProfile()
		if err != nil {
			return err
		}

		api, err := newAPIClient()
		if err != nil {
			return err
		}

		users, err := api.ListUsers(cmd.Context(), profileID)
		if err != nil {
			return err
		}

		table, err := export.FromStructs(users)
		if err != nil {
			return err
		}

		return writeTable(cmd, table)
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		profileID, err := requireProfile()
		if err != nil {
			return err
		}

		api, err := newAPIClient()
		if err != nil {
			return err
		}

		password, _ := cmd.Flags().GetString("password")
		email, _ := cmd.Flags().GetString("email")
		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")

		userID, err := api.CreateUser(cmd.Context(), profileID, models.NewUserRequest{
			Username:  args[0],
			Password:  password,
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
		})
		if err != nil {
			return err
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("Created user %d", userID)))
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		profileID, err := requireProfile()
		if err != nil {
			return err
		}

		api, err := newAPIClient()
		if err != nil {
			return err
		}

		userID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id: %s", args[0])
		}

		if err := api.DeleteUser(cmd.Context(), profileID, userID); err != nil {
			return err
		}

		fmt.Println(warningStyle.Render(fmt.Sprintf("Deleted user %d", userID)))
		return nil
	},
}

func init() {
	addOutputFlags(usersListCmd)

	usersCreateCmd.Flags().String("password", "", "Initial password (required)")
	usersCreateCmd.Flags().String("email", "", "Email address")
	usersCreateCmd.Flags().String("first-name", "", "First name")
	usersCreateCmd.Flags().String("last-name", "", "Last name")
	usersCreateCmd.MarkFlagRequired("password")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}
