package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/formlift-io/iform/internal/export"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List and inspect profiles",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles visible to the client credentials",
	RunE: func(cmd *cobra.Command, args []string) error {

		api, err := newAPIClient()
		if err != nil {
			return err
		}

		profiles, err := api.ListProfiles(cmd.Context())
		if err != nil {
			return err
		}

		table, err := export.FromStructs(profiles)
		if err != nil {
			return err
		}

		return writeTable(cmd, table)
	},
}

var profilesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		profileID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid profile id: %s", args[0])
		}

		api, err := newAPIClient()
		if err != nil {
			return err
		}

		profile, err := api.GetProfile(cmd.Context(), profileID)
		if err != nil {
			return err
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Profile %d", profile.ID)))
		fmt.Println("  " + infoStyle.Render(fmt.Sprintf("Name: %s", profile.Name)))

		return nil
	},
}

func init() {
	addOutputFlags(profilesListCmd)
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesGetCmd)
	rootCmd.AddCommand(profilesCmd)
}
