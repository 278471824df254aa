package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/formlift-io/iform/internal/client"
	"github.com/formlift-io/iform/internal/export"
	"github.com/formlift-io/iform/internal/models"
)

var optionListsCmd = &cobra.Command{
	Use:     "optionlists",
	Aliases: []string{"optionlist", "ol"},
	Short:   "Manage option lists and their elements",
}

var optionListsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every option list in the profile",
	RunE: func(cmd *cobra.Command, args []string) error {

		profileID, err := requireProfile()
		if err != nil {
			return err
		}

		api, err := newAPIClient()
		if err != nil {
			return err
		}

		lists, err := api.ListOptionLists(cmd.Context(), profileID)
		if err != nil {
			return err
		}

		table, err := export.FromStructs(lists)
		if err != nil {
			return err
		}

		return writeTable(cmd, table)
	},
}

var optionListsGetCmd = &cobra.Command{
	Use:   "get <id-or-name>",
	Short: "Show one option list",
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

		listID, err := resolveOptionList(cmd, api, profileID, args[0])
		if err != nil {
			return err
		}

		list, err := api.GetOptionList(cmd.Context(), profileID, listID)
		if err != nil {
			return err
		}

		options, err := api.ListOptions(cmd.Context(), profileID, listID)
		if err != nil {
			return err
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Option list %d", list.ID)))
		fmt.Println("  " + infoStyle.Render(fmt.Sprintf("Name: %s", list.Name)))
		fmt.Println("  " + infoStyle.Render(fmt.Sprintf("Elements: %d", len(options))))

		return nil
	},
}

var optionListsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty option list",
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

		listID, err := api.CreateOptionList(cmd.Context(), profileID, args[0])
		if err != nil {
			return err
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("Created option list %d", listID)))
		return nil
	},
}

var optionListsDeleteCmd = &cobra.Command{
	Use:   "delete <id-or-name>",
	Short: "Delete an option list",
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

		listID, err := resolveOptionList(cmd, api, profileID, args[0])
		if err != nil {
			return err
		}

		if err := api.DeleteOptionList(cmd.Context(), profileID, listID); err != nil {
			return err
		}

		fmt.Println(warningStyle.Render(fmt.Sprintf("Deleted option list %d", listID)))
		return nil
	},
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Manage the elements of an option list",
}

var optionsListCmd = &cobra.Command{
	Use:   "list <list-id-or-name>",
	Short: "List the elements of an option list",
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

		listID, err := resolveOptionList(cmd, api, profileID, args[0])
		if err != nil {
			return err
		}

		options, err := api.ListOptions(cmd.Context(), profileID, listID)
		if err != nil {
			return err
		}

		table, err := export.FromStructs(options)
		if err != nil {
			return err
		}

		return writeTable(cmd, table)
	},
}

var optionsAddCmd = &cobra.Command{
	Use:   "add <list-id-or-name> <json-file>",
	Short: "Add elements from a JSON array file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {

		profileID, err := requireProfile()
		if err != nil {
			return err
		}

		api, err := newAPIClient()
		if err != nil {
			return err
		}

		listID, err := resolveOptionList(cmd, api, profileID, args[0])
		if err != nil {
			return err
		}

		payload, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read options file: %w", err)
		}

		var options []models.Option
		if err := json.Unmarshal(payload, &options); err != nil {
			return fmt.Errorf("invalid options JSON: %w", err)
		}

		ids, err := api.CreateOptions(cmd.Context(), profileID, listID, options)
		if err != nil {
			return err
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("Added %d options", len(ids))))
		return nil
	},
}

var optionsPurgeCmd = &cobra.Command{
	Use:   "purge <list-id-or-name>",
	Short: "Delete every element of an option list",
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

		listID, err := resolveOptionList(cmd, api, profileID, args[0])
		if err != nil {
			return err
		}

		deleted, err := api.PurgeOptions(cmd.Context(), profileID, listID)
		if err != nil {
			return err
		}

		fmt.Println(warningStyle.Render(fmt.Sprintf("Deleted %d options", deleted)))
		return nil
	},
}

// resolveOptionList accepts either a numeric list id or a list name.
func resolveOptionList(cmd *cobra.Command, api *client.Client, profileID int64, arg string) (int64, error) {
	if listID, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return listID, nil
	}
	return api.FindOptionListID(cmd.Context(), profileID, arg)
}

func init() {
	addOutputFlags(optionListsListCmd)
	addOutputFlags(optionsListCmd)

	optionListsCmd.AddCommand(optionListsListCmd)
	optionListsCmd.AddCommand(optionListsGetCmd)
	optionListsCmd.AddCommand(optionListsCreateCmd)
	optionListsCmd.AddCommand(optionListsDeleteCmd)
	rootCmd.AddCommand(optionListsCmd)

	optionsCmd.AddCommand(optionsListCmd)
	optionsCmd.AddCommand(optionsAddCmd)
	optionsCmd.AddCommand(optionsPurgeCmd)
	rootCmd.AddCommand(optionsCmd)
}
