package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/formlift-io/iform/internal/client"
	"github.com/formlift-io/iform/internal/common"
	"github.com/formlift-io/iform/internal/export"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Manage form definitions (pages)",
}

var pagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every page in the profile",
	RunE: func(cmd *cobra.Command, args []string) error {

		profileID, err := requireProfile()
		if err != nil {
			return err
		}

		api, err := newAPIClient()
		if err != nil {
			return err
		}

		pages, err := api.ListPages(cmd.Context(), profileID)
		if err != nil {
			return err
		}

		if search, _ := cmd.Flags().GetString("search"); len(search) > 0 {
			matched := pages[:0]
			for _, page := range pages {
				if common.ContainsInsensitive(page.Name, search) ||
					common.ContainsInsensitive(page.Label, search) {
					matched = append(matched, page)
				}
			}
			pages = matched
		}

		table, err := export.FromStructs(pages)
		if err != nil {
			return err
		}

		return writeTable(cmd, table)
	},
}

var pagesGetCmd = &cobra.Command{
	Use:   "get <id-or-name>",
	Short: "Show one page definition",
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

		pageID, err := resolvePage(cmd, api, profileID, args[0])
		if err != nil {
			return err
		}

		page, err := api.GetPage(cmd.Context(), profileID, pageID)
		if err != nil {
			return err
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Page %d", page.ID)))
		fmt.Println("  " + infoStyle.Render(fmt.Sprintf("Name: %s", page.Name)))
		fmt.Println("  " + infoStyle.Render(fmt.Sprintf("Label: %s", page.Label)))
		if len(page.Version) > 0 {
			fmt.Println("  " + infoStyle.Render(fmt.Sprintf("Version: %s", page.Version)))
		}

		return nil
	},
}

var pagesCreateCmd = &cobra.Command{
	Use:   "create <label>",
	Short: "Create an empty page",
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

		pageID, err := api.CreatePage(cmd.Context(), profileID, args[0])
		if err != nil {
			return err
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("Created page %d", pageID)))
		return nil
	},
}

var pagesDeleteCmd = &cobra.Command{
	Use:   "delete <id-or-name>",
	Short: "Delete a page and its records",
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

		pageID, err := resolvePage(cmd, api, profileID, args[0])
		if err != nil {
			return err
		}

		if err := api.DeletePage(cmd.Context(), profileID, pageID); err != nil {
			return err
		}

		fmt.Println(warningStyle.Render(fmt.Sprintf("Deleted page %d", pageID)))
		return nil
	},
}

var elementsCmd = &cobra.Command{
	Use:   "elements <page-id-or-name>",
	Short: "List the fields of a page",
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

		pageID, err := resolvePage(cmd, api, profileID, args[0])
		if err != nil {
			return err
		}

		elements, err := api.ListElements(cmd.Context(), profileID, pageID)
		if err != nil {
			return err
		}

		table, err := export.FromStructs(elements)
		if err != nil {
			return err
		}

		return writeTable(cmd, table)
	},
}

// resolvePage accepts either a numeric page id or a page name/label.
func resolvePage(cmd *cobra.Command, api *client.Client, profileID int64, arg string) (int64, error) {
	if pageID, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return pageID, nil
	}
	return api.FindPageID(cmd.Context(), profileID, arg)
}

func init() {
	addOutputFlags(pagesListCmd)
	pagesListCmd.Flags().String("search", "", "Only show pages whose name or label contains this text")
	addOutputFlags(elementsCmd)
	pagesCmd.AddCommand(pagesListCmd)
	pagesCmd.AddCommand(pagesGetCmd)
	pagesCmd.AddCommand(pagesCreateCmd)
	pagesCmd.AddCommand(pagesDeleteCmd)
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(elementsCmd)
}
