package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/formlift-io/iform/internal/common"
	"github.com/formlift-io/iform/internal/export"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Fetch, export and manage page records",
}

var recordsListCmd = &cobra.Command{
	Use:   "list <page-id-or-name>",
	Short: "Fetch all records of a page",
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

		sinceID, _ := cmd.Flags().GetInt64("since")
		fields, _ := cmd.Flags().GetStringSlice("fields")
		fields = common.FilterEmpty(fields...)

		records, err := api.FetchAllRecords(cmd.Context(), profileID, pageID, sinceID, fields...)
		if err != nil {
			return err
		}

		filter, _ := cmd.Flags().GetString("filter")
		if len(filter) > 0 {
			records, err = export.FilterRecords(records, filter)
			if err != nil {
				return err
			}
		}

		return writeTable(cmd, export.FromRecords(records))
	},
}

var recordsExportCmd = &cobra.Command{
	Use:   "export <page-id-or-name> <file>",
	Short: "Export all records of a page to a file",
	Long: `Fetches every record of the page and writes it to the given file.
The format follows --output and defaults to csv.`,
	Args: cobra.ExactArgs(2),
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

		sinceID, _ := cmd.Flags().GetInt64("since")
		fields, _ := cmd.Flags().GetStringSlice("fields")
		fields = common.FilterEmpty(fields...)

		records, err := api.FetchAllRecords(cmd.Context(), profileID, pageID, sinceID, fields...)
		if err != nil {
			return err
		}

		filter, _ := cmd.Flags().GetString("filter")
		if len(filter) > 0 {
			records, err = export.FilterRecords(records, filter)
			if err != nil {
				return err
			}
		}

		out, err := os.Create(args[1])
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer out.Close()

		format, _ := cmd.Flags().GetString("output")
		if err := export.FromRecords(records).Write(out, format); err != nil {
			return err
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("Exported %d records to %s", len(records), args[1])))
		return nil
	},
}

var recordsGetCmd = &cobra.Command{
	Use:   "get <page-id-or-name> <record-id>",
	Short: "Show one record as JSON",
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

		pageID, err := resolvePage(cmd, api, profileID, args[0])
		if err != nil {
			return err
		}

		recordID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid record id: %s", args[1])
		}

		record, err := api.GetRecord(cmd.Context(), profileID, pageID, recordID)
		if err != nil {
			return err
		}

		encoded, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return err
		}

		fmt.Println(string(encoded))
		return nil
	},
}

var recordsCreateCmd = &cobra.Command{
	Use:   "create <page-id-or-name> <json>",
	Short: "Create a record from a JSON object of element values",
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

		pageID, err := resolvePage(cmd, api, profileID, args[0])
		if err != nil {
			return err
		}

		var values map[string]any
		if err := json.Unmarshal([]byte(args[1]), &values); err != nil {
			return fmt.Errorf("invalid record JSON: %w", err)
		}

		recordID, err := api.CreateRecord(cmd.Context(), profileID, pageID, values)
		if err != nil {
			return err
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("Created record %d", recordID)))
		return nil
	},
}

var recordsDeleteCmd = &cobra.Command{
	Use:   "delete <page-id-or-name> <record-id>",
	Short: "Delete one record",
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

		pageID, err := resolvePage(cmd, api, profileID, args[0])
		if err != nil {
			return err
		}

		recordID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid record id: %s", args[1])
		}

		if err := api.DeleteRecord(cmd.Context(), profileID, pageID, recordID); err != nil {
			return err
		}

		fmt.Println(warningStyle.Render(fmt.Sprintf("Deleted record %d", recordID)))
		return nil
	},
}

func init() {
	addOutputFlags(recordsListCmd)
	recordsListCmd.Flags().Int64("since", 0, "Only fetch records with id greater than this")
	recordsListCmd.Flags().StringSlice("fields", nil, "Restrict output to the named elements")
	recordsListCmd.Flags().String("filter", "", "jq expression to filter or reshape records")

	recordsExportCmd.Flags().StringP("output", "o", "csv", "Export format: csv, json or yaml")
	recordsExportCmd.Flags().Int64("since", 0, "Only export records with id greater than this")
	recordsExportCmd.Flags().StringSlice("fields", nil, "Restrict output to the named elements")
	recordsExportCmd.Flags().String("filter", "", "jq expression to filter or reshape records")

	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsExportCmd)
	recordsCmd.AddCommand(recordsGetCmd)
	recordsCmd.AddCommand(recordsCreateCmd)
	recordsCmd.AddCommand(recordsDeleteCmd)
	rootCmd.AddCommand(recordsCmd)
}
