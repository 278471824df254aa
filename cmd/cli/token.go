package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/formlift-io/iform/internal/common"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Request an access token and show its status",
	RunE: func(cmd *cobra.Command, args []string) error {

		api, err := newAPIClient()
		if err != nil {
			return err
		}

		token, err := api.Token(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to acquire token: %w", err)
		}

		show, _ := cmd.Flags().GetBool("show")

		fmt.Println(headerStyle.Render(fmt.Sprintf("Server: %s", cfg.ServerHostname())))

		if token.IsExpired() {
			fmt.Println("  " + expiredStyle.Render("EXPIRED"))
		} else {
			fmt.Println("  " + activeStyle.Render("ACTIVE"))
			fmt.Println("  " + activeStyle.Render(fmt.Sprintf("Expires: %s (%s)",
				token.Expiry.Format("2006-01-02 15:04:05"),
				common.FormatDurationRemaining(time.Until(token.Expiry)))))
		}

		if show {
			fmt.Println("  " + infoStyle.Render(fmt.Sprintf("Token: %s", token.AccessToken)))
		}

		return nil
	},
}

func init() {
	tokenCmd.Flags().Bool("show", false, "Print the raw access token")
	rootCmd.AddCommand(tokenCmd)
}
