package cli

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Interactively set up server and API credentials",
	// Configuration may not exist yet, so skip the usual config load
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {

		var server, clientKey, clientSecret, profileID string

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Server name").
					Description("The subdomain of your iFormBuilder server, e.g. 'mycompany'").
					Value(&server),
				huh.NewInput().
					Title("Client key").
					Description("From Company > API Applications").
					Value(&clientKey),
				huh.NewInput().
					Title("Client secret").
					EchoMode(huh.EchoModePassword).
					Value(&clientSecret),
				huh.NewInput().
					Title("Default profile id").
					Description("Optional, can be overridden with --profile").
					Value(&profileID),
			),
		)

		if err := form.Run(); err != nil {
			return fmt.Errorf("configuration cancelled: %w", err)
		}

		if len(server) == 0 || len(clientKey) == 0 || len(clientSecret) == 0 {
			return fmt.Errorf("server, client key and client secret are all required")
		}

		settings := map[string]any{
			"server":        server,
			"client_key":    clientKey,
			"client_secret": clientSecret,
		}

		if len(profileID) > 0 {
			parsed, err := strconv.ParseInt(profileID, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid profile id: %s", profileID)
			}
			settings["profile_id"] = parsed
		}

		path, err := writeConfigFile(settings)
		if err != nil {
			return err
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("Wrote %s", path)))
		fmt.Println(infoStyle.Render("Run 'iform token' to verify the credentials"))
		return nil
	},
}

func writeConfigFile(settings map[string]any) (string, error) {

	usr, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}

	dir := filepath.Join(usr.HomeDir, ".config", "iform")
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")

	encoded, err := yaml.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("failed to encode configuration: %w", err)
	}

	// Credentials live in this file, owner-only access
	if err := os.WriteFile(path, encoded, 0600); err != nil {
		return "", fmt.Errorf("failed to write configuration: %w", err)
	}

	return path, nil
}

func init() {
	rootCmd.AddCommand(configureCmd)
}
