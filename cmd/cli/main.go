package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/formlift-io/iform/internal/client"
	"github.com/formlift-io/iform/internal/common"
	"github.com/formlift-io/iform/internal/config"
	"github.com/formlift-io/iform/internal/sessions"
)

// Global configuration instance
var cfg *config.Config

// loadConfig loads the configuration based on the --config flag or default locations
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, err := cmd.Flags().GetString("config")

	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	return config.Load(configFile)
}

func preRunConfigE(cmd *cobra.Command, _ []string) error {
	// Load configuration before any command runs
	var err error
	cfg, err = loadConfig(cmd)

	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// check if verbose flag is set
	verbose, err := cmd.Flags().GetBool("verbose")
	if err == nil && verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Allow the default profile to be overridden per invocation
	profileID, err := cmd.Flags().GetInt64("profile")
	if err == nil && profileID > 0 {
		cfg.ProfileID = profileID
	}

	return nil
}

// newAPIClient builds a client for the configured server with the on-disk
// token cache attached.
func newAPIClient() (*client.Client, error) {

	sessionManager := sessions.GetSessionManager()

	if err := sessionManager.Load(cfg.ServerHostname()); err != nil {
		logrus.WithError(err).Debug("No cached session state")
	}

	return client.New(cfg, client.WithSessionManager(sessionManager))
}

// requireProfile returns the effective profile id, failing with guidance
// when none is configured.
func requireProfile() (int64, error) {
	if cfg.ProfileID <= 0 {
		return 0, fmt.Errorf("no profile configured: set profile_id in config.yaml, IFORM_PROFILE_ID, or pass --profile")
	}
	return cfg.ProfileID, nil
}

var rootCmd = &cobra.Command{
	Use:     "iform",
	Version: common.GetVersion(),
	Short:   "iForm CLI - typed access to the iFormBuilder REST API",
	Long: `iForm wraps the iFormBuilder REST API: token acquisition, pages,
records, option lists, users and profiles, with tabular output.

Credentials come from config.yaml, environment variables (IFORM_*) or a
.env file. Run 'iform configure' to set them up interactively.`,
	PersistentPreRunE: preRunConfigE,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {

	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is $HOME/.config/iform/config.yaml)")
	rootCmd.PersistentFlags().Int64P("profile", "p", 0, "Override the configured profile id")

}

func GetCommandOptions() *cobra.Command {
	return rootCmd
}
