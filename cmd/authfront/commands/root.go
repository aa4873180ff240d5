package commands

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/authfront/config"
	"github.com/kbukum/authfront/logger"
	"github.com/kbukum/authfront/observability"
	"github.com/kbukum/authfront/version"
)

var (
	configFile string
	envFile    string
	baseURL    string

	cfg      *config.AppConfig
	shutdown observability.ShutdownFunc
)

// Execute runs the authfront CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "authfront",
		Short:         "Sign-up and sign-in client for an email/password identity service",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var opts []config.LoaderOption
			if configFile != "" {
				opts = append(opts, config.WithConfigFile(configFile))
			}
			if envFile != "" {
				opts = append(opts, config.WithEnvFile(envFile))
			}
			loaded, err := config.Load(opts...)
			if err != nil {
				return err
			}
			if baseURL != "" {
				loaded.Identity.BaseURL = baseURL
			}
			cfg = loaded

			logger.Init(&cfg.Logging)

			shutdown, err = observability.Init(cmd.Context(), cfg.Observability, cfg.Name, version.Short(), cfg.Environment)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(cmd.Context())
		},
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default: search cmd/authfront, ./config, ., user config dir)")
	root.PersistentFlags().StringVar(&envFile, "env-file", "", ".env file to load")
	root.PersistentFlags().StringVar(&baseURL, "base-url", "", "identity service base URL (overrides config)")

	root.AddCommand(shellCmd(), signInCmd(), signUpCmd(), identityDevCmd(), versionCmd())
	return root
}
