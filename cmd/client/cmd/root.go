package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vaultkeeper/cmd/client/cmd/auth"
	"vaultkeeper/cmd/client/cmd/item"
	"vaultkeeper/cmd/client/cmd/types"
	"vaultkeeper/cmd/client/cmd/ui"
	"vaultkeeper/internal/app/client"
	"vaultkeeper/internal/app/client/config"
	"vaultkeeper/internal/utils/logger"
)

var (
	cfgFile   string
	debug     bool
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "vaultkeeper",
	Short: "vaultkeeper - command line client for your password vault",
	Long: `vaultkeeper stores logins on a vault server.

Passwords are encrypted on this machine with your master password before
they are uploaded; the server never sees them in the clear.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Failure(err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}

	level := cfg.LogLevel
	if debug {
		level = "debug"
	} else if level == "" {
		level = "error"
	}
	log := logger.New(cfg.Env, level)

	cmd.SetContext(types.WithApp(cmd.Context(), client.New(cfg, log)))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.vaultkeeper/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "vault server URL")

	auth.AuthCmd.AddCommand(auth.RegisterCmd, auth.LoginCmd, auth.LogoutCmd)
	item.ItemCmd.AddCommand(item.ListCmd, item.AddCmd, item.ShowCmd, item.EditCmd, item.RemoveCmd)
	rootCmd.AddCommand(auth.AuthCmd, item.ItemCmd)
}
