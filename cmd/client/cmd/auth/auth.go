package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd groups the account commands.
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage your account",
	Long:  `Register, log in and log out.`,
}
