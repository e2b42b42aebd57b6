package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sajilokaam/client-core/internal/core/domain"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and persist the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		// Sit on the login page so a successful login triggers the post-login
		// redirect to the role dashboard, same as in the web client.
		a.router.Navigate(domain.PageLogin, nil)

		if err := a.session.Login(cmd.Context(), loginEmail, loginPassword); err != nil {
			return err
		}

		user := a.session.User()
		fmt.Printf("Logged in as %s (%s)\n", user.FullName, user.Email)
		fmt.Printf("Landing page: %s\n", a.router.CurrentPage())
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(loginCmd)
}
