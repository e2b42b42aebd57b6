package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sajilokaam/client-core/internal/core/domain"
)

var (
	registerEmail    string
	registerPassword string
	registerFullName string
	registerRole     string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		a.router.Navigate(domain.PageSignup, nil)

		role := strings.ToUpper(registerRole)
		if err := a.session.Register(cmd.Context(), registerEmail, registerPassword, registerFullName, role); err != nil {
			return err
		}

		user := a.session.User()
		fmt.Printf("Welcome, %s! Registered as %s.\n", user.FullName, user.Type())
		fmt.Printf("Landing page: %s\n", a.router.CurrentPage())
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "account email")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "account password (min 8 characters)")
	registerCmd.Flags().StringVarP(&registerFullName, "name", "n", "", "full name")
	registerCmd.Flags().StringVarP(&registerRole, "role", "r", "", "account role: client or freelancer (default client)")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(registerCmd)
}
