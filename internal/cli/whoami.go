package cli

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !a.session.IsAuthenticated() {
			fmt.Println("Not logged in.")
			return nil
		}

		user := a.session.User()
		fmt.Printf("User:  %s <%s> (id %d)\n", user.FullName, user.Email, user.ID)
		fmt.Printf("Type:  %s\n", user.Type())
		for _, role := range user.Roles {
			fmt.Printf("Role:  %s\n", role.Name)
		}

		// Expiry is informational only; the backend is the authority on token
		// validity, so the claim is read without verifying the signature.
		if exp, ok := tokenExpiry(a.session.Token()); ok {
			fmt.Printf("Token expires: %s\n", exp.Local().Format(time.RFC1123))
		}
		return nil
	},
}

func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
