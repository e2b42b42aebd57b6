package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sajilokaam/client-core/internal/core/domain"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively walk the page graph",
	Long: `browse opens a small shell over the page router. Type a page name to
navigate; redirects fire exactly as they do in the web client, so visiting a
protected page while logged out bounces you home, and sitting on login while
authenticated lands you on your dashboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "On page %q. Commands: go <page>, login <email> <password>, logout, whoami, quit\n", a.router.CurrentPage())

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprintf(out, "%s> ", a.router.CurrentPage())
			if !scanner.Scan() {
				return scanner.Err()
			}
			fields := strings.Fields(scanner.Text())
			if len(fields) == 0 {
				continue
			}

			switch fields[0] {
			case "quit", "exit":
				return nil

			case "go":
				if len(fields) != 2 {
					fmt.Fprintln(out, "usage: go <page>")
					continue
				}
				page := domain.Page(fields[1])
				if !page.Known() {
					page = domain.PageNotFound
				}
				a.router.Navigate(page, nil)
				// Forced redirects only fire on session changes; evaluate the
				// guard for plain navigation here, as page components do.
				if page.Protected() && !a.session.IsAuthenticated() {
					a.router.Navigate(domain.PageHome, nil)
					fmt.Fprintln(out, "That page needs a login; sent home.")
				}

			case "login":
				if len(fields) != 3 {
					fmt.Fprintln(out, "usage: login <email> <password>")
					continue
				}
				if err := a.session.Login(cmd.Context(), fields[1], fields[2]); err != nil {
					fmt.Fprintf(out, "login failed: %v\n", err)
				}

			case "logout":
				a.session.Logout()

			case "whoami":
				if user := a.session.User(); user != nil {
					fmt.Fprintf(out, "%s <%s> (%s)\n", user.FullName, user.Email, user.Type())
				} else {
					fmt.Fprintln(out, "not logged in")
				}

			default:
				fmt.Fprintln(out, "unknown command")
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
