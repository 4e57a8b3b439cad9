package main

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/iliyamo/oscar-explorer/internal/client"
)

// promptPassword asks for a password unless one was given as a flag.
func promptPassword(given string) (string, error) {
	if given != "" {
		return given, nil
	}
	p := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(s string) error {
			if len(s) < 6 {
				return errors.New("password must be at least 6 characters long")
			}
			return nil
		},
	}
	return p.Run()
}

func loginCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username|email>",
		Short: "Sign in and remember the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := promptPassword(password)
			if err != nil {
				return err
			}
			u, err := a.sess.Login(cmd.Context(), args[0], pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged in as %s (%s)\n", u.Username, u.Name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when empty)")
	return cmd
}

func registerCmd(a *app) *cobra.Command {
	var req client.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Username = args[0]
			pw, err := promptPassword(req.Password)
			if err != nil {
				return err
			}
			req.Password = pw
			u, err := a.sess.Register(cmd.Context(), req)
			if err != nil {
				var ae *client.APIError
				if errors.As(err, &ae) {
					for _, f := range ae.Fields {
						fmt.Fprintf(a.out, "  %s: %s\n", f.Field, f.Message)
					}
				}
				return err
			}
			fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&req.Name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "password (prompted when empty)")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sess.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out successfully")
			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.sess.LoggedIn() {
				fmt.Fprintln(a.out, "Not logged in")
				return nil
			}
			me, err := a.api.Me(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s (id %d)\n", me.Username, me.UserID)
			return nil
		},
	}
}
