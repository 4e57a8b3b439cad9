package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iliyamo/oscar-explorer/internal/model"
	"github.com/iliyamo/oscar-explorer/internal/views"
)

var errNotLoggedIn = errors.New("not logged in; run `oscar login` first")

func requireLogin(a *app) error {
	if !a.sess.LoggedIn() {
		return errNotLoggedIn
	}
	return nil
}

func printFavorites(a *app, groups ...[]model.Favorite) error {
	t := newTable(a.out, "ID", "TYPE", "ITEM", "NAME", "ADDED")
	for _, g := range groups {
		for _, f := range g {
			t.row(f.ID, f.ItemType, f.ItemID, f.ItemName, f.CreatedAt)
		}
	}
	return t.flush()
}

func favoritesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage bookmarked actors, directors and films",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Cobra runs only the nearest persistent pre-run, so chain to the root's.
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			return requireLogin(a)
		},
	}

	var kind string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind != "" {
				favs, err := a.api.FavoritesOf(cmd.Context(), kind)
				if err != nil {
					return err
				}
				return printFavorites(a, favs)
			}
			g, err := a.api.Favorites(cmd.Context())
			if err != nil {
				return err
			}
			return printFavorites(a, g.Actors, g.Directors, g.Films)
		},
	}
	listCmd.Flags().StringVarP(&kind, "type", "t", "", "actors, directors or films")

	addCmd := &cobra.Command{
		Use:   "add <actors|directors|films> <id>",
		Short: "Bookmark an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.api.AddFavorite(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Added to favorites (id %d)\n", id)
			return nil
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <favorite-id>",
		Short: "Remove a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid favorite id %q", args[0])
			}
			page := views.NewProfilePage(a.api)
			if err := page.RemoveFavorite(cmd.Context(), id); err != nil {
				return err
			}
			printNotice(a.out, page.Notice)
			return nil
		},
	}

	cmd.AddCommand(listCmd, addCmd, rmCmd)
	return cmd
}

func profileCmd(a *app) *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(a); err != nil {
				return err
			}
			if name != "" || email != "" {
				cur, err := a.api.Profile(cmd.Context())
				if err != nil {
					return err
				}
				if name == "" {
					name = cur.User.Name
				}
				if email == "" {
					email = cur.User.Email
				}
				if _, err := a.api.UpdateProfile(cmd.Context(), name, email); err != nil {
					return err
				}
			}

			st := views.NewProfilePage(a.api).Load(cmd.Context())
			if st.Err != nil {
				return st.Err
			}
			u, c := st.Data.Profile.User, st.Data.Profile.FavoritesCount
			fmt.Fprintf(a.out, "%s <%s>  @%s\n", u.Name, u.Email, u.Username)
			fmt.Fprintf(a.out, "Member since %s, last login %s\n", cell(u.CreatedAt), cell(u.LastLogin))
			fmt.Fprintf(a.out, "Favorites: %d actors, %d directors, %d films\n", c.Actors, c.Directors, c.Films)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&email, "email", "", "new email")
	return cmd
}
