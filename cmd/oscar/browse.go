package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iliyamo/oscar-explorer/internal/client"
	"github.com/iliyamo/oscar-explorer/internal/views"
)

// listFlags binds the shared sort/order/limit flags.
func listFlags(cmd *cobra.Command, q *client.ListQuery, sortHelp string) {
	cmd.Flags().StringVarP(&q.SortBy, "sort", "s", "", sortHelp)
	cmd.Flags().StringVarP(&q.Order, "order", "o", "", "asc or desc")
	cmd.Flags().IntVarP(&q.Limit, "limit", "l", 0, "number of rows")
}

func dashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Headline numbers, recent winners and top categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page := views.NewDashboardPage(a.api)
			d := page.Load(cmd.Context()).Data
			printNotice(a.out, page.Notice)

			s := d.Stats
			fmt.Fprintf(a.out, "%d films, %d nominations, %d wins across %d categories (%s-%s)\n\n",
				s.TotalFilms, s.TotalNominations, s.TotalWins, s.TotalCategories, cell(s.FirstYear), cell(s.LastYear))

			t := newTable(a.out, "YEAR", "CATEGORY", "FILM")
			for _, w := range d.RecentWinners {
				t.row(w.Year, w.Category, w.FilmTitle)
			}
			if err := t.flush(); err != nil {
				return err
			}
			fmt.Fprintln(a.out)

			t = newTable(a.out, "CATEGORY", "NOMINATIONS", "WINS", "FILMS")
			for _, c := range d.TopCategories {
				t.row(c.Category, c.Nominations, c.Wins, len(c.Films))
			}
			if err := t.flush(); err != nil {
				return err
			}
			fmt.Fprintln(a.out)

			t = newTable(a.out, "TITLE", "YEAR", "REVENUE", "BUDGET", "DIRECTOR")
			for _, f := range d.HighestGrossing {
				t.row(f.Title, f.Year, money(f.Revenue), moneyp(f.Budget), f.Director)
			}
			return t.flush()
		},
	}
}

func filmsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "films", Short: "Film listings and details"}

	var top views.FilmFilters
	topCmd := &cobra.Command{
		Use:   "top",
		Short: "Top rated films",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			top.Mode = views.ModeTopRated
			return showFilms(cmd, a, top)
		},
	}
	topCmd.Flags().StringVarP(&top.Genre, "genre", "g", "", "restrict to a genre")
	topCmd.Flags().IntVar(&top.MinVotes, "min-votes", 0, "minimum IMDb votes")
	topCmd.Flags().StringVarP(&top.SortBy, "sort", "s", "", "rating, votes or year")
	topCmd.Flags().StringVarP(&top.Order, "order", "o", "", "asc or desc")
	topCmd.Flags().IntVarP(&top.Limit, "limit", "l", 0, "number of rows")

	var roi views.FilmFilters
	roiCmd := &cobra.Command{
		Use:   "roi",
		Short: "Films with the highest return on investment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roi.Mode = views.ModeROI
			return showFilms(cmd, a, roi)
		},
	}
	roiCmd.Flags().IntVar(&roi.YearStart, "from", 0, "first year")
	roiCmd.Flags().IntVar(&roi.YearEnd, "to", 0, "last year")
	roiCmd.Flags().IntVarP(&roi.Limit, "limit", "l", 0, "number of rows")

	var byActor views.FilmFilters
	byActorCmd := &cobra.Command{
		Use:   "by-actor <name>",
		Short: "Films of one actor",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byActor.Mode = views.ModeByActor
			byActor.Actor = strings.Join(args, " ")
			return showFilms(cmd, a, byActor)
		},
	}
	byActorCmd.Flags().StringVarP(&byActor.SortBy, "sort", "s", "", "year or title")
	byActorCmd.Flags().StringVarP(&byActor.Order, "order", "o", "", "asc or desc")
	byActorCmd.Flags().IntVarP(&byActor.Limit, "limit", "l", 0, "number of rows")
	byActorCmd.Flags().BoolVar(&byActor.Unlimited, "all", false, "list every film")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Film details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := views.NewFilmDetailPage(a.api, args[0], a.sess.LoggedIn())
			st := page.Load(cmd.Context())
			if st.Err != nil {
				return st.Err
			}
			f := st.Data
			fmt.Fprintf(a.out, "%s (%s)  %s\n", f.Title, cell(f.Year), strings.Join(f.Genres, ", "))
			fmt.Fprintf(a.out, "Rating %s from %s votes\n", cell(f.Rating), cell(f.Votes))
			switch {
			case f.ROI != nil:
				fmt.Fprintf(a.out, "Budget %s, revenue %s, ROI %.2f%%\n", moneyp(f.Budget), moneyp(f.Revenue), *f.ROI)
			case f.Budget != nil || f.Revenue != nil:
				fmt.Fprintf(a.out, "Budget %s, revenue %s\n", moneyp(f.Budget), moneyp(f.Revenue))
			}
			if fav, _ := page.Favorite.IsFavorite(); fav {
				fmt.Fprintln(a.out, "★ in your favorites")
			}
			var names []string
			for _, d := range f.Directors {
				names = append(names, d.Name)
			}
			fmt.Fprintf(a.out, "Directed by %s\n\n", strings.Join(names, ", "))

			t := newTable(a.out, "CAST", "ROLE")
			for _, m := range f.Cast {
				t.row(m.Name, m.Category)
			}
			if err := t.flush(); err != nil {
				return err
			}
			if len(f.Awards) > 0 {
				fmt.Fprintln(a.out)
				t = newTable(a.out, "YEAR", "CATEGORY", "WON")
				for _, aw := range f.Awards {
					t.row(aw.Year, aw.Category, aw.IsWinner)
				}
				return t.flush()
			}
			return nil
		},
	}

	cmd.AddCommand(topCmd, roiCmd, byActorCmd, showCmd)
	return cmd
}

func showFilms(cmd *cobra.Command, a *app, f views.FilmFilters) error {
	st := views.NewFilmListPage(a.api, f).Load(cmd.Context())
	if st.Err != nil {
		return st.Err
	}
	switch st.Data.Mode {
	case views.ModeROI:
		t := newTable(a.out, "ID", "TITLE", "YEAR", "BUDGET", "REVENUE", "ROI %", "OSCAR", "DIRECTOR")
		for _, r := range st.Data.ROI {
			t.row(r.ID, r.Title, r.Year, money(r.Budget), money(r.Revenue), r.ReturnOnInvestment, r.WonOscar, r.Director)
		}
		return t.flush()
	case views.ModeByActor:
		res := st.Data.ByActor
		if !res.ActorFound {
			fmt.Fprintln(a.out, res.Message)
			return nil
		}
		fmt.Fprintf(a.out, "%s: %d films\n", res.Actor, res.Count)
		t := newTable(a.out, "ID", "TITLE", "YEAR", "RATING")
		for _, m := range res.Films {
			t.row(m.ID, m.Title, m.Year, m.Rating)
		}
		return t.flush()
	default:
		t := newTable(a.out, "ID", "TITLE", "YEAR", "RATING", "VOTES", "GENRES")
		for _, m := range st.Data.Films {
			t.row(m.ID, m.Title, m.Year, m.Rating, m.Votes, strings.Join(m.Genres, ","))
		}
		return t.flush()
	}
}

func peopleCmd(a *app, role client.Role) *cobra.Command {
	cmd := &cobra.Command{Use: string(role), Short: "Top " + string(role) + " and their careers"}

	var q client.ListQuery
	topCmd := &cobra.Command{
		Use:   "top",
		Short: "Rank " + string(role),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := views.NewPersonListPage(a.api, role, q).Load(cmd.Context())
			if st.Err != nil {
				return st.Err
			}
			t := newTable(a.out, "ID", "NAME", "FILMS", "AVG RATING", "NOMINATIONS", "WINS", "BOX OFFICE")
			for _, p := range st.Data.People {
				t.row(p.ID, p.Name, p.FilmCount, p.AvgRating, p.TotalNominations, p.TotalWins, moneyp(p.TotalBoxOffice))
			}
			return t.flush()
		},
	}
	listFlags(topCmd, &q, "ratings, nominations or boxOffice")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Career of one person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := views.NewPersonDetailPage(a.api, role, args[0], a.sess.LoggedIn())
			st := page.Load(cmd.Context())
			if st.Err != nil {
				return st.Err
			}
			p := st.Data
			fmt.Fprintf(a.out, "%s  [%s]\n", p.Name, strings.Join(p.Professions, ", "))
			fmt.Fprintf(a.out, "%s films, avg rating %s, %s nominations, %s wins\n\n",
				cell(p.Stats.FilmCount), cell(p.Stats.AvgRating), cell(p.Stats.TotalNominations), cell(p.Stats.TotalWins))
			t := newTable(a.out, "YEAR", "TITLE", "RATING", "AWARDS")
			for _, m := range p.Movies {
				var aw []string
				for _, x := range m.Awards {
					s := fmt.Sprintf("%s %d", x.Category, x.Year)
					if x.IsWinner {
						s += " (won)"
					}
					aw = append(aw, s)
				}
				t.row(m.Year, m.Title, m.Rating, strings.Join(aw, "; "))
			}
			return t.flush()
		},
	}

	cmd.AddCommand(topCmd, showCmd)
	return cmd
}

func genresCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "genres", Short: "Genre statistics"}

	var lq client.ListQuery
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "All genres with counts and ratings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := views.NewGenreListPage(a.api, lq).Load(cmd.Context())
			if st.Err != nil {
				return st.Err
			}
			t := newTable(a.out, "GENRE", "FILMS", "AVG RATING", "NOMINATIONS", "WINS")
			for _, g := range st.Data.Genres {
				t.row(g.Genre, g.FilmCount, g.AvgRating, g.Nominations, g.Wins)
			}
			return t.flush()
		},
	}
	listFlags(listCmd, &lq, "count, rating, name or nominations")

	var fq client.ListQuery
	genreFilmsCmd := &cobra.Command{
		Use:   "films <genre>",
		Short: "Films of one genre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := views.NewGenreDetailPage(a.api, args[0], fq).Load(cmd.Context())
			if st.Err != nil {
				return st.Err
			}
			t := newTable(a.out, "ID", "TITLE", "YEAR", "RATING", "VOTES")
			for _, m := range st.Data.Films {
				t.row(m.ID, m.Title, m.Year, m.Rating, m.Votes)
			}
			return t.flush()
		},
	}
	listFlags(genreFilmsCmd, &fq, "rating, year, title or votes")

	cmd.AddCommand(listCmd, genreFilmsCmd)
	return cmd
}

func awardsCmd(a *app) *cobra.Command {
	var q client.AwardQuery
	var categories bool
	cmd := &cobra.Command{
		Use:   "awards",
		Short: "Nominations filtered by year and category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if categories {
				cats, err := a.api.AwardCategories(cmd.Context())
				if err != nil {
					return err
				}
				t := newTable(a.out, "CATEGORY", "NOMINATIONS", "WINS", "FIRST", "LAST")
				for _, c := range cats {
					t.row(c.Category, c.Nominations, c.Wins, c.FirstYear, c.LastYear)
				}
				return t.flush()
			}
			res, err := a.api.Awards(cmd.Context(), q)
			if err != nil {
				return err
			}
			t := newTable(a.out, "YEAR", "CATEGORY", "FILM", "NOMINEES", "WON")
			for _, aw := range res.Awards {
				t.row(aw.Year, aw.Category, aw.FilmTitle, strings.Join(aw.Nominees, ", "), aw.IsWinner)
			}
			return t.flush()
		},
	}
	cmd.Flags().IntVarP(&q.Year, "year", "y", 0, "ceremony year")
	cmd.Flags().StringVarP(&q.Category, "category", "c", "", "category contains")
	cmd.Flags().BoolVarP(&q.WinnersOnly, "winners", "w", false, "winners only")
	cmd.Flags().StringVarP(&q.SortBy, "sort", "s", "", "year or category")
	cmd.Flags().StringVarP(&q.Order, "order", "o", "", "asc or desc")
	cmd.Flags().IntVarP(&q.Limit, "limit", "l", 0, "number of rows")
	cmd.Flags().BoolVar(&categories, "categories", false, "list categories instead")
	return cmd
}
