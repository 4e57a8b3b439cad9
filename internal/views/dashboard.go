package views

import (
	"context"
	"sync"

	"github.com/iliyamo/oscar-explorer/internal/model"
)

// DashboardPage is the landing page.  It is the only page that falls back
// to built-in demo data when the API cannot be reached.
type DashboardPage struct {
	api    API
	Data   Loadable[model.Dashboard]
	Notice *Notifier

	mu   sync.Mutex
	demo bool
}

func NewDashboardPage(api API) *DashboardPage {
	return &DashboardPage{api: api, Notice: NewNotifier(0)}
}

// Load fetches the dashboard.  On failure the demo data is shown instead
// and a notice explains why.
func (p *DashboardPage) Load(ctx context.Context) State[model.Dashboard] {
	seq := p.Data.Begin()
	d, err := p.api.Dashboard(ctx)
	if err != nil {
		if p.Data.Finish(seq, DemoDashboard(), nil) {
			p.setDemo(true)
			p.Notice.Notify(NoticeInfo, "Showing demo data: "+errorMessage(err))
		}
		return p.Data.State()
	}
	if p.Data.Finish(seq, *d, nil) {
		p.setDemo(false)
	}
	return p.Data.State()
}

// Demo reports whether the visible data is the built-in fallback.
func (p *DashboardPage) Demo() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.demo
}

func (p *DashboardPage) setDemo(v bool) {
	p.mu.Lock()
	p.demo = v
	p.mu.Unlock()
}

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }
func i64p(i int64) *int64   { return &i }

// DemoDashboard is a small fixed snapshot of the dataset.
func DemoDashboard() model.Dashboard {
	return model.Dashboard{
		RecentWinners: []model.RecentWinner{
			{Year: 2023, Category: "BEST PICTURE", FilmID: strp("tt15398776"), FilmTitle: strp("Oppenheimer")},
			{Year: 2022, Category: "BEST PICTURE", FilmID: strp("tt6710474"), FilmTitle: strp("Everything Everywhere All at Once")},
			{Year: 2021, Category: "BEST PICTURE", FilmID: strp("tt10366460"), FilmTitle: strp("CODA")},
			{Year: 2020, Category: "BEST PICTURE", FilmID: strp("tt9770150"), FilmTitle: strp("Nomadland")},
			{Year: 2019, Category: "BEST PICTURE", FilmID: strp("tt6751668"), FilmTitle: strp("Parasite")},
		},
		TopCategories: []model.TopCategory{
			{Category: "ACTOR IN A SUPPORTING ROLE", Nominations: 440, Wins: 88, Films: []model.CategoryFilm{}},
			{Category: "ACTRESS IN A SUPPORTING ROLE", Nominations: 440, Wins: 88, Films: []model.CategoryFilm{}},
			{Category: "FILM EDITING", Nominations: 445, Wins: 89, Films: []model.CategoryFilm{}},
		},
		Stats: model.DashboardStats{
			TotalFilms:       5000,
			TotalNominations: 11000,
			TotalWins:        2500,
			TotalCategories:  115,
			FirstYear:        intp(1927),
			LastYear:         intp(2023),
		},
		HighestGrossing: []model.GrossingFilm{
			{ID: "tt0499549", Title: "Avatar", Year: intp(2009), Revenue: 2923706026, Budget: i64p(237000000), Director: strp("James Cameron")},
			{ID: "tt4154796", Title: "Avengers: Endgame", Year: intp(2019), Revenue: 2799439100, Budget: i64p(356000000), Director: strp("Anthony Russo, Joe Russo")},
			{ID: "tt0120338", Title: "Titanic", Year: intp(1997), Revenue: 2264743305, Budget: i64p(200000000), Director: strp("James Cameron")},
		},
	}
}
