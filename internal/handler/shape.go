package handler

import (
	"sort"

	"github.com/goccy/go-json"

	"github.com/iliyamo/oscar-explorer/internal/model"
	"github.com/iliyamo/oscar-explorer/internal/repository"
)

// decodeList unmarshals a JSON array column.  An empty column is an empty
// list.
func decodeList[T any](raw []byte) ([]*T, error) {
	var out []*T
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// dropNil removes null placeholders produced by aggregating outer joins.
func dropNil[T any](in []*T) []*T {
	out := make([]*T, 0, len(in))
	for _, v := range in {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

// mergeAwards appends the entries of extra not already present in base,
// identified by (category, year).
func mergeAwards(base, extra []*model.AwardEntry) []*model.AwardEntry {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]*model.AwardEntry, 0, len(base)+len(extra))
	for _, list := range [][]*model.AwardEntry{base, extra} {
		for _, a := range list {
			if a == nil || seen[a.Key()] {
				continue
			}
			seen[a.Key()] = true
			out = append(out, a)
		}
	}
	return out
}

// cleanMovies drops null movies and awards, folds repeated movies into one
// entry with merged awards and orders the result by year descending, then
// id descending.  Movies without a year sort last.
func cleanMovies(in []*model.CreditedMovie) []*model.CreditedMovie {
	byID := make(map[string]*model.CreditedMovie, len(in))
	out := make([]*model.CreditedMovie, 0, len(in))
	for _, m := range in {
		if m == nil {
			continue
		}
		if prev, ok := byID[m.ID]; ok {
			prev.Awards = mergeAwards(prev.Awards, m.Awards)
			continue
		}
		m.Awards = mergeAwards(nil, m.Awards)
		byID[m.ID] = m
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		yi, yj := out[i].Year, out[j].Year
		switch {
		case yi == nil && yj == nil:
		case yi == nil:
			return false
		case yj == nil:
			return true
		case *yi != *yj:
			return *yi > *yj
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// buildFilmDetail turns the raw detail row into the response shape.
func buildFilmDetail(row *repository.FilmDetailRow) (*model.FilmDetail, error) {
	directors, err := decodeList[model.PersonRef](row.Directors)
	if err != nil {
		return nil, err
	}
	cast, err := decodeList[model.CastMember](row.Cast)
	if err != nil {
		return nil, err
	}
	awards, err := decodeList[model.AwardEntry](row.Awards)
	if err != nil {
		return nil, err
	}
	genres := []string(row.Genres)
	if genres == nil {
		genres = []string{}
	}
	d := &model.FilmDetail{
		ID:        row.ID,
		Title:     row.Title,
		Year:      row.Year,
		Genres:    genres,
		Rating:    row.Rating,
		Votes:     row.Votes,
		Budget:    row.Budget,
		Revenue:   row.Revenue,
		ROI:       model.ComputeROI(row.Budget, row.Revenue),
		Directors: dropNil(directors),
		Cast:      dropNil(cast),
		Awards:    dropNil(awards),
	}
	return d, nil
}

// buildPersonDetail turns the raw person row into the response shape.
func buildPersonDetail(row *repository.PersonDetailRow) (*model.PersonDetail, error) {
	movies, err := decodeList[model.CreditedMovie](row.Movies)
	if err != nil {
		return nil, err
	}
	professions := row.Professions
	if professions == nil {
		professions = []string{}
	}
	return &model.PersonDetail{
		ID:          row.ID,
		Name:        row.Name,
		Professions: professions,
		Stats: model.PersonSummaryStats{
			FilmCount:        row.FilmCount,
			AvgRating:        row.AvgRating,
			TotalNominations: row.TotalNominations,
			TotalWins:        row.TotalWins,
			TotalBoxOffice:   row.TotalBoxOffice,
		},
		Movies: cleanMovies(movies),
	}, nil
}
