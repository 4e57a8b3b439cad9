package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/oscar-explorer/internal/model"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestFilmRepo_TopRated(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFilmRepo(db)

	rows := sqlmock.NewRows([]string{"id", "title", "year", "genres", "rating", "votes"}).
		AddRow("tt0111161", "The Shawshank Redemption", 1994, "{Drama}", 9.3, 2800000).
		AddRow("tt0068646", "The Godfather", 1972, "{Crime,Drama}", 9.2, 1900000)
	mock.ExpectQuery(`r\.numvotes >= \$1 AND \$2 = ANY\(t\.genres\)\s+ORDER BY r\.averagerating DESC NULLS LAST, t\.tconst ASC\s+LIMIT \$3`).
		WithArgs(10000, "Drama", 2).
		WillReturnRows(rows)

	films, err := repo.TopRated(context.Background(), FilmListQuery{
		Genre: "Drama", MinVotes: 10000, SortBy: "rating", Order: Desc, Limit: 2,
	})
	require.NoError(t, err)
	require.Len(t, films, 2)
	assert.Equal(t, "tt0111161", films[0].ID)
	assert.Equal(t, pq.StringArray{"Crime", "Drama"}, films[1].Genres)
	require.NotNil(t, films[0].Year)
	assert.Equal(t, 1994, *films[0].Year)
}

func TestFilmRepo_TopRatedUnknownSortFallsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFilmRepo(db)

	mock.ExpectQuery(`ORDER BY r\.averagerating ASC NULLS LAST, t\.tconst ASC`).
		WithArgs(0, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	films, err := repo.TopRated(context.Background(), FilmListQuery{SortBy: "id; DROP TABLE users", Order: Asc, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, films)
	assert.Empty(t, films)
}

func TestFilmRepo_FindActorByName(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFilmRepo(db)

	mock.ExpectQuery(`FROM name_basics n`).
		WithArgs("Tom Hanks", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("nm0000158", "Tom Hanks"))
	p, err := repo.FindActorByName(context.Background(), "  Tom Hanks ")
	require.NoError(t, err)
	assert.Equal(t, "nm0000158", p.ID)

	mock.ExpectQuery(`FROM name_basics n`).
		WithArgs("Nobody", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	_, err = repo.FindActorByName(context.Background(), "Nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFilmRepo_HighestROIOptionalBounds(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFilmRepo(db)

	mock.ExpectQuery(`m\.budget >= \$1 AND t\.startyear >= \$2\s+ORDER BY`).
		WithArgs(int64(1000000), 1990, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "year", "film_title", "imdb_rating", "budget", "revenue", "won_oscar", "director"}).
			AddRow("tt0000001", 1999, "Cheap Hit", 7.1, 1000000, 5000000, true, "A. Director"))

	films, err := repo.HighestROI(context.Background(), ROIQuery{YearStart: 1990, MinBudget: 1000000, Limit: 5})
	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.True(t, films[0].WonOscar)
	assert.Equal(t, int64(5000000), films[0].Revenue)
}

func TestFilmRepo_DetailNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFilmRepo(db)

	mock.ExpectQuery(`WHERE t\.tconst = \$1`).
		WithArgs("tt404", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Detail(context.Background(), "tt404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPersonRepo_TopUsesModeColumn(t *testing.T) {
	tests := []struct {
		mode  string
		match string
	}{
		{RankByRatings, `s\.film_count >= 5\s+ORDER BY s\.avg_rating DESC NULLS LAST, s\.nconst ASC`},
		{RankByNominations, `s\.total_nominations > 0\s+ORDER BY s\.total_nominations DESC NULLS LAST, s\.nconst ASC`},
		{RankByBoxOffice, `s\.total_box_office > 0\s+ORDER BY s\.total_box_office DESC NULLS LAST, s\.nconst ASC`},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewDirectorRepo(db)
			mock.ExpectQuery(`FROM director_stats s\s+WHERE ` + tt.match).
				WithArgs(10).
				WillReturnRows(sqlmock.NewRows([]string{"id", "name", "film_count"}).AddRow("nm0000229", "Steven Spielberg", 33))

			out, err := repo.Top(context.Background(), PersonRankQuery{SortBy: tt.mode, Order: Desc, Limit: 10})
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, "Steven Spielberg", out[0].Name)
		})
	}
}

func TestPersonRepo_TopRejectsUnknownMode(t *testing.T) {
	db, _ := newMock(t)
	_, err := NewActorRepo(db).Top(context.Background(), PersonRankQuery{SortBy: "age", Order: Desc, Limit: 10})
	assert.Error(t, err)
	assert.False(t, ValidRankMode("age"))
	assert.True(t, ValidRankMode("boxOffice"))
}

func TestPersonRepo_ByDecade(t *testing.T) {
	db, mock := newMock(t)
	repo := NewActorRepo(db)

	mock.ExpectQuery(`ROW_NUMBER\(\) OVER`).
		WithArgs(sqlmock.AnyArg(), 3).
		WillReturnRows(sqlmock.NewRows([]string{"decade", "id", "name", "nominations", "wins"}).
			AddRow(1990, "nm0000158", "Tom Hanks", 3, 2).
			AddRow(2000, "nm0000093", "Brad Pitt", 1, 0))

	out, err := repo.ByDecade(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 1990, out[0].Decade)
	assert.Equal(t, int64(2), out[0].Wins)
}

func TestPersonRepo_Detail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewActorRepo(db)

	movies := `[{"id":"tt1","title":"A","year":1994,"rating":8.8,"awards":[null]},null]`
	mock.ExpectQuery(`LEFT JOIN actor_stats s ON s\.nconst = pe\.nconst`).
		WithArgs("nm0000158", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "professions", "film_count", "avg_rating",
			"total_nominations", "total_wins", "total_box_office", "movies"}).
			AddRow("nm0000158", "Tom Hanks", "{actor,producer}", 50, 7.2, 6, 2, nil, []byte(movies)))

	row, err := repo.Detail(context.Background(), "nm0000158")
	require.NoError(t, err)
	assert.Equal(t, pq.StringArray{"actor", "producer"}, row.Professions)
	assert.Nil(t, row.TotalBoxOffice)
	assert.JSONEq(t, movies, string(row.Movies))
}

func TestGenreRepo_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewGenreRepo(db)

	mock.ExpectQuery(`GROUP BY fg\.genre, n\.nominations, n\.wins\s+ORDER BY fg\.genre ASC NULLS LAST, fg\.genre ASC\s+LIMIT \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"genre", "film_count", "avg_rating", "nominations", "wins"}).
			AddRow("Action", 120, 6.4, 40, 10))

	out, err := repo.List(context.Background(), GenreListQuery{SortBy: "name", Order: Asc, Limit: 5})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(120), out[0].FilmCount)
}

func TestAwardRepo_ListFilters(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAwardRepo(db)

	mock.ExpectQuery(`WHERE a\.year = \$1 AND a\.category ILIKE \$2 AND a\.iswinner\s+ORDER BY a\.category DESC NULLS LAST, a\.year DESC, a\.id ASC\s+LIMIT \$3`).
		WithArgs(1995, "%BEST\\_PICTURE%", 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category", "year", "film_id", "film_title", "is_winner", "nominees"}).
			AddRow(7, "BEST_PICTURE", 1995, "tt0109830", "Forrest Gump", true, "{}"))

	out, err := repo.List(context.Background(), AwardQuery{
		Year: 1995, Category: "BEST_PICTURE", WinnersOnly: true, SortBy: "category", Order: Desc, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].IsWinner)
	assert.Empty(t, out[0].Nominees)
}

func TestDashboardRepo_RecentWinnersWindow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDashboardRepo(db)

	mock.ExpectQuery(`a\.year > \(SELECT MAX\(year\) FROM oscar_awards\) - \$1`).
		WithArgs(RecentWinnersYears, RecentWinnersLimit).
		WillReturnRows(sqlmock.NewRows([]string{"year", "category", "film_id", "film_title"}).
			AddRow(2023, "BEST_PICTURE", "tt6710474", "Everything Everywhere All at Once"))

	out, err := repo.RecentWinners(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 2023, out[0].Year)
}

func TestUserRepo_CreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("neo", "neo@matrix.io", "hash", "Thomas").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &model.User{Username: " neo ", Email: "NEO@matrix.io", PasswordHash: "hash", Name: "Thomas"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestUserRepo_CreateFillsGeneratedColumns(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("neo", "neo@matrix.io", "hash", "Thomas").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(42, now, now))

	u := &model.User{Username: "neo", Email: "neo@matrix.io", PasswordHash: "hash", Name: "Thomas"}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, int64(42), u.ID)
	assert.Equal(t, now, u.CreatedAt)
}

func TestUserRepo_GetByEmailNormalizes(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("neo@matrix.io").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password", "name", "created_at", "updated_at", "last_login"}))

	_, err := repo.GetByEmail(context.Background(), "  Neo@Matrix.io")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepo_UpdateProfileEmailTaken(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(`UPDATE users SET name = \$1, email = \$2`).
		WithArgs("Trinity", "trinity@matrix.io", int64(7)).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.UpdateProfile(context.Background(), 7, "Trinity", "trinity@matrix.io")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestFavoriteRepo_AddConflict(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFavoriteRepo(db)

	mock.ExpectQuery(`ON CONFLICT \(user_id, item_type, item_id\) DO NOTHING`).
		WithArgs(int64(1), "film", "tt0111161").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	id, err := repo.Add(context.Background(), 1, "film", "tt0111161")
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)

	mock.ExpectQuery(`ON CONFLICT \(user_id, item_type, item_id\) DO NOTHING`).
		WithArgs(int64(1), "film", "tt0111161").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = repo.Add(context.Background(), 1, "film", "tt0111161")
	assert.ErrorIs(t, err, ErrAlreadyFavorite)
}

func TestFavoriteRepo_ListFiltered(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFavoriteRepo(db)
	now := time.Now()

	mock.ExpectQuery(`WHERE f\.user_id = \$1 AND f\.item_type = \$2\s+ORDER BY f\.created_at DESC, f\.id DESC`).
		WithArgs(int64(3), "actor").
		WillReturnRows(sqlmock.NewRows([]string{"id", "item_type", "item_id", "created_at", "item_name"}).
			AddRow(1, "actor", "nm0000158", now, "Tom Hanks"))

	out, err := repo.List(context.Background(), 3, "actor")
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].ItemName)
	assert.Equal(t, "Tom Hanks", *out[0].ItemName)
}

func TestFavoriteRepo_DeleteScopedToUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFavoriteRepo(db)

	mock.ExpectExec(`DELETE FROM favorites WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(5), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 2, 5), ErrNotFound)

	mock.ExpectExec(`DELETE FROM favorites`).
		WithArgs(int64(5), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(context.Background(), 1, 5))
}

func TestFavoriteRepo_DriverErrorIsWrapped(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFavoriteRepo(db)
	boom := errors.New("connection reset")

	mock.ExpectQuery(`COUNT\(\*\) FILTER`).WithArgs(int64(1)).WillReturnError(boom)
	_, err := repo.Counts(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}
