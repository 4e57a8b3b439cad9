package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestComputeROI(t *testing.T) {
	roi := ComputeROI(ptr(int64(1_000_000)), ptr(int64(5_000_000)))
	require.NotNil(t, roi)
	assert.InDelta(t, 400.0, *roi, 1e-9)

	loss := ComputeROI(ptr(int64(200)), ptr(int64(50)))
	require.NotNil(t, loss)
	assert.InDelta(t, -75.0, *loss, 1e-9)

	assert.Nil(t, ComputeROI(ptr(int64(0)), ptr(int64(5_000_000))))
	assert.Nil(t, ComputeROI(nil, ptr(int64(5))))
	assert.Nil(t, ComputeROI(ptr(int64(5)), nil))
}

func TestAwardEntryKey(t *testing.T) {
	a := AwardEntry{Category: "BEST PICTURE", Year: 1998}
	b := AwardEntry{Category: "BEST PICTURE", Year: 1998, IsWinner: true}
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), AwardEntry{Category: "BEST PICTURE", Year: 1999}.Key())
}

func TestFavoriteTypeFromPlural(t *testing.T) {
	got, ok := FavoriteTypeFromPlural("actors")
	assert.True(t, ok)
	assert.Equal(t, FavoriteActor, got)

	_, ok = FavoriteTypeFromPlural("actor")
	assert.False(t, ok)
}

func TestGroupFavorites(t *testing.T) {
	g := GroupFavorites([]Favorite{
		{ID: 3, ItemType: FavoriteFilm, ItemID: "tt0111161"},
		{ID: 2, ItemType: FavoriteActor, ItemID: "nm0000151"},
		{ID: 1, ItemType: FavoriteFilm, ItemID: "tt0068646"},
	})
	assert.Len(t, g.Films, 2)
	assert.Len(t, g.Actors, 1)
	assert.NotNil(t, g.Directors)
	assert.Empty(t, g.Directors)
	assert.Equal(t, int64(3), g.Films[0].ID)
}
