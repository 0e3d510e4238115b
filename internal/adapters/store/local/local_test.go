package local

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftregistry/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "gifts.json"))
}

func TestStore_MissingFileReadsEmpty(t *testing.T) {
	s := newTestStore(t)
	gifts, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gifts)
}

func TestStore_InsertListExists(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	p := 899.0

	require.NoError(t, s.Insert(ctx, &domain.Gift{ID: "duplo-zviratka", Title: "LEGO® DUPLO Zvířátka", PriceCZK: &p}))
	require.NoError(t, s.Insert(ctx, &domain.Gift{ID: "zimni-overal", Title: "Zimní overal"}))

	gifts, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, gifts, 2)
	assert.Equal(t, "duplo-zviratka", gifts[0].ID)
	require.NotNil(t, gifts[0].PriceCZK)
	assert.Equal(t, 899.0, *gifts[0].PriceCZK)

	ok, err := s.Exists(ctx, "zimni-overal")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_InsertDuplicateID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Insert(ctx, &domain.Gift{ID: "g", Title: "G"}))

	err := s.Insert(ctx, &domain.Gift{ID: "g", Title: "again"})
	require.Error(t, err)
	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "local", perr.Backend)
	assert.Contains(t, perr.Diagnostic, "duplicate id")
}

func TestStore_PatchMergesFields(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	p := 249.0
	require.NoError(t, s.Insert(ctx, &domain.Gift{
		ID:       "knizka-kontrasty",
		Title:    "Kontrastní leporelo",
		Link:     "https://www.knihydobrovsky.cz/",
		PriceCZK: &p,
	}))

	res := &domain.Reservation{Status: domain.ReservationPending, Email: "a@b.cz", Token: "tok", At: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	require.NoError(t, s.Patch(ctx, "knizka-kontrasty", map[string]any{"reservation": res}))

	gifts, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, gifts, 1)
	g := gifts[0]
	// Untouched fields survive the patch.
	assert.Equal(t, "Kontrastní leporelo", g.Title)
	assert.Equal(t, "https://www.knihydobrovsky.cz/", g.Link)
	require.NotNil(t, g.PriceCZK)
	assert.Equal(t, 249.0, *g.PriceCZK)
	require.NotNil(t, g.Reservation)
	assert.Equal(t, domain.ReservationPending, g.Reservation.Status)
	assert.Equal(t, "tok", g.Reservation.Token)

	// A nil reservation value clears the slot.
	require.NoError(t, s.Patch(ctx, "knizka-kontrasty", map[string]any{"reservation": nil}))
	gifts, err = s.List(ctx)
	require.NoError(t, err)
	assert.Nil(t, gifts[0].Reservation)
}

func TestStore_PatchUnknownID(t *testing.T) {
	s := newTestStore(t)
	err := s.Patch(context.Background(), "ghost", map[string]any{"title": "x"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Insert(ctx, &domain.Gift{ID: "g", Title: "G"}))

	require.NoError(t, s.Delete(ctx, "g"))
	require.NoError(t, s.Delete(ctx, "g"))

	gifts, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, gifts)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "gifts.json")

	first := New(path)
	require.NoError(t, first.Insert(ctx, &domain.Gift{ID: "g", Title: "G"}))

	second := New(path)
	gifts, err := second.List(ctx)
	require.NoError(t, err)
	require.Len(t, gifts, 1)
	assert.Equal(t, "g", gifts[0].ID)
}
