package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftregistry/internal/domain"
)

// fakeStore implements domain.GiftStore in memory for repository tests.
type fakeStore struct {
	gifts   []*domain.Gift
	listErr error
	patches []map[string]any
}

func (f *fakeStore) List(ctx context.Context) ([]*domain.Gift, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.Gift, len(f.gifts))
	for i, g := range f.gifts {
		out[i] = g.Clone()
	}
	return out, nil
}

func (f *fakeStore) Exists(ctx context.Context, id string) (bool, error) {
	return f.index(id) >= 0, nil
}

func (f *fakeStore) Insert(ctx context.Context, gift *domain.Gift) error {
	f.gifts = append(f.gifts, gift.Clone())
	return nil
}

func (f *fakeStore) Patch(ctx context.Context, id string, fields map[string]any) error {
	i := f.index(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	f.patches = append(f.patches, fields)
	g := f.gifts[i]
	if v, ok := fields["title"]; ok {
		g.Title = v.(string)
	}
	if v, ok := fields["note"]; ok {
		g.Note = v.(string)
	}
	if v, ok := fields["priceCZK"]; ok {
		p := v.(float64)
		g.PriceCZK = &p
	}
	if v, ok := fields["reservation"]; ok {
		if res, _ := v.(*domain.Reservation); res != nil {
			r := *res
			g.Reservation = &r
		} else {
			g.Reservation = nil
		}
	}
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	if i := f.index(id); i >= 0 {
		f.gifts = append(f.gifts[:i], f.gifts[i+1:]...)
	}
	return nil
}

func (f *fakeStore) index(id string) int {
	for i, g := range f.gifts {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func TestGiftRepository_SeedsEmptyStoreOnce(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	repo := NewGiftRepository(store, domain.DefaultGifts())

	gifts, err := repo.ListGifts(ctx)
	require.NoError(t, err)
	require.Len(t, gifts, 3)
	assert.Equal(t, "duplo-zviratka", gifts[0].ID)
	assert.Equal(t, "knizka-kontrasty", gifts[1].ID)
	assert.Equal(t, "zimni-overal", gifts[2].ID)

	// The seed persists in the backing store.
	require.Len(t, store.gifts, 3)

	// An emptied store is not re-seeded by the same repository.
	store.gifts = nil
	gifts, err = repo.ListGifts(ctx)
	require.NoError(t, err)
	assert.Empty(t, gifts)
}

func TestGiftRepository_NoSeedForSharedBackends(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	repo := NewGiftRepository(store, nil)

	gifts, err := repo.ListGifts(ctx)
	require.NoError(t, err)
	assert.Empty(t, gifts)
	assert.Empty(t, store.gifts)
}

func TestGiftRepository_UpsertInsertsNewGift(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	repo := NewGiftRepository(store, nil)

	g := &domain.Gift{ID: "g", Title: "G"}
	require.NoError(t, repo.UpsertGift(ctx, g))

	require.Len(t, store.gifts, 1)
	assert.Empty(t, store.patches, "a new gift must be inserted, not patched")
}

func TestGiftRepository_UpsertPatchesExistingGift(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{gifts: []*domain.Gift{{ID: "g", Title: "Old", Note: "keep?"}}}
	repo := NewGiftRepository(store, nil)

	require.NoError(t, repo.UpsertGift(ctx, &domain.Gift{ID: "g", Title: "New", Note: "changed"}))

	require.Len(t, store.patches, 1)
	_, hasID := store.patches[0]["id"]
	assert.False(t, hasID, "patches must not rewrite the id")

	gifts, err := repo.ListGifts(ctx)
	require.NoError(t, err)
	require.Len(t, gifts, 1)
	assert.Equal(t, "New", gifts[0].Title)
	assert.Equal(t, "changed", gifts[0].Note)
}

func TestGiftRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	repo := NewGiftRepository(store, nil)

	p := 1190.0
	g := &domain.Gift{ID: "zimni-overal", Title: "Zimní overal (vel. 86)", Link: "https://www.zoot.cz/", PriceCZK: &p, Note: "Neutrální barva"}
	require.NoError(t, repo.UpsertGift(ctx, g))

	gifts, err := repo.ListGifts(ctx)
	require.NoError(t, err)
	require.Len(t, gifts, 1)
	assert.Equal(t, g, gifts[0])
}

func TestGiftRepository_UpsertLeavesOmittedPriceUntouched(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	repo := NewGiftRepository(store, nil)

	p := 899.0
	require.NoError(t, repo.UpsertGift(ctx, &domain.Gift{ID: "duplo-zviratka", Title: "LEGO® DUPLO Zvířátka", PriceCZK: &p}))

	// A later upsert without a price must not clear the stored one.
	require.NoError(t, repo.UpsertGift(ctx, &domain.Gift{ID: "duplo-zviratka", Title: "LEGO® DUPLO Zvířátka ze světa"}))

	require.Len(t, store.patches, 1)
	_, hasPrice := store.patches[0]["priceCZK"]
	assert.False(t, hasPrice, "an unset price must stay out of the patch body")

	gifts, err := repo.ListGifts(ctx)
	require.NoError(t, err)
	require.Len(t, gifts, 1)
	assert.Equal(t, "LEGO® DUPLO Zvířátka ze světa", gifts[0].Title)
	require.NotNil(t, gifts[0].PriceCZK, "omitted priceCZK must be left untouched on the backend")
	assert.Equal(t, 899.0, *gifts[0].PriceCZK)
}

func TestGiftRepository_RemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{gifts: []*domain.Gift{{ID: "g", Title: "G"}}}
	repo := NewGiftRepository(store, nil)

	require.NoError(t, repo.RemoveGift(ctx, "g"))
	require.NoError(t, repo.RemoveGift(ctx, "g"))
	assert.Empty(t, store.gifts)
}

func TestGiftRepository_ListPropagatesStoreError(t *testing.T) {
	store := &fakeStore{listErr: &domain.PersistenceError{Backend: "local", Op: "read", Diagnostic: "disk gone"}}
	repo := NewGiftRepository(store, nil)

	_, err := repo.ListGifts(context.Background())
	require.Error(t, err)
	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "disk gone", perr.Diagnostic)
}
