// Package repository provides typed gift CRUD over any backend store.
package repository

import (
	"context"
	"sync"

	"giftregistry/internal/domain"
)

type giftRepository struct {
	store    domain.GiftStore
	seed     []*domain.Gift
	seedOnce sync.Once
}

// NewGiftRepository returns a repository over the given store. When seed is
// non-empty and the store first reads back empty, the seed set is inserted
// exactly once for the lifetime of this repository. Pass a nil seed for
// backends shared with other clients.
func NewGiftRepository(store domain.GiftStore, seed []*domain.Gift) domain.GiftRepository {
	return &giftRepository{store: store, seed: seed}
}

func (r *giftRepository) ListGifts(ctx context.Context) ([]*domain.Gift, error) {
	gifts, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(gifts) > 0 || len(r.seed) == 0 {
		return gifts, nil
	}
	var ran bool
	r.seedOnce.Do(func() { ran = true })
	if !ran {
		// Seeding already happened; the store is legitimately empty now.
		return gifts, nil
	}
	for _, g := range r.seed {
		if err := r.store.Insert(ctx, g.Clone()); err != nil {
			return nil, err
		}
	}
	return r.store.List(ctx)
}

// UpsertGift writes the gift under its id. The existence probe is internal so
// callers cannot race their own check against the write: an existing record
// gets a partial update of the non-id fields, a new one is inserted whole.
func (r *giftRepository) UpsertGift(ctx context.Context, gift *domain.Gift) error {
	exists, err := r.store.Exists(ctx, gift.ID)
	if err != nil {
		return err
	}
	if exists {
		return r.store.Patch(ctx, gift.ID, gift.PatchBody())
	}
	return r.store.Insert(ctx, gift)
}

func (r *giftRepository) RemoveGift(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}
