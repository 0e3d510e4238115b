// Package postgres implements the gift store over a Postgres table:
//
//	CREATE TABLE gifts (
//	    id          text PRIMARY KEY,
//	    title       text NOT NULL,
//	    link        text,
//	    image       text,
//	    price_czk   numeric,
//	    note        text,
//	    reservation jsonb
//	);
//
// Unlike the other backends it also offers CompareAndSwapReservation, a single
// conditional UPDATE on the reservation slot.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"giftregistry/internal/domain"
)

type GiftStore struct {
	DB *sql.DB
}

// NewGiftStore returns a gift store backed by the given database.
func NewGiftStore(db *sql.DB) *GiftStore {
	return &GiftStore{DB: db}
}

// Fixed application order so patch statements are deterministic.
var patchColumns = []struct{ key, column string }{
	{"title", "title"},
	{"link", "link"},
	{"image", "image"},
	{"priceCZK", "price_czk"},
	{"note", "note"},
	{"reservation", "reservation"},
}

func (s *GiftStore) List(ctx context.Context) ([]*domain.Gift, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, title, COALESCE(link, ''), COALESCE(image, ''), price_czk, COALESCE(note, ''), reservation
		 FROM gifts ORDER BY id`)
	if err != nil {
		return nil, persistErr("list", err)
	}
	defer rows.Close()

	var gifts []*domain.Gift
	for rows.Next() {
		g := &domain.Gift{}
		var priceCZK sql.NullFloat64
		var resRaw []byte
		if err := rows.Scan(&g.ID, &g.Title, &g.Link, &g.Image, &priceCZK, &g.Note, &resRaw); err != nil {
			return nil, persistErr("list", err)
		}
		if priceCZK.Valid {
			v := priceCZK.Float64
			g.PriceCZK = &v
		}
		if len(resRaw) > 0 {
			var res domain.Reservation
			if err := json.Unmarshal(resRaw, &res); err != nil {
				return nil, persistErr("list", err)
			}
			g.Reservation = &res
		}
		gifts = append(gifts, g)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list", err)
	}
	return gifts, nil
}

func (s *GiftStore) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM gifts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, persistErr("exists", err)
	}
	return exists, nil
}

func (s *GiftStore) Insert(ctx context.Context, gift *domain.Gift) error {
	resRaw, err := reservationValue(gift.Reservation)
	if err != nil {
		return persistErr("insert", err)
	}
	var priceCZK any
	if gift.PriceCZK != nil {
		priceCZK = *gift.PriceCZK
	}
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO gifts (id, title, link, image, price_czk, note, reservation)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		gift.ID, gift.Title, gift.Link, gift.Image, priceCZK, gift.Note, resRaw)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return persistErr("insert", fmt.Errorf("duplicate id %q", gift.ID))
		}
		return persistErr("insert", err)
	}
	return nil
}

func (s *GiftStore) Patch(ctx context.Context, id string, fields map[string]any) error {
	var set string
	args := []any{id}
	for _, col := range patchColumns {
		v, ok := fields[col.key]
		if !ok {
			continue
		}
		if col.key == "reservation" {
			raw, err := reservationValue(v)
			if err != nil {
				return persistErr("patch", err)
			}
			v = raw
		}
		args = append(args, v)
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", col.column, len(args))
	}
	for k := range fields {
		if !writableColumn(k) {
			return persistErr("patch", fmt.Errorf("column %q is not writable", k))
		}
	}
	if set == "" {
		return nil
	}
	result, err := s.DB.ExecContext(ctx, fmt.Sprintf(`UPDATE gifts SET %s WHERE id = $1`, set), args...)
	if err != nil {
		return persistErr("patch", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *GiftStore) Delete(ctx context.Context, id string) error {
	// Deleting a missing id is not an error.
	_, err := s.DB.ExecContext(ctx, `DELETE FROM gifts WHERE id = $1`, id)
	if err != nil {
		return persistErr("delete", err)
	}
	return nil
}

// CompareAndSwapReservation writes res only when the slot is still in the
// expected state: free when expectToken is empty, otherwise pending with that
// exact token. The condition and the write are one statement, so concurrent
// writers cannot both win the slot.
func (s *GiftStore) CompareAndSwapReservation(ctx context.Context, id, expectToken string, res *domain.Reservation) (bool, error) {
	resRaw, err := reservationValue(res)
	if err != nil {
		return false, persistErr("cas", err)
	}
	result, err := s.DB.ExecContext(ctx,
		`UPDATE gifts SET reservation = $2
		 WHERE id = $1
		   AND (($3 = '' AND reservation IS NULL)
		    OR (reservation->>'status' = 'pending' AND reservation->>'token' = $3))`,
		id, resRaw, expectToken)
	if err != nil {
		return false, persistErr("cas", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func reservationValue(v any) (any, error) {
	switch r := v.(type) {
	case nil:
		return nil, nil
	case *domain.Reservation:
		if r == nil {
			return nil, nil
		}
		return json.Marshal(r)
	default:
		return json.Marshal(v)
	}
}

func writableColumn(key string) bool {
	for _, col := range patchColumns {
		if col.key == key {
			return true
		}
	}
	return false
}

func persistErr(op string, err error) *domain.PersistenceError {
	return &domain.PersistenceError{Backend: "postgres", Op: op, Diagnostic: err.Error(), Err: err}
}
