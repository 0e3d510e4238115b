// Package supabase implements the gift store over a Supabase PostgREST table.
// This is the multi-client backend: other browsers write the same table, and
// no server-side optimistic lock is used, so writes between a caller's read
// and write can interleave.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"giftregistry/internal/domain"
)

// Config holds the connection settings for the PostgREST table.
type Config struct {
	BaseURL string
	APIKey  string
	Table   string
}

type Store struct {
	cfg      Config
	endpoint string
	client   *http.Client
}

// New returns a store backed by the table at cfg.BaseURL/rest/v1/cfg.Table.
func New(cfg Config, client *http.Client) *Store {
	if client == nil {
		client = http.DefaultClient
	}
	return &Store{
		cfg:      cfg,
		endpoint: strings.TrimSuffix(cfg.BaseURL, "/") + "/rest/v1/" + cfg.Table,
		client:   client,
	}
}

func (s *Store) List(ctx context.Context) ([]*domain.Gift, error) {
	body, err := s.do(ctx, http.MethodGet, "?select=*", nil)
	if err != nil {
		return nil, err
	}
	var gifts []*domain.Gift
	if err := json.Unmarshal(body, &gifts); err != nil {
		return nil, persistErr("list", err.Error(), err)
	}
	return gifts, nil
}

// Exists probes the table with a filtered read; PostgREST has no dedicated
// existence endpoint.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	body, err := s.do(ctx, http.MethodGet, "?id=eq."+url.QueryEscape(id)+"&select=id", nil)
	if err != nil {
		return false, err
	}
	var rows []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return false, persistErr("exists", err.Error(), err)
	}
	return len(rows) > 0, nil
}

// Insert posts a one-element array, which is how PostgREST takes row inserts.
func (s *Store) Insert(ctx context.Context, gift *domain.Gift) error {
	_, err := s.do(ctx, http.MethodPost, "", []*domain.Gift{gift})
	return err
}

func (s *Store) Patch(ctx context.Context, id string, fields map[string]any) error {
	_, err := s.do(ctx, http.MethodPatch, "?id=eq."+url.QueryEscape(id), fields)
	return err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.do(ctx, http.MethodDelete, "?id=eq."+url.QueryEscape(id), nil)
	return err
}

func (s *Store) do(ctx context.Context, method, query string, payload any) ([]byte, error) {
	op := strings.ToLower(method)
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, persistErr(op, err.Error(), err)
		}
		reqBody = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.endpoint+query, reqBody)
	if err != nil {
		return nil, persistErr(op, err.Error(), err)
	}
	req.Header.Set("apikey", s.cfg.APIKey)
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, persistErr(op, err.Error(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, persistErr(op, err.Error(), err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, persistErr(op, fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}
	return body, nil
}

func persistErr(op, diagnostic string, err error) *domain.PersistenceError {
	return &domain.PersistenceError{Backend: "supabase", Op: op, Diagnostic: diagnostic, Err: err}
}
