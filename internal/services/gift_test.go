package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftregistry/internal/domain"
)

type fakeRepo struct {
	gifts   map[string]*domain.Gift
	listErr error
}

func newFakeRepo(gifts ...*domain.Gift) *fakeRepo {
	m := make(map[string]*domain.Gift)
	for _, g := range gifts {
		m[g.ID] = g.Clone()
	}
	return &fakeRepo{gifts: m}
}

func (r *fakeRepo) ListGifts(ctx context.Context) ([]*domain.Gift, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.Gift, 0, len(r.gifts))
	for _, g := range r.gifts {
		out = append(out, g.Clone())
	}
	return out, nil
}

func (r *fakeRepo) UpsertGift(ctx context.Context, gift *domain.Gift) error {
	r.gifts[gift.ID] = gift.Clone()
	return nil
}

func (r *fakeRepo) RemoveGift(ctx context.Context, id string) error {
	delete(r.gifts, id)
	return nil
}

type fakeTokens struct {
	token string
	err   error
}

func (t *fakeTokens) NewToken() (string, error) { return t.token, t.err }

type fakeNotifier struct {
	notices []*domain.ReservationNotice
	err     error
}

func (n *fakeNotifier) SendConfirmation(ctx context.Context, notice *domain.ReservationNotice) error {
	n.notices = append(n.notices, notice)
	return n.err
}

type fakeGuard struct {
	swapped     bool
	err         error
	gotID       string
	gotExpect   string
	gotRes      *domain.Reservation
	callthrough *fakeRepo
}

func (g *fakeGuard) CompareAndSwapReservation(ctx context.Context, id, expectToken string, res *domain.Reservation) (bool, error) {
	g.gotID, g.gotExpect, g.gotRes = id, expectToken, res
	if g.err != nil {
		return false, g.err
	}
	if g.swapped && g.callthrough != nil {
		stored := g.callthrough.gifts[id]
		stored.Reservation = res
	}
	return g.swapped, g.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func freeGift() *domain.Gift {
	return &domain.Gift{ID: "duplo-zviratka", Title: "LEGO® DUPLO Zvířátka", Link: "https://example.com/duplo"}
}

func pendingGift(token string) *domain.Gift {
	g := freeGift()
	g.Reservation = &domain.Reservation{
		Status: domain.ReservationPending,
		Email:  "ana@example.com",
		Token:  token,
		At:     time.Now().UTC(),
	}
	return g
}

func newService(repo *fakeRepo, guard domain.ReservationGuard, tokens *fakeTokens, notifier *fakeNotifier) domain.GiftService {
	return NewGiftService(testLogger(), repo, guard, tokens, notifier, "https://gifts.example.com")
}

func TestReserve_FreeGift(t *testing.T) {
	repo := newFakeRepo(freeGift())
	notifier := &fakeNotifier{}
	svc := newService(repo, nil, &fakeTokens{token: "tok-1"}, notifier)

	result, err := svc.Reserve(context.Background(), "duplo-zviratka", "  Ana@Example.COM ")
	require.NoError(t, err)

	assert.Equal(t, "tok-1", result.Token)
	assert.NoError(t, result.DispatchErr)
	require.NotNil(t, result.Gift.Reservation)
	assert.Equal(t, domain.ReservationPending, result.Gift.Reservation.Status)
	assert.Equal(t, "ana@example.com", result.Gift.Reservation.Email)

	stored := repo.gifts["duplo-zviratka"]
	require.NotNil(t, stored.Reservation)
	assert.Equal(t, "tok-1", stored.Reservation.Token)

	require.Len(t, notifier.notices, 1)
	notice := notifier.notices[0]
	assert.Equal(t, "ana@example.com", notice.To)
	assert.Equal(t, "LEGO® DUPLO Zvířátka", notice.GiftTitle)
	assert.Equal(t, "tok-1", notice.Token)
	assert.Equal(t, "https://gifts.example.com", notice.Origin)
}

func TestReserve_InvalidEmail(t *testing.T) {
	svc := newService(newFakeRepo(freeGift()), nil, &fakeTokens{token: "tok-1"}, &fakeNotifier{})

	for _, email := range []string{"", "not-an-email", "a@b", "a b@example.com"} {
		_, err := svc.Reserve(context.Background(), "duplo-zviratka", email)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "email %q", email)
	}
}

func TestReserve_UnknownGift(t *testing.T) {
	svc := newService(newFakeRepo(), nil, &fakeTokens{token: "tok-1"}, &fakeNotifier{})

	_, err := svc.Reserve(context.Background(), "missing", "ana@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReserve_AlreadyPending(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newService(newFakeRepo(pendingGift("tok-old")), nil, &fakeTokens{token: "tok-new"}, notifier)

	_, err := svc.Reserve(context.Background(), "duplo-zviratka", "bob@example.com")

	var reservedErr *domain.AlreadyReservedError
	require.ErrorAs(t, err, &reservedErr)
	assert.Equal(t, domain.ReservationPending, reservedErr.Status)
	assert.Empty(t, notifier.notices)
}

func TestReserve_DispatchFailureIsAdvisory(t *testing.T) {
	repo := newFakeRepo(freeGift())
	notifier := &fakeNotifier{err: &domain.DispatchError{Diagnostic: "relay down"}}
	svc := newService(repo, nil, &fakeTokens{token: "tok-1"}, notifier)

	result, err := svc.Reserve(context.Background(), "duplo-zviratka", "ana@example.com")
	require.NoError(t, err)

	assert.Error(t, result.DispatchErr)
	// The pending write stays committed.
	require.NotNil(t, repo.gifts["duplo-zviratka"].Reservation)
	assert.Equal(t, "tok-1", repo.gifts["duplo-zviratka"].Reservation.Token)
}

func TestReserve_GuardWin(t *testing.T) {
	repo := newFakeRepo(freeGift())
	guard := &fakeGuard{swapped: true, callthrough: repo}
	svc := newService(repo, guard, &fakeTokens{token: "tok-1"}, &fakeNotifier{})

	result, err := svc.Reserve(context.Background(), "duplo-zviratka", "ana@example.com")
	require.NoError(t, err)

	assert.Equal(t, "duplo-zviratka", guard.gotID)
	assert.Equal(t, "", guard.gotExpect)
	assert.Equal(t, "tok-1", guard.gotRes.Token)
	assert.Equal(t, "tok-1", result.Token)
}

func TestReserve_GuardLose(t *testing.T) {
	// The store reads back free but the conditional write reports a conflict,
	// as when another writer commits between the read and the swap.
	repo := newFakeRepo(freeGift())
	guard := &fakeGuard{swapped: false}
	notifier := &fakeNotifier{}
	svc := newService(repo, guard, &fakeTokens{token: "tok-1"}, notifier)

	_, err := svc.Reserve(context.Background(), "duplo-zviratka", "ana@example.com")

	var reservedErr *domain.AlreadyReservedError
	require.ErrorAs(t, err, &reservedErr)
	assert.Empty(t, notifier.notices)
}

func TestConfirm_PendingToken(t *testing.T) {
	repo := newFakeRepo(pendingGift("tok-1"))
	svc := newService(repo, nil, &fakeTokens{}, &fakeNotifier{})

	gift, err := svc.Confirm(context.Background(), "tok-1")
	require.NoError(t, err)

	require.NotNil(t, gift.Reservation)
	assert.Equal(t, domain.ReservationConfirmed, gift.Reservation.Status)
	assert.Equal(t, "ana@example.com", gift.Reservation.Email)
	assert.Empty(t, gift.Reservation.Token)

	stored := repo.gifts["duplo-zviratka"]
	assert.Equal(t, domain.ReservationConfirmed, stored.Reservation.Status)
	assert.Empty(t, stored.Reservation.Token)
}

func TestConfirm_TokenIsSingleUse(t *testing.T) {
	repo := newFakeRepo(pendingGift("tok-1"))
	svc := newService(repo, nil, &fakeTokens{}, &fakeNotifier{})

	_, err := svc.Confirm(context.Background(), "tok-1")
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), "tok-1")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestConfirm_UnknownOrEmptyToken(t *testing.T) {
	svc := newService(newFakeRepo(pendingGift("tok-1")), nil, &fakeTokens{}, &fakeNotifier{})

	_, err := svc.Confirm(context.Background(), "tok-2")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = svc.Confirm(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestConfirm_GuardConflict(t *testing.T) {
	repo := newFakeRepo(pendingGift("tok-1"))
	guard := &fakeGuard{swapped: false}
	svc := newService(repo, guard, &fakeTokens{}, &fakeNotifier{})

	_, err := svc.Confirm(context.Background(), "tok-1")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	assert.Equal(t, "tok-1", guard.gotExpect)
}

func TestUnreserve(t *testing.T) {
	confirmed := pendingGift("")
	confirmed.Reservation = &domain.Reservation{
		Status: domain.ReservationConfirmed,
		Email:  "ana@example.com",
		At:     time.Now().UTC(),
	}
	repo := newFakeRepo(confirmed)
	svc := newService(repo, nil, &fakeTokens{}, &fakeNotifier{})

	gift, err := svc.Unreserve(context.Background(), "duplo-zviratka")
	require.NoError(t, err)
	assert.Nil(t, gift.Reservation)
	assert.Nil(t, repo.gifts["duplo-zviratka"].Reservation)

	_, err = svc.Unreserve(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaveGift_PreservesReservation(t *testing.T) {
	repo := newFakeRepo(pendingGift("tok-1"))
	svc := newService(repo, nil, &fakeTokens{}, &fakeNotifier{})

	err := svc.SaveGift(context.Background(), &domain.Gift{
		ID:    "duplo-zviratka",
		Title: "LEGO® DUPLO Zvířátka ze světa",
	})
	require.NoError(t, err)

	stored := repo.gifts["duplo-zviratka"]
	assert.Equal(t, "LEGO® DUPLO Zvířátka ze světa", stored.Title)
	require.NotNil(t, stored.Reservation)
	assert.Equal(t, "tok-1", stored.Reservation.Token)
}

func TestSaveGift_NewAndInvalid(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, nil, &fakeTokens{}, &fakeNotifier{})

	require.NoError(t, svc.SaveGift(context.Background(), &domain.Gift{ID: "novy", Title: "Nový dárek"}))
	assert.Contains(t, repo.gifts, "novy")

	err := svc.SaveGift(context.Background(), &domain.Gift{ID: "novy"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteGift(t *testing.T) {
	repo := newFakeRepo(freeGift())
	svc := newService(repo, nil, &fakeTokens{}, &fakeNotifier{})

	require.NoError(t, svc.DeleteGift(context.Background(), "duplo-zviratka"))
	assert.NotContains(t, repo.gifts, "duplo-zviratka")

	err := svc.DeleteGift(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReserve_TokenSourceFailure(t *testing.T) {
	svc := newService(newFakeRepo(freeGift()), nil, &fakeTokens{err: errors.New("entropy exhausted")}, &fakeNotifier{})

	_, err := svc.Reserve(context.Background(), "duplo-zviratka", "ana@example.com")
	require.Error(t, err)
}
