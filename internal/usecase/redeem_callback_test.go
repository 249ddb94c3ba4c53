package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"sso-portal/internal/domain"
)

func TestRedeemCallback_Success(t *testing.T) {
	broker := &mockBroker{redeemed: &domain.Redemption{Email: "john.doe@example.com"}}
	store := newMockStore()
	uc := NewRedeemCallback(broker, store, slog.Default())

	email, err := uc.Execute(context.Background(), "sess-1", "saml_access_code_xyz")

	assert.NoError(t, err)
	assert.Equal(t, "john.doe@example.com", email)
	assert.Equal(t, "saml_access_code_xyz", broker.lastCode)

	got, ok, _ := store.Get(context.Background(), "sess-1")
	assert.True(t, ok)
	assert.Equal(t, "john.doe@example.com", got)
}

func TestRedeemCallback_SessionEmptyBeforeRedemption(t *testing.T) {
	broker := &mockBroker{redeemed: &domain.Redemption{Email: "john.doe@example.com"}}
	store := newMockStore()
	uc := NewRedeemCallback(broker, store, slog.Default())

	_, ok, _ := store.Get(context.Background(), "sess-1")
	assert.False(t, ok, "session must be anonymous before redemption")

	_, err := uc.Execute(context.Background(), "sess-1", "saml_access_code_xyz")
	assert.NoError(t, err)

	_, ok, _ = store.Get(context.Background(), "sess-1")
	assert.True(t, ok)
}

func TestRedeemCallback_InvalidCodeLeavesSessionUntouched(t *testing.T) {
	broker := &mockBroker{redeemErr: domain.ErrInvalidAccessCode}
	store := newMockStore()
	uc := NewRedeemCallback(broker, store, slog.Default())

	email, err := uc.Execute(context.Background(), "sess-1", "already-used")

	assert.Empty(t, email)
	assert.True(t, errors.Is(err, domain.ErrInvalidAccessCode))

	_, ok, _ := store.Get(context.Background(), "sess-1")
	assert.False(t, ok, "failed redemption must not leave a partially-set session")
}

func TestRedeemCallback_SecondRedemptionDoesNotCorruptFirstSession(t *testing.T) {
	store := newMockStore()

	// First redemption succeeds and commits the identity.
	first := NewRedeemCallback(
		&mockBroker{redeemed: &domain.Redemption{Email: "john.doe@example.com"}},
		store, slog.Default())
	_, err := first.Execute(context.Background(), "sess-1", "saml_access_code_xyz")
	assert.NoError(t, err)

	// Second redemption of the same code fails broker-side (single use).
	second := NewRedeemCallback(
		&mockBroker{redeemErr: domain.ErrInvalidAccessCode},
		store, slog.Default())
	_, err = second.Execute(context.Background(), "sess-1", "saml_access_code_xyz")
	assert.True(t, errors.Is(err, domain.ErrInvalidAccessCode))

	// The session established by the first attempt is intact.
	email, ok, _ := store.Get(context.Background(), "sess-1")
	assert.True(t, ok)
	assert.Equal(t, "john.doe@example.com", email)
}

func TestRedeemCallback_StoreFailure(t *testing.T) {
	broker := &mockBroker{redeemed: &domain.Redemption{Email: "john.doe@example.com"}}
	store := newMockStore()
	store.setErr = errors.New("redis down")
	uc := NewRedeemCallback(broker, store, slog.Default())

	email, err := uc.Execute(context.Background(), "sess-1", "saml_access_code_xyz")

	assert.Empty(t, email)
	assert.Error(t, err)
}
