package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store-ledger/internal/model"
)

func TestIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewIssuer("test-secret", "store-ledger", time.Hour)
	require.NoError(t, err)

	vendor := model.Session{Subject: "vendor-1", Role: model.RoleVendor, StoreID: "khzema"}
	token, err := issuer.GenerateToken(vendor)
	require.NoError(t, err)

	got, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, vendor, got)
}

func TestIssuer_Rejects(t *testing.T) {
	issuer, err := NewIssuer("test-secret", "store-ledger", time.Hour)
	require.NoError(t, err)

	t.Run("missing", func(t *testing.T) {
		_, err := issuer.ValidateToken("")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := NewIssuer("another-secret", "store-ledger", time.Hour)
		require.NoError(t, err)
		token, err := other.GenerateToken(model.Session{Role: model.RoleAdmin})
		require.NoError(t, err)

		_, err = issuer.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other issuer", func(t *testing.T) {
		other, err := NewIssuer("test-secret", "someone-else", time.Hour)
		require.NoError(t, err)
		token, err := other.GenerateToken(model.Session{Role: model.RoleAdmin})
		require.NoError(t, err)

		_, err = issuer.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		short, err := NewIssuer("test-secret", "store-ledger", time.Nanosecond)
		require.NoError(t, err)
		token, err := short.GenerateToken(model.Session{Role: model.RoleAdmin})
		require.NoError(t, err)
		time.Sleep(1100 * time.Millisecond)

		_, err = issuer.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("vendor without store is not issued", func(t *testing.T) {
		_, err := issuer.GenerateToken(model.Session{Role: model.RoleVendor})
		assert.ErrorIs(t, err, model.ErrSessionStoreRequired)
	})
}

func TestNewIssuer_EmptySecret(t *testing.T) {
	_, err := NewIssuer("", "x", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
