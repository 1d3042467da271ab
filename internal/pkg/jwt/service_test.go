package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestHMACService_AccessTokenCarriesTenant(t *testing.T) {
	svc := NewHMACService("access", "refresh", time.Minute, time.Hour)
	companyID := uuid.New()
	id := Identity{UserID: uuid.New(), Email: "r@acme.io", IsRecruiter: true, ActiveCompanyID: &companyID}

	tok, err := svc.GenerateAccessToken(id)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	require.Equal(t, TokenTypeAccess, claims.TokenType)
	require.False(t, svc.IsRefreshToken(claims))
	require.Equal(t, id.UserID, claims.Identity().UserID)
	require.True(t, claims.IsRecruiter)
	require.NotNil(t, claims.ActiveCompanyID)
	require.Equal(t, companyID, *claims.ActiveCompanyID)
}

func TestHMACService_RefreshToken(t *testing.T) {
	svc := NewHMACService("access", "refresh", time.Minute, time.Hour)
	userID := uuid.New()

	tok, err := svc.GenerateRefreshToken(userID)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	require.True(t, svc.IsRefreshToken(claims))
	require.Nil(t, claims.ActiveCompanyID)
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("access", "refresh", time.Minute, time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	tok, err := svc.GenerateAccessToken(Identity{UserID: uuid.New()})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(tok)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_RejectsForeignSecret(t *testing.T) {
	a := NewHMACService("a1", "r1", time.Minute, time.Hour)
	b := NewHMACService("a2", "r2", time.Minute, time.Hour)

	tok, err := a.GenerateAccessToken(Identity{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = b.ValidateToken(tok)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
