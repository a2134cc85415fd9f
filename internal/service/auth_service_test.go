package service

import (
	"aulaquiz/internal/model"
	"aulaquiz/internal/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	users := memory.NewUserRepo()
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &model.User{IDPortal: "prof-7", Nombre: "Marta", Email: "m@aula.es", Rol: model.RoleProfesor}))

	svc := NewAuthService(users, "secreto", time.Hour)
	resp, err := svc.IssueForPortalID(ctx, "prof-7")
	require.NoError(t, err)
	assert.Equal(t, model.RoleProfesor, resp.Rol)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
	assert.Equal(t, model.RoleProfesor, claims.Rol)
}

func TestValidateTokenRejectsForeignAndExpired(t *testing.T) {
	user := &model.User{ID: "u1", IDPortal: "p1", Rol: model.RoleAdmin}

	other := NewAuthService(nil, "otro-secreto", time.Hour)
	foreign, err := other.IssueToken(user)
	require.NoError(t, err)

	svc := NewAuthService(nil, "secreto", -time.Minute)
	expired, err := svc.IssueToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueForUnknownPortalID(t *testing.T) {
	svc := NewAuthService(memory.NewUserRepo(), "secreto", time.Hour)
	_, err := svc.IssueForPortalID(context.Background(), "nadie")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
