package cli

import (
	"aulaquiz/config"
	"aulaquiz/internal/app"
	"aulaquiz/internal/logger"
	"aulaquiz/internal/model"
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootHasSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "token"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
	serve, _, _ := root.Find([]string{"serve"})
	assert.NotNil(t, serve.Flags().Lookup("memory"))
}

func TestPrintToken(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{JWTSecret: "s", JWTExpiration: time.Hour, StatsCacheTTL: time.Second}
	a, err := app.New(ctx, cfg, logger.Nop(), app.Options{Memory: true, WithoutHub: true})
	require.NoError(t, err)
	defer a.Close(ctx)

	_, err = a.UserService.Create(ctx, &model.User{IDPortal: "prof.lopez", Nombre: "Luis", Email: "luis@aula.es", Rol: model.RoleProfesor})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printToken(ctx, &out, a, " prof.lopez "))

	var resp model.TokenResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, model.RoleProfesor, resp.Rol)

	claims, err := a.AuthService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)

	assert.ErrorIs(t, printToken(ctx, &out, a, "nadie"), model.ErrNotFound)
	assert.Error(t, printToken(ctx, &out, a, ""))
}

func TestServeRefusesDefaultSecretOutsideDevelopment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	err := runServer(context.Background(), config.Load(), true)
	assert.ErrorIs(t, err, config.ErrDefaultJWTSecret)
}
