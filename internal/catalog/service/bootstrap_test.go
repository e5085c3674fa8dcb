package service_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/openshelf/catalog/internal/catalog/domain"
	"github.com/openshelf/catalog/internal/catalog/service"
	"github.com/stretchr/testify/require"
)

func TestEnsureAdminSeedsOnce(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	boot := &service.BootstrapService{
		Store:    st,
		Logger:   slog.Default(),
		Username: "root",
		Password: "correct horse battery staple",
	}

	require.NoError(t, boot.EnsureAdmin(ctx))

	u, err := st.Users().GetUserByUsername(ctx, "root")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, u.Role)

	// A second run against a populated table is a no-op.
	require.NoError(t, boot.EnsureAdmin(ctx))

	empty, err := st.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, empty)
}

func TestEnsureAdminSkipsPopulatedStore(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	seedUser(t, st, "existing", "password123", domain.RoleUser)

	boot := &service.BootstrapService{Store: st, Logger: slog.Default()}
	require.NoError(t, boot.EnsureAdmin(ctx))

	_, err := st.Users().GetUserByUsername(ctx, "admin")
	require.Error(t, err)
}

func TestEnsureAdminPasswordWorksForLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	boot := &service.BootstrapService{
		Store:    st,
		Logger:   slog.Default(),
		Password: "bootstrap-password",
	}
	require.NoError(t, boot.EnsureAdmin(ctx))

	svc := newAuthService(t, st)
	_, err := svc.Login(ctx, "admin", "bootstrap-password")
	require.NoError(t, err)
}
