package service_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/veligame/adminpanel/internal/panel/service"
	"github.com/veligame/adminpanel/internal/panel/store/drivers/sqlite"
	"github.com/veligame/adminpanel/pkg/cryptox"
	"github.com/veligame/adminpanel/pkg/jwtx"
)

var testSecret = []byte("service-test-secret-service-test")

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "panel-service-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
		filepath.Join(t.TempDir(), "panel.db"),
	)

	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newAuthService(t *testing.T) *service.AuthService {
	t.Helper()

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	return &service.AuthService{
		Store:    newTestStore(t),
		Signer:   signer,
		Issuer:   "panel-api",
		Audience: []string{"panel"},
		TokenTTL: 2 * time.Minute,
	}
}

func TestRegister(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "a@x.com", "p1")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "alice", user.Username)
	require.NotEqual(t, "p1", user.PasswordHash, "password must not be stored as submitted")

	t.Run("duplicate username with different email", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice", "b@y.com", "p2")
		require.ErrorIs(t, err, service.ErrAccountExists)
	})

	t.Run("duplicate email with different username", func(t *testing.T) {
		_, err := svc.Register(ctx, "bob", "a@x.com", "p2")
		require.ErrorIs(t, err, service.ErrAccountExists)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Register(ctx, "", "c@z.com", "p")
		require.ErrorIs(t, err, service.ErrInvalidRegistration)

		_, err = svc.Register(ctx, "carol", "", "p")
		require.ErrorIs(t, err, service.ErrInvalidRegistration)

		_, err = svc.Register(ctx, "carol", "c@z.com", "")
		require.ErrorIs(t, err, service.ErrInvalidRegistration)
	})
}

func TestRegisterConcurrentDuplicates(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(ctx, "alice", fmt.Sprintf("alice%d@x.com", i), "p1")
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		default:
			require.ErrorIs(t, err, service.ErrAccountExists)
			lost++
		}
	}

	require.Equal(t, 1, won, "exactly one registration must win")
	require.Equal(t, attempts-1, lost)
}

func TestLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "a@x.com", "p1")
	require.NoError(t, err)

	t.Run("valid credentials yield a verifiable token", func(t *testing.T) {
		token, err := svc.Login(ctx, "alice", "p1")
		require.NoError(t, err)

		verifier := jwtx.NewVerifierHS256(testSecret, "panel-api", []string{"panel"})
		claims, err := verifier.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "alice", claims.Subject)
		require.WithinDuration(t,
			time.Now().UTC().Add(2*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "nope")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown user gets the same error", func(t *testing.T) {
		_, err := svc.Login(ctx, "mallory", "p1")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestLoginTokenExpiry(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	issuedAt := time.Now().UTC()
	svc.Now = func() time.Time { return issuedAt }

	_, err := svc.Register(ctx, "alice", "a@x.com", "p1")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "alice", "p1")
	require.NoError(t, err)

	verifier := jwtx.NewVerifierHS256(testSecret, "panel-api", []string{"panel"})

	t.Run("valid within two minutes", func(t *testing.T) {
		verifier.Now = func() time.Time { return issuedAt.Add(90 * time.Second) }
		_, err := verifier.Verify(token)
		require.NoError(t, err)
	})

	t.Run("rejected after three minutes", func(t *testing.T) {
		verifier.Now = func() time.Time { return issuedAt.Add(3 * time.Minute) }
		_, err := verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})
}
