package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/internal/testutil"
)

// sessionStore is an in-memory SessionRepository for these tests.
type sessionStore struct {
	sessions map[string]domain.Session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]domain.Session)}
}

func (s *sessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

func (s *sessionStore) Save(ctx context.Context, session *domain.Session) error {
	s.sessions[session.ID] = *session
	return nil
}

func (s *sessionStore) Delete(ctx context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func (s *sessionStore) Extend(ctx context.Context, id string, ttlSeconds int) error {
	session, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.ExpiresAt = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	s.sessions[id] = session
	return nil
}

func newFixture(t *testing.T) (*UseCase, *testutil.Store, *sessionStore) {
	t.Helper()
	store := testutil.NewStore()
	sessions := newSessionStore()
	uc := New(store.UserRepo(), sessions, "test-secret", bcrypt.MinCost, nil)
	return uc, store, sessions
}

func TestRegister(t *testing.T) {
	t.Run("hashes the password", func(t *testing.T) {
		uc, store, _ := newFixture(t)

		user, err := uc.Register(context.Background(), &domain.User{Username: "ada"}, "hunter22")
		require.NoError(t, err)
		require.NotEmpty(t, user.ID)

		stored := store.Users[user.ID]
		assert.NotEmpty(t, stored.PasswordHash)
		assert.NotEqual(t, "hunter22", stored.PasswordHash)
		assert.True(t, VerifyPassword("hunter22", stored.PasswordHash))
	})

	t.Run("rejects empty username or password", func(t *testing.T) {
		uc, _, _ := newFixture(t)

		_, err := uc.Register(context.Background(), &domain.User{}, "pw")
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)

		_, err = uc.Register(context.Background(), &domain.User{Username: "ada"}, "")
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
	})
}

func TestLogin(t *testing.T) {
	register := func(t *testing.T, uc *UseCase) *domain.User {
		user, err := uc.Register(context.Background(), &domain.User{Username: "ada"}, "hunter22")
		require.NoError(t, err)
		return user
	}

	t.Run("issues a token with user and session claims", func(t *testing.T) {
		uc, _, sessions := newFixture(t)
		user := register(t, uc)

		creds, err := uc.Login(context.Background(), "ada", "hunter22", time.Hour)
		require.NoError(t, err)
		require.NotNil(t, creds.Session)
		assert.Contains(t, sessions.sessions, creds.Session.ID)

		token, err := jwt.Parse(creds.Token, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, user.ID, claims["user_id"])
		assert.Equal(t, creds.Session.ID, claims["session_id"])
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		uc, _, _ := newFixture(t)
		register(t, uc)

		_, errWrong := uc.Login(context.Background(), "ada", "nope", time.Hour)
		_, errMissing := uc.Login(context.Background(), "ghost", "nope", time.Hour)

		assert.ErrorIs(t, errWrong, domain.ErrUnauthorized)
		assert.ErrorIs(t, errMissing, domain.ErrUnauthorized)
	})
}

func TestSessions(t *testing.T) {
	t.Run("expired session is evicted on read", func(t *testing.T) {
		uc, _, sessions := newFixture(t)
		sessions.sessions["s1"] = domain.Session{
			ID:        "s1",
			UserID:    "u1",
			ExpiresAt: time.Now().Add(-time.Minute),
		}

		_, err := uc.GetSession(context.Background(), "s1")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
		assert.NotContains(t, sessions.sessions, "s1")
	})

	t.Run("refresh extends expiry", func(t *testing.T) {
		uc, _, sessions := newFixture(t)
		sessions.sessions["s1"] = domain.Session{
			ID:        "s1",
			UserID:    "u1",
			ExpiresAt: time.Now().Add(time.Minute),
		}

		session, err := uc.RefreshSession(context.Background(), "s1", 2*time.Hour)
		require.NoError(t, err)
		assert.True(t, session.ExpiresAt.After(time.Now().Add(time.Hour)))
	})

	t.Run("revoke removes the session", func(t *testing.T) {
		uc, _, sessions := newFixture(t)
		sessions.sessions["s1"] = domain.Session{ID: "s1"}

		require.NoError(t, uc.RevokeSession(context.Background(), "s1"))
		assert.NotContains(t, sessions.sessions, "s1")
	})
}

func TestPasswordHashing(t *testing.T) {
	t.Run("passwords beyond 72 bytes are truncated consistently", func(t *testing.T) {
		long := strings.Repeat("a", 80)
		hash, err := HashPassword(long, bcrypt.MinCost)
		require.NoError(t, err)

		// Same first 72 bytes verify; bcrypt never sees the tail.
		assert.True(t, VerifyPassword(long, hash))
		assert.True(t, VerifyPassword(strings.Repeat("a", 72)+"different-tail", hash))
		assert.False(t, VerifyPassword(strings.Repeat("b", 80), hash))
	})

	t.Run("empty hash never verifies", func(t *testing.T) {
		assert.False(t, VerifyPassword("anything", ""))
	})
}
