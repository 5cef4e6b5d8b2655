package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/repository"
)

// bcrypt rejects passwords longer than 72 bytes.
const maxPasswordBytes = 72

// Credentials is the result of a successful login.
type Credentials struct {
	Token   string          `json:"token"`
	Session *domain.Session `json:"session"`
}

type UseCase struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	jwtSecret  []byte
	bcryptCost int
	logger     *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, jwtSecret string, bcryptCost int, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UseCase{
		users:      users,
		sessions:   sessions,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates an account with a bcrypt-hashed password.
func (uc *UseCase) Register(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	if user == nil || user.Username == "" || password == "" {
		return nil, domain.ErrInvalidPayload
	}

	hash, err := HashPassword(password, uc.bcryptCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	return uc.users.Create(ctx, user)
}

// Login verifies the password and issues a signed token plus a cached
// session. A missing user and a wrong password are indistinguishable to the
// caller.
func (uc *UseCase) Login(ctx context.Context, username, password string, ttl time.Duration) (*Credentials, error) {
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    user.ID,
		"session_id": session.ID,
		"exp":        session.ExpiresAt.Unix(),
		"iat":        now.Unix(),
	})
	signed, err := token.SignedString(uc.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &Credentials{Token: signed, Session: session}, nil
}

func (uc *UseCase) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (uc *UseCase) RefreshSession(ctx context.Context, sessionID string, ttl time.Duration) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := uc.sessions.Extend(ctx, sessionID, int(ttl.Seconds())); err != nil {
		return nil, err
	}
	session.ExpiresAt = time.Now().Add(ttl)
	return session, nil
}

func (uc *UseCase) RevokeSession(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

// HashPassword hashes a password with bcrypt, truncating to the bcrypt
// 72-byte limit first.
func HashPassword(password string, cost int) (string, error) {
	raw := []byte(password)
	if len(raw) > maxPasswordBytes {
		raw = raw[:maxPasswordBytes]
	}
	hash, err := bcrypt.GenerateFromPassword(raw, cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether a plaintext password matches the stored hash.
func VerifyPassword(password, hash string) bool {
	if hash == "" {
		return false
	}
	raw := []byte(password)
	if len(raw) > maxPasswordBytes {
		raw = raw[:maxPasswordBytes]
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), raw) == nil
}
