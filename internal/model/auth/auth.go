package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"max.ks1230/expense-service/internal/entity/user"
)

const tokenBytes = 32

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type accountStorage interface {
	InsertAccount(ctx context.Context, acc user.Account) (user.Account, error)
	FindAccountByUsername(ctx context.Context, username string) (user.Account, error)
	InsertSession(ctx context.Context, sess user.Session) error
	FindSession(ctx context.Context, token string) (user.Session, error)
}

type config interface {
	SessionTTLHours() int64
	BcryptCost() int
}

// Service is the authentication collaborator: it registers accounts, issues
// bearer tokens and resolves tokens to a verified owner identity. Nothing
// downstream re-derives identity.
type Service struct {
	storage    accountStorage
	sessionTTL time.Duration
	bcryptCost int
}

func NewService(storage accountStorage, config config) *Service {
	return &Service{
		storage:    storage,
		sessionTTL: time.Duration(config.SessionTTLHours()) * time.Hour,
		bcryptCost: config.BcryptCost(),
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, password string) (user.Account, error) {
	username = strings.TrimSpace(username)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return user.Account{}, errors.Wrap(err, "register")
	}

	acc, err := s.storage.InsertAccount(ctx, user.Account{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	return acc, errors.Wrap(err, "register")
}

// Login verifies the credentials and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	acc, err := s.storage.FindAccountByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return "", errors.Wrap(err, "login")
	}
	err = s.storage.InsertSession(ctx, user.Session{
		Token:     token,
		UserID:    acc.ID,
		ExpiresAt: time.Now().UTC().Add(s.sessionTTL),
	})
	if err != nil {
		return "", errors.Wrap(err, "login")
	}
	return token, nil
}

// Authenticate resolves a bearer token to the owner identity it was issued
// for, rejecting unknown and expired tokens alike.
func (s *Service) Authenticate(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrInvalidToken
	}
	sess, err := s.storage.FindSession(ctx, token)
	if err != nil {
		return 0, ErrInvalidToken
	}
	if sess.Expired(time.Now().UTC()) {
		return 0, ErrInvalidToken
	}
	return sess.UserID, nil
}

func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "generate token")
	}
	return hex.EncodeToString(buf), nil
}
