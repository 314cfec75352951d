package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/umoyo-health/umoyoai/internal/domain"
)

const tokenPrefix = "umo_"

// UserRepositoryInterface defines the repository interface for user persistence
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByTokenHash(ctx context.Context, hash string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// AuthService handles user provisioning and access-token validation. Tokens
// are issued once at creation time and only their SHA-256 hash is stored.
type AuthService struct {
	userRepo UserRepositoryInterface
	uuidGen  UUIDGenerator
}

func NewAuthService(userRepo UserRepositoryInterface, uuidGen UUIDGenerator) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		uuidGen:  uuidGen,
	}
}

// CreateUser provisions a user and returns the user plus the plaintext access
// token. The token is not recoverable afterwards.
func (s *AuthService) CreateUser(ctx context.Context, fullName, email string, role domain.Role) (*domain.User, string, error) {
	if fullName == "" {
		return nil, "", domain.NewDomainError(domain.ErrCodeValidation, "full name is required")
	}
	if email == "" {
		return nil, "", domain.NewDomainError(domain.ErrCodeValidation, "email is required")
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrUserAlreadyExists
	} else if err != domain.ErrUserNotFound {
		return nil, "", err
	}

	token, err := generateAccessToken()
	if err != nil {
		return nil, "", domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to generate access token", err)
	}

	user := &domain.User{
		ID:        s.uuidGen.NewString(),
		FullName:  fullName,
		Email:     email,
		Role:      role,
		TokenHash: hashToken(token),
		CreatedAt: time.Now().UTC(),
	}

	if err := domain.ValidateUser(user); err != nil {
		return nil, "", err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// CreateUserWithToken provisions a user with a caller-supplied token, used
// for bootstrapping the first admin from configuration.
func (s *AuthService) CreateUserWithToken(ctx context.Context, fullName, email string, role domain.Role, token string) (*domain.User, error) {
	if !IsValidAccessToken(token) {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "invalid access token format (expected umo_<64 hex chars>)")
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserAlreadyExists
	} else if err != domain.ErrUserNotFound {
		return nil, err
	}

	user := &domain.User{
		ID:        s.uuidGen.NewString(),
		FullName:  fullName,
		Email:     email,
		Role:      role,
		TokenHash: hashToken(token),
		CreatedAt: time.Now().UTC(),
	}

	if err := domain.ValidateUser(user); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ValidateToken resolves an access token to its user.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	if !IsValidAccessToken(token) {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.userRepo.GetByTokenHash(ctx, hashToken(token))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	return user, nil
}

// ListUsers returns all users, for admin tooling.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

func generateAccessToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return tokenPrefix + hex.EncodeToString(bytes), nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// IsValidAccessToken reports whether a token has the expected shape. It says
// nothing about whether the token belongs to a user.
func IsValidAccessToken(token string) bool {
	if !strings.HasPrefix(token, tokenPrefix) {
		return false
	}
	hexPart := token[len(tokenPrefix):]
	if len(hexPart) != 64 {
		return false
	}
	for _, c := range hexPart {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
