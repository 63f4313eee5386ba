package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopflow/storefront-api/internal/core/domain"
	"github.com/shopflow/storefront-api/internal/core/policy"
	"github.com/shopflow/storefront-api/internal/core/ports"
)

// AuthService implements signup, login, and profile access.
type AuthService struct {
	profiles  ports.ProfileRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(profiles ports.ProfileRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{profiles: profiles, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// Register creates the identity's profile row. The role is always "user";
// admin profiles exist only through EnsureAdmin.
func (s *AuthService) Register(ctx context.Context, email, password, displayName string) (*domain.Profile, error) {
	email = normalizeEmail(email)
	displayName = strings.TrimSpace(displayName)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if displayName == "" {
		displayName = email[:strings.IndexByte(email, '@')]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.profiles.Create(ctx, profile)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("profile created")
	return created, nil
}

// Login verifies credentials and issues a signed session token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	profile, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(profile)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return token, profile, nil
}

func (s *AuthService) Profile(ctx context.Context, caller policy.Principal) (*domain.Profile, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrAuthRequired
	}

	profile, err := s.profiles.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewProfile(caller, profile) {
		return nil, domain.ErrForbidden
	}
	return profile, nil
}

func (s *AuthService) UpdateDisplayName(ctx context.Context, caller policy.Principal, displayName string) (*domain.Profile, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrAuthRequired
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, fmt.Errorf("%w: display name is required", domain.ErrMalformedInput)
	}

	profile, err := s.profiles.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if !policy.CanEditProfile(caller, profile) {
		return nil, domain.ErrForbidden
	}

	return s.profiles.UpdateDisplayName(ctx, profile.ID, displayName)
}

// EnsureAdmin seeds the bootstrap admin profile at startup. A no-op when
// the credentials are unset or the email is already registered.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password, displayName string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	if _, err := s.profiles.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("ensure admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ensure admin: hash password: %w", err)
	}

	if displayName == "" {
		displayName = "Administrator"
	}
	now := time.Now().UTC()
	_, err = s.profiles.Create(ctx, &domain.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, domain.ErrUserExists) {
		// another instance seeded it first
		return nil
	}
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	s.logger.Info().Str("email", email).Msg("admin profile seeded")
	return nil
}

func (s *AuthService) generateToken(p *domain.Profile) (string, error) {
	claims := jwt.MapClaims{
		"user_id": p.ID,
		"role":    p.Role,
		"email":   p.Email,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// normalizeEmail lowercases and trims; profiles are keyed by the result.
func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return ""
	}
	return email
}
