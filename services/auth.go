package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/igreja-site/cms-backend/errs"
	"github.com/igreja-site/cms-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	tokenKindAccess  = "access"
	tokenKindRefresh = "refresh"
	tokenIssuer      = "igreja-cms"
)

// AdminUserStore is the admin account table.
type AdminUserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	Add(ctx context.Context, user *models.AdminUser) error
	Count(ctx context.Context) (int64, error)
}

// Claims are carried by both token kinds; Kind tells them apart.
type Claims struct {
	Email string `json:"email"`
	Kind  string `json:"kind"`
	jwt.RegisteredClaims
}

// TokenPair is the session handed to the admin panel.
type TokenPair struct {
	AccessToken      string           `json:"access_token"`
	RefreshToken     string           `json:"refresh_token"`
	AccessExpiresAt  time.Time        `json:"access_expires_at"`
	RefreshExpiresAt time.Time        `json:"refresh_expires_at"`
	User             models.AdminUser `json:"user"`
}

// AuthService issues and checks HS256 signed admin sessions.
type AuthService struct {
	users      AdminUserStore
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
	logger     zerolog.Logger
}

func NewAuthService(users AdminUserStore, secret string, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
		logger:     log.With().Str("serviceName", "auth").Logger(),
	}
}

// HashPassword returns the bcrypt hash stored for an admin.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login checks the credentials and opens a session. Unknown emails and wrong
// passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewInvalidCredentialsError()
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "admin user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn().Str("email", user.Email).Msg("failed login")
		return nil, errs.NewInvalidCredentialsError()
	}
	return s.issue(*user)
}

// Refresh trades a valid refresh token for a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.parse(refreshToken, tokenKindRefresh)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByEmail(ctx, claims.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewInvalidTokenError()
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "admin user", err)
	}
	return s.issue(*user)
}

// Verify returns the claims of a valid access token.
func (s *AuthService) Verify(accessToken string) (*Claims, error) {
	return s.parse(accessToken, tokenKindAccess)
}

// EnsureAdmin creates the first admin account when none exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	n, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.users.Add(ctx, &models.AdminUser{Email: email, Name: "Administrador", PasswordHash: hash}); err != nil {
		return err
	}
	s.logger.Info().Str("email", strings.ToLower(email)).Msg("seeded first admin user")
	return nil
}

func (s *AuthService) issue(user models.AdminUser) (*TokenPair, error) {
	now := s.now()
	accessExp := now.Add(s.accessTTL)
	refreshExp := now.Add(s.refreshTTL)

	access, err := s.sign(user, tokenKindAccess, now, accessExp)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to sign access token", err)
	}
	refresh, err := s.sign(user, tokenKindRefresh, now, refreshExp)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to sign refresh token", err)
	}
	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
		User:             user,
	}, nil
}

func (s *AuthService) sign(user models.AdminUser, kind string, issuedAt, expiresAt time.Time) (string, error) {
	claims := Claims{
		Email: user.Email,
		Kind:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *AuthService) parse(tokenString, kind string) (*Claims, error) {
	if tokenString == "" {
		return nil, errs.NewMissingTokenError()
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, errs.NewExpiredTokenError()
	}
	if err != nil || claims.Kind != kind {
		return nil, errs.NewInvalidTokenError()
	}
	return claims, nil
}
