package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"boutique/internal/caching"
	"boutique/internal/models"
	"boutique/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// TokenIssuer and TokenAudience are carried by every locally issued admin token
	TokenIssuer   = "boutique-auth"
	TokenAudience = "boutique-admin"

	minPasswordLength = 8
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUnknownAdmin       = errors.New("token subject is not an admin")
)

// AuthService authenticates catalog administrators and issues session tokens
type AuthService interface {
	Login(ctx context.Context, username, password, clientIP string) (*models.TokenResponse, error)
	IssueToken(user *models.AdminUser) (*models.TokenResponse, error)
	// ResolveSession turns verified claims into the request's session
	ResolveSession(ctx context.Context, claims *SessionClaims) (*models.Session, error)
	Logout(ctx context.Context, session *models.Session) error
	CreateAdmin(ctx context.Context, username, password string) (*models.AdminUser, error)
	SigningKey() []byte
}

// SessionClaims are carried in admin access tokens
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo    repositories.AdminUserRepository
	cacheSvc    caching.CacheService
	jwtSecret   []byte
	tokenTTL    time.Duration
	loginLimit  int
	limitWindow time.Duration
}

func NewAuthService(userRepo repositories.AdminUserRepository, cacheSvc caching.CacheService, jwtSecret string, tokenTTL time.Duration, loginLimit int) AuthService {
	return &authService{
		userRepo:    userRepo,
		cacheSvc:    cacheSvc,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
		loginLimit:  loginLimit,
		limitWindow: 15 * time.Minute,
	}
}

func (s *authService) SigningKey() []byte {
	return s.jwtSecret
}

func (s *authService) Login(ctx context.Context, username, password, clientIP string) (*models.TokenResponse, error) {
	if s.loginLimit > 0 {
		limited, err := s.cacheSvc.IsRateLimited(ctx, "login:"+clientIP, s.loginLimit, s.limitWindow)
		if err != nil {
			log.Printf("WARN: Login rate limit check failed for %s: %v", clientIP, err)
		} else if limited {
			return nil, ErrTooManyAttempts
		}
	}

	user, err := s.userRepo.GetByUsername(ctx, normalizeUsername(username))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.IssueToken(user)
}

func (s *authService) IssueToken(user *models.AdminUser) (*models.TokenResponse, error) {
	now := time.Now()
	tokenID := uuid.NewString()

	claims := SessionClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings{TokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        tokenID,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %w", err)
	}

	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
		TokenID:     tokenID,
		IssuedAt:    now,
	}, nil
}

func (s *authService) ResolveSession(ctx context.Context, claims *SessionClaims) (*models.Session, error) {
	if claims == nil || claims.Subject == "" {
		return nil, ErrUnknownAdmin
	}

	if claims.ID != "" {
		revoked, err := s.cacheSvc.IsTokenRevoked(ctx, claims.ID)
		if err != nil {
			log.Printf("WARN: Token revocation check failed for %s: %v", claims.ID, err)
		} else if revoked {
			return nil, ErrTokenRevoked
		}
	}

	admin, err := s.lookupAdmin(ctx, claims)
	if errors.Is(err, repositories.ErrNotFound) {
		log.Printf("WARN: Rejected token for unknown admin %q (issuer %q)", claims.Subject, claims.Issuer)
		return nil, ErrUnknownAdmin
	}
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		AdminID:  admin.ID.String(),
		Username: admin.Username,
		TokenID:  claims.ID,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

// lookupAdmin maps a token subject to an admin account. Local tokens carry the admin id;
// identity provider accounts are provisioned with their subject as username.
func (s *authService) lookupAdmin(ctx context.Context, claims *SessionClaims) (*models.AdminUser, error) {
	if claims.Issuer == TokenIssuer {
		id, err := uuid.Parse(claims.Subject)
		if err != nil {
			return nil, repositories.ErrNotFound
		}
		return s.userRepo.GetByID(ctx, id)
	}
	return s.userRepo.GetByUsername(ctx, normalizeUsername(claims.Subject))
}

// Logout revokes the session's token until it would have expired anyway
func (s *authService) Logout(ctx context.Context, session *models.Session) error {
	if session == nil || session.TokenID == "" {
		return nil
	}
	return s.cacheSvc.RevokeToken(ctx, session.TokenID, time.Until(session.ExpiresAt))
}

func (s *authService) CreateAdmin(ctx context.Context, username, password string) (*models.AdminUser, error) {
	username = normalizeUsername(username)
	if err := required(username, "username"); err != nil {
		return nil, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.AdminUser{ID: uuid.New(), Username: username, PasswordHash: hash}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// HashPassword bcrypt-hashes a password after checking its minimum length
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", validationError("password must be at least %d characters", minPasswordLength)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func normalizeUsername(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
