package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"boutique/internal/common"
	"boutique/internal/services"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// SessionConfig describes the optional external identity provider. Issuer and
// Audience are required whenever JWKSURL is set.
type SessionConfig struct {
	JWKSURL  string
	Issuer   string
	Audience string
}

// SessionMiddleware authenticates admin requests. Tokens signed with the local
// HMAC secret must carry the local issuer and audience; RSA/EC tokens are accepted
// only when a JWKS URL is configured and they match the provider's issuer and audience.
type SessionMiddleware struct {
	authSvc  services.AuthService
	jwks     *keyfunc.JWKS
	local    *jwt.Validator
	provider *jwt.Validator
}

func NewSessionMiddleware(authSvc services.AuthService, cfg SessionConfig) (*SessionMiddleware, error) {
	m := &SessionMiddleware{
		authSvc: authSvc,
		local:   jwt.NewValidator(jwt.WithIssuer(services.TokenIssuer), jwt.WithAudience(services.TokenAudience)),
	}
	if cfg.JWKSURL == "" {
		return m, nil
	}
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, errors.New("an issuer and audience are required with a JWKS URL")
	}

	jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Printf("WARN: JWKS refresh failed for %s: %v", cfg.JWKSURL, err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS from %s: %w", cfg.JWKSURL, err)
	}
	m.jwks = jwks
	m.provider = jwt.NewValidator(jwt.WithIssuer(cfg.Issuer), jwt.WithAudience(cfg.Audience))
	return m, nil
}

// Close stops the JWKS background refresh
func (m *SessionMiddleware) Close() {
	if m.jwks != nil {
		m.jwks.EndBackground()
	}
}

func (m *SessionMiddleware) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
		return m.authSvc.SigningKey(), nil
	}
	if m.jwks != nil {
		return m.jwks.Keyfunc(token)
	}
	return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
}

// parseToken verifies the signature, then the issuer and audience expected for the key that signed it
func (m *SessionMiddleware) parseToken(c echo.Context, auth string) (interface{}, error) {
	claims := new(services.SessionClaims)
	token, err := jwt.ParseWithClaims(auth, claims, m.keyFunc)
	if err != nil {
		return nil, err
	}

	validator := m.provider
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
		validator = m.local
	}
	if validator == nil {
		return nil, errors.New("no validator for token")
	}
	if err := validator.Validate(claims); err != nil {
		return nil, err
	}
	return token, nil
}

func (m *SessionMiddleware) config() echojwt.Config {
	return echojwt.Config{
		ParseTokenFunc: m.parseToken,
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}
}

// RequireSession validates the bearer token and stores the resolved session on the request context
func (m *SessionMiddleware) RequireSession() echo.MiddlewareFunc {
	jwtMiddleware := echojwt.WithConfig(m.config())
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return jwtMiddleware(m.resolve(next))
	}
}

func (m *SessionMiddleware) resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
		}
		claims, ok := token.Claims.(*services.SessionClaims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
		}

		session, err := m.authSvc.ResolveSession(c.Request().Context(), claims)
		switch {
		case errors.Is(err, services.ErrTokenRevoked), errors.Is(err, services.ErrUnknownAdmin):
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		case err != nil:
			log.Printf("ERROR: Failed to resolve session for %q: %v", claims.Subject, err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve session")
		}

		c.SetRequest(c.Request().WithContext(common.WithSession(c.Request().Context(), session)))
		return next(c)
	}
}
