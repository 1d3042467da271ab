package middleware

import (
	"errors"
	"strings"

	"clarityhire/internal/pkg/jwt"
	"clarityhire/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxSessionKey = "session"

	SessionCookie    = "session"
	AccessTokenQuery = "access_token"
)

// SessionMiddleware turns an access token into a usecase.Session stored in
// the request locals.
type SessionMiddleware struct {
	jwt jwt.Service
}

func NewSessionMiddleware(jwtSvc jwt.Service) *SessionMiddleware {
	return &SessionMiddleware{jwt: jwtSvc}
}

// Optional attaches a session when a valid token is present and otherwise
// lets the request through anonymously.
func (m *SessionMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		if token, ok := tokenFromRequest(c); ok {
			if s, err := m.parse(token); err == nil {
				c.Locals(CtxSessionKey, s)
			}
		}
		return c.Next()
	}
}

// Required rejects requests without a valid access token.
func (m *SessionMiddleware) Required() fiber.Handler {
	return func(c fiber.Ctx) error {
		if SessionFrom(c).Authenticated() {
			return c.Next()
		}

		token, ok := tokenFromRequest(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		s, err := m.parse(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(CtxSessionKey, s)
		return c.Next()
	}
}

// RequireRecruiter must run after Required.
func RequireRecruiter() fiber.Handler {
	return func(c fiber.Ctx) error {
		if _, err := SessionFrom(c).RecruiterCompany(); err != nil {
			return NewAppError(fiber.StatusForbidden, "Recruiter access required", nil, err)
		}
		return c.Next()
	}
}

func (m *SessionMiddleware) parse(token string) (usecase.Session, error) {
	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		return usecase.Session{}, err
	}
	if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
		return usecase.Session{}, jwt.ErrTokenInvalid
	}

	id := claims.Identity()
	return usecase.Session{
		UserID:      id.UserID,
		Email:       id.Email,
		IsRecruiter: id.IsRecruiter,
		CompanyID:   id.ActiveCompanyID,
	}, nil
}

// SessionFrom returns the request session, or the zero Session when the
// caller is anonymous.
func SessionFrom(c fiber.Ctx) usecase.Session {
	if s, ok := c.Locals(CtxSessionKey).(usecase.Session); ok {
		return s
	}
	return usecase.Session{}
}

// tokenFromRequest reads the bearer header, then the session cookie. The
// query parameter is only honoured for websocket upgrades since browsers
// cannot set headers there.
func tokenFromRequest(c fiber.Ctx) (string, bool) {
	if tok, ok := BearerToken(c.Get("Authorization")); ok {
		return tok, true
	}
	if tok := strings.TrimSpace(c.Cookies(SessionCookie)); tok != "" {
		return tok, true
	}
	if strings.HasPrefix(c.Path(), "/ws/") {
		if tok := strings.TrimSpace(c.Query(AccessTokenQuery)); tok != "" {
			return tok, true
		}
	}
	return "", false
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
