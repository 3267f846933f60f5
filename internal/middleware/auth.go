package middleware

import (
	"errors"
	"net/url"
	"strings"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/config"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/dto"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/ownership"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	SessionCookie = "session"
	sessionIDKey  = "session_id"
)

var errBadClaims = errors.New("session token claims are malformed")

// SessionRequired admits only requests carrying a valid token for a live
// session; everyone else is sent to the login page.
func SessionRequired(cfg *config.Config, auth *services.AuthService) fiber.Handler {
	return sessionMiddleware(cfg, auth, true)
}

// SessionOptional identifies the user when it can and lets anonymous
// requests through untouched.
func SessionOptional(cfg *config.Config, auth *services.AuthService) fiber.Handler {
	return sessionMiddleware(cfg, auth, false)
}

func sessionMiddleware(cfg *config.Config, auth *services.AuthService, required bool) fiber.Handler {
	reject := func(c *fiber.Ctx) error {
		if required {
			return LoginRequired(c)
		}
		return c.Next()
	}

	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.JWTSecret)},
		TokenLookup: "header:" + fiber.HeaderAuthorization + ",cookie:" + SessionCookie,
		AuthScheme:  "Bearer",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return reject(c)
		},
		SuccessHandler: func(c *fiber.Ctx) error {
			userID, sessionID, err := sessionClaims(c)
			if err != nil {
				return reject(c)
			}
			if _, err := auth.ResolveSession(sessionID, userID); err != nil {
				if errors.Is(err, services.ErrSessionInvalid) {
					return reject(c)
				}
				return err
			}
			ownership.SetUserID(c, userID)
			c.Locals(sessionIDKey, sessionID)
			return c.Next()
		},
	})
}

func sessionClaims(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return uuid.Nil, uuid.Nil, errBadClaims
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, uuid.Nil, errBadClaims
	}
	sub, _ := claims["sub"].(string)
	sid, _ := claims["sid"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, uuid.Nil, errBadClaims
	}
	sessionID, err := uuid.Parse(sid)
	if err != nil {
		return uuid.Nil, uuid.Nil, errBadClaims
	}
	return userID, sessionID, nil
}

// GetSessionID returns the session resolved for this request, if any.
func GetSessionID(c *fiber.Ctx) (uuid.UUID, bool) {
	sid, ok := c.Locals(sessionIDKey).(uuid.UUID)
	return sid, ok
}

// LoginURL points at the login page, remembering where the user was going.
func LoginURL(next string) string {
	if next == "" || next == "/" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}

// LoginRequired redirects browsers and answers 401 to everything else.
func LoginRequired(c *fiber.Ctx) error {
	loginURL := LoginURL(c.OriginalURL())
	if strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMETextHTML) {
		return c.Redirect(loginURL, fiber.StatusFound)
	}
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:    true,
		Message:  "Please log in to access this page.",
		LoginURL: loginURL,
	})
}

// SafeNext accepts only local paths as post-login destinations.
func SafeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
