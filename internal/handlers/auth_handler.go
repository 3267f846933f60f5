package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/config"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/dto"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/forms"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/ownership"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/respond"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	if _, err := ownership.GetUserID(c); err == nil {
		return c.Redirect("/", fiber.StatusFound)
	}

	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "Invalid request body")
	}

	user, err := h.authService.Signup(&req)
	if err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			return respond.Invalid(c, verr)
		}
		return err
	}

	slog.Info("user signed up", "user_id", user.ID.String())
	return h.startSession(c, fiber.StatusCreated, user, false, "/")
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	if _, err := ownership.GetUserID(c); err == nil {
		return c.Redirect("/", fiber.StatusFound)
	}

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "Invalid request body")
	}

	user, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return respond.Unauthorized(c, services.MsgInvalidCredentials)
		}
		return err
	}

	return h.startSession(c, fiber.StatusOK, user, forms.Bool(req.Remember), middleware.SafeNext(c.Query("next")))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid, ok := middleware.GetSessionID(c); ok {
		if err := h.authService.Logout(sid); err != nil {
			return err
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(dto.MessageResponse{Message: "You have been logged out.", Redirect: "/login"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := ownership.GetUserID(c)
	if err != nil {
		return middleware.LoginRequired(c)
	}

	user, err := h.authService.CurrentUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return middleware.LoginRequired(c)
		}
		return err
	}
	return c.JSON(user)
}

// Form answers GET /login and GET /signup with where to go after a
// successful submit.
func (h *AuthHandler) Form(c *fiber.Ctx) error {
	if _, err := ownership.GetUserID(c); err == nil {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.JSON(dto.AuthFormResponse{Next: middleware.SafeNext(c.Query("next"))})
}

// Welcome is the landing route for anonymous visitors.
func (h *AuthHandler) Welcome(c *fiber.Ctx) error {
	if _, err := ownership.GetUserID(c); err == nil {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Redirect("/login", fiber.StatusFound)
}

func (h *AuthHandler) startSession(c *fiber.Ctx, status int, user *models.User, remember bool, next string) error {
	token, expires, err := h.authService.StartSession(user.ID, remember)
	if err != nil {
		return err
	}

	cookie := &fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if remember {
		cookie.Expires = expires
	} else {
		cookie.SessionOnly = true
	}
	c.Cookie(cookie)

	return c.Status(status).JSON(dto.AuthResponse{
		Token:     token,
		ExpiresAt: expires.Unix(),
		User:      user,
		Redirect:  next,
	})
}
