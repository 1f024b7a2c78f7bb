package server

import (
	"errors"
	"strconv"

	"mingle/internal/middleware"
	"mingle/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// sid returns the session cookie value, which may be empty.
func (s *Server) sid(c *fiber.Ctx) string {
	return c.Cookies(s.config.SessionCookie)
}

// ensureSID returns the current session id, minting an anonymous one when the
// request carries no cookie. Anonymous ids only carry flash messages; they are
// not sessions until a login writes identity under them.
func (s *Server) ensureSID(c *fiber.Ctx) string {
	if sid := s.sid(c); sid != "" {
		return sid
	}
	sid := uuid.NewString()
	s.setSessionCookie(c, sid)
	return sid
}

func (s *Server) setSessionCookie(c *fiber.Ctx, sid string) {
	c.Cookie(&fiber.Cookie{
		Name:     s.config.SessionCookie,
		Value:    sid,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   s.config.SessionTTL() * 60,
		Path:     "/",
	})
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.config.SessionCookie,
		Value:    "",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   -1,
		Path:     "/",
	})
}

func (s *Server) flashError(c *fiber.Ctx, msg string) {
	if err := s.sessions.SetError(c.Context(), s.ensureSID(c), msg); err != nil {
		middleware.Logger.Error("failed to set flash", "error", err.Error())
	}
}

func (s *Server) flashSuccess(c *fiber.Ctx, msg string) {
	if err := s.sessions.SetSuccess(c.Context(), s.ensureSID(c), msg); err != nil {
		middleware.Logger.Error("failed to set flash", "error", err.Error())
	}
}

// redirectBack sends the user to the page they came from, or home.
func redirectBack(c *fiber.Ctx) error {
	ref := c.Get(fiber.HeaderReferer)
	if ref == "" {
		ref = "/"
	}
	return c.Redirect(ref, fiber.StatusFound)
}

// render draws a view with flash messages and the viewer's identity merged
// into the bind. Flashes are consumed by the read.
func (s *Server) render(c *fiber.Ctx, name string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}

	if sid := s.sid(c); sid != "" {
		flash, err := s.sessions.PopFlash(c.Context(), sid)
		if err != nil {
			middleware.Logger.Error("failed to pop flash", "error", err.Error())
		} else {
			if flash.Error != "" {
				bind["Error"] = flash.Error
			}
			if flash.Success != "" {
				bind["Success"] = flash.Success
			}
		}

		if ident, err := s.sessions.Get(c.Context(), sid); err == nil {
			bind["LoggedIn"] = true
			bind["Username"] = ident.Username
			bind["ViewerID"] = ident.UserID
		}
	}

	return c.Render(name, bind)
}

// RequireLogin resolves the session and stores the viewer's identity in
// request locals. Anonymous requests are flashed and sent to the login page.
func (s *Server) RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := s.sid(c)
		if sid != "" {
			ident, err := s.sessions.Get(c.Context(), sid)
			if err == nil {
				c.Locals("userID", ident.UserID)
				c.Locals("username", ident.Username)
				return c.Next()
			}
			if !errors.Is(err, session.ErrNotFound) {
				middleware.Logger.Error("session lookup failed", "error", err.Error())
			}
		}

		s.flashError(c, "You need to be logged in to do that!")
		return c.Redirect("/user/login", fiber.StatusFound)
	}
}

// viewerID returns the authenticated user's id set by RequireLogin.
func viewerID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// paramID parses a numeric :id route parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
