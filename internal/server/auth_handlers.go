package server

import (
	"errors"

	"mingle/internal/auth"
	"mingle/internal/middleware"
	"mingle/internal/models"
	"mingle/internal/observability"
	"mingle/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ShowRegister renders the registration form.
func (s *Server) ShowRegister(c *fiber.Ctx) error {
	return s.render(c, "users/register", fiber.Map{"Title": "Register"})
}

// Register creates an account and logs the new user straight in.
func (s *Server) Register(c *fiber.Ctx) error {
	fields := map[string]string{
		"username":   c.FormValue("username"),
		"first name": c.FormValue("first_name"),
		"last name":  c.FormValue("last_name"),
		"password":   c.FormValue("password"),
	}
	if err := validation.RequireFields(fields, "username", "first name", "last name", "password"); err != nil {
		s.flashError(c, err.Error())
		return c.Redirect("/user/register", fiber.StatusFound)
	}

	if err := validation.ValidateUsername(fields["username"]); err != nil {
		s.flashError(c, err.Error())
		return c.Redirect("/user/register", fiber.StatusFound)
	}
	if err := validation.ValidatePassword(fields["password"]); err != nil {
		s.flashError(c, err.Error())
		return c.Redirect("/user/register", fiber.StatusFound)
	}

	user, err := s.gate.Register(c.Context(), fields["username"], fields["first name"], fields["last name"], fields["password"])
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			s.flashError(c, "That username is already taken.")
		} else {
			middleware.Logger.Error("registration failed", "error", err.Error())
			s.flashError(c, models.UserMessage(err))
		}
		return c.Redirect("/user/register", fiber.StatusFound)
	}

	observability.RegistrationsTotal.Inc()

	// New accounts go straight into a session.
	sid, err := s.sessions.Create(c.Context(), user)
	if err != nil {
		middleware.Logger.Error("session create failed after registration", "error", err.Error(), "user_id", user.ID)
		s.flashSuccess(c, "Account created! Please log in.")
		return c.Redirect("/user/login", fiber.StatusFound)
	}
	s.setSessionCookie(c, sid)

	if err := s.sessions.SetSuccess(c.Context(), sid, "Welcome to Mingle, "+user.FirstName+"!"); err != nil {
		middleware.Logger.Error("failed to set flash", "error", err.Error())
	}
	return c.Redirect("/", fiber.StatusFound)
}

// ShowLogin renders the login form.
func (s *Server) ShowLogin(c *fiber.Ctx) error {
	return s.render(c, "users/login", fiber.Map{"Title": "Log In"})
}

// Login checks credentials and opens a session.
func (s *Server) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	if err := validation.RequireFields(map[string]string{
		"username": username,
		"password": password,
	}, "username", "password"); err != nil {
		s.flashError(c, err.Error())
		return c.Redirect("/user/login", fiber.StatusFound)
	}

	user, err := s.gate.Authenticate(c.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			observability.LoginsTotal.WithLabelValues("failure").Inc()
			s.flashError(c, "Invalid username or password.")
		} else {
			middleware.Logger.Error("login failed", "error", err.Error())
			s.flashError(c, models.UserMessage(err))
		}
		return c.Redirect("/user/login", fiber.StatusFound)
	}

	sid, err := s.sessions.Create(c.Context(), user)
	if err != nil {
		middleware.Logger.Error("session create failed", "error", err.Error(), "user_id", user.ID)
		s.flashError(c, "Something went wrong, please try again.")
		return c.Redirect("/user/login", fiber.StatusFound)
	}
	s.setSessionCookie(c, sid)

	observability.LoginsTotal.WithLabelValues("success").Inc()
	if err := s.sessions.SetSuccess(c.Context(), sid, "Welcome back, "+user.FirstName+"!"); err != nil {
		middleware.Logger.Error("failed to set flash", "error", err.Error())
	}
	return c.Redirect("/", fiber.StatusFound)
}

// Logout destroys the session and sends the user back where they were.
func (s *Server) Logout(c *fiber.Ctx) error {
	if sid := s.sid(c); sid != "" {
		if err := s.sessions.Destroy(c.Context(), sid); err != nil {
			middleware.Logger.Error("session destroy failed", "error", err.Error())
		}
	}
	s.clearSessionCookie(c)
	return redirectBack(c)
}
