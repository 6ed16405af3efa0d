package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/tintuc/newsapi/internal/errs"
	"github.com/tintuc/newsapi/internal/logger"
	"github.com/tintuc/newsapi/internal/middleware"
	"github.com/tintuc/newsapi/internal/models"
)

const bcryptCost = 10

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,max=64"`
}

type loginRequest struct {
	User string `json:"user" validate:"required"`
	Pwd  string `json:"pwd" validate:"required"`
}

// Register handles POST /api/v1/auth/register.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := h.validator.ParseAndValidate(c, &req); err != nil {
		return err
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if username == "" || name == "" {
		return errs.Validationf("thiếu thông tin bắt buộc")
	}

	// Uniqueness pre-checks give friendly messages; the unique indexes
	// settle concurrent registrations.
	for _, check := range []struct{ field, value, message string }{
		{"email", email, "Email đã được sử dụng."},
		{"username", username, "Tên đăng nhập đã được sử dụng."},
		{"name", name, "Tên hiển thị đã được sử dụng."},
	} {
		taken, err := h.users.Taken(c.Context(), check.field, check.value, primitive.NilObjectID)
		if err != nil {
			return err
		}
		if taken {
			return errs.Conflictf("%s", check.message)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:     name,
		Username: username,
		Email:    email,
		Password: string(hashed),
		Roles:    []string{models.RoleUser},
		IsActive: true,
	}
	if err := h.users.Create(c.Context(), user); err != nil {
		return err
	}

	logger.Get().Info().Str("username", username).Msg("Registered new user")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Đăng ký thành công",
		"data":    userResponse(user),
	})
}

// Login handles POST /api/v1/auth. On success it sets the session
// cookie and a fresh CSRF token.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := h.validator.ParseAndValidate(c, &req); err != nil {
		return err
	}

	login := strings.TrimSpace(req.User)
	user, err := h.users.FindByLogin(c.Context(), login)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return unauthorized(c, "Không tìm thấy tài khoản.")
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Pwd)) != nil {
		return unauthorized(c, "Mật khẩu không chính xác.")
	}

	token, err := h.auth.SignToken(user)
	if err != nil {
		return err
	}
	h.auth.SetSessionCookie(c, token)
	h.auth.SetCSRFCookie(c, middleware.NewCSRFToken())

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Đăng nhập thành công",
		"data":    fiber.Map{"user": userResponse(user)},
	})
}

// Logout handles POST /api/v1/auth/logout.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	h.auth.ClearSessionCookies(c)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Đăng xuất thành công",
	})
}

// Heartbeat handles GET /api/v1/auth/heartbeat: re-issues the session
// cookie to extend a still-valid session.
func (h *Handlers) Heartbeat(c *fiber.Ctx) error {
	claims := middleware.CurrentUser(c)
	if claims == nil {
		return unauthorized(c, "Phiên đăng nhập không còn hiệu lực.")
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return unauthorized(c, "Phiên đăng nhập không còn hiệu lực.")
	}

	token, err := h.auth.SignToken(&models.User{
		ID:       id,
		Username: claims.Username,
		Roles:    claims.Roles,
	})
	if err != nil {
		return err
	}
	h.auth.SetSessionCookie(c, token)

	return c.JSON(fiber.Map{"success": true})
}

// CSRFToken handles GET /api/v1/auth/csrf-token.
func (h *Handlers) CSRFToken(c *fiber.Ctx) error {
	token := middleware.NewCSRFToken()
	h.auth.SetCSRFCookie(c, token)
	return c.JSON(fiber.Map{
		"success":   true,
		"csrfToken": token,
	})
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func userResponse(user *models.User) fiber.Map {
	return fiber.Map{
		"id":       user.ID,
		"name":     user.Name,
		"username": user.Username,
		"email":    user.Email,
		"roles":    user.Roles,
	}
}
