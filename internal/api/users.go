package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/tintuc/newsapi/internal/errs"
	"github.com/tintuc/newsapi/internal/middleware"
	"github.com/tintuc/newsapi/internal/models"
)

// GetAllUsers handles GET /api/v1/users (admin only, enforced by route
// middleware).
func (h *Handlers) GetAllUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": users})
}

// GetUserByID handles GET /api/v1/users/:id (admin only).
func (h *Handlers) GetUserByID(c *fiber.Ctx) error {
	id, err := parseObjectID(c.Params("id"))
	if err != nil {
		return err
	}
	user, err := h.users.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": user})
}

type updateUserRequest struct {
	Username *string  `json:"username"`
	Name     *string  `json:"name"`
	Email    *string  `json:"email"`
	NewEmail *string  `json:"newEmail" validate:"omitempty,email"`
	Roles    []string `json:"roles"`
	IsActive *bool    `json:"isActive"`
}

// UpdateUser handles PUT /api/v1/users/:id (admin only). Fields absent
// from the body are left untouched.
func (h *Handlers) UpdateUser(c *fiber.Ctx) error {
	id, err := parseObjectID(c.Params("id"))
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := h.validator.ParseAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.FindByID(c.Context(), id)
	if err != nil {
		return err
	}

	// newEmail takes precedence over email, matching older clients that
	// send either key.
	rawEmail := req.Email
	if req.NewEmail != nil {
		rawEmail = req.NewEmail
	}
	if rawEmail != nil {
		nextEmail := strings.ToLower(strings.TrimSpace(*rawEmail))
		if nextEmail != "" && nextEmail != strings.ToLower(strings.TrimSpace(user.Email)) {
			taken, err := h.users.Taken(c.Context(), "email", nextEmail, user.ID)
			if err != nil {
				return err
			}
			if taken {
				return errs.Conflictf("Email đã được sử dụng.")
			}
			user.Email = nextEmail
		}
	}

	if req.Username != nil {
		if username := strings.TrimSpace(*req.Username); username != "" {
			user.Username = username
		}
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return errs.Validationf("tên không được để trống")
		}
		if len(name) > 64 {
			return errs.Validationf("tên hiển thị không được vượt quá 64 ký tự")
		}
		if name != user.Name {
			taken, err := h.users.Taken(c.Context(), "name", name, user.ID)
			if err != nil {
				return err
			}
			if taken {
				return errs.Conflictf("Tên hiển thị đã được sử dụng.")
			}
		}
		user.Name = name
	}

	if req.Roles != nil {
		if !models.ValidRoles(req.Roles) {
			return errs.Validationf("danh sách vai trò không hợp lệ")
		}
		user.Roles = req.Roles
	}

	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := h.users.Update(c.Context(), user); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cập nhật người dùng thành công",
		"data": fiber.Map{
			"id":       user.ID,
			"name":     user.Name,
			"username": user.Username,
			"email":    user.Email,
			"roles":    user.Roles,
			"isActive": user.IsActive,
		},
	})
}

// DeleteUser handles DELETE /api/v1/users/:id (admin only). Users are
// soft-deleted so their authored articles keep a valid reference.
func (h *Handlers) DeleteUser(c *fiber.Ctx) error {
	id, err := parseObjectID(c.Params("id"))
	if err != nil {
		return err
	}

	user, err := h.users.FindByID(c.Context(), id)
	if err != nil {
		return err
	}

	now := time.Now()
	user.IsDeleted = true
	user.DeletedAt = &now
	if err := h.users.Update(c.Context(), user); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Xóa người dùng thành công",
	})
}

// CurrentPassword is only required when the caller changes their own
// password; admins reset without it.
type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// ChangePassword handles PUT /api/v1/users/:id/change-password. Users
// change their own password with the current one; admins may reset any
// password without it.
func (h *Handlers) ChangePassword(c *fiber.Ctx) error {
	id, err := parseObjectID(c.Params("id"))
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := h.validator.ParseAndValidate(c, &req); err != nil {
		return err
	}

	claims := middleware.CurrentUser(c)
	isAdmin := claims != nil && claims.HasRole(models.RoleAdmin)
	if !isAdmin && (claims == nil || claims.UserID != id.Hex()) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Không đủ quyền.",
		})
	}

	user, err := h.users.FindByID(c.Context(), id)
	if err != nil {
		return err
	}

	if !isAdmin {
		if req.CurrentPassword == "" {
			return errs.Validationf("mật khẩu hiện tại là bắt buộc")
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
			return errs.Validationf("mật khẩu hiện tại không chính xác")
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	if err := h.users.Update(c.Context(), user); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Đổi mật khẩu thành công",
	})
}

func parseObjectID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, errs.Validationf("ID không hợp lệ")
	}
	return id, nil
}
