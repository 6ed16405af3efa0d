package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tintuc/newsapi/internal/config"
	"github.com/tintuc/newsapi/internal/logger"
	"github.com/tintuc/newsapi/internal/models"
)

const (
	// JWTCookieName is the cookie carrying the session token.
	JWTCookieName = "jwt"
	// userContextKey stores the decoded claims in the request context.
	userContextKey = "user"
)

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID   string   `json:"userId"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole reports whether the claims include the given role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Auth issues and verifies session cookies.
type Auth struct {
	cfg *config.Config
}

func NewAuth(cfg *config.Config) *Auth {
	return &Auth{cfg: cfg}
}

// SignToken creates a session token for the user.
func (a *Auth) SignToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID.Hex(),
		Username: user.Username,
		Roles:    user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(a.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// SetSessionCookie attaches the signed token as an httpOnly cookie.
func (a *Auth) SetSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(a.cookie(JWTCookieName, token, true, a.cfg.TokenTTL))
}

// ClearSessionCookies removes the session and CSRF cookies.
func (a *Auth) ClearSessionCookies(c *fiber.Ctx) {
	c.Cookie(a.cookie(JWTCookieName, "", true, -time.Hour))
	c.Cookie(a.cookie(CSRFCookieName, "", false, -time.Hour))
}

// cookie builds a cookie with the configured SameSite/Secure flags.
// SameSite=None always forces Secure, browsers reject it otherwise.
func (a *Auth) cookie(name, value string, httpOnly bool, ttl time.Duration) *fiber.Cookie {
	sameSite := a.cfg.CookieSameSite
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HTTPOnly: httpOnly,
		SameSite: sameSite,
		Secure:   a.cfg.CookieSecure || a.cfg.IsProduction() || sameSite == "none",
		Expires:  time.Now().Add(ttl),
	}
}

// VerifyJWT rejects requests without a valid session cookie and stores
// the decoded claims in the request context.
func (a *Auth) VerifyJWT() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(JWTCookieName)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Phiên đăng nhập không hợp lệ hoặc đã hết hạn.",
			})
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(a.cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			logger.Get().Warn().
				Err(err).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("Rejected invalid session token")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Phiên đăng nhập đã hết hạn hoặc không hợp lệ.",
			})
		}

		c.Locals(userContextKey, claims)
		return c.Next()
	}
}

// RequireRole rejects authenticated requests lacking the given role.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := CurrentUser(c)
		if claims == nil || !claims.HasRole(role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Không đủ quyền truy cập.",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the claims stored by VerifyJWT, or nil.
func CurrentUser(c *fiber.Ctx) *Claims {
	claims, _ := c.Locals(userContextKey).(*Claims)
	return claims
}
