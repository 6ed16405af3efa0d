package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"

	"github.com/gofiber/fiber/v2"
)

const (
	// CSRFCookieName is the double-submit cookie readable by the
	// frontend.
	CSRFCookieName = "csrfToken"
	// CSRFHeaderName must echo the cookie value on unsafe methods.
	CSRFHeaderName = "X-Csrf-Token"
)

// NewCSRFToken returns a random token for the double-submit check.
func NewCSRFToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand failing means the process cannot run safely
	}
	return hex.EncodeToString(buf)
}

// SetCSRFCookie attaches a CSRF token cookie. Unlike the session cookie
// it must be readable by client scripts.
func (a *Auth) SetCSRFCookie(c *fiber.Ctx, token string) {
	c.Cookie(a.cookie(CSRFCookieName, token, false, a.cfg.TokenTTL))
}

// VerifyCSRF enforces the double-submit check on unsafe methods. Safe
// methods pass through untouched.
func VerifyCSRF() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		cookieToken := c.Cookies(CSRFCookieName)
		headerToken := c.Get(CSRFHeaderName)

		if cookieToken == "" || headerToken == "" ||
			subtle.ConstantTimeCompare([]byte(cookieToken), []byte(headerToken)) != 1 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Mã bảo vệ CSRF không khớp.",
			})
		}
		return c.Next()
	}
}
