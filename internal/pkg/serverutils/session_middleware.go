package serverutils

import (
	"fmt"
	"time"

	"github.com/benvansteenbergen/console-sub000/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// Locals keys populated by SessionMiddleware.
	LocalSessionToken = "session_token"
	LocalSessionEmail = "session_email"
)

// IssueSessionCookie wraps the upstream bearer token in a console-signed JWT
// and returns the cookie to set. The upstream token never reaches client
// script: the cookie is HTTP-only and the claim is only unwrapped server-side.
func IssueSessionCookie(cfg config.SessionConfig, upstreamToken, email string) (*fiber.Cookie, error) {
	claims := jwt.MapClaims{
		"tok": upstreamToken,
		"sub": email,
		"exp": time.Now().Add(cfg.TTL).Unix(),
		"iat": time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    signed,
		Path:     "/",
		HTTPOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(cfg.TTL),
	}, nil
}

// ClearSessionCookie returns an expired cookie with the same attributes.
func ClearSessionCookie(cfg config.SessionConfig) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-time.Hour),
	}
}

// SessionMiddleware guards every proxy route. A missing or invalid cookie
// short-circuits with 401 before any upstream call is made.
func SessionMiddleware(cfg config.SessionConfig) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		cookie := ctx.Cookies(cfg.CookieName)
		if cookie == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Not authenticated"))
		}

		token, err := jwt.Parse(cookie, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		})
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid session"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid session"))
		}
		upstreamToken, _ := claims["tok"].(string)
		if upstreamToken == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid session"))
		}

		ctx.Locals(LocalSessionToken, upstreamToken)
		if email, ok := claims["sub"].(string); ok {
			ctx.Locals(LocalSessionEmail, email)
		}
		return ctx.Next()
	}
}

// SessionToken reads the upstream token placed by SessionMiddleware.
func SessionToken(ctx *fiber.Ctx) string {
	token, _ := ctx.Locals(LocalSessionToken).(string)
	return token
}
