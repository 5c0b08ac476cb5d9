package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/ecommerce/internal/auth"
)

const identityContextKey = "currentIdentity"

// RequireAuth authenticates the request from a bearer token or, failing
// that, from the signed session cookie, and stores the identity in context.
// The request never proceeds anonymously past this middleware.
func RequireAuth(tc auth.TokenConfig, codec auth.SessionCodec, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if identity, ok := identityFromBearer(c, tc); ok {
			c.Locals(identityContextKey, identity)
			return c.Next()
		}

		if identity, ok := identityFromCookie(c, tc, codec, cookieName); ok {
			c.Locals(identityContextKey, identity)
			return c.Next()
		}

		return fiber.NewError(fiber.StatusUnauthorized, "missing or invalid credentials")
	}
}

// RequireRoles rejects authenticated requests whose role claim matches none
// of the accepted roles. Must run after RequireAuth.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing or invalid credentials")
		}

		for _, role := range roles {
			if identity.Role == role {
				return c.Next()
			}
		}

		return fiber.NewError(fiber.StatusForbidden, "insufficient role")
	}
}

// CurrentIdentity extracts the authenticated identity from context.
func CurrentIdentity(c *fiber.Ctx) (auth.Identity, bool) {
	value := c.Locals(identityContextKey)
	if value == nil {
		return auth.Identity{}, false
	}

	identity, ok := value.(auth.Identity)
	return identity, ok
}

func identityFromBearer(c *fiber.Ctx, tc auth.TokenConfig) (auth.Identity, bool) {
	header := c.Get("Authorization")
	if header == "" {
		return auth.Identity{}, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return auth.Identity{}, false
	}

	claims, err := tc.ParseToken(parts[1])
	if err != nil {
		return auth.Identity{}, false
	}

	identity, err := auth.IdentityFromClaims(claims, parts[1])
	if err != nil {
		return auth.Identity{}, false
	}

	return identity, true
}

func identityFromCookie(c *fiber.Ctx, tc auth.TokenConfig, codec auth.SessionCodec, cookieName string) (auth.Identity, bool) {
	value := c.Cookies(cookieName)
	if value == "" {
		return auth.Identity{}, false
	}

	identity, ok := codec.Decode(value)
	if !ok {
		return auth.Identity{}, false
	}

	// The cookie embeds the bearer token; the token's own expiry still
	// applies to the session.
	if _, err := tc.ParseToken(identity.Token); err != nil {
		return auth.Identity{}, false
	}

	// Sliding renewal: each authenticated request refreshes the idle deadline.
	if renewed, err := codec.Encode(identity); err == nil {
		SetSessionCookie(c, cookieName, renewed, codec.Idle())
	}

	return identity, true
}

// SetSessionCookie writes the signed session cookie.
func SetSessionCookie(c *fiber.Ctx, name, value string, idle time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(idle.Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSessionCookie deletes the session cookie.
func ClearSessionCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
