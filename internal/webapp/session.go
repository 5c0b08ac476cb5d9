package webapp

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/ecommerce/internal/auth"
	"github.com/example/ecommerce/internal/config"
	"github.com/example/ecommerce/internal/middleware"
	"github.com/example/ecommerce/internal/models"
)

const sessionContextKey = "webIdentity"

// Sessions manages the signed browser session cookie. It shares the codec
// and token validation with the API service, so a session issued by either
// side is readable by the other.
type Sessions struct {
	codec  auth.SessionCodec
	tokens auth.TokenConfig
	cookie string
}

func NewSessions(cfg *config.Config) Sessions {
	return Sessions{
		codec: auth.NewSessionCodec(cfg.SessionSecret, cfg.SessionIdle),
		tokens: auth.TokenConfig{
			Secret:   cfg.JWTSecret,
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
			TTL:      cfg.TokenExpires,
		},
		cookie: cfg.SessionCookie,
	}
}

// Load restores the visitor's identity from the session cookie and slides
// the idle deadline forward. Anonymous requests pass through untouched;
// invalid or stale cookies are cleared.
func (s Sessions) Load() fiber.Handler {
	return func(c *fiber.Ctx) error {
		value := c.Cookies(s.cookie)
		if value == "" {
			return c.Next()
		}

		identity, ok := s.codec.Decode(value)
		if !ok {
			middleware.ClearSessionCookie(c, s.cookie)
			return c.Next()
		}

		// The embedded bearer token's expiry bounds the session regardless
		// of cookie renewal.
		if _, err := s.tokens.ParseToken(identity.Token); err != nil {
			middleware.ClearSessionCookie(c, s.cookie)
			return c.Next()
		}

		if renewed, err := s.codec.Encode(identity); err == nil {
			middleware.SetSessionCookie(c, s.cookie, renewed, s.codec.Idle())
		}

		c.Locals(sessionContextKey, identity)
		return c.Next()
	}
}

// SignIn stores the identity assertion in the session cookie.
func (s Sessions) SignIn(c *fiber.Ctx, identity auth.Identity) error {
	value, err := s.codec.Encode(identity)
	if err != nil {
		return err
	}

	middleware.SetSessionCookie(c, s.cookie, value, s.codec.Idle())
	return nil
}

// SignOut drops the session cookie.
func (s Sessions) SignOut(c *fiber.Ctx) {
	middleware.ClearSessionCookie(c, s.cookie)
}

// CurrentIdentity extracts the visitor's identity loaded by Sessions.Load.
func CurrentIdentity(c *fiber.Ctx) (auth.Identity, bool) {
	value := c.Locals(sessionContextKey)
	if value == nil {
		return auth.Identity{}, false
	}

	identity, ok := value.(auth.Identity)
	return identity, ok
}

// bearerToken returns the visitor's token for API calls, or "" when the
// visitor is anonymous. Calls made without a token proceed unauthenticated
// and surface the API's own rejection.
func bearerToken(c *fiber.Ctx) string {
	identity, _ := CurrentIdentity(c)
	return identity.Token
}

// RequireLogin redirects anonymous visitors to the login form.
func RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := CurrentIdentity(c); !ok {
			return c.Redirect("/account/login?reason=unauthorized")
		}
		return c.Next()
	}
}

// RequireAdmin sends signed-in non-admin visitors to the denied page.
// Must run after RequireLogin.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return c.Redirect("/account/login?reason=unauthorized")
		}
		if identity.Role != models.RoleAdmin {
			return c.Redirect("/account/denied")
		}
		return c.Next()
	}
}
