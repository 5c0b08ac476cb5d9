package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// SessionCodec encodes the identity assertion into an HMAC-signed cookie
// value with an idle deadline. Tampered or expired values decode as absent.
type SessionCodec struct {
	secret []byte
	idle   time.Duration
}

// NewSessionCodec builds a codec with the given signing secret and idle TTL.
func NewSessionCodec(secret string, idle time.Duration) SessionCodec {
	return SessionCodec{secret: []byte(secret), idle: idle}
}

// Idle returns the configured idle TTL, used for sliding renewal.
func (sc SessionCodec) Idle() time.Duration {
	return sc.idle
}

type sessionPayload struct {
	Identity Identity `json:"identity"`
	Deadline int64    `json:"deadline"`
}

// Encode serializes the identity with a fresh idle deadline and signs it.
func (sc SessionCodec) Encode(id Identity) (string, error) {
	payload := sessionPayload{
		Identity: id,
		Deadline: time.Now().Add(sc.idle).Unix(),
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	body := base64.RawURLEncoding.EncodeToString(raw)
	return body + "." + sc.sign(body), nil
}

// Decode verifies the signature and deadline and returns the identity.
func (sc SessionCodec) Decode(value string) (Identity, bool) {
	parts := strings.Split(value, ".")
	if len(parts) != 2 {
		return Identity{}, false
	}

	body, sig := parts[0], parts[1]
	if !hmac.Equal([]byte(sig), []byte(sc.sign(body))) {
		return Identity{}, false
	}

	raw, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return Identity{}, false
	}

	var payload sessionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Identity{}, false
	}

	if time.Now().Unix() >= payload.Deadline {
		return Identity{}, false
	}

	return payload.Identity, true
}

func (sc SessionCodec) sign(body string) string {
	mac := hmac.New(sha256.New, sc.secret)
	mac.Write([]byte(body))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
