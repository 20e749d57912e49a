// Package flash carries a one-shot user-facing message across the
// redirect-after-write pattern using an HMAC-signed cookie.
package flash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/gin-gonic/gin"
)

const cookieName = "exam_buddy_flash"

// Categories mirror the alert styles the templates know about.
const (
	CategorySuccess = "success"
	CategoryError   = "error"
)

// Message is a transient notification shown once on the next page render.
type Message struct {
	Category string
	Text     string
}

// Manager signs and verifies flash cookies with the application secret.
type Manager struct {
	secret []byte
}

// NewManager creates a flash manager keyed with the given secret.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Set queues a message for the next request from this client.
func (m *Manager) Set(c *gin.Context, category, text string) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(category + "|" + text))
	value := payload + "." + m.sign(payload)
	c.SetCookie(cookieName, value, 60, "/", "", false, true)
}

// Success queues a success message.
func (m *Manager) Success(c *gin.Context, text string) {
	m.Set(c, CategorySuccess, text)
}

// Error queues an error message.
func (m *Manager) Error(c *gin.Context, text string) {
	m.Set(c, CategoryError, text)
}

// Take returns the pending message, if any, and clears the cookie.
// Tampered or malformed cookies are discarded silently.
func (m *Manager) Take(c *gin.Context) *Message {
	value, err := c.Cookie(cookieName)
	if err != nil || value == "" {
		return nil
	}

	// Clear regardless of validity; flash messages are one-shot.
	c.SetCookie(cookieName, "", -1, "/", "", false, true)

	payload, sig, ok := strings.Cut(value, ".")
	if !ok || !hmac.Equal([]byte(m.sign(payload)), []byte(sig)) {
		return nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil
	}

	category, text, ok := strings.Cut(string(decoded), "|")
	if !ok {
		return nil
	}

	return &Message{Category: category, Text: text}
}

func (m *Manager) sign(payload string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
