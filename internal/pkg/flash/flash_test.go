package flash

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setAndCarry queues a message on one request and returns a context for a
// follow-up request carrying the resulting cookie, the way a browser would.
func setAndCarry(t *testing.T, m *Manager, set func(*gin.Context)) *gin.Context {
	t.Helper()

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest("POST", "/", nil)
	set(ctx)

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no cookie set")
	}

	next, _ := gin.CreateTestContext(httptest.NewRecorder())
	next.Request = httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		next.Request.AddCookie(c)
	}
	return next
}

func TestFlashRoundTrip(t *testing.T) {
	m := NewManager("test-secret")

	tests := []struct {
		name     string
		set      func(*gin.Context)
		category string
		text     string
	}{
		{"success", func(c *gin.Context) { m.Success(c, "Exam added successfully!") }, CategorySuccess, "Exam added successfully!"},
		{"error", func(c *gin.Context) { m.Error(c, "No file selected") }, CategoryError, "No file selected"},
		{"text with separator", func(c *gin.Context) { m.Set(c, CategorySuccess, "a|b|c") }, CategorySuccess, "a|b|c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := setAndCarry(t, m, tt.set)
			msg := m.Take(ctx)
			if msg == nil {
				t.Fatal("Take returned nil")
			}
			if msg.Category != tt.category || msg.Text != tt.text {
				t.Errorf("Take = (%q, %q), want (%q, %q)", msg.Category, msg.Text, tt.category, tt.text)
			}
		})
	}
}

func TestTakeClearsCookie(t *testing.T) {
	m := NewManager("test-secret")

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest("POST", "/", nil)
	m.Success(ctx, "done")

	next, nextW := carryCookies(t, w)
	if m.Take(next) == nil {
		t.Fatal("expected a message")
	}

	// The response must expire the cookie so the message shows only once.
	cleared := false
	for _, c := range nextW.Result().Cookies() {
		if c.Name == "exam_buddy_flash" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("flash cookie was not cleared after Take")
	}
}

func carryCookies(t *testing.T, from *httptest.ResponseRecorder) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest("GET", "/", nil)
	for _, c := range from.Result().Cookies() {
		ctx.Request.AddCookie(c)
	}
	return ctx, w
}

func TestTakeRejectsTamperedCookie(t *testing.T) {
	m := NewManager("test-secret")

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest("POST", "/", nil)
	m.Error(ctx, "original")

	cookie := w.Result().Cookies()[0]

	t.Run("modified payload", func(t *testing.T) {
		next, _ := gin.CreateTestContext(httptest.NewRecorder())
		next.Request = httptest.NewRequest("GET", "/", nil)
		tampered := *cookie
		payload, sig, _ := strings.Cut(cookie.Value, ".")
		tampered.Value = payload + "x." + sig
		next.Request.AddCookie(&tampered)
		if m.Take(next) != nil {
			t.Error("tampered payload accepted")
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		other := NewManager("other-secret")
		next, _ := gin.CreateTestContext(httptest.NewRecorder())
		next.Request = httptest.NewRequest("GET", "/", nil)
		next.Request.AddCookie(cookie)
		if other.Take(next) != nil {
			t.Error("cookie signed with a different key accepted")
		}
	})

	t.Run("malformed value", func(t *testing.T) {
		next, _ := gin.CreateTestContext(httptest.NewRecorder())
		next.Request = httptest.NewRequest("GET", "/", nil)
		next.Request.AddCookie(&http.Cookie{Name: "exam_buddy_flash", Value: "garbage"})
		if m.Take(next) != nil {
			t.Error("malformed cookie accepted")
		}
	})
}

func TestTakeWithoutCookie(t *testing.T) {
	m := NewManager("test-secret")
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest("GET", "/", nil)
	if m.Take(ctx) != nil {
		t.Error("Take without a cookie should return nil")
	}
}
