package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newProtectedRouter(mgr Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(mgr), func(c *gin.Context) {
		id, ok := UserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id.String()})
	})
	return r
}

func TestAuthMiddleware_ValidSession(t *testing.T) {
	mgr := NewManager(newFakeRecords(), nil, testConfig())
	userID := uuid.New()

	sess, err := mgr.Issue(context.Background(), userID)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	router := newProtectedRouter(mgr)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: mgr.CookieName(), Value: sess.ID.String()})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, userID.String()) {
		t.Errorf("Expected handler to see user %s, got body %s", userID, body)
	}
}

func TestAuthMiddleware_MissingCookie(t *testing.T) {
	mgr := NewManager(newFakeRecords(), nil, testConfig())
	router := newProtectedRouter(mgr)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", w.Code)
	}
}

func TestAuthMiddleware_UnknownToken(t *testing.T) {
	mgr := NewManager(newFakeRecords(), nil, testConfig())
	router := newProtectedRouter(mgr)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: mgr.CookieName(), Value: uuid.New().String()})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", w.Code)
	}
}

func TestAuthMiddleware_ExpiredSession(t *testing.T) {
	records := newFakeRecords()
	mgr := NewManager(records, nil, testConfig())

	id := uuid.New()
	records.rows[id.String()] = &Session{
		ID:        id,
		UserID:    uuid.New(),
		CreatedAt: time.Now().Add(-4 * time.Hour),
		ExpiresAt: time.Now().Add(-1 * time.Minute),
	}

	router := newProtectedRouter(mgr)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: mgr.CookieName(), Value: id.String()})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401 for expired session, got %d", w.Code)
	}
}

func TestAuthMiddleware_LogoutInvalidatesCookie(t *testing.T) {
	mgr := NewManager(newFakeRecords(), nil, testConfig())

	sess, err := mgr.Issue(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if err := mgr.Delete(context.Background(), sess.ID.String()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	router := newProtectedRouter(mgr)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: mgr.CookieName(), Value: sess.ID.String()})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401 after logout, got %d", w.Code)
	}
}
