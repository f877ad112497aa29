package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopfront/internal/session"
)

// Mock auth service for handler tests
type mockAuthService struct {
	loginFunc   func(ctx context.Context, req LoginRequest) (*Profile, error)
	signupFunc  func(ctx context.Context, req SignupRequest) (*Profile, error)
	profileFunc func(ctx context.Context, id uuid.UUID) (*Profile, error)
}

func (m *mockAuthService) Login(ctx context.Context, req LoginRequest) (*Profile, error) {
	return m.loginFunc(ctx, req)
}

func (m *mockAuthService) Signup(ctx context.Context, req SignupRequest) (*Profile, error) {
	return m.signupFunc(ctx, req)
}

func (m *mockAuthService) ProfileByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return m.profileFunc(ctx, id)
}

// Mock session manager for handler tests
type mockSessionManager struct {
	issueFunc func(ctx context.Context, userID uuid.UUID) (*session.Session, error)
	deleted   []string
}

func (m *mockSessionManager) Issue(ctx context.Context, userID uuid.UUID) (*session.Session, error) {
	if m.issueFunc != nil {
		return m.issueFunc(ctx, userID)
	}
	now := time.Now()
	return &session.Session{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(3 * time.Hour),
	}, nil
}

func (m *mockSessionManager) Get(ctx context.Context, token string) (*session.Session, error) {
	return nil, session.ErrSessionNotFound
}

func (m *mockSessionManager) Delete(ctx context.Context, token string) error {
	m.deleted = append(m.deleted, token)
	return nil
}

func (m *mockSessionManager) CookieName() string { return "shopfront_session" }
func (m *mockSessionManager) MaxAgeSeconds() int { return 10800 }
func (m *mockSessionManager) CookieSecure() bool { return false }

func newTestRouter(svc Service, mgr session.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewHandler(svc, mgr, testLogger())

	r := gin.New()
	r.POST("/api/login", h.Login)
	r.POST("/api/signup", h.Signup)
	r.POST("/api/logout", h.Logout)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()

	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp
}

func TestLoginHandler_MalformedBody(t *testing.T) {
	svc := &mockAuthService{}
	r := newTestRouter(svc, &mockSessionManager{})

	w := postJSON(t, r, "/api/login", `{"email":"not-an-email","password":""}`)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Success {
		t.Error("Expected success=false for malformed body")
	}
	if resp.Message != msgMalformedRequest {
		t.Errorf("Expected malformed-request message, got %q", resp.Message)
	}
}

func TestLoginHandler_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	notFound := &mockAuthService{
		loginFunc: func(ctx context.Context, req LoginRequest) (*Profile, error) {
			return nil, ErrUserNotFound
		},
	}
	wrongPassword := &mockAuthService{
		loginFunc: func(ctx context.Context, req LoginRequest) (*Profile, error) {
			return nil, ErrInvalidCredentials
		},
	}

	body := `{"email":"user01@example.com","password":"password1111"}`
	w1 := postJSON(t, newTestRouter(notFound, &mockSessionManager{}), "/api/login", body)
	w2 := postJSON(t, newTestRouter(wrongPassword, &mockSessionManager{}), "/api/login", body)

	if w1.Code != http.StatusOK || w2.Code != http.StatusOK {
		t.Errorf("Expected both statuses 200, got %d and %d", w1.Code, w2.Code)
	}
	if w1.Body.String() != w2.Body.String() {
		t.Errorf("Expected byte-identical responses, got %q and %q", w1.Body.String(), w2.Body.String())
	}
}

func TestLoginHandler_LockedAccountMessageIsDistinct(t *testing.T) {
	svc := &mockAuthService{
		loginFunc: func(ctx context.Context, req LoginRequest) (*Profile, error) {
			return nil, ErrAccountLocked
		},
	}
	r := newTestRouter(svc, &mockSessionManager{})

	w := postJSON(t, r, "/api/login", `{"email":"user01@example.com","password":"password1111"}`)

	resp := decodeResponse(t, w)
	if resp.Success {
		t.Error("Expected success=false for locked account")
	}
	if resp.Message != msgAccountLocked {
		t.Errorf("Expected locked message, got %q", resp.Message)
	}
	if resp.Message == msgInvalidCredentials {
		t.Error("Locked message must differ from the invalid-credentials message")
	}
}

func TestLoginHandler_SuccessSetsSessionCookie(t *testing.T) {
	userID := uuid.New()
	svc := &mockAuthService{
		loginFunc: func(ctx context.Context, req LoginRequest) (*Profile, error) {
			return &Profile{
				ID:    userID,
				Email: "user01@example.com",
				Name:  "Carol Customer",
				Role:  RoleUser,
			}, nil
		},
	}
	r := newTestRouter(svc, &mockSessionManager{})

	w := postJSON(t, r, "/api/login", `{"email":"user01@example.com","password":"password1111"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	resp := decodeResponse(t, w)
	if !resp.Success {
		t.Fatalf("Expected success=true, got message %q", resp.Message)
	}
	if resp.Payload == nil || resp.Payload.ID != userID {
		t.Errorf("Expected sanitized profile in payload, got %+v", resp.Payload)
	}

	setCookie := w.Header().Get("Set-Cookie")
	if setCookie == "" {
		t.Fatal("Expected a Set-Cookie header")
	}
	for _, want := range []string{"shopfront_session=", "Path=/", "Max-Age=10800", "HttpOnly", "SameSite=Strict"} {
		if !strings.Contains(setCookie, want) {
			t.Errorf("Expected cookie to contain %q, got %q", want, setCookie)
		}
	}
}

func TestLoginHandler_PayloadNeverContainsHash(t *testing.T) {
	svc := &mockAuthService{
		loginFunc: func(ctx context.Context, req LoginRequest) (*Profile, error) {
			return &Profile{ID: uuid.New(), Email: "user01@example.com", Name: "Carol", Role: RoleUser}, nil
		},
	}
	r := newTestRouter(svc, &mockSessionManager{})

	w := postJSON(t, r, "/api/login", `{"email":"user01@example.com","password":"password1111"}`)

	if strings.Contains(w.Body.String(), "password") || strings.Contains(w.Body.String(), "hash") {
		t.Errorf("Response body leaks credential material: %s", w.Body.String())
	}
}

func TestLoginHandler_InternalFailureIsGeneric(t *testing.T) {
	svc := &mockAuthService{
		loginFunc: func(ctx context.Context, req LoginRequest) (*Profile, error) {
			return nil, errors.New("pq: connection refused to db host 10.0.0.7")
		},
	}
	r := newTestRouter(svc, &mockSessionManager{})

	w := postJSON(t, r, "/api/login", `{"email":"user01@example.com","password":"password1111"}`)

	resp := decodeResponse(t, w)
	if resp.Success {
		t.Error("Expected success=false for internal failure")
	}
	if resp.Message != msgLoginFailed {
		t.Errorf("Expected generic failure message, got %q", resp.Message)
	}
	if strings.Contains(w.Body.String(), "10.0.0.7") {
		t.Error("Internal detail must not reach the client")
	}
}

func TestLoginHandler_SessionIssueFailureIsGeneric(t *testing.T) {
	svc := &mockAuthService{
		loginFunc: func(ctx context.Context, req LoginRequest) (*Profile, error) {
			return &Profile{ID: uuid.New(), Email: "user01@example.com", Role: RoleUser}, nil
		},
	}
	mgr := &mockSessionManager{
		issueFunc: func(ctx context.Context, userID uuid.UUID) (*session.Session, error) {
			return nil, errors.New("insert failed")
		},
	}
	r := newTestRouter(svc, mgr)

	w := postJSON(t, r, "/api/login", `{"email":"user01@example.com","password":"password1111"}`)

	resp := decodeResponse(t, w)
	if resp.Success {
		t.Error("Expected success=false when session issuance fails")
	}
	if resp.Message != msgLoginFailed {
		t.Errorf("Expected generic failure message, got %q", resp.Message)
	}
}

func TestLogoutHandler_DeletesSessionAndClearsCookie(t *testing.T) {
	mgr := &mockSessionManager{}
	r := newTestRouter(&mockAuthService{}, mgr)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: "shopfront_session", Value: "some-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if len(mgr.deleted) != 1 || mgr.deleted[0] != "some-token" {
		t.Errorf("Expected session deletion for the cookie token, got %v", mgr.deleted)
	}

	setCookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(setCookie, "shopfront_session=") || !strings.Contains(setCookie, "Max-Age=0") {
		t.Errorf("Expected cookie to be cleared, got %q", setCookie)
	}
}

func TestSignupHandler_DuplicateEmail(t *testing.T) {
	svc := &mockAuthService{
		signupFunc: func(ctx context.Context, req SignupRequest) (*Profile, error) {
			return nil, ErrEmailExists
		},
	}
	r := newTestRouter(svc, &mockSessionManager{})

	w := postJSON(t, r, "/api/signup", `{"name":"Carol","email":"user01@example.com","password":"password1111"}`)

	resp := decodeResponse(t, w)
	if resp.Success {
		t.Error("Expected success=false for duplicate email")
	}
	if resp.Message != msgEmailTaken {
		t.Errorf("Expected duplicate-email message, got %q", resp.Message)
	}
}
