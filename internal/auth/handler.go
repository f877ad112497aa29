package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopfront/internal/session"
)

// Client-visible messages. The invalid-credentials message is shared by
// the unknown-email and wrong-password paths on purpose: responses for
// the two must be byte-identical so accounts cannot be enumerated.
const (
	msgMalformedRequest   = "The request body is malformed."
	msgInvalidCredentials = "Incorrect email or password."
	msgAccountLocked      = "This account is locked. Please try again later."
	msgLoginFailed        = "Login processing failed."
	msgEmailTaken         = "This email address is already in use."
	msgSignupFailed       = "Signup processing failed."
)

// Handler handles authentication HTTP requests
type Handler struct {
	service    Service
	sessionMgr session.Manager
	logger     *slog.Logger
}

// NewHandler creates a new authentication handler
func NewHandler(service Service, sessionMgr session.Manager, logger *slog.Logger) *Handler {
	return &Handler{
		service:    service,
		sessionMgr: sessionMgr,
		logger:     logger,
	}
}

// Login handles POST /api/login.
//
// Every authentication outcome returns HTTP 200 with the envelope's
// success flag carrying the result; only the response body distinguishes
// the cases. The account-locked message is distinct from the generic
// invalid-credentials one, a deliberate and known leak of lock state.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, Response{Success: false, Message: msgMalformedRequest})
		return
	}

	profile, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrInvalidCredentials):
			c.JSON(http.StatusOK, Response{Success: false, Message: msgInvalidCredentials})
		case errors.Is(err, ErrAccountLocked):
			c.JSON(http.StatusOK, Response{Success: false, Message: msgAccountLocked})
		default:
			h.logger.Error("login processing failed", "error", err)
			c.JSON(http.StatusOK, Response{Success: false, Message: msgLoginFailed})
		}
		return
	}

	sess, err := h.sessionMgr.Issue(c.Request.Context(), profile.ID)
	if err != nil {
		h.logger.Error("session issuance failed", "user_id", profile.ID, "error", err)
		c.JSON(http.StatusOK, Response{Success: false, Message: msgLoginFailed})
		return
	}

	h.setSessionCookie(c, sess.ID.String(), h.sessionMgr.MaxAgeSeconds())

	c.JSON(http.StatusOK, Response{Success: true, Payload: profile})
}

// Signup handles POST /api/signup
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, Response{Success: false, Message: msgMalformedRequest})
		return
	}

	profile, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			c.JSON(http.StatusOK, Response{Success: false, Message: msgEmailTaken})
			return
		}
		h.logger.Error("signup processing failed", "error", err)
		c.JSON(http.StatusOK, Response{Success: false, Message: msgSignupFailed})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Payload: profile})
}

// Logout handles POST /api/logout
func (h *Handler) Logout(c *gin.Context) {
	token, err := c.Cookie(h.sessionMgr.CookieName())
	if err != nil {
		c.JSON(http.StatusOK, Response{Success: true, Message: "Already logged out."})
		return
	}

	if err := h.sessionMgr.Delete(c.Request.Context(), token); err != nil {
		h.logger.Warn("failed to delete session on logout", "error", err)
	}

	h.setSessionCookie(c, "", -1)

	c.JSON(http.StatusOK, Response{Success: true})
}

// Me handles GET /api/me (requires session middleware)
func (h *Handler) Me(c *gin.Context) {
	userID, ok := session.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "Authentication required."})
		return
	}

	profile, err := h.service.ProfileByID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("profile lookup failed", "user_id", userID, "error", err)
		c.JSON(http.StatusOK, Response{Success: false, Message: "Profile lookup failed."})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Payload: profile})
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		h.sessionMgr.CookieName(),
		value,
		maxAge,
		"/",
		"",
		h.sessionMgr.CookieSecure(),
		true, // httpOnly
	)
}
