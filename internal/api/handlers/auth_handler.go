package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/nvalverde/tourvia-be/internal/auth"
	"github.com/nvalverde/tourvia-be/internal/metrics"
	"github.com/nvalverde/tourvia-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration, login, logout and session resolution.
type AuthHandler struct {
	users    services.UserServiceProvider
	sessions services.SessionServiceProvider
	secure   bool // Secure flag on the session cookie
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, sessions services.SessionServiceProvider, secure bool) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, secure: secure}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles new user registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validatePayload(payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.users.Register(r.Context(), payload.Name, payload.Email, payload.Phone, payload.Password)
	if err != nil {
		status, msg := statusForError(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Msg("Failed to register user")
		}
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

// Login authenticates the user and issues an opaque session token,
// transported to the client as an HTTP-only cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validatePayload(payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.users.Authenticate(r.Context(), payload.Email, payload.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		status, msg := statusForError(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Msg("Authentication lookup failed")
		}
		http.Error(w, msg, status)
		return
	}

	session, err := h.sessions.Issue(r.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue session")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsIssuedTotal.Inc()

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    session.Token,
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// Logout revokes the current session and clears the cookie. Always
// succeeds: revoking an absent or already-revoked token is a no-op.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := auth.TokenFromRequest(r)
	if token != "" {
		if err := h.sessions.Revoke(r.Context(), token); err != nil {
			log.Error().Err(err).Msg("Failed to revoke session")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the user owning the supplied session token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	token := auth.TokenFromRequest(r)
	if token == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.sessions.Resolve(r.Context(), token)
	if err != nil {
		status, msg := statusForError(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Msg("Session resolution failed")
		}
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// UpdateProfilePayload defines the structure for profile updates.
type UpdateProfilePayload struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
}

// UpdateProfile updates the authenticated user's display name and phone.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload UpdateProfilePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validatePayload(payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), current.ID, payload.Name, payload.Phone)
	if err != nil {
		log.Error().Err(err).Str("user_id", current.ID).Msg("Failed to update profile")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// ChangePasswordPayload defines the structure for password changes.
type ChangePasswordPayload struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// ChangePassword changes the authenticated user's password after
// verifying the current one.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload ChangePasswordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validatePayload(payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.users.UpdatePassword(r.Context(), current.ID, payload.CurrentPassword, payload.NewPassword); err != nil {
		status, msg := statusForError(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Str("user_id", current.ID).Msg("Failed to change password")
		}
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Password updated successfully"})
}
