package auth

import (
	"encoding/json"
	"errors"
	"net/http"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type RegisterRequest struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	ConfirmedPassword string `json:"confirmed_password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondDetail(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	if err := h.service.Register(req.Username, req.Email, req.Password, req.ConfirmedPassword); err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			respondDetail(w, http.StatusBadRequest, "Passwords do not match")
			return
		}
		respondDetail(w, http.StatusBadRequest, "Registration failed")
		return
	}

	respondDetail(w, http.StatusCreated, "User created successfully!")
}

// Login issues the token pair and stores both as HttpOnly cookies. The
// response body carries only basic user info, never the tokens.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, access, refresh, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		respondDetail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	setTokenCookie(w, "access_token", access)
	setTokenCookie(w, "refresh_token", refresh)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"detail": "Login successfully!",
		"user":   user.ToInfo(),
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		h.service.Logout(r.Context(), cookie.Value)
	}

	deleteTokenCookie(w, "access_token")
	deleteTokenCookie(w, "refresh_token")

	respondDetail(w, http.StatusOK,
		"Log-Out successfully! All tokens deleted. Refresh token is now invalid.")
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		respondDetail(w, http.StatusUnauthorized, "Refresh token not provided.")
		return
	}

	access, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		respondDetail(w, http.StatusUnauthorized, "Invalid refresh token.")
		return
	}

	setTokenCookie(w, "access_token", access)

	respondJSON(w, http.StatusOK, map[string]string{
		"detail": "Token refreshed",
		"access": access,
	})
}

func setTokenCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func deleteTokenCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}
