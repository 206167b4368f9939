package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/MikeSquared-Agency/Vouch/internal/auth"
	"github.com/MikeSquared-Agency/Vouch/internal/store"
)

type AuthHandler struct {
	store      store.Store
	issuer     *auth.Issuer
	bcryptCost int
	logger     *slog.Logger
}

func NewAuthHandler(s store.Store, issuer *auth.Issuer, bcryptCost int, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{store: s, issuer: issuer, bcryptCost: bcryptCost, logger: logger}
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// credentials reads the login pair from a JSON body, a form body or the query
// string. userField names the form/query key holding the email.
func credentials(r *http.Request, userField string) (string, string, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", "", err
		}
		email := req.Email
		if email == "" {
			email = req.Username
		}
		return strings.TrimSpace(email), req.Password, nil
	}
	return strings.TrimSpace(r.FormValue(userField)), r.FormValue("password"), nil
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	email, password, err := credentials(r, "email")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	var hash string
	if h.bcryptCost > 0 {
		hash, err = auth.HashPassword(password, h.bcryptCost)
	} else {
		hash, err = auth.HashPassword(password)
	}
	if err != nil {
		h.logger.Error("hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	u := &store.User{Email: email, PasswordHash: hash}
	if err := h.store.CreateUser(r.Context(), u); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		h.logger.Error("create user", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.writeToken(w, http.StatusCreated, u)
}

// Login handles POST /api/auth/login with OAuth2 password form fields.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email, password, err := credentials(r, "username")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.store.GetUserByEmail(r.Context(), email)
	if err != nil {
		h.logger.Error("get user", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if u == nil || !auth.CheckPassword(password, u.PasswordHash) {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	h.writeToken(w, http.StatusOK, u)
}

func (h *AuthHandler) writeToken(w http.ResponseWriter, status int, u *store.User) {
	token, err := h.issuer.Issue(u.ID)
	if err != nil {
		h.logger.Error("issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, status, TokenResponse{AccessToken: token, TokenType: "bearer"})
}
