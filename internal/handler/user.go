package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/blogstack/internal/apperror"
	"github.com/sakif/blogstack/internal/auth"
	"github.com/sakif/blogstack/internal/model"
	"github.com/sakif/blogstack/internal/service"
)

// UserHandler covers registration, profile lookup and the session cookie.
//
// HANDLER RESPONSIBILITIES:
//   - HandleRegister → POST /api/users
//   - HandleGetByID  → GET  /api/users/{id}
//   - HandleGetByUsername → GET /api/users/by-username/{username}
//   - HandleLogin    → POST /api/auth/login   (sets the "token" cookie)
//   - HandleLogout   → POST /api/auth/logout  (clears it)
//   - HandleMe       → GET  /api/me           (behind auth.RequireAuth)
//
// model.User tags its password `json:"-"`, so handing a user straight to
// writeJSON never leaks the hash.
type UserHandler struct {
	users  *service.UserService
	tokens *auth.TokenService // nil when JWT_SECRET is unset
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, tokens *auth.TokenService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, tokens: tokens, logger: logger}
}

// HandleRegister creates an author account.
//
// HTTP: POST /api/users
// REQUEST BODY: {"username":"sarah","password":"...","email":"sarah@example.com","fullName":"Sarah"}
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var draft model.NewUser
	if err := decodeJSON(w, r, &draft); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.Register(r.Context(), draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// HandleGetByID returns a public profile.
//
// HTTP: GET /api/users/{id}
func (h *UserHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCachedJSON(w, r, user)
}

// HandleGetByUsername returns a public profile by its login name, which is
// what author pages link with.
//
// HTTP: GET /api/users/by-username/{username}
func (h *UserHandler) HandleGetByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByUsername(r.Context(), urlParam(r, "username"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCachedJSON(w, r, user)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the token in the body too, for clients that cannot
// use cookies.
type LoginResponse struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// HandleLogin verifies credentials and starts a session.
//
// HTTP: POST /api/auth/login
// REQUEST BODY: {"username":"sarah","password":"..."}
//
// The cookie is HttpOnly (scripts cannot read it) and SameSite=Lax (not
// sent on cross-site POSTs). Secure is set when the request arrived over TLS.
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, apperror.ValidationFailed("", "username and password are required"))
		return
	}

	result, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    result.Token,
		Path:     "/",
		MaxAge:   int(h.tokens.TTL() / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, LoginResponse{User: result.User, Token: result.Token})
}

// HandleLogout clears the session cookie. JWTs are stateless, so a copied
// token stays valid until it expires.
//
// HTTP: POST /api/auth/logout
func (h *UserHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the logged-in user.
//
// HTTP: GET /api/me
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		// A valid token for a user that no longer exists is still an
		// authentication failure from the client's point of view.
		if errors.Is(err, apperror.ErrNotFound) {
			writeError(w, apperror.Unauthorized("valid authentication required"))
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
