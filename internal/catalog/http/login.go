package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openshelf/catalog/internal/catalog/service"
	"github.com/openshelf/catalog/pkg/httpx"
	"github.com/openshelf/catalog/pkg/slogx"
)

// LoginHandler serves POST /login.
type LoginHandler struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the one response that departs from the envelope: the token
// rides at the top level, which is what both front ends read.
type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// ServeHTTP godoc
//
//	@Summary		Login
//	@Description	Verifies username and password and issues a signed session token.
//	@Description	The token embeds the user's role and expires after one hour.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		loginRequest	true	"Username and password"
//	@Success		200			{object}	loginResponse	"success, token"
//	@Failure		400			{object}	httpx.Envelope	"success, message"
//	@Failure		401			{object}	httpx.Envelope	"success, message"
//	@Failure		500			{object}	httpx.Envelope	"success, message"
//	@Header			200			{string}	Cache-Control	"no-store"
//	@Router			/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		slogx.FromContext(r.Context()).Error("login failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, loginResponse{Success: true, Token: token})
}
