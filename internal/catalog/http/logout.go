package http

import (
	"errors"
	"net/http"

	"github.com/openshelf/catalog/internal/catalog/service"
	"github.com/openshelf/catalog/pkg/httpx"
	"github.com/openshelf/catalog/pkg/slogx"
)

// LogoutHandler serves POST /logout.
type LogoutHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Logout
//	@Description	Revokes the presented bearer token. The signature is not
//	@Description	re-verified so that an expired token can still be revoked.
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	httpx.Envelope	"success, message"
//	@Failure		400	{object}	httpx.Envelope	"success, message"
//	@Failure		500	{object}	httpx.Envelope	"success, message"
//	@Router			/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token, _ := httpx.BearerToken(r)

	err := h.AuthService.Logout(r.Context(), token)
	switch {
	case err == nil:
		httpx.WriteMessage(w, http.StatusOK, "Logged out successfully")
	case errors.Is(err, service.ErrNoToken):
		httpx.WriteError(w, http.StatusBadRequest, "No token provided")
	case errors.Is(err, service.ErrMalformedToken):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid token")
	default:
		slogx.FromContext(r.Context()).Error("logout failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Logout failed")
	}
}
