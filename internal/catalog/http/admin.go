package http

import (
	"net/http"

	"github.com/openshelf/catalog/pkg/httpx"
)

// AdminHandler godoc
//
//	@Summary		Admin Panel
//	@Description	Admin-only probe endpoint. Requires a live session token
//	@Description	carrying the admin role.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	httpx.Envelope	"success, message"
//	@Failure		401	{object}	httpx.Envelope	"success, message"
//	@Failure		403	{object}	httpx.Envelope	"success, message"
//	@Router			/admin [get].
func AdminHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteMessage(w, http.StatusOK, "Welcome to admin panel")
	}
}
