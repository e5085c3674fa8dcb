package http

import (
	"net/http"
	"time"
)

// CheckHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning a plain-text body. Always 200 OK
//	@Description	while the process is serving; uptime and version ride in
//	@Description	response headers.
//	@Tags			Health
//	@Produce		plain
//	@Success		200	{string}	string	"Server is running"
//	@Router			/check [get].
func CheckHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Build-Version", version)
		w.Header().Set("X-Uptime", time.Since(startTime).String())
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Server is running"))
	}
}
