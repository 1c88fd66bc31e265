package handlers

import (
	"net/http"
	"strconv"

	"adminconsole/internal/services/audit"
	"adminconsole/internal/services/screen"
)

// Catalog lists the screens that can be mounted.
func Catalog(catalog *screen.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"screens": catalog.List()})
	}
}

// ListAudit handles audit listing requests; 503 when the audit log is disabled.
func ListAudit(auditService *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if auditService == nil {
			http.Error(w, "audit log disabled", http.StatusServiceUnavailable)
			return
		}

		response, err := auditService.List(r.Context(), parseListRequest(r))
		if err != nil {
			if serviceErr, ok := err.(*audit.ServiceError); ok {
				http.Error(w, "failed to list audit entries: "+serviceErr.Error(), http.StatusInternalServerError)
			} else {
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, http.StatusOK, response)
	}
}

// parseListRequest parses HTTP query parameters into ListRequest
func parseListRequest(r *http.Request) audit.ListRequest {
	req := audit.ListRequest{Screen: r.URL.Query().Get("screen")}

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.Limit = n
		}
	}

	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.Offset = n
		}
	}

	return req
}
