package handler

import "net/http"

// HandleHealth is the liveness probe. It does not touch storage: a slow
// database should fail requests, not get the process restarted.
//
// HTTP: GET /healthz
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
