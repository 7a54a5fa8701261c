package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/blogstack/internal/model"
	"github.com/sakif/blogstack/internal/service"
)

type WaitlistHandler struct {
	waitlist *service.WaitlistService
	logger   *slog.Logger
}

func NewWaitlistHandler(waitlist *service.WaitlistService, logger *slog.Logger) *WaitlistHandler {
	return &WaitlistHandler{waitlist: waitlist, logger: logger}
}

// HandleJoin adds an email to the pre-launch list.
//
// HTTP: POST /api/waitlist
// REQUEST BODY: {"fullName":"Ada Lovelace","email":"ada@example.com","blogType":"tech"}
func (h *WaitlistHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	var draft model.NewWaitlistEntry
	if err := decodeJSON(w, r, &draft); err != nil {
		writeError(w, err)
		return
	}
	entry, err := h.waitlist.Join(r.Context(), draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}
