package handlers

import (
	"encoding/base64"
	"log"
	"net/http"
	"time"

	"github.com/peterw/leadreach/internal/entity"
	"github.com/peterw/leadreach/internal/infra/http/middleware"
	"github.com/peterw/leadreach/internal/usecase"
)

// 1x1 transparent GIF. The pixel goes out no matter what; a broken image
// would break email rendering.
var trackingPixel, _ = base64.StdEncoding.DecodeString("R0lGODlhAQABAIAAAAAAAP///ywAAAAAAQABAAACAUwAOw==")

type TrackHandler struct {
	Events entity.EventRepositoryInterface
}

func NewTrackHandler(events entity.EventRepositoryInterface) *TrackHandler {
	return &TrackHandler{Events: events}
}

func (h *TrackHandler) Handle(w http.ResponseWriter, r *http.Request) {
	check := usecase.ValidateEmail(r.URL.Query().Get("email"))
	if check.Valid {
		event := entity.NewEmailEvent(check.Email, entity.EventTypeOpened, entity.EventMetadata{
			IP:        getClientIP(r),
			UserAgent: r.Header.Get("User-Agent"),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		if err := h.Events.Insert(r.Context(), event); err != nil {
			log.Printf("failed to record open event for %s: %v", check.Email, err)
		} else {
			middleware.RecordEmailOpen()
		}
	}

	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	w.Write(trackingPixel)
}
