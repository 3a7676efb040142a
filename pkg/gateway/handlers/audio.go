package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/vmkdlabs/leadgate/pkg/core"
	"github.com/vmkdlabs/leadgate/pkg/gateway/audiostore"
	"github.com/vmkdlabs/leadgate/pkg/gateway/mw"
)

// AudioHandler serves synthesized artifacts. Artifacts are short-lived, so
// responses are never cacheable.
type AudioHandler struct {
	Store  *audiostore.Store
	Logger *slog.Logger
}

func (h AudioHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reqID, _ := mw.RequestIDFrom(r.Context())

	name := strings.TrimPrefix(r.URL.Path, "/api/audio/")
	path, err := h.Store.Path(name)
	if err != nil {
		// Reference validation happens before any filesystem access.
		writeErr(w, reqID, core.NewInvalidRequestErrorWithParam("invalid audio reference", "name"))
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			h.Logger.Warn("artifact stat failed", "request_id", reqID, "error", err)
		}
		writeErr(w, reqID, core.NewNotFoundError("audio not found or expired"))
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	http.ServeFile(w, r, path)
}
