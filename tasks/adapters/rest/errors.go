package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"player-list/pkg/res"
	"player-list/tasks/core"
)

func WriteErr(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, core.ErrTaskInvalidArgs):
		res.Error(w, core.ErrTaskInvalidArgs.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrTaskNotFound):
		res.Error(w, core.ErrTaskNotFound.Error(), http.StatusNotFound)
	case errors.Is(err, core.ErrStoreUnavailable):
		log.Warn("store unavailable", "error", err)
		res.Error(w, core.ErrStoreUnavailable.Error(), http.StatusServiceUnavailable)
	default:
		log.Error("internal error", "error", err)
		res.Error(w, "internal error", http.StatusInternalServerError)
	}
}
