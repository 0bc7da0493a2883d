package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"logsummary/internal/report"
)

// handleCounts отдаёт плоский словарь счётчиков. Ответ всегда 200:
// при недоступном логе словарь пустой.
func (s *Server) handleCounts(kind report.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := s.build(r.Context(), kind)
		if err != nil {
			s.logger.Error("Не удалось построить отчёт", zap.String("kind", string(kind)), zap.Error(err))
			writeJSON(w, http.StatusOK, map[string]string{})
			return
		}
		writeJSON(w, http.StatusOK, res.Counts)
	}
}

// handleReport отдаёт отчёт вместе с метаданными прогона
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	kind, err := report.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	res, err := s.build(r.Context(), kind)
	switch {
	case errors.Is(err, report.ErrUnknownKind):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case err != nil:
		s.logger.Error("Не удалось построить отчёт", zap.String("kind", string(kind)), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
