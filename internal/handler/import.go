package handler

import (
	"errors"
	"net/http"

	"waterworks-backend/internal/server/authctx"
	"waterworks-backend/internal/service"
	"waterworks-backend/internal/spreadsheet"
	"github.com/go-chi/chi/v5"
)

// ImportHandler accepts an uploaded workbook and reconciles its rows into
// consumers and billing records.
type ImportHandler struct {
	Service service.ImportService
}

func (h ImportHandler) RegisterRoutes(r chi.Router) {
	r.Post("/import", h.importWorkbook)
}

func (h ImportHandler) importWorkbook(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	rows, err := spreadsheet.Parse(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Service.Import(r.Context(), rows, user.Actor())
	if err != nil {
		if errors.Is(err, service.ErrNoImportData) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"batchId":       result.BatchID,
		"importedCount": result.ImportedCount,
		"errorCount":    result.ErrorCount,
	})
}
