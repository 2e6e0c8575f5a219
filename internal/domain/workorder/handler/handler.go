// Package handler exposes batch processing over HTTP.
package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/FACorreiaa/greenpark-export/internal/domain/export"
	"github.com/FACorreiaa/greenpark-export/internal/domain/workorder/service"
)

// Handler serves the work-order processing endpoints.
type Handler struct {
	svc      *service.Service
	logger   *slog.Logger
	maxBytes int64
}

// New creates a Handler. maxBytes caps the multipart request body.
func New(svc *service.Service, logger *slog.Logger, maxBytes int64) *Handler {
	return &Handler{svc: svc, logger: logger, maxBytes: maxBytes}
}

// Routes mounts the handler's endpoints on a chi router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/work-orders/process", h.ProcessBatch)
}

type documentSummary struct {
	File  string `json:"archivo"`
	Error string `json:"error,omitempty"`
	*service.Summary
}

type processResponse struct {
	Success   bool              `json:"success"`
	BatchID   string            `json:"batchId"`
	Files     map[string]string `json:"files"`
	Summaries []documentSummary `json:"summaries"`
	TotalRows int               `json:"totalRows"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ProcessBatch accepts multipart uploads under the "pdfs" field and returns
// the two export artifacts base64-encoded alongside per-document summaries.
// Plain-text dumps (.txt) are accepted next to PDFs for pre-extracted input.
// ?format=csv switches the artifacts from workbooks to CSV.
func (h *Handler) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.logger.Warn("cleaning multipart temp files", "error", err)
		}
	}()

	files := r.MultipartForm.File["pdfs"]
	if len(files) == 0 {
		h.writeError(w, http.StatusBadRequest, "at least one file is required under 'pdfs'")
		return
	}

	var docs []service.Document
	for _, fh := range files {
		doc, ok := h.readUpload(fh.Filename, func() (io.ReadCloser, error) { return fh.Open() })
		if !ok {
			continue
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		h.writeError(w, http.StatusBadRequest, "no valid PDF or text files found")
		return
	}

	batch, err := h.svc.ProcessBatch(r.Context(), docs)
	if err != nil {
		h.logger.Error("batch processing failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to process batch")
		return
	}

	var gastos, reintegros []byte
	if r.URL.Query().Get("format") == "csv" {
		gastos, err = export.ExpenseCSV(batch.Expenses)
		if err == nil {
			reintegros, err = export.ReimbursementCSV(batch.Reimbursements)
		}
	} else {
		gastos, err = export.ExpenseWorkbook(batch.Expenses)
		if err == nil {
			reintegros, err = export.ReimbursementWorkbook(batch.Reimbursements)
		}
	}
	if err != nil {
		h.logger.Error("export failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to build export files")
		return
	}

	summaries := make([]documentSummary, 0, len(batch.Documents))
	for _, res := range batch.Documents {
		s := documentSummary{File: res.Name, Summary: res.Summary}
		if res.Err != nil {
			s.Error = res.Err.Error()
		}
		summaries = append(summaries, s)
	}

	h.writeJSON(w, http.StatusOK, processResponse{
		Success: batch.Failed == 0,
		BatchID: batch.ID.String(),
		Files: map[string]string{
			"gastos":     base64.StdEncoding.EncodeToString(gastos),
			"reintegros": base64.StdEncoding.EncodeToString(reintegros),
		},
		Summaries: summaries,
		TotalRows: len(batch.Expenses),
	})
}

// readUpload opens one multipart file and turns it into a Document. Files
// with unknown extensions are skipped, not failed.
func (h *Handler) readUpload(name string, open func() (io.ReadCloser, error)) (service.Document, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".pdf" && ext != ".txt" {
		h.logger.Warn("skipping upload with unsupported extension", "file", name)
		return service.Document{}, false
	}

	f, err := open()
	if err != nil {
		h.logger.Warn("skipping unreadable upload", "file", name, "error", err)
		return service.Document{}, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.logger.Warn("skipping unreadable upload", "file", name, "error", err)
		return service.Document{}, false
	}

	doc := service.Document{Name: name}
	if ext == ".txt" {
		doc.Text = string(data)
	} else {
		doc.Data = data
	}
	return doc, true
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		h.logger.Error("writing response", "error", err)
	}
}
