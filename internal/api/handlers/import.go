package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/kumul-digital/capdash/backend/internal/ingest"
	"github.com/kumul-digital/capdash/backend/pkg/logger"
)

// uploadLimit caps spreadsheet and document uploads at 20 MB.
const uploadLimit = 20 << 20

// ImportHandler handles the three import endpoints. Every endpoint defaults
// to preview; the client passes commit=true to persist.
type ImportHandler struct {
	service *ingest.Service
	logger  *logger.Logger
}

func NewImportHandler(service *ingest.Service, log *logger.Logger) *ImportHandler {
	return &ImportHandler{
		service: service,
		logger:  log,
	}
}

// PasteRequest is the body of a paste import.
type PasteRequest struct {
	Dataset string `json:"dataset"` // officers (default) or establishment
	Text    string `json:"text"`
	Commit  bool   `json:"commit"`
}

// Paste imports tab-separated text pasted from a spreadsheet.
// POST /api/import/paste
func (h *ImportHandler) Paste(w http.ResponseWriter, r *http.Request) {
	var req PasteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "Field 'text' is required")
		return
	}

	result, err := h.service.ImportPaste(r.Context(), dataset(req.Dataset), req.Text, req.Commit)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Spreadsheet imports an uploaded .xlsx, .xls or .csv file as multipart
// form data under the "file" field.
// POST /api/import/spreadsheet?dataset=officers&commit=true
func (h *ImportHandler) Spreadsheet(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, uploadLimit)

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Upload a spreadsheet under the 'file' form field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, "File exceeds the upload limit")
			return
		}
		respondError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	result, err := h.service.ImportSpreadsheet(
		r.Context(),
		dataset(r.URL.Query().Get("dataset")),
		data,
		header.Filename,
		queryBool(r, "commit"),
	)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Document sends an uploaded document (PDF, scan, image) through the
// extraction service and imports the table it returns.
// POST /api/import/document?dataset=officers&commit=true
func (h *ImportHandler) Document(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, uploadLimit)

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Upload a document under the 'file' form field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, "File exceeds the upload limit")
			return
		}
		respondError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	result, err := h.service.ImportDocument(
		r.Context(),
		dataset(r.URL.Query().Get("dataset")),
		data,
		mimeType,
		queryBool(r, "commit"),
	)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func dataset(raw string) ingest.Dataset {
	if raw == "" {
		return ingest.DatasetOfficers
	}
	return ingest.Dataset(raw)
}

func queryBool(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && v
}
