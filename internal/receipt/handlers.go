package receipt

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
)

const (
	// maxBodySize matches the default limit of common JSON body parsers.
	maxBodySize = 100 << 10 // 100KB

	invalidReceiptMessage = "Receipt is invalid"
	notFoundMessage       = "No receipt found for that id"
)

// writeJSON writes v as a JSON response with the given status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// writeDescription writes an error response in the {"description": ...} shape
func writeDescription(w http.ResponseWriter, code int, description string) {
	writeJSON(w, code, map[string]string{
		"description": description,
	})
}

// isJSON reports whether the request declares a JSON body
func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// handleProcessReceipt validates, scores and stores a receipt
func (s *Server) handleProcessReceipt(w http.ResponseWriter, r *http.Request) {
	if !isJSON(r) {
		writeDescription(w, http.StatusBadRequest, invalidReceiptMessage)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		slog.Warn("Error reading request body", "error", err)
		writeDescription(w, http.StatusBadRequest, invalidReceiptMessage)
		return
	}

	id, err := s.service.ProcessReceipt(body)
	if err != nil {
		if errors.Is(err, ErrInvalidReceipt) {
			writeDescription(w, http.StatusBadRequest, invalidReceiptMessage)
			return
		}
		slog.Error("Error processing receipt", "error", err)
		writeDescription(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id": id,
	})
}

// handleGetPoints returns the points awarded to a receipt
func (s *Server) handleGetPoints(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	points, err := s.service.GetPoints(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeDescription(w, http.StatusNotFound, notFoundMessage)
			return
		}
		slog.Error("Error getting points", "id", id, "error", err)
		writeDescription(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"points": points,
	})
}
