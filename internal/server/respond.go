package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const (
	DetailNotFound       = "Not Found"
	DetailInternalServer = "Internal server error"
)

type DetailResponse struct {
	Detail string `json:"detail"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON marshals v before touching the writer, so an encoding failure can
// still be reported as a 500.
func WriteJSON(writer http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("Failed to encode response", "err", err)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(DetailResponse{Detail: DetailInternalServer})
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if _, err = writer.Write(body); err != nil {
		slog.Error("Failed to respond", "status", status, "err", err)
	}
}

func WriteDetail(writer http.ResponseWriter, status int, detail string) {
	WriteJSON(writer, status, DetailResponse{Detail: detail})
}

type NotFoundHandler struct{}

func (NotFoundHandler) ServeHTTP(writer http.ResponseWriter, _ *http.Request) {
	WriteDetail(writer, http.StatusNotFound, DetailNotFound)
}
