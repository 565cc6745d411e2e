// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// DataResponse is the {data: ...} envelope used by every successful
// response.
type DataResponse struct {
	Data any `json:"data"`
}

// ListResponse is the envelope for paginated listings.
type ListResponse struct {
	Data any `json:"data"`
	Meta any `json:"meta"`
}

// ErrorResponse is the envelope for failures.
type ErrorResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// WriteData writes a {data: v} envelope with status 200.
func WriteData(w http.ResponseWriter, v any) {
	WriteJSON(w, http.StatusOK, DataResponse{Data: v})
}

// WriteError writes the error envelope for err using its kind's status.
// Storage failures are logged; client errors are not.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusCode(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}
	WriteJSON(w, status, ErrorResponse{Message: Message(err)})
}
