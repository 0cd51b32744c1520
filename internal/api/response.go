package api

import (
	"encoding/json"
	"net/http"
)

// Response is the JSON envelope shared by every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding a Response cannot fail; the writer may, and there is
	// nothing left to tell the client at that point.
	_ = json.NewEncoder(w).Encode(resp)
}

func WriteSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	WriteJSON(w, status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Response{
		Success: false,
		Message: message,
	})
}

func WriteValidationErrors(w http.ResponseWriter, errs interface{}) {
	WriteJSON(w, http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation errors",
		Errors:  errs,
	})
}
