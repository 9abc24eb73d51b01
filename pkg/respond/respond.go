package respond

import (
	"encoding/json"
	"net/http"
)

// Envelope is the JSON shape shared by every API response. Collections and
// single resources sit under data; validation failures attach the
// field→message map under errors.
type Envelope struct {
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, r *http.Request, code int, data interface{}) {
	write(w, code, Envelope{Data: data})
}

func Message(w http.ResponseWriter, r *http.Request, code int, message string, data interface{}) {
	write(w, code, Envelope{Message: message, Data: data})
}

func Error(w http.ResponseWriter, r *http.Request, code int, message string) {
	write(w, code, Envelope{Message: message})
}

func ValidationFailed(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	write(w, http.StatusUnprocessableEntity, Envelope{Message: "Validation failed", Errors: errors})
}

func write(w http.ResponseWriter, code int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
