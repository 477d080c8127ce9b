package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/jellydator/validation"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string, details map[string][]string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// validationDetails flattens jellydator errors into field -> messages.
// Nested errors (such as per-item batch errors) use dotted keys.
func validationDetails(err error) map[string][]string {
	details := make(map[string][]string)
	var errs validation.Errors
	if !errors.As(err, &errs) {
		details[""] = []string{err.Error()}
		return details
	}
	flatten(details, "", errs)
	return details
}

func flatten(out map[string][]string, prefix string, errs validation.Errors) {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}
		var nested validation.Errors
		if errors.As(errs[k], &nested) {
			flatten(out, name, nested)
			continue
		}
		out[name] = append(out[name], errs[k].Error())
	}
}
