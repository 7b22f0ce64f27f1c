package response

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// JSON marshals data and writes it with the given status. Data that cannot be
// marshalled yields a bare 500 so no partial body is sent.
func JSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	body = append(body, '\n')

	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Text wraps a confirmation message in a Message body
func Text(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Message{Message: message})
}
