package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONSetsHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	Text(rec, http.StatusCreated, "done")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "{\"message\":\"done\"}\n", rec.Body.String())
	assert.Equal(t, "19", rec.Header().Get("Content-Length"))
}

func TestJSONEmptyListIsArray(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, PlayersFromModel(nil))

	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestJSONUnencodableIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]any{"ch": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
