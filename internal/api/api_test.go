package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tournament/internal/api"
	"github.com/mcoot/tournament/internal/api/apierr"
	"github.com/mcoot/tournament/internal/api/response"
	"github.com/mcoot/tournament/internal/factory"
	"github.com/mcoot/tournament/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp(false)
	router := api.NewRouter(api.RouterConfig{
		Logger:        testutil.NopLogger(),
		PlayerService: app.PlayerService,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reqBody = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var msg response.Message
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&msg))
	return msg.Message
}

func decodeErrors(t *testing.T, rr *httptest.ResponseRecorder) []apierr.APIError {
	t.Helper()
	var body apierr.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.NotEmpty(t, body.Errors)
	return body.Errors
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestCreatePlayer(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players", `{"pseudo":"Bond","points":2000,"rank":"spy"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "Player with pseudo Bond created successfully.", decodeMessage(t, rr))

	rr = ts.request(http.MethodGet, "/api/v1/players/Bond", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"pseudo":"Bond","points":2000,"rank":"spy"}`, rr.Body.String())
}

func TestCreatePlayerValidationErrors(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players", `{}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	errs := decodeErrors(t, rr)
	require.Len(t, errs, 2)
	assert.Equal(t, "NULL_ERROR", errs[0].ErrorType)
	assert.Equal(t, "pseudo can't be null", errs[0].Reason)
	assert.Equal(t, "NULL_ERROR", errs[1].ErrorType)
	assert.Equal(t, "points should not be null", errs[1].Reason)
}

func TestCreatePlayerBlankAndNegative(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players", `{"pseudo":"  ","points":-129}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	errs := decodeErrors(t, rr)
	require.Len(t, errs, 2)
	assert.Equal(t, "BLANK_ERROR", errs[0].ErrorType)
	assert.Equal(t, "VALUE_CONDITION_ERROR", errs[1].ErrorType)
	assert.Equal(t, "points must have positive value", errs[1].Reason)
}

func TestCreateDuplicatePlayer(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.app.Seed(context.Background()))

	rr := ts.request(http.MethodPost, "/api/v1/players", `{"pseudo":"Bond","points":1}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	errs := decodeErrors(t, rr)
	require.Len(t, errs, 1)
	assert.Equal(t, "UNAVAILABLE_ERROR", errs[0].ErrorType)
	assert.Equal(t, "Pseudo value = Bond already exists and is not available anymore.", errs[0].Reason)
}

func TestMalformedBodiesAreParsingErrors(t *testing.T) {
	ts := newTestServer(t)

	bodies := []string{
		``,
		`{"pseudo":`,
		`{"pseudo":"Bond","points":"many"}`,
		`{"pseudo":"Bond","points":1,"level":3}`,
		`{"pseudo":"Bond","points":1} {}`,
		`{"pseudo":"Bond","points":1}]`,
		`{"pseudo":"Bond","points":1}}`,
		`{"pseudo":"Bond","points":3000000000}`,
	}
	for _, body := range bodies {
		rr := ts.request(http.MethodPost, "/api/v1/players", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)

		errs := decodeErrors(t, rr)
		require.Len(t, errs, 1, body)
		assert.Equal(t, "PARSING_ERROR", errs[0].ErrorType, body)
	}

	rr := ts.request(http.MethodPut, "/api/v1/players/Bond", `{"pseudo":"Bond","points":1}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "PARSING_ERROR", decodeErrors(t, rr)[0].ErrorType)
}

func TestUpdatePlayer(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.app.Seed(context.Background()))

	rr := ts.request(http.MethodPut, "/api/v1/players/Bond", `{"points":999,"rank":"Expert"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "Player with pseudo Bond updated successfully.", decodeMessage(t, rr))

	rr = ts.request(http.MethodPut, "/api/v1/players/Bond", `{"points":-12,"rank":"Expert"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	errs := decodeErrors(t, rr)
	require.Len(t, errs, 1)
	assert.Equal(t, "VALUE_CONDITION_ERROR", errs[0].ErrorType)
}

func TestUpdateMissingPlayerNeedsForceCreate(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPut, "/api/v1/players/M", `{"points":812,"rank":"Expert"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	errs := decodeErrors(t, rr)
	assert.Equal(t, "UNAVAILABLE_ERROR", errs[0].ErrorType)
	assert.Equal(t, "Pseudo value = M does not exist. Set the forceCreate query parameter to true to force creation.", errs[0].Reason)

	rr = ts.request(http.MethodPut, "/api/v1/players/M?forceCreate=true", `{"points":812,"rank":"Expert"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "Player with pseudo M updated successfully.", decodeMessage(t, rr))
}

func TestGetMissingPlayer(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/Ghost", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)

	errs := decodeErrors(t, rr)
	assert.Equal(t, "UNAVAILABLE_ERROR", errs[0].ErrorType)
	assert.Equal(t, "Pseudo: Ghost is not found.", errs[0].Reason)
	require.NotNil(t, errs[0].HTTPCode)
	assert.Equal(t, http.StatusNotFound, *errs[0].HTTPCode)
}

func TestListPlayers(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.app.Seed(context.Background()))
	rr := ts.request(http.MethodPost, "/api/v1/players", `{"pseudo":"008","points":1}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	list := func(query string) []string {
		rr := ts.request(http.MethodGet, "/api/v1/players"+query, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var players []response.Player
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&players))
		out := make([]string, len(players))
		for i, p := range players {
			out[i] = p.Pseudo
		}
		return out
	}

	assert.Equal(t, []string{"LeChiffre", "Bond", "008"}, list(""))
	assert.Equal(t, []string{"LeChiffre", "Bond", "008"}, list("?sortBy=bogus"))
	assert.Equal(t, []string{"LeChiffre", "Bond", "008"}, list("?sortBy=pseudo"))
	assert.Equal(t, []string{"Bond", "LeChiffre", "008"}, list("?sortBy=Rank"))
}

func TestListPlayersEmptyIsArray(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestDeletePlayer(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.app.Seed(context.Background()))

	rr := ts.request(http.MethodDelete, "/api/v1/players/Bond", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Player Bond successfully removed.", decodeMessage(t, rr))

	rr = ts.request(http.MethodDelete, "/api/v1/players/Bond", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Pseudo: Bond is not found.", decodeErrors(t, rr)[0].Reason)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/players", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://example.com", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
	assert.True(t, strings.Contains(rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPut))

	rr = ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestUnknownRouteIs404(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/v1/nope", "/elsewhere", "/api/v1/players/a/b"} {
		rr := ts.request(http.MethodGet, path, nil)
		require.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"), path)

		errs := decodeErrors(t, rr)
		require.Len(t, errs, 1, path)
		assert.Equal(t, "UNAVAILABLE_ERROR", errs[0].ErrorType, path)
		assert.Equal(t, "No route for GET "+path, errs[0].Reason, path)
		require.NotNil(t, errs[0].HTTPCode, path)
		assert.Equal(t, http.StatusNotFound, *errs[0].HTTPCode, path)
	}
}

func TestWrongMethodIs405(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPatch, "/api/v1/players/Bond", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	errs := decodeErrors(t, rr)
	require.Len(t, errs, 1)
	assert.Equal(t, "UNAVAILABLE_ERROR", errs[0].ErrorType)
	assert.Equal(t, "Method PATCH is not allowed on /api/v1/players/Bond", errs[0].Reason)
	require.NotNil(t, errs[0].HTTPCode)
	assert.Equal(t, http.StatusMethodNotAllowed, *errs[0].HTTPCode)
}

func TestPseudosWithReservedPathCharacters(t *testing.T) {
	cases := map[string]string{
		"AC/DC": "/api/v1/players/AC%2FDC",
		"..":    "/api/v1/players/..",
		".":     "/api/v1/players/.",
		"50%":   "/api/v1/players/50%25",
	}
	for pseudo, path := range cases {
		t.Run(pseudo, func(t *testing.T) {
			ts := newTestServer(t)

			rr := ts.request(http.MethodPost, "/api/v1/players", map[string]any{"pseudo": pseudo, "points": 3})
			require.Equal(t, http.StatusCreated, rr.Code)

			rr = ts.request(http.MethodGet, path, nil)
			require.Equal(t, http.StatusOK, rr.Code)
			var got response.Player
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
			assert.Equal(t, pseudo, got.Pseudo)

			rr = ts.request(http.MethodPut, path, `{"points":7,"rank":"Expert"}`)
			require.Equal(t, http.StatusCreated, rr.Code)
			assert.Equal(t, "Player with pseudo "+pseudo+" updated successfully.", decodeMessage(t, rr))

			rr = ts.request(http.MethodDelete, path, nil)
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "Player "+pseudo+" successfully removed.", decodeMessage(t, rr))

			rr = ts.request(http.MethodGet, path, nil)
			assert.Equal(t, http.StatusNotFound, rr.Code)
		})
	}
}
