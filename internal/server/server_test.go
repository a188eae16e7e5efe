package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crawlfleet/statusd/internal/props"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewServer_Addr(t *testing.T) {
	// given
	serverProps := props.ServerProperties{Host: "0.0.0.0", Port: 8001, ReadTimeout: time.Second}

	// when
	srv := NewServer(serverProps, NotFoundHandler{})

	// then
	assert.Equal(t, "0.0.0.0:8001", srv.Addr)
	assert.Equal(t, time.Second, srv.ReadTimeout)
}

func Test_Serve_StopsOnCancel(t *testing.T) {
	// given
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	serverProps := props.ServerProperties{ShutdownTimeout: time.Second}
	srv := NewServer(serverProps, NotFoundHandler{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Serve(ctx, serverProps, srv, listener) }()

	// when
	resp, err := http.Get("http://" + listener.Addr().String() + "/anything")
	require.NoError(t, err)
	resp.Body.Close()
	cancel()

	// then
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func Test_NotFoundHandler(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		// when
		recorder := httptest.NewRecorder()
		NotFoundHandler{}.ServeHTTP(recorder, httptest.NewRequest(method, "/nope", nil))

		// then
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"detail": "Not Found"}`, recorder.Body.String())
	}
}

func Test_WriteJSON_UnencodableValue(t *testing.T) {
	// when
	recorder := httptest.NewRecorder()
	WriteJSON(recorder, http.StatusOK, map[string]any{"bad": make(chan int)})

	// then
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"detail": "Internal server error"}`, recorder.Body.String())
}

func Test_Wrap_RecoversPanic(t *testing.T) {
	// given
	handler := Wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom: secret internals")
	}))

	// when
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	// then
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	var got DetailResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	assert.Equal(t, DetailInternalServer, got.Detail)
	assert.NotContains(t, recorder.Body.String(), "secret")
}

func Test_WithRequestID(t *testing.T) {
	// given
	var seen string
	handler := WithRequestID(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = RequestID(request.Context())
	}))

	// when
	generated := httptest.NewRecorder()
	handler.ServeHTTP(generated, httptest.NewRequest(http.MethodGet, "/", nil))

	supplied := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(RequestIDHeader, "abc-123")
	handler.ServeHTTP(supplied, request)

	// then
	assert.NotEmpty(t, generated.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", supplied.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", seen)
}
