package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GetCrawlTargets_DefaultList(t *testing.T) {
	// when
	resp := doRequest(http.MethodGet, "/get_urls_to_crawl", "")

	// then
	require.Equal(t, http.StatusOK, resp.Code)
	var got GetCrawlTargetsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	want := GetCrawlTargetsResponse{URLs: DefaultTargets, Message: "Returning 5 URLs for crawling."}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func Test_NotifyCrawlFinished(t *testing.T) {
	// when
	resp := doRequest(http.MethodPost, "/notify_crawl_finished",
		`{"status": "successfully_processed", "machine_name": "worker-1"}`)

	// then
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t,
		`{"message": "Notification received for machine 'worker-1'. Status: 'successfully_processed'."}`,
		resp.Body.String())
}

func Test_NotifyCrawlFinished_Rejected(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantCode   int
		wantDetail string
	}{
		{"broken", "wrong", http.StatusBadRequest, DetailInvalidJSON},
		{"empty", "", http.StatusBadRequest, DetailInvalidJSON},
		{"missing status", `{"machine_name": "worker-1"}`, http.StatusUnprocessableEntity, DetailMissingFields},
		{"missing machine", `{"status": "done"}`, http.StatusUnprocessableEntity, DetailMissingFields},
		{"trailing data", `{"status": "x", "machine_name": "y"} junk`, http.StatusBadRequest, DetailInvalidJSON},
		{"two objects", `{"status": "x", "machine_name": "y"}{}`, http.StatusBadRequest, DetailInvalidJSON},
		{"wrong type", `{"status": 1, "machine_name": "worker-1"}`, http.StatusUnprocessableEntity, DetailMissingFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// when
			resp := doRequest(http.MethodPost, "/notify_crawl_finished", tt.body)

			// then
			assert.Equal(t, tt.wantCode, resp.Code)
			var got map[string]string
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
			assert.Equal(t, tt.wantDetail, got["detail"])
		})
	}
}

func Test_UnknownRoute(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		// when
		resp := doRequest(method, "/update_machine_status", "")

		// then
		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.JSONEq(t, `{"detail": "Not Found"}`, resp.Body.String())
	}
}

func doRequest(method string, target string, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))

	return recorder
}

var handler = NewHandler(DefaultTargets)
