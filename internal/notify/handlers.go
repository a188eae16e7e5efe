package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/crawlfleet/statusd/internal/server"
)

const (
	DetailInvalidJSON   = "Invalid JSON"
	DetailMissingFields = "Missing required fields"
)

var DefaultTargets = []string{
	"http://quotes.toscrape.com/page/1/",
	"http://quotes.toscrape.com/page/2/",
	"https://www.scrapingbee.com/blog/",
	"https://www.dataquest.io/blog/",
	"https://example.com",
}

type GetCrawlTargetsHandler struct {
	urls []string
}

func (h GetCrawlTargetsHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	server.Logger(request.Context()).Info("Received request for URLs", "count", len(h.urls))

	server.WriteJSON(writer, http.StatusOK, GetCrawlTargetsResponse{
		URLs:    h.urls,
		Message: fmt.Sprintf("Returning %d URLs for crawling.", len(h.urls)),
	})
}

type NotifyCrawlFinishedHandler struct{}

func (h NotifyCrawlFinishedHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	logger := server.Logger(request.Context())

	var notification CrawlNotification
	if err := decodeNotification(request.Body, &notification); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			logger.Warn("Received crawl notification with wrong field type", "field", typeErr.Field)
			server.WriteDetail(writer, http.StatusUnprocessableEntity, DetailMissingFields)
			return
		}
		logger.Warn("Received invalid JSON for crawl notification", "err", err)
		server.WriteDetail(writer, http.StatusBadRequest, DetailInvalidJSON)
		return
	}

	if notification.Status == nil || notification.MachineName == nil {
		logger.Warn("Received crawl notification with missing fields")
		server.WriteDetail(writer, http.StatusUnprocessableEntity, DetailMissingFields)
		return
	}

	machineName, status := *notification.MachineName, *notification.Status
	logger.Info("Received crawl completion notification", "machine_name", machineName, "status", status)

	server.WriteJSON(writer, http.StatusOK, server.MessageResponse{
		Message: fmt.Sprintf("Notification received for machine '%s'. Status: '%s'.", machineName, status),
	})
}

// decodeNotification requires the body to hold exactly one JSON value.
func decodeNotification(r io.Reader, notification *CrawlNotification) error {
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(notification); err != nil {
		return err
	}
	if err := decoder.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON object")
		}
		return err
	}
	return nil
}

func NewHandler(urls []string) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /get_urls_to_crawl", &GetCrawlTargetsHandler{urls: urls})
	mux.Handle("POST /notify_crawl_finished", &NotifyCrawlFinishedHandler{})
	mux.Handle("/", server.NotFoundHandler{})

	return mux
}
