package registry

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/crawlfleet/statusd/internal/server"
)

const DefaultMaxBodyBytes = 1 << 20

type GetCrawlTargetsHandler struct {
	targets TargetSource
	metrics *Metrics
}

func (h GetCrawlTargetsHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	logger := server.Logger(ctx)
	logger.Info("Received request for crawl targets")

	urls, err := h.targets.Load(ctx)
	if err != nil {
		logger.Error("Failed to load crawl targets", "err", err)
		server.WriteDetail(writer, http.StatusInternalServerError, server.DetailInternalServer)
		return
	}

	h.metrics.observeTargets(len(urls))
	server.WriteJSON(writer, http.StatusOK, GetCrawlTargetsResponse{
		URLs:    urls,
		Message: fmt.Sprintf("Returning %d URLs for crawling.", len(urls)),
	})
}

type UpdateMachineStatusHandler struct {
	store        *Store
	metrics      *Metrics
	maxBodyBytes int64
}

func (h UpdateMachineStatusHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	logger := server.Logger(request.Context())

	body := http.MaxBytesReader(writer, request.Body, h.maxBodyBytes)
	status, err := DecodeMachineStatus(body)
	if errors.Is(err, ErrBodyTooLarge) {
		h.metrics.observeUpdate(resultTooLarge)
		logger.Warn("Received oversized status update", "limit", h.maxBodyBytes)
		server.WriteDetail(writer, http.StatusRequestEntityTooLarge, DetailBodyTooLarge)
		return
	}
	if err != nil {
		h.metrics.observeUpdate(resultInvalidJSON)
		logger.Warn("Received invalid JSON for status update", "err", err)
		server.WriteDetail(writer, http.StatusBadRequest, DetailInvalidJSON)
		return
	}

	if err = status.Validate(); err != nil {
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			logger.Error("Failed to validate status update", "err", err)
			server.WriteDetail(writer, http.StatusInternalServerError, server.DetailInternalServer)
			return
		}
		h.metrics.observeUpdate(resultInvalidFields)
		logger.Warn("Received malformed status update", "field", validationErr.Field, "payload", status)
		server.WriteDetail(writer, http.StatusBadRequest, validationErr.Detail)
		return
	}

	stored := h.store.Put(status)
	h.metrics.observeUpdate(resultAccepted)
	logger.Info("Received status update",
		"machine_name", stored.MachineName(),
		"crawling_status", stored.CrawlingStatus(),
	)

	server.WriteJSON(writer, http.StatusOK, server.MessageResponse{
		Message: fmt.Sprintf("Status received for machine '%s'.", stored.MachineName()),
	})
}

type GetAllMachinesStatusHandler struct {
	store *Store
}

func (h GetAllMachinesStatusHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	server.Logger(request.Context()).Info("Received request for all machine statuses")

	server.WriteJSON(writer, http.StatusOK, GetAllMachinesStatusResponse{Machines: h.store.All()})
}

// NewHandler wires the registry endpoints. Anything else, including a known
// path with the wrong method, falls through to a JSON 404. A nil metrics gets
// a fresh private set bound to store.
func NewHandler(store *Store, targets TargetSource, metrics *Metrics, maxBodyBytes int64) http.Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	if metrics == nil {
		metrics = NewMetrics(store)
	}

	mux := http.NewServeMux()

	getTargetsHandler := &GetCrawlTargetsHandler{targets: targets, metrics: metrics}
	updateStatusHandler := &UpdateMachineStatusHandler{store: store, metrics: metrics, maxBodyBytes: maxBodyBytes}
	getStatusesHandler := &GetAllMachinesStatusHandler{store: store}

	mux.Handle("GET /get_urls_to_crawl", getTargetsHandler)
	mux.Handle("POST /update_machine_status", updateStatusHandler)
	mux.Handle("GET /get_all_machines_status", getStatusesHandler)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("/", server.NotFoundHandler{})

	return mux
}
