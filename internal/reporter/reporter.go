package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/crawlfleet/statusd/internal/props"
	"github.com/crawlfleet/statusd/internal/registry"
	"github.com/crawlfleet/statusd/internal/server"
)

const (
	CrawlingIdle  = "idle"
	CrawlingInUse = "in_use"
)

// Reporter pushes this machine's status to the master and fetches crawl
// targets from it.
type Reporter struct {
	client         *http.Client
	collector      Collector
	masterURL      string
	machineName    string
	crawlingStatus string
	interval       time.Duration
}

func New(reporterProps props.ReporterProperties, client *http.Client, collector Collector) *Reporter {
	return &Reporter{
		client:         client,
		collector:      collector,
		masterURL:      strings.TrimRight(reporterProps.MasterURL, "/"),
		machineName:    reporterProps.MachineName,
		crawlingStatus: reporterProps.CrawlingStatus,
		interval:       reporterProps.Interval,
	}
}

// Run reports once immediately and then on every tick until ctx is done.
// A failed report is logged and the next tick proceeds as usual.
func (r *Reporter) Run(ctx context.Context) error {
	if r.interval <= 0 {
		return fmt.Errorf("report interval must be positive, got %s", r.interval)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if err := r.Report(ctx); err != nil && ctx.Err() == nil {
			slog.Error("Failed to report status", "master", r.masterURL, "err", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (r *Reporter) Report(ctx context.Context) error {
	sample, err := r.collector.Collect(ctx)
	if err != nil {
		return err
	}

	status := registry.MachineStatus{
		registry.FieldMachineName:        r.machineName,
		registry.FieldTotalStorageGB:     sample.TotalStorageGB,
		registry.FieldFreeStorageGB:      sample.FreeStorageGB,
		registry.FieldCPUUsagePercent:    sample.CPUUsagePercent,
		registry.FieldMemoryUsagePercent: sample.MemoryUsagePercent,
		registry.FieldCrawlingStatus:     r.crawlingStatus,
	}
	body, err := json.Marshal(status)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.masterURL+"/update_machine_status", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	var msgResp server.MessageResponse
	if err = r.do(req, &msgResp); err != nil {
		return err
	}

	slog.Info("Reported status", "machine_name", r.machineName, "message", msgResp.Message)
	return nil
}

func (r *Reporter) FetchTargets(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.masterURL+"/get_urls_to_crawl", nil)
	if err != nil {
		return nil, err
	}

	var targetsResp registry.GetCrawlTargetsResponse
	if err = r.do(req, &targetsResp); err != nil {
		return nil, err
	}

	return targetsResp.URLs, nil
}

func (r *Reporter) do(req *http.Request, v any) error {
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var detailResp server.DetailResponse
		_ = json.NewDecoder(resp.Body).Decode(&detailResp)
		return &StatusError{Code: resp.StatusCode, Detail: detailResp.Detail}
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("master responded %d: %s", e.Code, e.Detail)
}
