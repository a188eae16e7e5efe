package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
)

const (
	FieldMachineName        = "machine_name"
	FieldTotalStorageGB     = "total_storage_gb"
	FieldFreeStorageGB      = "free_storage_gb"
	FieldCPUUsagePercent    = "cpu_usage_percent"
	FieldMemoryUsagePercent = "memory_usage_percent"
	FieldCrawlingStatus     = "crawling_status"
	FieldLastUpdated        = "last_updated"
)

var RequiredFields = []string{
	FieldMachineName,
	FieldTotalStorageGB,
	FieldFreeStorageGB,
	FieldCPUUsagePercent,
	FieldMemoryUsagePercent,
	FieldCrawlingStatus,
}

// MachineStatus is the latest report of one worker. It is kept as an open
// object so that fields the server does not know about survive the round trip.
type MachineStatus map[string]any

func (s MachineStatus) MachineName() string {
	name, _ := s[FieldMachineName].(string)
	return name
}

func (s MachineStatus) CrawlingStatus() any {
	return s[FieldCrawlingStatus]
}

// LastUpdated returns the server stamp in seconds since the epoch.
func (s MachineStatus) LastUpdated() (float64, bool) {
	switch v := s[FieldLastUpdated].(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func (s MachineStatus) Validate() error {
	for _, field := range RequiredFields {
		if _, ok := s[field]; !ok {
			return &ValidationError{Field: field, Detail: DetailMissingFields}
		}
	}
	if _, ok := s[FieldMachineName].(string); !ok {
		return &ValidationError{Field: FieldMachineName, Detail: DetailMachineNameNotString}
	}
	return nil
}

func (s MachineStatus) clone() MachineStatus {
	return maps.Clone(s)
}

// DecodeMachineStatus reads exactly one JSON object from r. Numbers are kept
// as json.Number so client values are echoed back unchanged.
func DecodeMachineStatus(r io.Reader) (MachineStatus, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var status MachineStatus
	if err := decoder.Decode(&status); err != nil {
		return nil, classifyDecodeErr(err)
	}

	if err := decoder.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON object")
		}
		return nil, classifyDecodeErr(err)
	}

	return status, nil
}

func classifyDecodeErr(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return fmt.Errorf("%w: %w", ErrBodyTooLarge, err)
	}
	return fmt.Errorf("%w: %w", ErrParse, err)
}
