package props

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	DefaultMasterPort = 8001
	DefaultNotifyPort = 8000
)

type ServerProperties struct {
	Host            string        `env:"HOST, default=0.0.0.0"`
	Port            int           `env:"PORT"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT, default=5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT, default=5s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT, default=5m"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
}

type MasterProperties struct {
	Server       ServerProperties
	URLFile      string `env:"URL_FILE, default=urls_to_crawl.txt"`
	MaxBodyBytes int64  `env:"MAX_BODY_BYTES, default=1048576"`
}

type NotifyProperties struct {
	Server ServerProperties
}

type ReporterProperties struct {
	MasterURL      string        `env:"MASTER_URL, default=http://localhost:8001"`
	MachineName    string        `env:"MACHINE_NAME"`
	Interval       time.Duration `env:"REPORT_INTERVAL, default=30s"`
	StoragePath    string        `env:"STORAGE_PATH, default=/"`
	CrawlingStatus string        `env:"CRAWLING_STATUS, default=idle"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=10s"`
}

func LoadMasterProperties(ctx context.Context, lookuper envconfig.Lookuper) (MasterProperties, error) {
	var props MasterProperties
	err := process(ctx, &props, lookuper, map[string]string{"PORT": strconv.Itoa(DefaultMasterPort)})
	return props, err
}

func LoadNotifyProperties(ctx context.Context, lookuper envconfig.Lookuper) (NotifyProperties, error) {
	var props NotifyProperties
	err := process(ctx, &props, lookuper, map[string]string{"PORT": strconv.Itoa(DefaultNotifyPort)})
	return props, err
}

// LoadReporterProperties falls back to the host name when MACHINE_NAME is unset.
func LoadReporterProperties(ctx context.Context, lookuper envconfig.Lookuper) (ReporterProperties, error) {
	defaults := map[string]string{}
	if hostname, err := os.Hostname(); err == nil {
		defaults["MACHINE_NAME"] = hostname
	}

	var props ReporterProperties
	if err := process(ctx, &props, lookuper, defaults); err != nil {
		return props, err
	}
	if props.Interval <= 0 {
		return props, fmt.Errorf("REPORT_INTERVAL must be positive, got %s", props.Interval)
	}
	return props, nil
}

func NewMasterProperties() MasterProperties {
	props, err := LoadMasterProperties(context.Background(), envconfig.OsLookuper())
	if err != nil {
		log.Fatal(err)
	}
	return props
}

func NewNotifyProperties() NotifyProperties {
	props, err := LoadNotifyProperties(context.Background(), envconfig.OsLookuper())
	if err != nil {
		log.Fatal(err)
	}
	return props
}

func NewReporterProperties() ReporterProperties {
	props, err := LoadReporterProperties(context.Background(), envconfig.OsLookuper())
	if err != nil {
		log.Fatal(err)
	}
	return props
}

func process(ctx context.Context, target any, lookuper envconfig.Lookuper, defaults map[string]string) error {
	return envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   target,
		Lookuper: envconfig.MultiLookuper(lookuper, envconfig.MapLookuper(defaults)),
	})
}
