package registry

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/crawlfleet/statusd/internal/server"
)

const maxTargetLineBytes = 1 << 20

type TargetSource interface {
	Load(ctx context.Context) ([]string, error)
}

// FileTargetSource reads one URL per line from Path on every Load. A missing
// file yields an empty list; any other failure is returned.
type FileTargetSource struct {
	Path string
}

func (s FileTargetSource) Load(ctx context.Context) ([]string, error) {
	logger := server.Logger(ctx)

	file, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Crawl target file not found, returning no targets", "path", s.Path)
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open crawl targets %s: %w", s.Path, err)
	}
	defer file.Close()

	urls, err := ReadTargets(file)
	if err != nil {
		return nil, fmt.Errorf("read crawl targets %s: %w", s.Path, err)
	}

	logger.Info("Loaded crawl targets", "path", s.Path, "count", len(urls))
	return urls, nil
}

func ReadTargets(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxTargetLineBytes)
	scanner.Split(scanTargetLines)

	urls := make([]string, 0)
	for scanner.Scan() {
		if url := strings.TrimSpace(scanner.Text()); url != "" {
			urls = append(urls, url)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return urls, nil
}

// scanTargetLines splits on \n, \r\n and a lone \r.
func scanTargetLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// a \n may follow in the next read
		return 0, nil, nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
