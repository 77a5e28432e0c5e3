package imaging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Fetcher downloads stored entity images from the API's upload area to
// local files. Results are cached per URL so repeated exports of the same
// catalog do not re-download anything within a run.
type Fetcher struct {
	HTTPClient *http.Client

	mu   sync.RWMutex
	done map[string]string
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		done: make(map[string]string),
	}
}

// cached returns the local path a URL already resolved to, if any.
func (f *Fetcher) cached(url string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	path, ok := f.done[url]
	return path, ok
}

func (f *Fetcher) record(url, path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.done[url] = path
}

// Download fetches one image URL into outputDir, naming the file after
// the original upload name. It returns the local path.
func (f *Fetcher) Download(ctx context.Context, url, outputDir string) (string, error) {
	if path, ok := f.cached(url); ok {
		return path, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build image request: %w", err)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("image endpoint returned an empty body")
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	outputPath := filepath.Join(outputDir, filepath.Base(url))
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	f.record(url, outputPath)
	return outputPath, nil
}

// DownloadResult reports one URL's outcome from a batch download.
type DownloadResult struct {
	URL   string
	Path  string
	Error error
}

// DownloadAll fetches a set of image URLs concurrently, bounded by
// concurrency workers. Failures are per-URL; one broken image does not
// abort the batch.
func (f *Fetcher) DownloadAll(ctx context.Context, urls []string, outputDir string, concurrency int) []DownloadResult {
	if concurrency < 1 {
		concurrency = 1
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)
	resultsChan := make(chan DownloadResult, len(urls))

	for _, url := range urls {
		if url == "" {
			continue
		}
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			path, err := f.Download(ctx, url, outputDir)
			if err != nil {
				slog.Warn("Failed to download image", "url", url, "error", err)
			}
			resultsChan <- DownloadResult{URL: url, Path: path, Error: err}
		}(url)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	var results []DownloadResult
	for r := range resultsChan {
		results = append(results, r)
	}
	return results
}
