// Package qr generates the human-readable job tokens, the QR deep links and
// image URLs that tie printed codes back to job detail pages, and fetches the
// rendered image for download/print proxying.
package qr

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const imageEndpoint = "https://api.qrserver.com/v1/create-qr-code/"

// Service builds job tokens and QR artifacts against a configured base URL.
type Service struct {
	baseURL string
	http    *http.Client

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Service. baseURL is the externally reachable root of this
// deployment, e.g. http://localhost:3000 or the deployed origin.
func New(baseURL string) *Service {
	return &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewToken returns a human-readable job token of the form JOB_NNNN. The token
// is distinct from the storage row id; uniqueness is enforced by the jobs
// table, so callers retry on conflict.
func (s *Service) NewToken() string {
	s.mu.Lock()
	n := s.rng.Intn(10000)
	s.mu.Unlock()
	return fmt.Sprintf("JOB_%04d", n)
}

// JobLink is the canonical deep link a QR code resolves to.
func (s *Service) JobLink(token string) string {
	return s.baseURL + "/job/" + token
}

// ImageURL is the external QR image for a job token: 400x400 PNG encoding the
// deep link.
func (s *Service) ImageURL(token string) string {
	params := url.Values{}
	params.Set("size", "400x400")
	params.Set("data", s.JobLink(token))
	params.Set("format", "png")
	return imageEndpoint + "?" + params.Encode()
}

// FetchImage downloads the rendered QR PNG for the download/print proxy.
// Callers that see an error fall back to handing out the raw image URL.
func (s *Service) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build qr image request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch qr image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch qr image: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read qr image: %w", err)
	}
	return body, nil
}

// IsToken reports whether id looks like a JOB_NNNN token rather than a row id.
func IsToken(id string) bool {
	return strings.HasPrefix(id, "JOB_")
}
