package collab

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// preloadWait bounds how long a prompt waits for its picture before showing
// without one
const preloadWait = 1000 * time.Millisecond

// StaticImageResolver maps image terms onto a URL template, e.g. a local
// asset directory or a placeholder image service
type StaticImageResolver struct {
	BaseURL string
}

func (r StaticImageResolver) Resolve(_ context.Context, term string) (string, error) {
	if term == "" {
		return "", fmt.Errorf("no image term")
	}
	return fmt.Sprintf("%s/%s.png", r.BaseURL, url.PathEscape(term)), nil
}

// Preload fetches an image ahead of display, waiting at most preloadWait.
// The result reports whether the image arrived in time; a slow or failed
// fetch means the prompt shows without a picture, never an error to the
// player. The fetch goroutine writes to a buffered channel so it never
// leaks when the timer wins.
func Preload(ctx context.Context, client *http.Client, imageURL string) bool {
	if imageURL == "" {
		return false
	}
	if client == nil {
		client = http.DefaultClient
	}

	done := make(chan bool, 1)
	fetchCtx, cancel := context.WithCancel(ctx)

	go func() {
		req, err := http.NewRequestWithContext(fetchCtx, "GET", imageURL, nil)
		if err != nil {
			done <- false
			return
		}
		resp, err := client.Do(req)
		if err != nil {
			done <- false
			return
		}
		resp.Body.Close()
		done <- resp.StatusCode == http.StatusOK
	}()

	timer := time.NewTimer(preloadWait)
	defer timer.Stop()

	select {
	case ok := <-done:
		cancel()
		return ok
	case <-timer.C:
		cancel()
		return false
	case <-ctx.Done():
		cancel()
		return false
	}
}
