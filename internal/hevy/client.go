// Package hevy is a client for the Hevy public API, used to pull a
// lifter's workout history without going through a CSV export.
package hevy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	DefaultBaseURL = "https://api.hevyapp.com/v1"

	// Largest page size the API accepts.
	maxPageSize = 10
)

// Client is a Hevy API client. Authentication is a static per-account
// API key sent on every request.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	rateLimiter *RateLimiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient creates a Hevy API client for the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     DefaultBaseURL,
		apiKey:      apiKey,
		rateLimiter: NewRateLimiter(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetWorkoutCount returns the total number of workouts on the account.
func (c *Client) GetWorkoutCount(ctx context.Context) (int, error) {
	resp, err := c.get(ctx, "/workouts/count", nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var count workoutCountResponse
	if err := json.NewDecoder(resp.Body).Decode(&count); err != nil {
		return 0, fmt.Errorf("decoding workout count: %w", err)
	}
	return count.WorkoutCount, nil
}

// GetWorkouts fetches one page of workouts. Pages are 1-based.
func (c *Client) GetWorkouts(ctx context.Context, page int) ([]Workout, int, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(maxPageSize))

	resp, err := c.get(ctx, "/workouts", params)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var body workoutsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, 0, fmt.Errorf("decoding workouts: %w", err)
	}
	return body.Workouts, body.PageCount, nil
}

// GetAllWorkouts fetches the full workout history, following pagination
// and respecting the rate limiter. onProgress, when non-nil, is invoked
// after every page with the running total.
func (c *Client) GetAllWorkouts(ctx context.Context, onProgress func(fetched, total int)) ([]Workout, error) {
	var all []Workout
	page := 1
	total := 0

	for {
		workouts, pageCount, err := c.GetWorkouts(ctx, page)
		if err != nil {
			return all, fmt.Errorf("fetching page %d: %w", page, err)
		}
		if total == 0 {
			total = pageCount * maxPageSize
		}

		all = append(all, workouts...)
		lastPage := page >= pageCount || len(workouts) == 0
		if lastPage {
			// The final page may be partial; the fetched count is exact.
			total = len(all)
		}
		if onProgress != nil {
			onProgress(len(all), total)
		}

		if lastPage {
			break
		}
		page++
	}

	return all, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		c.rateLimiter.Backoff(resp.Header.Get("Retry-After"))
	}
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, ErrBadAPIKey
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	return resp, nil
}
