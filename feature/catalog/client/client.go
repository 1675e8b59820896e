package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// MaxPageSize is the largest page the catalog serves.
const MaxPageSize = 250

// ErrUnexpectedStatus is wrapped by errors for non-200 responses.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Client reads sets and cards from the catalog API. It holds no sync state.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	maxRetries int
	pageSize   int
	backoff    func(attempt int) time.Duration
}

// New creates a catalog client from configuration.
func New(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 4
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return &Client{
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.ApiKey,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		maxRetries: cfg.MaxRetries,
		pageSize:   pageSize,
		backoff: func(attempt int) time.Duration {
			// 1s, 2s, 4s...
			return time.Duration(1<<uint(attempt-1)) * time.Second
		},
	}
}

// PageSize is the card page size used by CardsPage.
func (c *Client) PageSize() int {
	return c.pageSize
}

// ListSets returns every set in the catalog, in catalog order.
func (c *Client) ListSets(ctx context.Context) ([]Set, error) {
	var sets []Set
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("pageSize", strconv.Itoa(MaxPageSize))

		var res envelope[Set]
		if err := c.get(ctx, "/sets", q, &res); err != nil {
			return nil, fmt.Errorf("list sets page %d: %w", page, err)
		}
		sets = append(sets, res.Data...)

		if len(res.Data) == 0 || len(sets) >= res.TotalCount {
			return sets, nil
		}
	}
}

// CardsPage fetches one page of a set's cards ordered by number. Pages start at 1.
func (c *Client) CardsPage(ctx context.Context, setID string, page int) (*CardPage, error) {
	q := url.Values{}
	q.Set("q", "set.id:"+setID)
	q.Set("orderBy", "number")
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(c.pageSize))

	var res envelope[Card]
	if err := c.get(ctx, "/cards", q, &res); err != nil {
		return nil, fmt.Errorf("cards of set %s page %d: %w", setID, page, err)
	}
	return &CardPage{Cards: res.Data, Page: page, TotalCount: res.TotalCount}, nil
}

// SetCards fetches every card of a set.
func (c *Client) SetCards(ctx context.Context, setID string) ([]Card, error) {
	var cards []Card
	for page := 1; ; page++ {
		res, err := c.CardsPage(ctx, setID, page)
		if err != nil {
			return nil, err
		}
		cards = append(cards, res.Cards...)
		if len(res.Cards) == 0 || len(cards) >= res.TotalCount {
			return cards, nil
		}
	}
}

// CardsByID looks up cards by id in one batched query.
func (c *Client) CardsByID(ctx context.Context, ids []string) ([]Card, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > MaxPageSize {
		return nil, fmt.Errorf("batch of %d ids exceeds page size %d", len(ids), MaxPageSize)
	}

	terms := make([]string, len(ids))
	for i, id := range ids {
		terms[i] = "id:" + id
	}

	q := url.Values{}
	q.Set("q", "("+strings.Join(terms, " OR ")+")")
	q.Set("pageSize", strconv.Itoa(MaxPageSize))

	var res envelope[Card]
	if err := c.get(ctx, "/cards", q, &res); err != nil {
		return nil, fmt.Errorf("cards by id: %w", err)
	}
	return res.Data, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, target any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			select {
			case <-time.After(c.backoff(i)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		retry, err := c.do(ctx, u, target)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

// do performs one request and reports whether a failure is worth retrying.
func (c *Client) do(ctx context.Context, u string, target any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return retry, err
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return false, nil
}
