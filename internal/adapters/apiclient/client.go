// Package apiclient talks to the items API on behalf of the browser.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"poi-map-service/internal/api/dto"
	"poi-map-service/internal/api/handlers"
	"poi-map-service/internal/domain"
	"poi-map-service/internal/platform/obs"
)

// Client implements ItemSource and RatingSink. Every call is a single
// attempt; retries are left to the user.
type Client struct {
	session *http.Client
	baseURL string
	user    string
}

func New(baseURL, user string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		session: &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		user:    strings.TrimSpace(user),
	}
}

// IsAuthenticated reports whether a user name is configured.
func (c *Client) IsAuthenticated() bool { return c.user != "" }

type httpStatusError struct {
	Code int
	Msg  string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Msg)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.user != "" {
		req.Header.Set(handlers.UserHeader, c.user)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e dto.ErrorResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4<<10)).Decode(&e)
		return &httpStatusError{Code: resp.StatusCode, Msg: e.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) Fetch(ctx context.Context, q domain.Query) (_ []domain.Item, err error) {
	defer obs.Time(ctx, "apiclient.Fetch")(&err)

	q = q.Normalize()
	v := url.Values{}
	v.Set("category", q.Category)
	if q.Search != "" {
		v.Set("search", q.Search)
	}

	var res dto.ListItemsResponse
	if err := c.do(ctx, http.MethodGet, "/api/items?"+v.Encode(), nil, &res); err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}

	items := make([]domain.Item, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, it.ToItem())
	}
	return items, nil
}

func (c *Client) FetchRandom(ctx context.Context) (_ domain.Item, err error) {
	defer obs.Time(ctx, "apiclient.FetchRandom")(&err)

	var res dto.ItemResponse
	if err := c.do(ctx, http.MethodGet, "/api/items/random", nil, &res); err != nil {
		return domain.Item{}, fmt.Errorf("fetch random item: %w", err)
	}
	return res.ToItem(), nil
}

// Submit posts a rating. A 401 maps to domain.ErrAuthRequired; anything else
// that fails is wrapped in domain.ErrSubmitFailed.
func (c *Client) Submit(ctx context.Context, id domain.ItemID, score int) (_ domain.RatingResult, err error) {
	defer obs.Time(ctx, "apiclient.Submit")(&err)

	var res dto.RateResponse
	err = c.do(ctx, http.MethodPost, "/api/rate", dto.RateRequest{ItemID: int64(id), Score: score}, &res)

	var he *httpStatusError
	if errors.As(err, &he) && he.Code == http.StatusUnauthorized {
		return domain.RatingResult{}, fmt.Errorf("submit rating id=%d: %w", id, domain.ErrAuthRequired)
	}
	if err != nil {
		return domain.RatingResult{}, fmt.Errorf("submit rating id=%d: %w: %w", id, domain.ErrSubmitFailed, err)
	}

	return domain.RatingResult{
		ItemID:      domain.ItemID(res.ItemID),
		AvgRating:   res.AvgRating,
		RatingCount: res.RatingCount,
	}, nil
}
