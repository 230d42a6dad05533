package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cbodonnell/isozombie/pkg/repositories"
	"github.com/cbodonnell/isozombie/pkg/repositories/models"
)

// Client talks to a scoreboard server. It satisfies repositories.Repository
// so the game can treat the shared scoreboard like local storage.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type NewClientOptions struct {
	BaseURL string
	// Timeout defaults to 5 seconds
	Timeout time.Duration
}

var _ repositories.Repository = (*Client)(nil)

func NewClient(opts NewClientOptions) (*Client, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid scoreboard url %q", opts.BaseURL)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) Close(ctx context.Context) error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *Client) SaveScore(ctx context.Context, score *models.Score) (*models.Score, error) {
	b, err := json.Marshal(score)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal score: %v", err)
	}
	saved := &models.Score{}
	if err := c.do(ctx, http.MethodPost, "/scores", bytes.NewReader(b), http.StatusCreated, saved); err != nil {
		return nil, fmt.Errorf("failed to submit score: %v", err)
	}
	return saved, nil
}

func (c *Client) TopScores(ctx context.Context, limit int) ([]*models.Score, error) {
	scores := []*models.Score{}
	path := "/scores?limit=" + strconv.Itoa(limit)
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &scores); err != nil {
		return nil, fmt.Errorf("failed to get top scores: %v", err)
	}
	return scores, nil
}

func (c *Client) BestScore(ctx context.Context, name string) (*models.Score, error) {
	score := &models.Score{}
	path := "/scores/" + url.PathEscape(name) + "/best"
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, score); err != nil {
		if repositories.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get best score: %v", err)
	}
	return score, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, want int, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &repositories.ErrNotFound{}
	}
	if resp.StatusCode != want {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}
	return nil
}
