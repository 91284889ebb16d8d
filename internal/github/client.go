// Package github calls the GitHub REST API on behalf of profile pages.
// The lookup is a passthrough: repository JSON is returned to the client
// untouched.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"devlink/internal/middleware"
	"devlink/internal/models"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.github.com"

// Client looks up public repositories for a GitHub username.
type Client struct {
	http         *resty.Client
	clientID     string
	clientSecret string
}

// NewClient builds a GitHub client. baseURL is overridable so tests can
// point it at a local server; empty means the public API.
func NewClient(baseURL, clientID, clientSecret string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("User-Agent", "devlink-api").
		SetHeader("Accept", "application/vnd.github.v3+json")
	return &Client{
		http:         http,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// ListRepos fetches the five oldest public repositories for the username.
// Every failure mode, transport error, non-200 status or unknown user,
// collapses into the same NotFound so callers cannot probe GitHub through
// this endpoint.
func (c *Client) ListRepos(ctx context.Context, username string) (json.RawMessage, error) {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"per_page": "5",
			"sort":     "created:asc",
		})
	if c.clientID != "" {
		req.SetQueryParams(map[string]string{
			"client_id":     c.clientID,
			"client_secret": c.clientSecret,
		})
	}

	resp, err := req.Get(fmt.Sprintf("/users/%s/repos", username))
	if err != nil {
		middleware.GithubLookups.WithLabelValues("error").Inc()
		middleware.Logger.WarnContext(ctx, "github lookup failed", "username", username, "error", err)
		return nil, models.NewNotFoundError("No Github profile found")
	}
	if resp.StatusCode() != 200 {
		middleware.GithubLookups.WithLabelValues("miss").Inc()
		return nil, models.NewNotFoundError("No Github profile found")
	}

	middleware.GithubLookups.WithLabelValues("hit").Inc()
	return json.RawMessage(resp.Body()), nil
}
