package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"devlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRepos(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"hello-world"},{"name":"spoon-knife"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "")
	body, err := client.ListRepos(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, []string{"5"}, gotQuery["per_page"])
	assert.Equal(t, []string{"created:asc"}, gotQuery["sort"])
	assert.NotContains(t, gotQuery, "client_id")

	var repos []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(body, &repos))
	require.Len(t, repos, 2)
	assert.Equal(t, "hello-world", repos[0].Name)
}

func TestListRepos_SendsCredentialsWhenConfigured(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "my-id", "my-secret")
	_, err := client.ListRepos(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, []string{"my-id"}, gotQuery["client_id"])
	assert.Equal(t, []string{"my-secret"}, gotQuery["client_secret"])
}

func TestListRepos_UnknownUserReadsAsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "")
	_, err := client.ListRepos(context.Background(), "no-such-user")
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
	assert.Contains(t, err.Error(), "No Github profile found")
}

func TestListRepos_TransportFailureReadsAsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL, "", "")
	_, err := client.ListRepos(context.Background(), "octocat")
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestListRepos_RateLimitedReadsAsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"API rate limit exceeded"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "")
	_, err := client.ListRepos(context.Background(), "octocat")
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
