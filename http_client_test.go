package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	client "github.com/tazaqala/go-client"
)

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(client.HeaderAuthorization)
		gotRequestID = r.Header.Get(client.HeaderRequestID)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	tokens := client.NewMemoryTokenStore()
	require.NoError(t, tokens.Set(context.Background(), "stored-token"))

	c, err := client.NewClient(server.URL, tokens)
	require.NoError(t, err)

	var out map[string]bool
	require.NoError(t, c.Get(context.Background(), "/reports", nil, &out))
	assert.Equal(t, "Bearer stored-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.True(t, out["ok"])
}

func TestClientSkipsTokenOnWhitelistedPaths(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(client.HeaderAuthorization)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	tokens := client.NewMemoryTokenStore()
	require.NoError(t, tokens.Set(context.Background(), "stored-token"))

	c, err := client.NewClient(server.URL, tokens)
	require.NoError(t, err)

	require.NoError(t, c.Post(context.Background(), "/Auth/login", map[string]string{}, nil))
	assert.Empty(t, gotAuth)

	require.NoError(t, c.Post(context.Background(), "/Auth/register", map[string]string{}, nil))
	assert.Empty(t, gotAuth)
}

func TestClientSkipsAuthorizationWhenStoreIsEmpty(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(client.HeaderAuthorization)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c, err := client.NewClient(server.URL, client.NewMemoryTokenStore())
	require.NoError(t, err)

	require.NoError(t, c.Get(context.Background(), "/reports", nil, nil))
	assert.Empty(t, gotAuth)
}

func TestClientHeaderFollowsTokenStore(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get(client.HeaderAuthorization))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx := context.Background()
	tokens := client.NewMemoryTokenStore()
	c, err := client.NewClient(server.URL, tokens)
	require.NoError(t, err)

	require.NoError(t, c.Get(ctx, "/reports", nil, nil))

	require.NoError(t, tokens.Set(ctx, "first"))
	require.NoError(t, c.Get(ctx, "/reports", nil, nil))

	require.NoError(t, tokens.Set(ctx, "second"))
	require.NoError(t, c.Get(ctx, "/reports", nil, nil))

	require.NoError(t, tokens.Clear(ctx))
	require.NoError(t, c.Get(ctx, "/reports", nil, nil))

	assert.Equal(t, []string{"", "Bearer first", "Bearer second", ""}, seen)
}

func TestClientStatusErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "login 401 becomes invalid credentials",
			path:   "/Auth/login",
			status: http.StatusUnauthorized,
			body:   `{"message":"wrong password"}`,
			check: func(t *testing.T, err error) {
				assert.True(t, client.IsInvalidCredentials(err))
				assert.Contains(t, err.Error(), "wrong password")
			},
		},
		{
			name:   "login 400 becomes invalid credentials",
			path:   "/Auth/login",
			status: http.StatusBadRequest,
			check: func(t *testing.T, err error) {
				assert.True(t, client.IsInvalidCredentials(err))
			},
		},
		{
			name:   "register 409 becomes conflict",
			path:   "/Auth/register",
			status: http.StatusConflict,
			body:   `{"error":"phone number taken"}`,
			check: func(t *testing.T, err error) {
				assert.True(t, client.IsConflict(err))
			},
		},
		{
			name:   "authenticated 401 becomes unauthorized",
			path:   "/users/me",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				assert.True(t, client.IsUnauthorized(err))
			},
		},
		{
			name:   "404 is a plain not found",
			path:   "/reports/999",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.False(t, client.IsUnauthorized(err))
			},
		},
		{
			name:   "409 outside auth is a conflict",
			path:   "/events/1/participants",
			status: http.StatusConflict,
			check: func(t *testing.T, err error) {
				assert.True(t, client.IsConflict(err))
			},
		},
		{
			name:   "500 is an internal error",
			path:   "/reports",
			status: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.False(t, client.IsNetworkError(err))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				if tc.body != "" {
					_, _ = w.Write([]byte(tc.body))
				}
			}))
			defer server.Close()

			c, err := client.NewClient(server.URL, client.NewMemoryTokenStore())
			require.NoError(t, err)

			err = c.Post(context.Background(), tc.path, map[string]string{}, nil)
			require.Error(t, err)
			tc.check(t, err)
		})
	}
}

func TestClientTransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	c, err := client.NewClient(server.URL, client.NewMemoryTokenStore())
	require.NoError(t, err)

	err = c.Get(context.Background(), "/reports", nil, nil)
	require.Error(t, err)
	assert.True(t, client.IsNetworkError(err))
	assert.False(t, client.IsUnauthorized(err))
}

func TestClientQueryAndBodyEncoding(t *testing.T) {
	type echo struct {
		Query string            `json:"query"`
		Body  map[string]string `json:"body"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]string{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_ = json.NewEncoder(w).Encode(echo{Query: r.URL.RawQuery, Body: body})
	}))
	defer server.Close()

	c, err := client.NewClient(server.URL, client.NewMemoryTokenStore())
	require.NoError(t, err)

	var got echo
	query := url.Values{"status": []string{"active"}}
	require.NoError(t, c.Get(context.Background(), "/reports", query, &got))
	assert.Equal(t, "status=active", got.Query)

	require.NoError(t, c.Post(context.Background(), "/reports", map[string]string{"title": "Broken bin"}, &got))
	assert.Equal(t, "Broken bin", got.Body["title"])
}

func TestClientUploadSendsMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "photo.jpg", header.Filename)
		_, _ = w.Write([]byte(`{"url":"/uploads/photo.jpg"}`))
	}))
	defer server.Close()

	c, err := client.NewClient(server.URL, client.NewMemoryTokenStore())
	require.NoError(t, err)

	var out map[string]string
	payload := strings.NewReader("fake image bytes")
	require.NoError(t, c.Upload(context.Background(), "/files/upload", "file", "photo.jpg", payload, &out))
	assert.Equal(t, "/uploads/photo.jpg", out["url"])
}

func TestClientRejectsInvalidBaseURL(t *testing.T) {
	_, err := client.NewClient("://not-a-url", client.NewMemoryTokenStore())
	assert.Error(t, err)
}
