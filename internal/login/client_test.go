package login

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientLoginSendsJSONPost(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"username":"alice"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u1","username":"alice"}`))
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{Origin: server.URL}, nil, nil)
	require.NoError(t, err)

	resp, err := client.Login(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"id":"u1","username":"alice"}`, string(resp.Body))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientLoginEndpoint(t *testing.T) {
	client, err := NewClient(ClientConfig{Origin: "http://chat.test", APIURL: "/api/"}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "http://chat.test/api/login", client.Endpoint())
}

func TestClientLoginRejectsOversizedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte(" "), maxBodySize+1))
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{Origin: server.URL}, nil, nil)
	require.NoError(t, err)

	resp, err := client.Login(context.Background(), "alice")

	assert.Nil(t, resp)
	require.ErrorIs(t, err, ErrResponseTooLarge)
	assert.NotErrorIs(t, err, ErrServerUnavailable)
	assert.Equal(t, MessageUnhandled, Message(Classify(resp, err)))
}

func TestClientLoginAcceptsBodyAtLimit(t *testing.T) {
	body := append([]byte(`"alice"`), bytes.Repeat([]byte(" "), maxBodySize-7)...)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{Origin: server.URL}, nil, nil)
	require.NoError(t, err)

	resp, err := client.Login(context.Background(), "alice")
	require.NoError(t, err)

	assert.Len(t, resp.Body, maxBodySize)
	assert.IsType(t, Success{}, Classify(resp, nil))
}

func TestClientLoginReturnsErrorStatusesAsResponses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{Origin: server.URL}, nil, nil)
	require.NoError(t, err)

	resp, err := client.Login(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestClientLoginUsesAPIURL(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{Origin: "http://unused.invalid", APIURL: server.URL + "/api/"}, nil, nil)
	require.NoError(t, err)

	_, err = client.Login(context.Background(), "ab")
	require.NoError(t, err)
	assert.Equal(t, "/api/login", path)
}

func TestClientLoginTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := NewClient(ClientConfig{Origin: url}, nil, nil)
	require.NoError(t, err)

	resp, err := client.Login(context.Background(), "alice")
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrServerUnavailable)
}

func TestClientLoginTimeoutIsTransportFailure(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client, err := NewClient(ClientConfig{Origin: server.URL, Timeout: 50 * time.Millisecond}, nil, nil)
	require.NoError(t, err)

	_, err = client.Login(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrServerUnavailable)
}

func TestClientLoginContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{Origin: server.URL}, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Login(ctx, "alice")
	assert.ErrorIs(t, err, ErrServerUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRequestEncoding(t *testing.T) {
	data, err := json.Marshal(Request{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, `{"username":"alice"}`, string(data))
}

func TestResolveEndpoint(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		apiURL string
		want   string
	}{
		{"empty api url is relative to origin", "http://localhost:8080", "", "http://localhost:8080/login"},
		{"origin path is replaced by absolute path", "http://localhost:8080/chat/", "", "http://localhost:8080/login"},
		{"absolute api url ignores origin", "http://localhost:8080", "https://api.example.com", "https://api.example.com/login"},
		{"trailing slash is trimmed", "", "https://api.example.com/v1/", "https://api.example.com/v1/login"},
		{"path-only api url uses origin host", "http://localhost:8080", "/api", "http://localhost:8080/api/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveEndpoint(tt.origin, tt.apiURL, LoginPath)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveEndpointRequiresAbsoluteOrigin(t *testing.T) {
	_, err := ResolveEndpoint("", "", LoginPath)
	assert.ErrorIs(t, err, ErrInvalidEndpoint)

	_, err = ResolveEndpoint("localhost:8080", "", LoginPath)
	assert.ErrorIs(t, err, ErrInvalidEndpoint)
}
