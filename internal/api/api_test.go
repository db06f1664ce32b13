package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/chatlogin/internal/api"
	"github.com/mcoot/chatlogin/internal/api/apierr"
	"github.com/mcoot/chatlogin/internal/api/response"
	"github.com/mcoot/chatlogin/internal/factory"
	"github.com/mcoot/chatlogin/internal/login"
	"github.com/mcoot/chatlogin/internal/model"
	"github.com/mcoot/chatlogin/internal/shell"
	"github.com/mcoot/chatlogin/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:      testutil.NopLogger(),
		Usernames:   app.Usernames,
		StorageType: app.StorageType,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		data, _ := json.Marshal(b)
		reqBody = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) login(username string) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, "/login", map[string]string{"username": username})
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Health
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, factory.StorageTypeMemory, resp.Storage)
}

func TestLoginSucceeds(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.Queue("abc")

	rr := ts.login("alice")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var user response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, "u_abc", user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, ts.app.MockClock.Now().Equal(user.JoinedAt))
}

func TestErrorStatusMatchesWrittenResponse(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{model.ErrUsernameTooShort, http.StatusBadRequest},
		{fmt.Errorf("reserve: %w", model.ErrUsernameTaken), http.StatusUnauthorized},
		{model.ErrUserNotFound, http.StatusNotFound},
		{apierr.NewInvalidRequestError("bad"), http.StatusBadRequest},
		{errors.New("storage down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rr := httptest.NewRecorder()
			apierr.WriteError(rr, tt.err)

			assert.Equal(t, tt.status, apierr.Status(tt.err))
			assert.Equal(t, rr.Code, apierr.Status(tt.err))
		})
	}
}

func TestLoginRejectsShortUsername(t *testing.T) {
	ts := newTestServer(t)

	for _, name := range []string{"", "ab", "  ab  "} {
		rr := ts.login(name)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "username %q", name)
		assert.Equal(t, apierr.CodeInvalidUsername, errorCode(t, rr))
	}
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/login", "{username:")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))
}

func TestLoginRejectsOversizedBody(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/login", `{"username":"`+strings.Repeat("a", 8<<10)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginRejectsTakenUsername(t *testing.T) {
	ts := newTestServer(t)
	ts.app.Reserve("alice")

	for _, name := range []string{"alice", "ALICE", " alice "} {
		rr := ts.login(name)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "username %q", name)
		assert.Equal(t, apierr.CodeUsernameTaken, errorCode(t, rr))
	}
}

func TestLoginWrongMethod(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeNotFound, errorCode(t, rr))
}

func TestLogoutReleasesUsername(t *testing.T) {
	ts := newTestServer(t)
	ts.app.Reserve("alice")

	rr := ts.request(http.MethodPost, "/logout", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	assert.Equal(t, http.StatusOK, ts.login("alice").Code)
}

func TestLogoutTwiceReportsSecondAsNotFound(t *testing.T) {
	ts := newTestServer(t)
	ts.app.Reserve("alice")

	first := ts.request(http.MethodPost, "/logout", map[string]string{"username": "alice"})
	second := ts.request(http.MethodPost, "/logout", map[string]string{"username": "ALICE"})

	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, http.StatusNotFound, second.Code)
	assert.Equal(t, apierr.CodeUserNotFound, errorCode(t, second))
}

func TestLogoutUnknownUsername(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/logout", map[string]string{"username": "nobody"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeUserNotFound, errorCode(t, rr))
}

func TestConcurrentLoginsForOneNameHaveOneWinner(t *testing.T) {
	ts := newTestServer(t)
	const attempts = 20

	codes := make(chan int, attempts)
	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes <- ts.login("alice").Code
		}()
	}
	wg.Wait()
	close(codes)

	counts := map[int]int{}
	for code := range codes {
		counts[code]++
	}
	assert.Equal(t, map[int]int{http.StatusOK: 1, http.StatusUnauthorized: attempts - 1}, counts)
}

// The login screen against the real server: the first join succeeds, the
// same name is then reported as taken.
func TestScreenAgainstServer(t *testing.T) {
	ts := newTestServer(t)
	server := httptest.NewServer(ts.handler)
	defer server.Close()

	client, err := login.NewClient(login.ClientConfig{Origin: server.URL}, nil, testutil.NopLogger())
	require.NoError(t, err)

	banner := &shell.ErrorBanner{}
	first := &shell.CurrentUser{}
	screen := login.NewScreen(client, banner, first, testutil.NopLogger())
	screen.SetUsername("alice")

	outcome, err := screen.Submit(context.Background())
	require.NoError(t, err)
	require.IsType(t, login.Success{}, outcome)
	user, ok := first.User()
	require.True(t, ok)
	assert.Equal(t, "alice", user.Field("username"))
	assert.NotEmpty(t, user.Field("id"))

	second := login.NewScreen(client, banner, &shell.CurrentUser{}, testutil.NopLogger())
	second.SetUsername("Alice")

	outcome, err = second.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, login.UsernameTaken{}, outcome)
	msg, _ := banner.DisplayedError()
	assert.Equal(t, login.MessageUsernameTaken, msg)

	third := login.NewScreen(client, banner, &shell.CurrentUser{}, testutil.NopLogger())
	third.SetUsername("  ab  ")

	outcome, err = third.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, login.InvalidUsername{}, outcome)
}
