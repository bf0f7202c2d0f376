// Package testutil spins up the in-process backend for integration
// tests and hands back authenticated SDK clients.
package testutil

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	authapi "artconsole/internal/api/auth"
	"artconsole/internal/session"
	"artconsole/internal/stubapi"
	"artconsole/internal/transport"
)

const (
	AdminEmail    = "admin@example.com"
	AdminPassword = "admin12345"
)

// StartServer boots a seeded backend on an httptest listener. The
// listener is torn down with the test.
func StartServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := stubapi.New([]byte("test-secret"), AdminEmail, AdminPassword)
	srv.Store().Seed()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// Client returns an unauthenticated transport pointed at ts.
func Client(ts *httptest.Server) (*transport.Client, *session.Session) {
	sess := session.New()
	return transport.New(sess, transport.WithBaseURL(ts.URL)), sess
}

// LoginClient returns a transport already logged in as the seeded admin.
func LoginClient(t *testing.T, ts *httptest.Server) (*transport.Client, *session.Session) {
	t.Helper()
	tc, sess := Client(ts)
	err := authapi.NewClient(tc, sess).Login(context.Background(), AdminEmail, AdminPassword)
	require.NoError(t, err)
	return tc, sess
}
