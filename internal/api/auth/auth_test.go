package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authapi "artconsole/internal/api/auth"
	"artconsole/internal/testutil"
	"artconsole/internal/transport"
)

func TestLogin_Success(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, sess := testutil.Client(ts)
	client := authapi.NewClient(tc, sess)

	require.NoError(t, client.Login(context.Background(), testutil.AdminEmail, testutil.AdminPassword))
	assert.True(t, sess.Authenticated())
	assert.NotEmpty(t, sess.Token())
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, sess := testutil.Client(ts)
	client := authapi.NewClient(tc, sess)

	err := client.Login(context.Background(), testutil.AdminEmail, "wrong")
	var apiErr *transport.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	assert.False(t, sess.Authenticated(), "no token stored after a failed login")
}

func TestLogout_ClearsSession(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, sess := testutil.LoginClient(t, ts)
	client := authapi.NewClient(tc, sess)

	require.NoError(t, client.Logout(context.Background()))
	assert.False(t, sess.Authenticated())
}

func TestLogout_ClearsLocallyEvenWhenRequestFails(t *testing.T) {
	ts := testutil.StartServer(t)
	tc, sess := testutil.LoginClient(t, ts)
	client := authapi.NewClient(tc, sess)

	// Tear the server down first; the local session must still end.
	ts.Close()
	_ = client.Logout(context.Background())
	assert.False(t, sess.Authenticated())
}
