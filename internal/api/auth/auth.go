package auth

import (
	"context"

	"artconsole/internal/session"
	"artconsole/internal/transport"
)

// Client handles the login/logout round-trips. These are the only
// routes besides /public/* that go out without a bearer token.
type Client struct {
	t    *transport.Client
	sess *session.Session
}

func NewClient(t *transport.Client, sess *session.Session) *Client {
	return &Client{t: t, sess: sess}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token and stores it in the
// session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp loginResponse
	err := c.t.JSON(ctx, "POST", "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return err
	}
	return c.sess.SetToken(resp.Token)
}

// Logout tells the backend to revoke the token, then clears it
// locally. The local clear happens even if the request fails.
func (c *Client) Logout(ctx context.Context) error {
	reqErr := c.t.JSON(ctx, "POST", "/auth/logout", nil, nil)
	if err := c.sess.Clear(); err != nil {
		return err
	}
	return reqErr
}
