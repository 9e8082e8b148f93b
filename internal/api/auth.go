package api

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a user record and token
func (c *Client) Login(ctx context.Context, creds Credentials) (User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &user); err != nil {
		return User{}, err
	}
	return user, nil
}
