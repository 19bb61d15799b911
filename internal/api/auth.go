package api

import (
	"context"
	"net/http"
)

// Session is what the backend hands back on a successful login. The token is
// opaque to the client; it is attached as a bearer header and never inspected.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthClient struct {
	client *Client
}

func NewAuthClient(client *Client) *AuthClient {
	return &AuthClient{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session and installs the returned token
// on the shared client.
func (a *AuthClient) Login(ctx context.Context, email, password string) (Session, error) {
	var session Session
	err := a.client.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &session)
	if err != nil {
		return Session{}, err
	}

	a.client.SetToken(session.Token)
	return session, nil
}
