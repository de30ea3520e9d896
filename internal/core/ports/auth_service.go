package ports

import "context"

// UserInfo is the display representation returned by the who-am-I endpoint.
type UserInfo struct {
	ID       string   `json:"Id"`
	UserName string   `json:"UserName"`
	Roles    []string `json:"Roles"`
}

type AuthService interface {
	// Login returns a signed token, or domain.ErrInvalidCredentials for any
	// bad username/password combination.
	Login(ctx context.Context, username, password string) (string, error)
	WhoAmI(ctx context.Context, principalName string) (*UserInfo, error)
}
