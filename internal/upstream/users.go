package upstream

import (
	"context"
	"net/http"

	"github.com/tickify/gateway/internal/models"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterParams struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	raw, err := c.send(ctx, "", "login", http.MethodPost, "/auth/login", creds)
	if err != nil {
		return LoginResult{}, err
	}
	return decodeObject[LoginResult](raw)
}

func (c *Client) Register(ctx context.Context, p RegisterParams) (models.User, error) {
	raw, err := c.send(ctx, "", "register", http.MethodPost, "/auth/register", p)
	if err != nil {
		return models.User{}, err
	}
	return decodeObject[models.User](raw, "user")
}

func (c *Client) GetProfile(ctx context.Context, token string) (models.User, error) {
	raw, err := c.get(ctx, token, "get_profile", "/users/me", nil)
	if err != nil {
		return models.User{}, err
	}
	return decodeObject[models.User](raw, "user")
}

type ProfileUpdate struct {
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, token string, p ProfileUpdate) (models.User, error) {
	raw, err := c.send(ctx, token, "update_profile", http.MethodPatch, "/users/profile", p)
	if err != nil {
		return models.User{}, err
	}
	return decodeObject[models.User](raw, "user")
}

type PasswordChange struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (c *Client) ChangePassword(ctx context.Context, token string, p PasswordChange) error {
	_, err := c.send(ctx, token, "change_password", http.MethodPatch, "/users/change-password", p)
	return err
}

type UserPayload struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	raw, err := c.get(ctx, token, "list_users", "/admin/users", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.User](raw, "users")
}

func (c *Client) CreateUser(ctx context.Context, token string, p UserPayload) (models.User, error) {
	raw, err := c.send(ctx, token, "create_user", http.MethodPost, "/admin/users", p)
	if err != nil {
		return models.User{}, err
	}
	return decodeObject[models.User](raw, "user")
}

func (c *Client) UpdateUser(ctx context.Context, token, id string, p UserPayload) (models.User, error) {
	raw, err := c.send(ctx, token, "update_user", http.MethodPut, "/admin/users/"+id, p)
	if err != nil {
		return models.User{}, err
	}
	return decodeObject[models.User](raw, "user")
}

func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	_, err := c.send(ctx, token, "delete_user", http.MethodDelete, "/admin/users/"+id, nil)
	return err
}
