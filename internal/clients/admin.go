package clients

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/model"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

// AdminClient covers the /admin/v1 user management endpoints.
type AdminClient struct{ c *Client }

func NewAdminClient(c *Client) *AdminClient { return &AdminClient{c: c} }

func userPath(userID int64) string {
	return "/admin/v1/users/" + strconv.FormatInt(userID, 10)
}

func (ac *AdminClient) listUsers(ctx context.Context, local storage.Local, path string) ([]model.User, error) {
	var out []model.User
	if _, err := ac.c.call(ctx, local, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (ac *AdminClient) ListUsers(ctx context.Context, local storage.Local) ([]model.User, error) {
	return ac.listUsers(ctx, local, "/admin/v1/users")
}

func (ac *AdminClient) ListUsersByRole(ctx context.Context, local storage.Local, role string) ([]model.User, error) {
	return ac.listUsers(ctx, local, "/admin/v1/users/role/"+url.PathEscape(role))
}

func (ac *AdminClient) ListAdmins(ctx context.Context, local storage.Local) ([]model.User, error) {
	return ac.listUsers(ctx, local, "/admin/v1/admins")
}

func (ac *AdminClient) ListFrontendUsers(ctx context.Context, local storage.Local) ([]model.User, error) {
	return ac.listUsers(ctx, local, "/admin/v1/frontend-users")
}

func (ac *AdminClient) ListDeletedUsers(ctx context.Context, local storage.Local) ([]model.User, error) {
	return ac.listUsers(ctx, local, "/admin/v1/deleted-users")
}

func (ac *AdminClient) CreateUser(ctx context.Context, local storage.Local, req model.CreateUserRequest) (*model.User, error) {
	return ac.create(ctx, local, "/admin/v1/create-user", req)
}

func (ac *AdminClient) CreateAdmin(ctx context.Context, local storage.Local, req model.CreateUserRequest) (*model.User, error) {
	return ac.create(ctx, local, "/admin/v1/create-admin", req)
}

func (ac *AdminClient) create(ctx context.Context, local storage.Local, path string, req model.CreateUserRequest) (*model.User, error) {
	var u model.User
	if _, err := ac.c.call(ctx, local, http.MethodPost, path, nil, req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (ac *AdminClient) ToggleStatus(ctx context.Context, local storage.Local, userID int64) error {
	_, err := ac.c.call(ctx, local, http.MethodPut, userPath(userID)+"/toggle-status", nil, nil, nil)
	return err
}

func (ac *AdminClient) DeleteUser(ctx context.Context, local storage.Local, userID int64) error {
	_, err := ac.c.call(ctx, local, http.MethodDelete, userPath(userID), nil, nil, nil)
	return err
}

func (ac *AdminClient) RestoreUser(ctx context.Context, local storage.Local, userID int64) error {
	_, err := ac.c.call(ctx, local, http.MethodPut, userPath(userID)+"/restore", nil, nil, nil)
	return err
}

func (ac *AdminClient) AddRole(ctx context.Context, local storage.Local, userID int64, role string) error {
	_, err := ac.c.call(ctx, local, http.MethodPut, userPath(userID)+"/add-role/"+url.PathEscape(role), nil, nil, nil)
	return err
}

func (ac *AdminClient) RemoveRole(ctx context.Context, local storage.Local, userID int64, role string) error {
	_, err := ac.c.call(ctx, local, http.MethodPut, userPath(userID)+"/remove-role/"+url.PathEscape(role), nil, nil, nil)
	return err
}

func (ac *AdminClient) Statistics(ctx context.Context, local storage.Local) (*model.Statistics, error) {
	var s model.Statistics
	if _, err := ac.c.call(ctx, local, http.MethodGet, "/admin/v1/statistics", nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
