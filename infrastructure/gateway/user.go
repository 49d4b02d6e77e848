package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/quickbite/order-service/domain/user"
)

type userPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	TaxVat    string `json:"taxVat"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// UserClient talks to the user service for profile lookups.
type UserClient struct {
	rest *restClient
}

var _ user.Gateway = (*UserClient)(nil)

func NewUserClient(cfg Config) *UserClient {
	return &UserClient{rest: newRESTClient(cfg)}
}

func (c *UserClient) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	var payload userPayload
	if err := c.rest.doJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &payload); err != nil {
		return nil, err
	}
	return &user.User{
		ID:        payload.ID,
		Name:      payload.Name,
		Email:     payload.Email,
		TaxVat:    payload.TaxVat,
		CreatedAt: parseServiceTime(payload.CreatedAt),
		UpdatedAt: parseServiceTime(payload.UpdatedAt),
	}, nil
}
