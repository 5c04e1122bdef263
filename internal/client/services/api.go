package services

import (
	"context"

	"github.com/dmitrijs2005/tixgo/internal/client/client"
)

// API is the transport the services call. *client.HTTPClient implements it.
type API interface {
	Request(ctx context.Context, method, path string, body any) (client.Body, error)
}
