// Package pinstore reads the content-addressed object store: a
// cursor-paginated pin listing API plus a gateway for fetch-by-CID.
package pinstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pixelplot/tile-indexer/internal/adapter"
	"github.com/pixelplot/tile-indexer/internal/domain"
)

// Client defines the pin store read operations the walker and resolver
// depend on
//
//go:generate mockgen -source=client.go -destination=../../mocks/pinstore_client.go -package=mocks -mock_names=Client=MockStoreClient
type Client interface {
	// ListObjects fetches one page of the pin listing. cursor is the
	// opaque continuation token from the previous page ("" for the first)
	ListObjects(ctx context.Context, cursor string, limit int) (domain.ObjectPage, error)

	// FetchObject fetches an object by CID through the gateway and
	// decodes it as JSON into out
	FetchObject(ctx context.Context, cid string, out interface{}) error
}

type client struct {
	listURL    string
	gatewayURL string
	httpClient adapter.HTTPClient
}

// NewClient creates a pin store client. listURL is the pin listing API
// endpoint, gatewayURL the content gateway base.
func NewClient(listURL, gatewayURL string, httpClient adapter.HTTPClient) (Client, error) {
	if listURL == "" {
		return nil, fmt.Errorf("%w: pin store list URL", domain.ErrConfigurationMissing)
	}
	if gatewayURL == "" {
		return nil, fmt.Errorf("%w: pin store gateway URL", domain.ErrConfigurationMissing)
	}

	return &client{
		listURL:    strings.TrimRight(listURL, "/"),
		gatewayURL: strings.TrimRight(gatewayURL, "/"),
		httpClient: httpClient,
	}, nil
}

// ListObjects fetches one page of the pin listing
func (c *client) ListObjects(ctx context.Context, cursor string, limit int) (domain.ObjectPage, error) {
	q := url.Values{}
	q.Set("limit", fmt.Sprintf("%d", limit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	var page domain.ObjectPage
	if err := c.httpClient.Get(ctx, c.listURL+"?"+q.Encode(), &page); err != nil {
		return domain.ObjectPage{}, fmt.Errorf("%w: failed to list objects: %v", domain.ErrUpstreamUnavailable, err)
	}

	return page, nil
}

// FetchObject fetches an object by CID through the gateway
func (c *client) FetchObject(ctx context.Context, cid string, out interface{}) error {
	if cid == "" {
		return fmt.Errorf("%w: empty content identifier", domain.ErrMalformedMetadata)
	}

	objectURL := fmt.Sprintf("%s/ipfs/%s", c.gatewayURL, cid)
	if err := c.httpClient.Get(ctx, objectURL, out); err != nil {
		return fmt.Errorf("failed to fetch object %s: %w", cid, err)
	}

	return nil
}
