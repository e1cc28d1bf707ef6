package pinstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/pixelplot/tile-indexer/internal/domain"
	"github.com/pixelplot/tile-indexer/internal/mocks"
	"github.com/pixelplot/tile-indexer/internal/providers/pinstore"
)

func TestNewClient_RequiresEndpoints(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)

	_, err := pinstore.NewClient("", "https://gateway.example.com", httpClient)
	assert.ErrorIs(t, err, domain.ErrConfigurationMissing)

	_, err = pinstore.NewClient("https://api.example.com/pins", "", httpClient)
	assert.ErrorIs(t, err, domain.ErrConfigurationMissing)
}

func TestClient_ListObjects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	client, err := pinstore.NewClient("https://api.example.com/pins/", "https://gateway.example.com", httpClient)
	assert.NoError(t, err)

	httpClient.EXPECT().
		Get(gomock.Any(), "https://api.example.com/pins?limit=100", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, result interface{}) error {
			page := result.(*domain.ObjectPage)
			page.Items = []domain.ObjectHandle{{CID: "Qm1"}}
			page.NextCursor = "next"
			return nil
		})

	page, err := client.ListObjects(context.Background(), "", 100)
	assert.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, "next", page.NextCursor)
}

func TestClient_ListObjects_CursorPropagated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	client, err := pinstore.NewClient("https://api.example.com/pins", "https://gateway.example.com", httpClient)
	assert.NoError(t, err)

	httpClient.EXPECT().
		Get(gomock.Any(), "https://api.example.com/pins?cursor=abc&limit=50", gomock.Any()).
		Return(nil)

	_, err = client.ListObjects(context.Background(), "abc", 50)
	assert.NoError(t, err)
}

func TestClient_ListObjects_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	client, err := pinstore.NewClient("https://api.example.com/pins", "https://gateway.example.com", httpClient)
	assert.NoError(t, err)

	httpClient.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("connection refused"))

	_, err = client.ListObjects(context.Background(), "", 100)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestClient_FetchObject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	client, err := pinstore.NewClient("https://api.example.com/pins", "https://gateway.example.com/", httpClient)
	assert.NoError(t, err)

	httpClient.EXPECT().
		Get(gomock.Any(), "https://gateway.example.com/ipfs/Qm1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, out interface{}) error {
			doc := out.(*map[string]any)
			*doc = map[string]any{"tile": float64(45)}
			return nil
		})

	var doc map[string]any
	err = client.FetchObject(context.Background(), "Qm1", &doc)
	assert.NoError(t, err)
	assert.Equal(t, float64(45), doc["tile"])
}

func TestClient_FetchObject_EmptyCID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	client, err := pinstore.NewClient("https://api.example.com/pins", "https://gateway.example.com", httpClient)
	assert.NoError(t, err)

	var doc map[string]any
	err = client.FetchObject(context.Background(), "", &doc)
	assert.ErrorIs(t, err, domain.ErrMalformedMetadata)
}
