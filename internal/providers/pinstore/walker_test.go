package pinstore_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/pixelplot/tile-indexer/internal/domain"
	"github.com/pixelplot/tile-indexer/internal/logger"
	"github.com/pixelplot/tile-indexer/internal/mocks"
	"github.com/pixelplot/tile-indexer/internal/providers/pinstore"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func jsonHandle(cid string) domain.ObjectHandle {
	return domain.ObjectHandle{
		CID:         cid,
		Name:        cid + ".json",
		ContentType: "application/json",
	}
}

func makePage(prefix string, n int, next string) domain.ObjectPage {
	page := domain.ObjectPage{NextCursor: next}
	for i := 0; i < n; i++ {
		page.Items = append(page.Items, jsonHandle(fmt.Sprintf("%s-%d", prefix, i)))
	}
	return page
}

func TestWalker_Walk_PaginatesUntilShortPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStoreClient(ctrl)
	walker := pinstore.NewWalker(store, 2)

	store.EXPECT().
		ListObjects(gomock.Any(), "", 2).
		Return(makePage("a", 2, "cursor-1"), nil)
	store.EXPECT().
		ListObjects(gomock.Any(), "cursor-1", 2).
		Return(makePage("b", 2, "cursor-2"), nil)
	store.EXPECT().
		ListObjects(gomock.Any(), "cursor-2", 2).
		Return(makePage("c", 1, "cursor-3"), nil)

	candidates, err := walker.Walk(context.Background())
	assert.NoError(t, err)
	assert.Len(t, candidates, 5)
	assert.Equal(t, "a-0", candidates[0].CID)
	assert.Equal(t, "c-0", candidates[4].CID)
}

func TestWalker_Walk_StopsOnEmptyCursor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStoreClient(ctrl)
	walker := pinstore.NewWalker(store, 2)

	// A full page with no continuation token is the last page
	store.EXPECT().
		ListObjects(gomock.Any(), "", 2).
		Return(makePage("a", 2, ""), nil)

	candidates, err := walker.Walk(context.Background())
	assert.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestWalker_Walk_DeduplicatesByCID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStoreClient(ctrl)
	walker := pinstore.NewWalker(store, 2)

	first := domain.ObjectPage{
		Items:      []domain.ObjectHandle{jsonHandle("dup"), jsonHandle("a")},
		NextCursor: "cursor-1",
	}
	// The store repeated "dup" across the page boundary
	second := domain.ObjectPage{
		Items: []domain.ObjectHandle{jsonHandle("dup")},
	}

	store.EXPECT().ListObjects(gomock.Any(), "", 2).Return(first, nil)
	store.EXPECT().ListObjects(gomock.Any(), "cursor-1", 2).Return(second, nil)

	candidates, err := walker.Walk(context.Background())
	assert.NoError(t, err)
	assert.Len(t, candidates, 2)
	assert.Equal(t, "dup", candidates[0].CID)
	assert.Equal(t, "a", candidates[1].CID)
}

func TestWalker_Walk_FiltersNonCandidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStoreClient(ctrl)
	walker := pinstore.NewWalker(store, 10)

	page := domain.ObjectPage{
		Items: []domain.ObjectHandle{
			{CID: "doc", Name: "tile.json", ContentType: "application/json"},
			{CID: "img", Name: "tile.png", ContentType: "image/png"},
			{CID: "legacy", Name: "Legacy.JSON", ContentType: "application/octet-stream"},
		},
	}

	store.EXPECT().ListObjects(gomock.Any(), "", 10).Return(page, nil)

	candidates, err := walker.Walk(context.Background())
	assert.NoError(t, err)
	assert.Len(t, candidates, 2)
	assert.Equal(t, "doc", candidates[0].CID)
	assert.Equal(t, "legacy", candidates[1].CID)
}

func TestWalker_Walk_ListFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStoreClient(ctrl)
	walker := pinstore.NewWalker(store, 2)

	store.EXPECT().
		ListObjects(gomock.Any(), "", 2).
		Return(domain.ObjectPage{}, fmt.Errorf("%w: listing down", domain.ErrUpstreamUnavailable))

	_, err := walker.Walk(context.Background())
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestWalker_Walk_FailureMidWalk(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStoreClient(ctrl)
	walker := pinstore.NewWalker(store, 2)

	store.EXPECT().
		ListObjects(gomock.Any(), "", 2).
		Return(makePage("a", 2, "cursor-1"), nil)
	store.EXPECT().
		ListObjects(gomock.Any(), "cursor-1", 2).
		Return(domain.ObjectPage{}, errors.New("boom"))

	// A partial walk is never returned as complete
	candidates, err := walker.Walk(context.Background())
	assert.Error(t, err)
	assert.Nil(t, candidates)
}

func TestIsCandidate(t *testing.T) {
	tests := []struct {
		name   string
		handle domain.ObjectHandle
		want   bool
	}{
		{"json content type", domain.ObjectHandle{ContentType: "application/json"}, true},
		{"json with charset", domain.ObjectHandle{ContentType: "application/json; charset=utf-8"}, true},
		{"json extension", domain.ObjectHandle{Name: "tile-45.json", ContentType: "binary/octet-stream"}, true},
		{"uppercase extension", domain.ObjectHandle{Name: "TILE.JSON"}, true},
		{"image", domain.ObjectHandle{Name: "tile.png", ContentType: "image/png"}, false},
		{"no hints", domain.ObjectHandle{Name: "blob"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pinstore.IsCandidate(tt.handle))
		})
	}
}
