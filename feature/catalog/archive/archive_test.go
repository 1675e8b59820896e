package archive

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalog-sync/core/storage"
	"catalog-sync/core/storage/mocks"
	"catalog-sync/feature/catalog/client"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestArchive(c storage.Client) *Archive {
	a := New(c, storage.Config{Bucket: "snapshots", Prefix: "catalog"})
	a.now = func() time.Time { return time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC) }
	return a
}

func TestArchive_Sets(t *testing.T) {
	mockClient := new(mocks.Client)
	a := newTestArchive(mockClient)

	mockClient.On("PutObject", mock.Anything, "snapshots", "catalog/sets/20260504T030201Z.json", mock.Anything, mock.AnythingOfType("int64"), mock.MatchedBy(func(o minio.PutObjectOptions) bool {
		return o.ContentType == "application/json"
	})).Return(minio.UploadInfo{}, nil)

	err := a.Sets(context.Background(), []client.Set{{ID: "base1"}})
	assert.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestArchive_CardsFailure(t *testing.T) {
	mockClient := new(mocks.Client)
	a := newTestArchive(mockClient)

	mockClient.On("PutObject", mock.Anything, "snapshots", "catalog/cards/base1/20260504T030201Z.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("bucket gone"))

	err := a.Cards(context.Background(), "base1", []client.Card{{ID: "base1-1"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "catalog/cards/base1/")
}

func TestArchive_Keys(t *testing.T) {
	a := New(nil, storage.Config{Prefix: ""})
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))

	assert.Equal(t, "sets/20260102T020405Z.json", a.SetsKey(ts))
	assert.Equal(t, "cards/sv1/20260102T020405Z.json", a.CardsKey("sv1", ts))
}
