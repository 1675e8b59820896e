package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog-sync/core/database"
	"catalog-sync/core/loader"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/catalog/client"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/store"
	catalogsync "catalog-sync/feature/catalog/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCatalog struct {
	sets []client.Set
	err  error
}

func (s *stubCatalog) ListSets(ctx context.Context) ([]client.Set, error) { return s.sets, s.err }
func (s *stubCatalog) CardsPage(ctx context.Context, setID string, page int) (*client.CardPage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &client.CardPage{Page: page}, nil
}
func (s *stubCatalog) SetCards(ctx context.Context, setID string) ([]client.Card, error) {
	return nil, s.err
}
func (s *stubCatalog) CardsByID(ctx context.Context, ids []string) ([]client.Card, error) {
	return nil, s.err
}
func (s *stubCatalog) PageSize() int { return client.MaxPageSize }

func setupTestApp(t *testing.T) (*fiber.App, *stubCatalog, *catalog.Feature) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, models.All()...))

	stub := &stubCatalog{sets: []client.Set{{ID: "base1", Name: "Base", Total: 102}}}
	orch := catalogsync.New(stub, store.New(db), catalogsync.Config{}, zap.NewNop())
	feature := catalog.NewFeature(orch, zap.NewNop())

	app := fiber.New()
	mgr := loader.NewManager()
	mgr.Register(feature)
	loaded, err := mgr.LoadAll(app)
	require.NoError(t, err)
	require.Equal(t, []string{"catalog"}, loaded)

	return app, stub, feature
}

func decode(t *testing.T, body io.Reader) map[string]any {
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestHandleSync_Sets(t *testing.T) {
	app, _, _ := setupTestApp(t)

	req := httptest.NewRequest("POST", "/sync", strings.NewReader(`{"mode":"sets"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, "sets", body["mode"])
}

func TestHandleSync_QueryOverridesBody(t *testing.T) {
	app, _, _ := setupTestApp(t)

	req := httptest.NewRequest("POST", "/sync?mode=prices", strings.NewReader(`{"mode":"bogus"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "prices", decode(t, resp.Body)["mode"])
}

func TestHandleSync_BadRequests(t *testing.T) {
	app, _, _ := setupTestApp(t)

	tests := []struct {
		name string
		url  string
	}{
		{"unknown mode", "/sync?mode=everything"},
		{"single set without id", "/sync?mode=single-set"},
		{"negative limit", "/sync?mode=full&limit=-1"},
		{"malformed limit", "/sync?mode=full&limit=ten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.url, nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, false, decode(t, resp.Body)["success"])
		})
	}
}

func TestHandleSync_FailureIs500(t *testing.T) {
	app, stub, _ := setupTestApp(t)
	stub.err = errors.New("catalog unavailable")

	resp, err := app.Test(httptest.NewRequest("GET", "/sync?mode=sets", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "catalog unavailable")
}

func TestHandleStatus(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/sync?mode=sets", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/sync/status", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var st catalogsync.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	require.Len(t, st.Runs, 1)
	assert.Equal(t, models.StatusSuccess, st.Runs[0].Status)
	require.Len(t, st.Sets, 1)
	assert.Equal(t, "base1", st.Sets[0].SetID)
	assert.Equal(t, int64(1), st.PendingPrices)
}

func TestService_Jobs(t *testing.T) {
	_, _, feature := setupTestApp(t)
	svc := feature.Service()

	jobs, err := svc.Jobs([]string{"sets", "prices"})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "sets", jobs[0].Name)
	assert.NoError(t, jobs[0].Run(context.Background()))
	assert.NoError(t, jobs[1].Run(context.Background()))

	_, err = svc.Jobs([]string{"single-set"})
	assert.Error(t, err)

	_, err = svc.Jobs([]string{"nope"})
	assert.ErrorIs(t, err, catalogsync.ErrUnknownMode)
}
