package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/filebot/internal/logging"
	"github.com/dmitrijs2005/filebot/internal/server/models"
	"github.com/dmitrijs2005/filebot/internal/server/provider"
	"github.com/dmitrijs2005/filebot/internal/server/quota"
	"github.com/dmitrijs2005/filebot/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filebot/internal/server/services"
)

func newTestServer(t *testing.T, strategy string) (*Server, *repomanager.MemoryRepositoryManager, *provider.MemoryClient) {
	t.Helper()

	rm := repomanager.NewMemoryRepositoryManager()
	client := provider.NewMemoryClient()
	ledger, err := quota.NewLedger(strategy, rm, client)
	require.NoError(t, err)

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc := services.NewDashboardService(nil, rm, ledger)
	return NewServer(":0", svc, logger), rm, client
}

func viewRequest(t *testing.T, srv *Server, accountID string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/"+accountID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/dashboard/:id")
	c.SetParamNames("id")
	c.SetParamValues(accountID)

	require.NoError(t, srv.view(c))
	return rec
}

func TestView_NotFound(t *testing.T) {
	srv, _, _ := newTestServer(t, "cached")

	rec := viewRequest(t, srv, "ghost")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestView_EmptyAccount(t *testing.T) {
	srv, rm, _ := newTestServer(t, "cached")
	require.NoError(t, rm.Accounts(nil).UpsertOnFirstContact(context.Background(), "u1", "Alice"))

	rec := viewRequest(t, srv, "u1")
	assert.Equal(t, http.StatusOK, rec.Code)

	var view models.DashboardView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "u1", view.AccountID)
	assert.Equal(t, int64(0), view.UsedBytes)
	assert.NotNil(t, view.Files)
	assert.Empty(t, view.Files)
}

func TestView_PopulatedAccount(t *testing.T) {
	srv, rm, _ := newTestServer(t, "cached")
	ctx := context.Background()

	require.NoError(t, rm.Accounts(nil).UpsertOnFirstContact(ctx, "u1", "Alice"))
	require.NoError(t, rm.Accounts(nil).AddPoints(ctx, "u1", 10))
	require.NoError(t, rm.Accounts(nil).AddUsedBytes(ctx, "u1", 2048))
	require.NoError(t, rm.Files(nil).Create(ctx, &models.FileRecord{
		OwnerID:    "u1",
		Name:       "a.txt",
		ContentID:  "cid-a",
		Size:       2048,
		UploadedAt: time.Now(),
	}))

	rec := viewRequest(t, srv, "u1")
	assert.Equal(t, http.StatusOK, rec.Code)

	var view models.DashboardView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, int64(10), view.Points)
	assert.Equal(t, int64(2048), view.UsedBytes)
	require.Len(t, view.Files, 1)
	assert.Equal(t, "cid-a", view.Files[0].ContentID)
}

func TestView_UsageUnavailable(t *testing.T) {
	srv, rm, client := newTestServer(t, "live")
	ctx := context.Background()

	require.NoError(t, rm.Accounts(nil).UpsertOnFirstContact(ctx, "u1", "Alice"))
	require.NoError(t, rm.Accounts(nil).SetCredential(ctx, "u1", "tok"))
	client.UsageErr = errors.New("listing down")

	rec := viewRequest(t, srv, "u1")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	srv, _, _ := newTestServer(t, "cached")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context cancellation")
	}
}
