package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"collab-notifier/domain/dto"
	"collab-notifier/domain/model"
	"collab-notifier/infrastructure/utils"
	httpHandler "collab-notifier/interfaces/http"
	"collab-notifier/server"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "router-secret"

// emptyRegistry knows no channels.
type emptyRegistry struct{}

func (emptyRegistry) CrawlChannels(context.Context, string) (int, error) { return 0, nil }

func (emptyRegistry) GetChannel(context.Context, string) (*model.ChannelRecord, error) {
	return nil, model.ErrNotFound
}

func (emptyRegistry) UpdateBlacklist(context.Context, dto.ChannelBlacklistRequest) (*model.ChannelRecord, error) {
	return nil, model.ErrNotFound
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	noop := func(context.Context, []byte) error { return nil }
	return server.InitiateRouter(
		httpHandler.NewHealthHandler(),
		httpHandler.NewEventHandler(noop, noop),
		httpHandler.NewChannelHandler(emptyRegistry{}),
		nil,
		secret,
		[]string{"http://localhost:4200"},
	)
}

func TestInitiateRouter_PublicRoutes(t *testing.T) {
	router := newRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	body := strings.NewReader(`{"message":{"data":"e30="}}`)
	req := httptest.NewRequest(http.MethodPost, "/pubsub/videos", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestInitiateRouter_APIRequiresToken(t *testing.T) {
	router := newRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/channels?url=x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := utils.GenerateToken("ops", time.Minute, secret)
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/channels?url=https://www.youtube.com/channel/UC1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInitiateRouter_CORS(t *testing.T) {
	router := newRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:4200", w.Header().Get("Access-Control-Allow-Origin"))
}
