package webpage_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"collab-notifier/infrastructure/clients/webpage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Date", "Wed, 21 Oct 2015 07:28:00 GMT")
		_, _ = w.Write([]byte("<html>listing</html>"))
	}))
	defer srv.Close()

	page, err := webpage.NewWebpageClient(srv.Client()).Fetch(context.Background(), srv.URL+"/antenna/")

	require.NoError(t, err)
	assert.True(t, page.OK())
	assert.Equal(t, srv.URL+"/antenna/", page.URL)
	assert.Equal(t, "<html>listing</html>", page.Body)
	assert.True(t, time.Date(2015, 10, 21, 7, 28, 0, 0, time.UTC).Equal(page.Date))
}

func TestClient_FetchNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("maintenance"))
	}))
	defer srv.Close()

	page, err := webpage.NewWebpageClient(srv.Client()).Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.False(t, page.OK())
	assert.Equal(t, http.StatusServiceUnavailable, page.StatusCode)
	assert.Equal(t, "maintenance", page.Body)
}

func TestClient_FetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := webpage.NewWebpageClient(nil).Fetch(context.Background(), url)

	assert.Error(t, err)
}
