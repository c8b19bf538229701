package twitter_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"collab-notifier/domain/repository"
	"collab-notifier/infrastructure/clients/twitter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, body string, gotText *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/2/tweets", r.URL.Path)
		var req struct {
			Text string `json:"text"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if gotText != nil {
			*gotText = req.Text
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Publish(t *testing.T) {
	var gotText string
	srv := newServer(t, http.StatusCreated, `{"data":{"id":"1445880548472328192","text":"hello"}}`, &gotText)
	client := twitter.NewTwitterClientWithHTTP(srv.Client(), srv.URL+"/")

	id, err := client.Publish(context.Background(), "#VTuberコラボ通知\nhello")

	require.NoError(t, err)
	assert.Equal(t, "1445880548472328192", id)
	assert.Equal(t, "#VTuberコラボ通知\nhello", gotText)
}

func TestClient_PublishErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		code    int
	}{
		{
			name:    "duplicate detail",
			status:  http.StatusForbidden,
			body:    `{"detail":"You are not allowed to create a Tweet with duplicate content.","title":"Forbidden","status":403}`,
			wantErr: repository.ErrDuplicatePost,
		},
		{
			name:    "duplicate code",
			status:  http.StatusForbidden,
			body:    `{"errors":[{"code":187,"message":"Status is a duplicate."}]}`,
			wantErr: repository.ErrDuplicatePost,
			code:    187,
		},
		{
			name:    "too long detail",
			status:  http.StatusBadRequest,
			body:    `{"detail":"Your Tweet text is too long.","title":"Invalid Request"}`,
			wantErr: repository.ErrMessageTooLong,
		},
		{
			name:    "too long code",
			status:  http.StatusForbidden,
			body:    `{"errors":[{"code":186,"message":"Tweet needs to be a bit shorter."}]}`,
			wantErr: repository.ErrMessageTooLong,
			code:    186,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.status, tt.body, nil)
			client := twitter.NewTwitterClientWithHTTP(srv.Client(), srv.URL)

			_, err := client.Publish(context.Background(), "text")

			assert.ErrorIs(t, err, tt.wantErr)
			var pubErr *repository.PublishError
			require.True(t, errors.As(err, &pubErr))
			assert.Equal(t, tt.status, pubErr.StatusCode)
			assert.Equal(t, tt.code, pubErr.Code)
		})
	}
}

func TestClient_PublishOtherFailure(t *testing.T) {
	srv := newServer(t, http.StatusTooManyRequests, `{"title":"Too Many Requests","detail":"Too Many Requests"}`, nil)
	client := twitter.NewTwitterClientWithHTTP(srv.Client(), srv.URL)

	_, err := client.Publish(context.Background(), "text")

	require.Error(t, err)
	assert.False(t, errors.Is(err, repository.ErrDuplicatePost))
	assert.False(t, errors.Is(err, repository.ErrMessageTooLong))
	assert.True(t, strings.Contains(err.Error(), "429"))
}

func TestClient_PublishNonJSONError(t *testing.T) {
	srv := newServer(t, http.StatusBadGateway, `upstream failure`, nil)
	client := twitter.NewTwitterClientWithHTTP(srv.Client(), srv.URL)

	_, err := client.Publish(context.Background(), "text")

	var pubErr *repository.PublishError
	require.True(t, errors.As(err, &pubErr))
	assert.Equal(t, "upstream failure", pubErr.Detail)
	assert.Nil(t, pubErr.Err)
}

func TestDryRunPublisher(t *testing.T) {
	id, err := twitter.NewDryRunPublisher().Publish(context.Background(), "text")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "dry-run-"))
}
