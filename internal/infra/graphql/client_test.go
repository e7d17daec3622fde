package graphql

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gqlbatch/internal/domain"
)

func TestSendPostsDocumentWithBearerToken(t *testing.T) {
	var gotAuth, gotContentType, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Query string `json:"query"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		gotQuery = req.Query
		w.Write([]byte(`{"data":{"ok":true}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sekrit", 0)
	resp, err := c.Send(context.Background(), domain.Operation{Text: "query { ok }", Label: "1"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer sekrit", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "query { ok }", gotQuery)
	assert.Equal(t, `{"data":{"ok":true}}`, resp.Body)
	assert.False(t, resp.HasErrors)
}

func TestSendSurfacesGraphQLErrorsWithoutTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null,"errors":[{"message":"boom"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", 0)
	resp, err := c.Send(context.Background(), domain.Operation{Text: "query { ok }"})
	require.NoError(t, err)
	assert.True(t, resp.HasErrors)
	assert.Contains(t, resp.Body, "boom")
}

func TestSendPartialDataWithErrorsStillFlagged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"user":{"id":1}},"errors":[{"message":"partial"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", 0)
	resp, err := c.Send(context.Background(), domain.Operation{Text: "query { user { id } }"})
	require.NoError(t, err)
	// Partial data alongside errors counts as a rejection upstream.
	assert.True(t, resp.HasErrors)
}

func TestSendNon2xxIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", 0)
	_, err := c.Send(context.Background(), domain.Operation{Text: "query { ok }"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestSendMalformedBodyIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", 0)
	_, err := c.Send(context.Background(), domain.Operation{Text: "query { ok }"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed response body")
}

func TestSendConnectionRefusedIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, "tok", 0)
	_, err := c.Send(context.Background(), domain.Operation{Text: "query { ok }"})
	assert.Error(t, err)
}

func TestSendHonorsConfiguredTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := NewClient(srv.URL, "tok", 50*time.Millisecond)
	_, err := c.Send(context.Background(), domain.Operation{Text: "query { ok }"})
	assert.Error(t, err)
}
