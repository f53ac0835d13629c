package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "catalog-sync/test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(`<yml_catalog><shop><currencies><currency id="USD" rate="1"/></currencies></shop></yml_catalog>`))
	}))
	defer srv.Close()

	client := NewClient(Config{URL: srv.URL, UserAgent: "catalog-sync/test", TimeoutSeconds: 5})
	root, raw, err := client.Fetch(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	// Wrapper container is normalized away
	assert.Equal(t, "shop", root.Name)
	assert.NotNil(t, root.Child("currencies"))
}

func TestClientFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(Config{URL: srv.URL, TimeoutSeconds: 5})
	_, _, err := client.Fetch(context.Background())
	require.Error(t, err)
	var ferr *FetchError
	assert.ErrorAs(t, err, &ferr)
}

func TestClientFetchTransportError(t *testing.T) {
	client := NewClient(Config{URL: "http://127.0.0.1:1", TimeoutSeconds: 1})
	_, _, err := client.Fetch(context.Background())
	require.Error(t, err)
	var ferr *FetchError
	assert.ErrorAs(t, err, &ferr)
}

func TestClientFetchParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<shop><currencies>`))
	}))
	defer srv.Close()

	client := NewClient(Config{URL: srv.URL, TimeoutSeconds: 5})
	_, _, err := client.Fetch(context.Background())
	require.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}
