package airtable

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	c := NewClient("test-key", "appBase", "tblTable")
	c.SetBaseURL(serverURL)
	return c
}

func TestFetchAll_FollowsOffsetCursor(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/appBase/tblTable", r.URL.Path)

		switch r.URL.Query().Get("offset") {
		case "":
			fmt.Fprint(w, `{"records": [{"id": "rec1", "fields": {"Company Name": "Acme"}}], "offset": "cursor1"}`)
		case "cursor1":
			fmt.Fprint(w, `{"records": [{"id": "rec2", "fields": {}}]}`)
		default:
			t.Errorf("unexpected offset %q", r.URL.Query().Get("offset"))
		}
	}))
	defer server.Close()

	records, err := newTestClient(server.URL).FetchAll(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "rec1", records[0].ID)
	assert.Equal(t, "rec2", records[1].ID)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestFetchAll_RetriesOnRateLimit(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"records": [{"id": "rec1", "fields": {}}]}`)
	}))
	defer server.Close()

	records, err := newTestClient(server.URL).FetchAll(context.Background())

	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 2, calls)
}

func TestFetchAll_AuthFailureIsFatal(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchAll(context.Background())

	assert.Error(t, err)
	assert.Equal(t, 1, calls, "auth failures should not be retried")
}

func TestFetchAll_MissingCredentials(t *testing.T) {
	c := NewClient("", "appBase", "tblTable")
	_, err := c.FetchAll(context.Background())
	assert.Error(t, err)

	c = NewClient("key", "", "")
	_, err = c.FetchAll(context.Background())
	assert.Error(t, err)
}
