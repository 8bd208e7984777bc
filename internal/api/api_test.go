package api

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/clausebook/internal/catalog"
	"github.com/mesh-intelligence/clausebook/pkg/types"
)

var testEntities = []types.Entity{
	{ID: "confidentiality", Name: "Confidentiality Clause", Category: types.CategoryLegal,
		Content: "The Recipient shall hold all Confidential Information in strict confidence.", Version: "1.0"},
	{ID: "governing-law", Name: "Governing Law", Category: types.CategoryLegal,
		Content: "This Agreement shall be governed by the laws of the State of [STATE] and [STATE] courts.", Version: "1.0"},
	{ID: "confidential-footer", Name: "Confidential Footer", Category: types.CategoryFooter,
		Content: "CONFIDENTIAL", Version: "1.0"},
}

// newTestServer starts the router over a fresh in-memory catalog.
func newTestServer(t *testing.T) (*httptest.Server, *catalog.Store) {
	t.Helper()
	lib, err := catalog.New(testEntities)
	require.NoError(t, err)
	srv := httptest.NewServer(NewRouter(lib, nil))
	t.Cleanup(srv.Close)
	return srv, lib
}

func doRequest(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func entityIDs(entities []types.Entity) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.ID
	}
	return out
}

func TestListEntities(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantIDs    []string
	}{
		{name: "all in registration order", query: "", wantStatus: http.StatusOK,
			wantIDs: []string{"confidentiality", "governing-law", "confidential-footer"}},
		{name: "by category", query: "?category=legal", wantStatus: http.StatusOK,
			wantIDs: []string{"confidentiality", "governing-law"}},
		{name: "category is case insensitive", query: "?category=FOOTER", wantStatus: http.StatusOK,
			wantIDs: []string{"confidential-footer"}},
		{name: "search ignores case", query: "?q=CONFIDENTIAL", wantStatus: http.StatusOK,
			wantIDs: []string{"confidentiality", "confidential-footer"}},
		{name: "category and search intersect", query: "?category=legal&q=confidential", wantStatus: http.StatusOK,
			wantIDs: []string{"confidentiality"}},
		{name: "no match is an empty list", query: "?q=zebra", wantStatus: http.StatusOK,
			wantIDs: []string{}},
		{name: "invalid category", query: "?category=invalid-value", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/entities"+tt.query, "")
			require.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var got []types.Entity
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, tt.wantIDs, entityIDs(got))
		})
	}
}

func TestGetEntity(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/entities/governing-law", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var got types.Entity
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Governing Law", got.Name)
	assert.Equal(t, types.CategoryLegal, got.Category)

	resp, body = doRequest(t, http.MethodGet, srv.URL+"/api/entities/missing", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "entity not found")
}

func TestPutEntity(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		check      func(t *testing.T, lib *catalog.Store)
	}{
		{
			name:       "registers a new entity with the path id",
			path:       "/api/entities/indemnity",
			body:       `{"id":"ignored","name":"Indemnity","category":"legal","content":"[PARTY] shall indemnify","version":"1.0"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, lib *catalog.Store) {
				e, ok := lib.Get("indemnity")
				require.True(t, ok)
				assert.Equal(t, "Indemnity", e.Name)
				assert.False(t, e.LastUpdated.IsZero())
				_, ok = lib.Get("ignored")
				assert.False(t, ok)
			},
		},
		{
			name:       "overwrites an existing entity in place",
			path:       "/api/entities/confidentiality",
			body:       `{"name":"Confidentiality","category":"legal","content":"updated","version":"2.0"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, lib *catalog.Store) {
				e, _ := lib.Get("confidentiality")
				assert.Equal(t, "updated", e.Content)
				assert.Equal(t, "confidentiality", lib.All()[0].ID)
			},
		},
		{
			name:       "invalid category is rejected",
			path:       "/api/entities/bad",
			body:       `{"name":"Bad","category":"invalid-value","content":"x"}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, lib *catalog.Store) {
				assert.Equal(t, 3, lib.Len())
			},
		},
		{
			name:       "missing name is rejected",
			path:       "/api/entities/nameless",
			body:       `{"category":"legal","content":"x"}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, lib *catalog.Store) {
				_, ok := lib.Get("nameless")
				assert.False(t, ok)
			},
		},
		{
			name:       "malformed JSON is rejected",
			path:       "/api/entities/broken",
			body:       `not-json`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, lib *catalog.Store) {
				assert.Equal(t, 3, lib.Len())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, lib := newTestServer(t)
			resp, _ := doRequest(t, http.MethodPut, srv.URL+tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			tt.check(t, lib)
		})
	}
}

func TestResolveEntity(t *testing.T) {
	srv, lib := newTestServer(t)

	tests := []struct {
		name           string
		path           string
		body           string
		wantStatus     int
		wantContains   string
		wantUnresolved []string
	}{
		{
			name:           "replaces every occurrence",
			path:           "/api/entities/governing-law/resolve",
			body:           `{"values":{"STATE":"Delaware"}}`,
			wantStatus:     http.StatusOK,
			wantContains:   "laws of the State of Delaware and Delaware courts",
			wantUnresolved: []string{},
		},
		{
			name:           "unmapped placeholders are reported",
			path:           "/api/entities/governing-law/resolve",
			body:           `{"values":{"COUNTY":"Kent"}}`,
			wantStatus:     http.StatusOK,
			wantContains:   "State of [STATE]",
			wantUnresolved: []string{"STATE"},
		},
		{
			name:           "empty body leaves text unchanged",
			path:           "/api/entities/governing-law/resolve",
			wantStatus:     http.StatusOK,
			wantContains:   "State of [STATE]",
			wantUnresolved: []string{"STATE"},
		},
		{
			name:       "unknown id",
			path:       "/api/entities/missing/resolve",
			body:       `{"values":{}}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed body",
			path:       "/api/entities/governing-law/resolve",
			body:       `{"values":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, http.MethodPost, srv.URL+tt.path, tt.body)
			require.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var got resolveResponse
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Contains(t, got.Text, tt.wantContains)
			assert.Equal(t, tt.wantUnresolved, got.Unresolved)
		})
	}

	e, _ := lib.Get("governing-law")
	assert.Contains(t, e.Content, "[STATE]", "resolution must not modify the stored entity")
}

func TestListCategories(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/categories", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got []string
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, []string{"legal", "boilerplate", "signature", "header", "footer"}, got)
}

func TestServeListenerShutsDownOnCancel(t *testing.T) {
	lib, err := catalog.New(testEntities)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ServeListener(ctx, ln, NewRouter(lib, nil), nil) }()

	resp, _ := doRequest(t, http.MethodGet, "http://"+ln.Addr().String()+"/api/categories", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
