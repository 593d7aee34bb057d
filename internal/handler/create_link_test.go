package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/iVbk/khmerlink/internal/models"
	"github.com/iVbk/khmerlink/internal/repository"
	"github.com/iVbk/khmerlink/internal/repository/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postForm(t *testing.T, router http.Handler, form url.Values) *http.Response {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, "/create", strings.NewReader(form.Encode()))
	r.Header.Set(contentType, formURLEncoded)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	return w.Result()
}

func TestCreateLink(t *testing.T) {
	tests := []struct {
		name           string
		form           url.Values
		store          repository.MappingStorage
		assertResponse func(t *testing.T, res *http.Response, store repository.MappingStorage)
	}{
		{
			name:  "creates link",
			form:  url.Values{"slug": {"test"}, "url": {"https://example.org"}},
			store: memstore.New(),
			assertResponse: func(t *testing.T, res *http.Response, store repository.MappingStorage) {
				assert.Equal(t, http.StatusOK, res.StatusCode)
				body := getResponseTextPayload(t, res)
				assert.Contains(t, body, "Link created successfully")
				assert.Contains(t, body, "/test")

				got, err := store.Resolve(context.Background(), "test")
				require.NoError(t, err)
				assert.Equal(t, models.Destination("https://example.org"), got)
			},
		},
		{
			name:  "khmer slug round trip",
			form:  url.Values{"slug": {"ផ្ទះ"}, "url": {"https://example.com/home"}},
			store: memstore.New(),
			assertResponse: func(t *testing.T, res *http.Response, store repository.MappingStorage) {
				assert.Equal(t, http.StatusOK, res.StatusCode)
				body := getResponseTextPayload(t, res)
				// the short link carries the percent-encoded slug
				assert.Contains(t, body, "%E1%9E%95%E1%9F%92%E1%9E%91%E1%9F%87")

				got, err := store.Resolve(context.Background(), "ផ្ទះ")
				require.NoError(t, err)
				assert.Equal(t, models.Destination("https://example.com/home"), got)
			},
		},
		{
			name:  "trims whitespace",
			form:  url.Values{"slug": {"  padded  "}, "url": {" https://example.org "}},
			store: memstore.New(),
			assertResponse: func(t *testing.T, res *http.Response, store repository.MappingStorage) {
				assert.Equal(t, http.StatusOK, res.StatusCode)

				got, err := store.Resolve(context.Background(), "padded")
				require.NoError(t, err)
				assert.Equal(t, models.Destination("https://example.org"), got)
			},
		},
		{
			name: "slug already exists",
			form: url.Values{"slug": {"test"}, "url": {"https://other.org"}},
			store: seededStore(t, models.MappingTable{
				"test": "https://example.org",
			}),
			assertResponse: func(t *testing.T, res *http.Response, store repository.MappingStorage) {
				assert.Equal(t, http.StatusOK, res.StatusCode)
				body := getResponseTextPayload(t, res)
				assert.Contains(t, body, "Slug already exists")

				// the original mapping is untouched
				got, err := store.Resolve(context.Background(), "test")
				require.NoError(t, err)
				assert.Equal(t, models.Destination("https://example.org"), got)
			},
		},
		{
			name:  "empty slug gets generated",
			form:  url.Values{"slug": {""}, "url": {"https://example.org"}},
			store: memstore.New(),
			assertResponse: func(t *testing.T, res *http.Response, store repository.MappingStorage) {
				assert.Equal(t, http.StatusOK, res.StatusCode)
				body := getResponseTextPayload(t, res)
				assert.Contains(t, body, "Link created successfully")

				table, err := store.All(context.Background())
				require.NoError(t, err)
				require.Len(t, table, 1)
			},
		},
		{
			name:  "missing url",
			form:  url.Values{"slug": {"test"}},
			store: memstore.New(),
			assertResponse: func(t *testing.T, res *http.Response, store repository.MappingStorage) {
				assert.Equal(t, http.StatusOK, res.StatusCode)
				body := getResponseTextPayload(t, res)
				assert.Contains(t, body, "Destination URL is required")
			},
		},
		{
			name:  "invalid url",
			form:  url.Values{"slug": {"test"}, "url": {"not a url at all"}},
			store: memstore.New(),
			assertResponse: func(t *testing.T, res *http.Response, store repository.MappingStorage) {
				assert.Equal(t, http.StatusOK, res.StatusCode)
				body := getResponseTextPayload(t, res)
				assert.Contains(t, body, "not a valid URL")
			},
		},
		{
			name:  "store failure",
			form:  url.Values{"slug": {"test"}, "url": {"https://example.org"}},
			store: &brokenStore{},
			assertResponse: func(t *testing.T, res *http.Response, store repository.MappingStorage) {
				assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, tt.store)

			res := postForm(t, router, tt.form)
			defer res.Body.Close()

			tt.assertResponse(t, res, tt.store)
		})
	}
}
