package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iVbk/khmerlink/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListLinks(t *testing.T) {
	table := models.MappingTable{
		"ផ្ទះ": "https://example.com/home",
		"abc":  "https://example.com/other",
	}
	router := newTestRouter(t, seededStore(t, table))

	r := httptest.NewRequest(http.MethodGet, "/api/links", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	res := w.Result()
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, applicationJSON, res.Header.Get(contentType))

	var got models.MappingTable
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	assert.Equal(t, table, got)
}

func TestListLinks_StoreFailure(t *testing.T) {
	router := newTestRouter(t, &brokenStore{})

	r := httptest.NewRequest(http.MethodGet, "/api/links", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
}
