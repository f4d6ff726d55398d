package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaqqye/agency_backend/internal/content"
)

func TestSiteSectionFallsBackToDefaults(t *testing.T) {
	r := newCMSRouter(content.NewMemoryStore())

	w := doJSON(t, r, http.MethodGet, "/site/about", nil)
	require.Equal(t, http.StatusOK, w.Code)
	fields := decode[map[string]any](t, w)
	assert.Equal(t, "We Build Digital Experiences That Drive Results", fields["title"])

	w = doJSON(t, r, http.MethodPost, "/cms", map[string]any{"section": "about", "title": "Custom", "subtitle": ""})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/site/about", nil)
	fields = decode[map[string]any](t, w)
	assert.Equal(t, "Custom", fields["title"])
	assert.Equal(t, "About Us", fields["subtitle"], "empty stored value falls back")
}

func TestSiteSectionNeverFails(t *testing.T) {
	r := newCMSRouter(brokenStore{})

	w := doJSON(t, r, http.MethodGet, "/site/about", nil)
	require.Equal(t, http.StatusOK, w.Code)
	fields := decode[map[string]any](t, w)
	assert.Equal(t, "We Build Digital Experiences That Drive Results", fields["title"])

	w = doJSON(t, r, http.MethodGet, "/site/unknown_section", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestSiteSectionETag(t *testing.T) {
	r := newCMSRouter(content.NewMemoryStore())

	w := doJSON(t, r, http.MethodGet, "/site/footer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)

	w = doJSON(t, r, http.MethodGet, "/site/footer", nil, "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.String())

	doJSON(t, r, http.MethodPost, "/cms", map[string]any{"section": "footer", "footerText": "changed"})
	w = doJSON(t, r, http.MethodGet, "/site/footer", nil, "If-None-Match", etag)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, etag, w.Header().Get("ETag"))
}

func TestSiteSections(t *testing.T) {
	r := newCMSRouter(content.NewMemoryStore())
	w := doJSON(t, r, http.MethodGet, "/site", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string][]string](t, w)
	assert.Contains(t, body["sections"], "about")
	assert.Contains(t, body["sections"], "footer")
}
