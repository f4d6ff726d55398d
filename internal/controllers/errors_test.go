package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zaqqye/agency_backend/internal/database"
	"github.com/zaqqye/agency_backend/internal/markdown"
)

func TestLookupByIDSeparatesMissingFromFailure(t *testing.T) {
	db := newTestDB(t)
	bc := &BlogController{DB: db, Markdown: markdown.NewRenderer(), Logger: zap.NewNop()}
	tc := &TeamController{DB: db, Logger: zap.NewNop()}
	pc := &PricingController{DB: db, Logger: zap.NewNop()}
	cc := &ContactController{DB: db, Logger: zap.NewNop()}

	r := gin.New()
	r.GET("/admin/blog/:id", bc.AdminGet)
	r.PUT("/admin/blog/:id", bc.Update)
	r.GET("/admin/team/:id", tc.Get)
	r.PUT("/admin/team/:id", tc.Update)
	r.GET("/admin/pricing/:id", pc.Get)
	r.PUT("/admin/pricing/:id", pc.Update)
	r.GET("/admin/contacts/:id", cc.AdminGet)

	paths := []string{"/admin/blog/", "/admin/team/", "/admin/pricing/", "/admin/contacts/"}
	id := uuid.NewString()

	for _, p := range paths {
		w := doJSON(t, r, http.MethodGet, p+id, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, p)
	}

	require.NoError(t, database.Close(db))

	for _, p := range paths {
		w := doJSON(t, r, http.MethodGet, p+id, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code, p)
		assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String(), p)
	}
	for _, p := range paths[:3] {
		w := doJSON(t, r, http.MethodPut, p+id, gin.H{"name": "x"})
		assert.Equal(t, http.StatusInternalServerError, w.Code, p)
	}
}
