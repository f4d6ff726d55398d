package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zaqqye/agency_backend/internal/models"
)

type teamList struct {
	Data []models.TeamMember `json:"data"`
}

func newTeamRouter(t *testing.T) *gin.Engine {
	tc := &TeamController{DB: newTestDB(t), Logger: zap.NewNop()}
	r := gin.New()
	r.GET("/team", tc.List)
	r.GET("/admin/team", tc.AdminList)
	r.POST("/admin/team", tc.Create)
	r.POST("/admin/team/reorder", tc.Reorder)
	r.GET("/admin/team/:id", tc.Get)
	r.PUT("/admin/team/:id", tc.Update)
	r.DELETE("/admin/team/:id", tc.Delete)
	return r
}

func TestTeamCreateAppendsInOrder(t *testing.T) {
	r := newTeamRouter(t)

	var ids []string
	for _, name := range []string{"Ada", "Grace", "Linus"} {
		w := doJSON(t, r, http.MethodPost, "/admin/team", gin.H{
			"name":        name,
			"role":        "Engineer",
			"socialLinks": gin.H{"github": "https://github.com/" + name, "twitter": ""},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		m := decode[models.TeamMember](t, w)
		ids = append(ids, m.ID)
		assert.Equal(t, len(ids)-1, m.Order)
		assert.NotContains(t, m.SocialLinks, "twitter")
	}

	w := doJSON(t, r, http.MethodPost, "/admin/team", gin.H{"name": "Hidden", "role": "Intern", "active": false})
	require.Equal(t, http.StatusCreated, w.Code)
	hidden := decode[models.TeamMember](t, w)
	assert.False(t, hidden.Active)

	w = doJSON(t, r, http.MethodGet, "/admin/team/"+hidden.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[models.TeamMember](t, w).Active)

	w = doJSON(t, r, http.MethodGet, "/team", nil)
	list := decode[teamList](t, w)
	require.Len(t, list.Data, 3)
	assert.Equal(t, "Ada", list.Data[0].Name)

	w = doJSON(t, r, http.MethodGet, "/admin/team", nil)
	assert.Len(t, decode[teamList](t, w).Data, 4)

	w = doJSON(t, r, http.MethodPost, "/admin/team/reorder", gin.H{"ids": []string{ids[2], ids[0], ids[1]}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/team", nil)
	list = decode[teamList](t, w)
	require.Len(t, list.Data, 3)
	assert.Equal(t, []string{"Linus", "Ada", "Grace"}, []string{list.Data[0].Name, list.Data[1].Name, list.Data[2].Name})
}

func TestTeamReorderRejectsBadIDs(t *testing.T) {
	r := newTeamRouter(t)

	w := doJSON(t, r, http.MethodPost, "/admin/team/reorder", gin.H{"ids": []string{"not-a-uuid"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	id := uuid.NewString()
	w = doJSON(t, r, http.MethodPost, "/admin/team/reorder", gin.H{"ids": []string{id, id}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/admin/team/reorder", gin.H{"ids": []string{id}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTeamUpdateAndDelete(t *testing.T) {
	r := newTeamRouter(t)

	w := doJSON(t, r, http.MethodPost, "/admin/team", gin.H{"name": "Ada", "role": "Engineer"})
	m := decode[models.TeamMember](t, w)

	w = doJSON(t, r, http.MethodPut, "/admin/team/"+m.ID, gin.H{"role": "CTO", "active": false})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.TeamMember](t, w)
	assert.Equal(t, "CTO", updated.Role)
	assert.False(t, updated.Active)

	w = doJSON(t, r, http.MethodPut, "/admin/team/"+m.ID, gin.H{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/team", nil)
	assert.Empty(t, decode[teamList](t, w).Data)

	w = doJSON(t, r, http.MethodDelete, "/admin/team/"+m.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, "/admin/team/"+m.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
