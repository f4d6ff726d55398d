package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zaqqye/agency_backend/internal/models"
)

const secret = "test-secret"

func setup(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.User{}))

	r := gin.New()
	auth := r.Group("/", AuthMiddleware(db, AuthConfig{JWTSecret: secret}))
	auth.GET("/any", func(c *gin.Context) { c.Status(http.StatusOK) })
	auth.GET("/admin", RequireRoles("admin"), func(c *gin.Context) { c.Status(http.StatusOK) })
	auth.GET("/editors", RequireRoles("editor"), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r, db
}

func sign(t *testing.T, userID, key string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           userID,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: TokenIssuer, ExpiresAt: jwt.NewNumericDate(exp)},
	})
	s, err := tok.SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func do(r *gin.Engine, path, token string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestAuthMiddleware(t *testing.T) {
	r, db := setup(t)
	require.NoError(t, db.Create(&models.User{UserID: "u-admin", Email: "a@x", Role: "admin", Active: true}).Error)
	require.NoError(t, db.Create(&models.User{UserID: "u-editor", Email: "e@x", Role: "editor", Active: true}).Error)
	require.NoError(t, db.Create(&models.User{UserID: "u-off", Email: "o@x", Role: "admin", Active: false}).Error)
	future := time.Now().Add(time.Hour)

	assert.Equal(t, http.StatusUnauthorized, do(r, "/any", ""))
	assert.Equal(t, http.StatusUnauthorized, do(r, "/any", "garbage"))
	assert.Equal(t, http.StatusUnauthorized, do(r, "/any", sign(t, "u-admin", "other-secret", future)))
	assert.Equal(t, http.StatusUnauthorized, do(r, "/any", sign(t, "u-admin", secret, time.Now().Add(-time.Minute))))
	assert.Equal(t, http.StatusUnauthorized, do(r, "/any", sign(t, "u-off", secret, future)))

	admin := sign(t, "u-admin", secret, future)
	editor := sign(t, "u-editor", secret, future)
	assert.Equal(t, http.StatusOK, do(r, "/any", admin))
	assert.Equal(t, http.StatusOK, do(r, "/admin", admin))
	assert.Equal(t, http.StatusOK, do(r, "/editors", admin), "admin passes every gate")
	assert.Equal(t, http.StatusOK, do(r, "/editors", editor))
	assert.Equal(t, http.StatusForbidden, do(r, "/admin", editor))
}

func TestIssueToken(t *testing.T) {
	r, db := setup(t)
	user := models.User{UserID: "u-1", Email: "a@x", Role: "editor", Active: true}
	require.NoError(t, db.Create(&user).Error)

	tok, err := IssueToken(user, AuthConfig{JWTSecret: secret, JWTExpiresIn: time.Hour}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, do(r, "/editors", tok))

	expired, err := IssueToken(user, AuthConfig{JWTSecret: secret, JWTExpiresIn: time.Minute}, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/editors", expired))

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           "u-1",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	s, err := foreign.SignedString([]byte(secret))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/editors", s))
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"https://site.example"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://site.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://site.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
