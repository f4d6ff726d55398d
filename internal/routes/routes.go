package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zaqqye/agency_backend/internal/config"
	"github.com/zaqqye/agency_backend/internal/content"
	"github.com/zaqqye/agency_backend/internal/controllers"
	"github.com/zaqqye/agency_backend/internal/logging"
	"github.com/zaqqye/agency_backend/internal/mailer"
	"github.com/zaqqye/agency_backend/internal/markdown"
	"github.com/zaqqye/agency_backend/internal/middleware"
	"github.com/zaqqye/agency_backend/internal/ws"
)

// Deps are the process-wide collaborators shared by every handler.
type Deps struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Content  *content.Service
	Hubs     *ws.Hubs
	Notifier mailer.Notifier
	Logger   *zap.Logger
}

// NewEngine builds the gin engine with logging, recovery and CORS applied.
func NewEngine(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(logging.GinLogger(d.Logger), logging.GinRecovery(d.Logger), middleware.CORS(d.Cfg.CORSOrigins))
	Register(r, d)
	return r
}

func Register(r *gin.Engine, d Deps) {
	// Controllers
	cmsCtrl := &controllers.CMSController{Content: d.Content, Hubs: d.Hubs, Logger: d.Logger}
	siteCtrl := &controllers.SiteController{Content: d.Content, Logger: d.Logger}
	authCtrl := &controllers.AuthController{DB: d.DB, JWTSecret: d.Cfg.JWTSecret, TokenTTL: d.Cfg.TokenTTL(), Logger: d.Logger}
	blogCtrl := &controllers.BlogController{DB: d.DB, Markdown: markdown.NewRenderer(), Logger: d.Logger}
	teamCtrl := &controllers.TeamController{DB: d.DB, Logger: d.Logger}
	pricingCtrl := &controllers.PricingController{DB: d.DB, Logger: d.Logger}
	contactCtrl := &controllers.ContactController{DB: d.DB, Notifier: d.Notifier, Logger: d.Logger}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public
	pub := r.Group("/api/v1")
	{
		pub.POST("/auth/login", authCtrl.Login)

		pub.GET("/cms", cmsCtrl.Get)
		pub.GET("/site", siteCtrl.Sections)
		pub.GET("/site/:section", siteCtrl.Section)

		pub.GET("/blog", blogCtrl.ListPublished)
		pub.GET("/blog/:slug", blogCtrl.GetBySlug)
		pub.GET("/team", teamCtrl.List)
		pub.GET("/pricing", pricingCtrl.List)
		pub.POST("/contact", contactCtrl.Create)
	}

	// Protected
	authMW := middleware.AuthMiddleware(d.DB, middleware.AuthConfig{
		JWTSecret:    d.Cfg.JWTSecret,
		JWTExpiresIn: d.Cfg.TokenTTL(),
	})
	api := r.Group("/api/v1", authMW)
	{
		api.GET("/auth/me", authCtrl.Me)
		api.POST("/auth/logout", authCtrl.Logout)

		staff := middleware.RequireRoles(controllers.RoleAdmin, controllers.RoleEditor)
		api.POST("/cms", staff, cmsCtrl.Upsert)

		admin := api.Group("/admin", staff)
		{
			admin.GET("/cms/live", ws.PreviewHandler(d.Hubs.Preview))

			admin.POST("/users", middleware.RequireRoles(controllers.RoleAdmin), authCtrl.CreateUser)

			admin.GET("/blog", blogCtrl.AdminList)
			admin.POST("/blog", blogCtrl.Create)
			admin.GET("/blog/:id", blogCtrl.AdminGet)
			admin.PUT("/blog/:id", blogCtrl.Update)
			admin.DELETE("/blog/:id", blogCtrl.Delete)

			admin.GET("/team", teamCtrl.AdminList)
			admin.POST("/team", teamCtrl.Create)
			admin.POST("/team/reorder", teamCtrl.Reorder)
			admin.GET("/team/:id", teamCtrl.Get)
			admin.PUT("/team/:id", teamCtrl.Update)
			admin.DELETE("/team/:id", teamCtrl.Delete)

			admin.GET("/pricing", pricingCtrl.AdminList)
			admin.POST("/pricing", pricingCtrl.Create)
			admin.GET("/pricing/:id", pricingCtrl.Get)
			admin.PUT("/pricing/:id", pricingCtrl.Update)
			admin.DELETE("/pricing/:id", pricingCtrl.Delete)

			admin.GET("/contacts", contactCtrl.AdminList)
			admin.GET("/contacts/:id", contactCtrl.AdminGet)
			admin.PATCH("/contacts/:id/status", contactCtrl.UpdateStatus)
			admin.DELETE("/contacts/:id", contactCtrl.Delete)
		}
	}
}
