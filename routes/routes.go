package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"employee-records-api/config"
	"employee-records-api/controllers"
	"employee-records-api/middleware"
	"employee-records-api/models"
	"employee-records-api/services"
	"employee-records-api/storage"
)

// Dependencies is everything the routes need to build their controllers.
type Dependencies struct {
	DB        *gorm.DB
	Settings  config.Settings
	Workflows *services.Workflows
	Store     storage.Store
}

var allRoles = []string{models.RoleAdmin, models.RoleEmployee, models.RoleNormalEmployee}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	users := services.NewUserService(deps.DB)
	auth := controllers.NewAuthController(users,
		[]byte(deps.Settings.Auth.JWTSecret),
		time.Duration(deps.Settings.Auth.ExpireHours)*time.Hour,
		deps.Settings.Environment == "production",
	)
	lookups := controllers.NewLookupController(users, services.NewLookupService(deps.DB), services.NewAuditService(deps.DB))
	notifications := controllers.NewNotificationController(services.NewInboxService(deps.DB))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", auth.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Employee Records API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.DB, []byte(deps.Settings.Auth.JWTSecret)))
		{
			protected.POST("/logout", auth.Logout)
			protected.GET("/profile", auth.GetProfile)

			// In-app inbox of the current user
			protected.GET("/notifications", notifications.List)
			protected.GET("/notifications/counter", notifications.Counter)
			protected.PATCH("/notifications/:id/read", notifications.MarkRead)
			protected.PATCH("/notifications/mark-all-read", notifications.MarkAllRead)

			admin := middleware.RequireRole(models.RoleAdmin)

			protected.POST("/createuser", admin, lookups.CreateUser)
			protected.GET("/fetchallusers", admin, lookups.ListUsers)
			protected.POST("/creatework", admin, lookups.CreateWork)
			protected.GET("/fetchallworks", lookups.ListWorks)
			protected.POST("/createbank", admin, lookups.CreateBank)
			protected.GET("/fetchallbanks", lookups.ListBanks)
			protected.GET("/audit/:domain/:employee_id", admin, lookups.History)

			maxBytes := deps.Settings.Upload.MaxBytes
			registerRecordRoutes(protected, "employee", controllers.NewRecordController(deps.Workflows.Employee, deps.Store, maxBytes))
			registerRecordRoutes(protected, "aadhar", controllers.NewRecordController(deps.Workflows.Aadhar, deps.Store, maxBytes))
			registerRecordRoutes(protected, "pan", controllers.NewRecordController(deps.Workflows.Pan, deps.Store, maxBytes))
			registerRecordRoutes(protected, "bankdetail", controllers.NewRecordController(deps.Workflows.BankDetail, deps.Store, maxBytes))
		}
	}
}

// registerRecordRoutes mounts the approval workflow endpoints of one record family.
func registerRecordRoutes[P models.Payload](g *gin.RouterGroup, name string, rc *controllers.RecordController[P]) {
	admin := middleware.RequireRole(models.RoleAdmin)
	anyone := middleware.RequireRole(allRoles...)

	// Any role can submit and correct its own records
	g.POST("/create"+name, anyone, rc.Create)
	g.PUT("/edit"+name+"/:id", anyone, rc.Edit)
	g.PUT("/editapprove"+name+"/:id", anyone, rc.EditApproved)
	g.GET("/fetch"+name+"/:id", anyone, rc.Get)
	g.GET("/fetchapproved"+name+"/:id", anyone, rc.GetApproved)
	g.GET("/fetch"+name+"byemployee/:employee_id", anyone, rc.ListByEmployee)
	g.GET("/fetchmy"+name, anyone, rc.ListMine)
	g.DELETE("/delete"+name+"/:id", middleware.RequireRole(models.RoleAdmin, models.RoleEmployee), rc.Delete)

	// Only admin can review
	g.POST("/approv"+name+"/:id", admin, rc.Approve)
	g.POST("/reject"+name+"/:id", admin, rc.Reject)
	g.GET("/fetchall"+name, admin, rc.ListDrafts)
	g.GET("/fetchallpending"+name, admin, rc.ListPending)
	g.GET("/fetchallrejected"+name, admin, rc.ListRejected)
	g.GET("/fetchallapproved"+name, admin, rc.ListApproved)
}
