package httpserver

import (
	"net/http"

	middleware "github.com/Skotchmaster/scent_shop/pkg/middleware/auth"
	"github.com/Skotchmaster/scent_shop/pkg/middleware/csrf"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type Deps struct {
	DB               *gorm.DB
	CatalogHandler   *CatalogHTTP
	CartHandler      *CartHTTP
	OrderHandler     *OrderHTTP
	AnalyticsHandler *AnalyticsHTTP
	AccountHandler   *AccountHTTP
	BackOffice       *BackOfficeHTTP
	JWTSecret        []byte
}

func ready(db *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		if db == nil {
			return c.NoContent(http.StatusOK)
		}
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request().Context())
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
		}
		return c.NoContent(http.StatusOK)
	}
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", ready(d.DB))

	authMW := middleware.NewAuthMiddleware(d.JWTSecret)
	api := e.Group("/api", csrf.Middleware(csrf.Config{SessionCookie: middleware.AccessCookie}))

	products := api.Group("/products")
	products.GET("", d.CatalogHandler.ListProducts)
	products.GET("/filter", d.CatalogHandler.ListProducts)
	products.GET("/preferred", d.CatalogHandler.PreferredProducts)
	products.GET("/all/ids", d.CatalogHandler.ProductIDs)
	products.GET("/search", d.CatalogHandler.SearchProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)
	products.POST("/:id/rate", d.CatalogHandler.RateProduct, authMW.RequireAuth)
	products.GET("/:id/user-rating", d.CatalogHandler.UserRating, authMW.RequireAuth)

	api.GET("/tags", d.CatalogHandler.ListTags)
	api.GET("/fragrances", d.CatalogHandler.ListFragrances)
	api.GET("/fragrances/:id", d.CatalogHandler.GetFragrance)

	cart := api.Group("/cart", authMW.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.ReplaceCart)
	cart.POST("/merge", d.CartHandler.MergeCart)

	orders := api.Group("/orders", authMW.RequireAuth)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("/myorders", d.OrderHandler.MyOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)

	user := api.Group("/user", authMW.RequireAuth)
	user.GET("/addresses", d.AccountHandler.ListAddresses)
	user.POST("/addresses", d.AccountHandler.AddAddress)

	api.POST("/enquiries", d.BackOffice.SubmitEnquiry)
	api.GET("/testimonials/approved", d.BackOffice.ApprovedTestimonials)
	api.POST("/testimonials", d.BackOffice.SubmitTestimonial, authMW.OptionalAuth)
	api.GET("/settings", d.BackOffice.GetSettings)

	api.GET("/analytics", d.AnalyticsHandler.GetAnalytics, authMW.RequireAdmin)

	admin := api.Group("/admin", authMW.RequireAdmin)
	admin.GET("/stats", d.OrderHandler.Stats)
	admin.GET("/orders", d.OrderHandler.AdminListOrders)
	admin.PUT("/orders/:id/status", d.OrderHandler.UpdateStatus)
	admin.PATCH("/orders/:id", d.OrderHandler.UpdateStatus)

	admin.GET("/products", d.CatalogHandler.AdminListProducts)
	admin.POST("/products", d.CatalogHandler.CreateProduct)
	admin.GET("/products/:id", d.CatalogHandler.AdminGetProduct)
	admin.PUT("/products/:id", d.CatalogHandler.UpdateProduct)
	admin.PATCH("/products/:id", d.CatalogHandler.UpdateProduct)
	admin.DELETE("/products/:id", d.CatalogHandler.DeleteProduct)

	admin.POST("/tags", d.CatalogHandler.CreateTag)
	admin.DELETE("/tags/:id", d.CatalogHandler.DeleteTag)

	admin.POST("/fragrances", d.CatalogHandler.CreateFragrance)
	admin.PUT("/fragrances/:id", d.CatalogHandler.UpdateFragrance)
	admin.DELETE("/fragrances/:id", d.CatalogHandler.DeleteFragrance)

	admin.GET("/enquiries", d.BackOffice.ListEnquiries)
	admin.PATCH("/enquiries/:id/read", d.BackOffice.MarkEnquiryRead)

	admin.GET("/testimonials", d.BackOffice.ListTestimonials)
	admin.PATCH("/testimonials/:id/approve", d.BackOffice.ApproveTestimonial)
	admin.DELETE("/testimonials/:id", d.BackOffice.DeleteTestimonial)

	admin.GET("/settings", d.BackOffice.GetSettings)
	admin.PUT("/settings", d.BackOffice.UpdateSettings)
	admin.POST("/settings", d.BackOffice.UpdateSettings)
}
