package routes

import (
	"net/http"
	"strings"

	"ecommerce-backend/controllers"
	"ecommerce-backend/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupCommonRoutes registers the health, metrics and swagger endpoints every service exposes.
// The swagger UI serves the document registered under the service's instance name.
func SetupCommonRoutes(router *gin.Engine, service string) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.InstanceName(SwaggerInstance(service))))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": service})
	})
}

// SwaggerInstance maps "order-service" to the "order" swag instance.
func SwaggerInstance(service string) string {
	return strings.TrimSuffix(service, "-service")
}

func SetupAuthRoutes(router *gin.Engine, authCtrl *controllers.AuthController, tokens middleware.TokenValidator) {
	auth := router.Group("/api/auth")
	auth.POST("/register", authCtrl.Register)
	auth.POST("/login", authCtrl.Login)
	auth.GET("/profile", middleware.AuthMiddleware(tokens), authCtrl.GetProfile)
}

func SetupProductRoutes(router *gin.Engine, productCtrl *controllers.ProductController, categoryCtrl *controllers.CategoryController, tokens middleware.TokenValidator) {
	api := router.Group("/api")

	api.GET("/products", productCtrl.GetAllProducts)
	api.GET("/products/search", productCtrl.SearchProducts)
	api.GET("/products/category/:categoryId", productCtrl.GetProductsByCategory)
	api.GET("/products/:id", productCtrl.GetProduct)

	api.GET("/categories", categoryCtrl.GetAllCategories)
	api.GET("/categories/active", categoryCtrl.GetActiveCategories)
	api.GET("/categories/:id", categoryCtrl.GetCategory)

	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(tokens), middleware.AdminMiddleware())
	{
		admin.POST("/products", productCtrl.CreateProduct)
		admin.PUT("/products/:id", productCtrl.UpdateProduct)
		admin.PATCH("/products/:id/stock", productCtrl.UpdateStock)
		admin.POST("/products/:id/image", productCtrl.UploadImage)
		admin.DELETE("/products/:id", productCtrl.DeleteProduct)

		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.PUT("/categories/:id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:id", categoryCtrl.DeleteCategory)
	}
}

func SetupOrderRoutes(router *gin.Engine, cartCtrl *controllers.CartController, orderCtrl *controllers.OrderController) {
	api := router.Group("/api")

	cart := api.Group("/cart/:userId")
	{
		cart.GET("", cartCtrl.GetCart)
		cart.DELETE("", cartCtrl.ClearCart)
		cart.POST("/items", cartCtrl.AddItem)
		cart.PUT("/items/:itemId", cartCtrl.UpdateItem)
		cart.DELETE("/items/:itemId", cartCtrl.RemoveItem)
	}

	orders := api.Group("/orders")
	{
		orders.POST("", orderCtrl.CreateOrder)
		orders.GET("", orderCtrl.GetAllOrders)
		orders.GET("/user/:userId", orderCtrl.GetUserOrders)
		orders.GET("/:orderId", orderCtrl.GetOrder)
		orders.PATCH("/:orderId/status", orderCtrl.UpdateStatus)
		orders.DELETE("/:orderId", orderCtrl.CancelOrder)
	}
}
