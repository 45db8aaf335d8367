package routes

import (
	"github.com/gin-gonic/gin"

	controllers "github.com/phillip/campaign-hub-go/controllers"
	middleware "github.com/phillip/campaign-hub-go/middleware"
)

// NewRouter builds the engine with the shared middleware and every route.
func NewRouter(env *controllers.Env) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(env.Log),
		middleware.Recovery(env.Log),
		middleware.CORS(),
	)
	SetupRoutes(r, env)
	return r
}

func SetupRoutes(r *gin.Engine, env *controllers.Env) {
	r.GET("/", controllers.Health())

	api := r.Group("/api")

	campaigns := api.Group("/campaigns")
	{
		campaigns.GET("", controllers.ListCampaigns(env))
		campaigns.GET("/:id", controllers.GetCampaign(env))
		campaigns.POST("", controllers.CreateCampaign(env))
		campaigns.PUT("/:id", controllers.UpdateCampaign(env))
		campaigns.DELETE("/:id", controllers.DeleteCampaign(env))
	}

	users := api.Group("/users")
	{
		users.GET("", controllers.ListUsers(env))
		users.POST("", controllers.CreateUser(env))
		users.DELETE("/:id", controllers.DeleteUser(env))
	}

	api.POST("/uploads", controllers.UploadImage(env))
}
