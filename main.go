package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Krritin/Tripiza/internal/config"
	"github.com/Krritin/Tripiza/internal/database"
	"github.com/Krritin/Tripiza/internal/handlers"
	"github.com/Krritin/Tripiza/internal/itinerary"
	"github.com/Krritin/Tripiza/internal/middleware"
	"github.com/Krritin/Tripiza/internal/store"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("⚠️ user index warning: %v", err)
	}
	if err := database.EnsureItineraryIndexes(db); err != nil {
		log.Printf("⚠️ itinerary index warning: %v", err)
	}

	svc := itinerary.NewService(store.NewMongo(db))

	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Travel Itinerary API is running"})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", handlers.Register(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
		auth.POST("/login", handlers.Login(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
		auth.GET("/me", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.GetMe(db))
	}

	r.GET("/api/itinerary/share/:uuid", handlers.GetSharedItinerary(svc))

	owned := r.Group("/api/itinerary")
	owned.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		owned.GET("", handlers.ListItineraries(svc))
		owned.POST("", handlers.CreateItinerary(svc))
		owned.GET("/:id", handlers.GetItinerary(svc))
		owned.PUT("/:id", handlers.UpdateItinerary(svc))
		owned.DELETE("/:id", handlers.DeleteItinerary(svc))
		owned.POST("/:id/day/:dayNumber/activity", handlers.AddActivity(svc))
		owned.DELETE("/:id/day/:dayNumber/activity/:activityId", handlers.RemoveActivity(svc))
	}

	r.Run(":" + config.AppEnv.Port)
}
