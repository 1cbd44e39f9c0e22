package http

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	appsvc "blogql/internal/app"
	"blogql/internal/bootstrap"
	gqlschema "blogql/internal/graphql"
	"blogql/internal/repository"
	"blogql/internal/transport/http/handler"
	"blogql/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) (*gin.Engine, error) {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	postRepo := repository.NewPostRepository(app.MySQL)
	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	postService := appsvc.NewPostService(
		userRepo,
		postRepo,
		app.FeedCache,
		app.Publisher,
		app.Config.Feed.PageSize,
	)

	schema, err := gqlschema.NewSchema(authService, postService)
	if err != nil {
		return nil, fmt.Errorf("build graphql schema failed: %w", err)
	}

	graphqlHandler := handler.NewGraphQLHandler(schema)
	uploadHandler := handler.NewUploadHandler(app.Config.Upload.Dir, app.Config.Upload.MaxSizeMB)

	identified := router.Group("/", middleware.Identity(app.Config.Auth.JWTSecret))
	identified.POST("/graphql", graphqlHandler.Execute)
	identified.PUT("/post-image", uploadHandler.Store)

	return router, nil
}
