// Package main is the entry point for the meal-planner service.
//
// @title           Meal Planner API
// @version         1.0.0
// @description     Plans a batch of distinct meals from a recipe catalog and decides which ingredient packages to buy.
//
//	Selections maximize a weighted nutrition score under a budget, a per-recipe calorie cap and allergy exclusions.
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/meal-planner-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key. Required when authentication is enabled and API_KEYS is set.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 HS256 token as "Bearer <token>". Scopes: plans:write, history:read, catalogs:write.
//
// @tag.name        Plans
// @tag.description Meal planning and plan history
//
// @tag.name        Catalogs
// @tag.description Stored catalog versions
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"

	"github.com/rs/zerolog/log"

	_ "github.com/guttosm/meal-planner-service/docs" // swagger docs

	"github.com/guttosm/meal-planner-service/config"
	"github.com/guttosm/meal-planner-service/internal/app"
)

func main() {
	cfg := config.Load()

	application, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	server := app.NewServer(application.Router, cfg.Server)
	server.OnShutdown(func(ctx context.Context) error {
		return application.Close(ctx)
	})

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
