// Package main is the entry point for the epq-service application.
//
// @title           EPQ Optimizer API
// @version         1.0.0
// @description     Economic production quantity optimiser: derives TC(Q) symbolically, solves dTC/dQ = 0 exactly and checks convexity.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/epq-service
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
// @description                 API key for authentication. Required if authentication is enabled.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 HS256 bearer token: "Bearer <token>".
//
// @tag.name        Optimisation
// @tag.description Lot size and portfolio optimisation
//
// @tag.name        Demand
// @tag.description Annual demand estimation from daily sales
//
// @tag.name        History
// @tag.description Stored optimisation runs
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/epq-service/config"
	_ "github.com/guttosm/epq-service/docs" // swagger docs
	"github.com/guttosm/epq-service/internal/app"
)

func main() {
	cfg := config.Load()

	a, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	server := app.NewServer(a.Router, cfg.Server.Port)
	server.OnShutdown(a.Close)
	a.Start()

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
