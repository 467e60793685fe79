package main

import (
	"bookmeet-api/core/logger"
	"bookmeet-api/core/server"
)

// @title BookMeet API
// @version 1.0
// @description Booking backend for BookMeet, a single-organizer meeting scheduler.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
