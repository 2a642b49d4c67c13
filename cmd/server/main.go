package main

import (
	"os"

	"elelem/backend/internal/app"
)

// @title           Elelem API
// @version         1.0
// @description     Chat-style LLM query backend: accounts, conversations, streamed assistant replies and single-shot queries.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	os.Exit(app.Run())
}
