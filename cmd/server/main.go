package main

import (
	_ "github.com/checkmate-app/checkmate/docs"
	"github.com/checkmate-app/checkmate/internal/bootstrap"
)

// @title CheckMate API
// @version 1.0.0
// @description Personal productivity backend: tasks, notes, folders, tags and
// @description multi-provider account management.

// @host api.checkmate.app
// @BasePath /v1

// @securityDefinitions.apikey SessionAuth
// @in cookie
// @name checkmate_session

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	bootstrap.Run()
}
