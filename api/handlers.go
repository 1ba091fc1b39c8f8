package api

import (
	"portfolio-backend/auth"
	"portfolio-backend/catalog"
	"portfolio-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, tokens auth.TokenProvider, email EmailSender) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(catalog.NewService(db)),
		authHandler:    newAuthHandler(db.UserRepo(), tokens),
		contactHandler: newContactHandler(email),
	}
}
