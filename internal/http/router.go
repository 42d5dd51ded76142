package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "noteful/backend/docs"
	"noteful/backend/internal/handler"
)

func NewRouter(
	folderHandler *handler.FolderHandler,
	noteHandler *handler.NoteHandler,
	tagHandler *handler.TagHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(RequestIDMiddleware())
	e.Use(RequestLoggerMiddleware())

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	folderHandler.RegisterRoutes(api)
	noteHandler.RegisterRoutes(api)
	tagHandler.RegisterRoutes(api)

	return e
}
