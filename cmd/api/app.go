package main

import (
	_ "note-quiz/cmd/api/docs"
	"note-quiz/internal/config"
	"note-quiz/internal/handler"
	"note-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// newApp builds the fiber application with middleware and every route registered.
func newApp(serverCfg config.ServerConfig, notes *handler.NoteHandler, groups *handler.GroupHandler, health *handler.HealthHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		IdleTimeout:  serverCfg.ReadTimeout,
		BodyLimit:    serverCfg.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", health.Health)

	apiGroup := app.Group("/api")

	// Note routes
	notesGroup := apiGroup.Group("/notes")
	notesGroup.Get("/:noteId", notes.GetNote)
	notesGroup.Get("/:noteId/generate", notes.GenerateQuizzes)
	notesGroup.Get("/:noteId/findAllQuizzes", notes.FindAllQuizzes)

	// Group routes
	groupsGroup := apiGroup.Group("/groups")
	groupsGroup.Post("/", groups.CreateGroup)
	groupsGroup.Get("/", groups.ListGroups)
	groupsGroup.Get("/:groupId", groups.GetGroup)
	groupsGroup.Put("/:groupId", groups.UpdateGroup)
	groupsGroup.Delete("/:groupId", groups.DeleteGroup)
	groupsGroup.Post("/:groupId/uploadProfilePicture", groups.UploadProfilePicture)

	return app
}
