package http

import (
	"tasktracker/internal/adapter/database"
	"tasktracker/internal/adapter/database/repository"
	"tasktracker/internal/adapter/http/handler"
	"tasktracker/internal/adapter/http/routes"
	"tasktracker/internal/core/port"
	"tasktracker/internal/core/service"
)

type Container struct {
	UserRepo     port.UserRepository
	CategoryRepo port.CategoryRepository
	TodoRepo     port.TodoRepository

	AuthService     port.AuthService
	CategoryService port.CategoryService
	TodoService     port.TodoService

	AuthHandler     *handler.AuthHandler
	CategoryHandler *handler.CategoryHandler
	TodoHandler     *handler.TodoHandler
	HealthHandler   *handler.HealthHandler
}

func NewContainer(db *database.DB, tokens port.TokenIssuer, recorder port.OperationRecorder) *Container {
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	todoRepo := repository.NewTodoRepository(db)

	authSvc := service.NewAuthService(userRepo)
	categorySvc := service.NewCategoryService(categoryRepo, recorder)
	todoSvc := service.NewTodoService(todoRepo, categoryRepo, recorder)

	return &Container{
		UserRepo:     userRepo,
		CategoryRepo: categoryRepo,
		TodoRepo:     todoRepo,

		AuthService:     authSvc,
		CategoryService: categorySvc,
		TodoService:     todoSvc,

		AuthHandler:     handler.NewAuthHandler(authSvc, tokens),
		CategoryHandler: handler.NewCategoryHandler(categorySvc),
		TodoHandler:     handler.NewTodoHandler(todoSvc),
		HealthHandler:   handler.NewHealthHandler(db),
	}
}

func (c *Container) Handlers() routes.HandlersConfig {
	return routes.HandlersConfig{
		AuthHandler:     c.AuthHandler,
		CategoryHandler: c.CategoryHandler,
		TodoHandler:     c.TodoHandler,
		HealthHandler:   c.HealthHandler,
	}
}
