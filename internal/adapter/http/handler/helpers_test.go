package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/adapter/database"
	"tasktracker/internal/adapter/database/repository"
	"tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/model/response"
	"tasktracker/internal/core/service"
	"tasktracker/pkg/auth"
	"tasktracker/pkg/test/factory"
)

var testTokens = auth.NewTokenManager("handler-test-secret-key", "tasktracker", "tasktracker", time.Hour)

// setupTestRouter mounts the handlers the way routes.SetupRouter does,
// without the ops middleware.
func setupTestRouter(db *database.DB) *gin.Engine {
	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	todos := repository.NewTodoRepository(db)

	authHandler := NewAuthHandler(service.NewAuthService(users), testTokens)
	categoryHandler := NewCategoryHandler(service.NewCategoryService(categories, nil))
	todoHandler := NewTodoHandler(service.NewTodoService(todos, categories, nil))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CurrentMiddleware())

	public := router.Group("/api/Auth")
	{
		public.POST("/Register", authHandler.Register)
		public.POST("/Login", authHandler.Login)
	}

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(testTokens))
	{
		protected.GET("/ItemCategories", categoryHandler.List)
		protected.POST("/ItemCategories", categoryHandler.Create)
		protected.GET("/ItemCategories/:id", categoryHandler.Get)
		protected.PUT("/ItemCategories/:id", categoryHandler.Update)
		protected.DELETE("/ItemCategories/:id", categoryHandler.Delete)

		protected.GET("/TodoItems", todoHandler.List)
		protected.POST("/TodoItems", todoHandler.Create)
		protected.GET("/TodoItems/:id", todoHandler.Get)
		protected.PUT("/TodoItems/:id", todoHandler.Update)
		protected.PATCH("/TodoItems/:id/status", todoHandler.UpdateStatus)
		protected.DELETE("/TodoItems/:id", todoHandler.Delete)
	}

	return router
}

func createUser(t *testing.T, db *database.DB) domain.User {
	t.Helper()

	user, err := repository.NewUserRepository(db).Create(context.Background(), factory.NewUser())

	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	return user
}

func tokenFor(t *testing.T, user domain.User) string {
	t.Helper()

	token, _, err := testTokens.CreateToken(user)

	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	return token
}

// perform sends body as JSON unless it is already a string.
func perform(router http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var payload []byte

	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		payload, _ = json.Marshal(b)
	}

	req, _ := http.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	return rr
}

func decode[T any](rr *httptest.ResponseRecorder) T {
	var data T
	_ = json.Unmarshal(rr.Body.Bytes(), &data)
	return data
}

func errorOf(rr *httptest.ResponseRecorder) response.ErrorResponse {
	return decode[response.ErrorResponse](rr)
}
