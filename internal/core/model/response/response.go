package response

import (
	"time"

	"tasktracker/internal/core/domain"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Token      string    `json:"token"`
	Expiration time.Time `json:"expiration"`
	Username   string    `json:"username"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TodoItemResponse is the flat item view; the category is a summary and never
// carries its items back.
type TodoItemResponse struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Status     int               `json:"status"`
	IsComplete bool              `json:"isComplete"`
	CategoryID *int64            `json:"categoryId"`
	Category   *CategoryResponse `json:"category"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResponseError struct {
	Code    string            `json:"code"`
	Errors  []ValidationError `json:"errors"`
	Details any               `json:"details,omitempty"`
}

type ErrorResponse struct {
	Message string        `json:"message"`
	Error   ResponseError `json:"error"`
}

func NewCategoryResponse(category domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:   category.ID,
		Name: category.Name,
	}
}

func NewCategoryListResponse(categories []domain.Category) []CategoryResponse {
	data := make([]CategoryResponse, 0, len(categories))

	for _, category := range categories {
		data = append(data, NewCategoryResponse(category))
	}

	return data
}

func NewTodoItemResponse(item domain.TodoItem) TodoItemResponse {
	resp := TodoItemResponse{
		ID:         item.ID,
		Name:       item.Name,
		Status:     int(item.Status),
		IsComplete: item.IsComplete(),
		CategoryID: item.CategoryID,
	}

	if item.CategoryID != nil && item.Category != nil {
		resp.Category = &CategoryResponse{
			ID:   item.Category.ID,
			Name: item.Category.Name,
		}
	}

	return resp
}

func NewTodoItemListResponse(items []domain.TodoItem) []TodoItemResponse {
	data := make([]TodoItemResponse, 0, len(items))

	for _, item := range items {
		data = append(data, NewTodoItemResponse(item))
	}

	return data
}
