package request

type SignUpRequest struct {
	Username string `json:"username" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=4,max=100"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
}

// Name lengths are checked by the domain after trimming.
type CategoryRequest struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// TodoRequest has no owner field: ownership always comes from the token.
type TodoRequest struct {
	ID         int64      `json:"id,omitempty"`
	Name       string     `json:"name"`
	Status     *int       `json:"status,omitempty"`
	IsComplete *bool      `json:"isComplete,omitempty"`
	CategoryID OptionalID `json:"categoryId"`
}

type StatusRequest struct {
	Status *int `json:"status" validate:"required"`
}
