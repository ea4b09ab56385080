package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"tasktracker/internal/adapter/database"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/model/response"
	. "tasktracker/pkg/test"
)

type TodoHandlerSuite struct {
	suite.Suite
	DB            *database.DB
	Router        *gin.Engine
	Owner         domain.User
	OwnerToken    string
	Stranger      domain.User
	StrangerToken string
}

func (s *TodoHandlerSuite) SetupTest() {
	s.DB = InitTestDB(s.T())
	s.Router = setupTestRouter(s.DB)

	s.Owner = createUser(s.T(), s.DB)
	s.OwnerToken = tokenFor(s.T(), s.Owner)
	s.Stranger = createUser(s.T(), s.DB)
	s.StrangerToken = tokenFor(s.T(), s.Stranger)
}

func TestTodoHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TodoHandlerSuite))
}

func (s *TodoHandlerSuite) createTodo(body any, token string) response.TodoItemResponse {
	rr := perform(s.Router, "POST", "/api/TodoItems", body, token)
	Expect(rr.Code).To(Equal(http.StatusCreated), rr.Body.String())

	return decode[response.TodoItemResponse](rr)
}

func (s *TodoHandlerSuite) createCategory(name string, token string) response.CategoryResponse {
	rr := perform(s.Router, "POST", "/api/ItemCategories", map[string]string{"name": name}, token)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	return decode[response.CategoryResponse](rr)
}

func (s *TodoHandlerSuite) get(id int64, token string) (int, response.TodoItemResponse) {
	rr := perform(s.Router, "GET", fmt.Sprintf("/api/TodoItems/%d", id), nil, token)
	return rr.Code, decode[response.TodoItemResponse](rr)
}

func (s *TodoHandlerSuite) TestCreateDefaults() {
	todo := s.createTodo(map[string]any{"name": "  Buy milk "}, s.OwnerToken)

	Expect(todo.ID).To(BeNumerically(">", 0))
	Expect(todo.Name).To(Equal("Buy milk"))
	Expect(todo.Status).To(Equal(0))
	Expect(todo.IsComplete).To(BeFalse())
	Expect(todo.CategoryID).To(BeNil())
	Expect(todo.Category).To(BeNil())
}

func (s *TodoHandlerSuite) TestCreateWithCategory() {
	category := s.createCategory("Work", s.OwnerToken)

	todo := s.createTodo(map[string]any{"name": "Report", "categoryId": category.ID}, s.OwnerToken)

	Expect(*todo.CategoryID).To(Equal(category.ID))
	Expect(todo.Category).ToNot(BeNil())
	Expect(todo.Category.Name).To(Equal("Work"))
}

func (s *TodoHandlerSuite) TestCreateEmptyCategoryMeansNone() {
	for _, body := range []string{
		`{"name":"a","categoryId":""}`,
		`{"name":"b","categoryId":0}`,
		`{"name":"c","categoryId":null}`,
	} {
		todo := s.createTodo(body, s.OwnerToken)
		Expect(todo.CategoryID).To(BeNil(), body)
	}
}

func (s *TodoHandlerSuite) TestCreateRejectsInvalidInput() {
	foreign := s.createCategory("Theirs", s.StrangerToken)

	cases := map[string]any{
		"blank name":           map[string]any{"name": "  "},
		"foreign category":     map[string]any{"name": "x", "categoryId": foreign.ID},
		"missing category":     map[string]any{"name": "x", "categoryId": 9999},
		"invalid status":       map[string]any{"name": "x", "status": 5},
		"disagreeing duality":  map[string]any{"name": "x", "status": 1, "isComplete": true},
		"non numeric category": `{"name":"x","categoryId":"abc"}`,
	}

	for name, body := range cases {
		rr := perform(s.Router, "POST", "/api/TodoItems", body, s.OwnerToken)
		Expect(rr.Code).To(Equal(http.StatusBadRequest), name)
	}

	rr := perform(s.Router, "POST", "/api/TodoItems", map[string]any{"name": "x", "categoryId": foreign.ID}, s.OwnerToken)
	Expect(errorOf(rr).Error.Errors[0].Field).To(Equal("categoryId"))
	Expect(errorOf(rr).Message).To(Equal("category not found or not owned"))
}

func (s *TodoHandlerSuite) TestCreateWithCompletionFlag() {
	todo := s.createTodo(map[string]any{"name": "Done already", "isComplete": true}, s.OwnerToken)

	Expect(todo.Status).To(Equal(2))
	Expect(todo.IsComplete).To(BeTrue())
}

func (s *TodoHandlerSuite) TestListIsScopedToCaller() {
	s.createTodo(map[string]any{"name": "mine"}, s.OwnerToken)
	s.createTodo(map[string]any{"name": "theirs"}, s.StrangerToken)

	rr := perform(s.Router, "GET", "/api/TodoItems", nil, s.OwnerToken)

	Expect(rr.Code).To(Equal(http.StatusOK))

	items := decode[[]response.TodoItemResponse](rr)
	Expect(items).To(HaveLen(1))
	Expect(items[0].Name).To(Equal("mine"))
}

func (s *TodoHandlerSuite) TestForeignItemIsNotFound() {
	todo := s.createTodo(map[string]any{"name": "mine"}, s.OwnerToken)
	path := fmt.Sprintf("/api/TodoItems/%d", todo.ID)

	code, _ := s.get(todo.ID, s.StrangerToken)
	Expect(code).To(Equal(http.StatusNotFound))

	rr := perform(s.Router, "PUT", path, map[string]any{"id": todo.ID, "name": "stolen"}, s.StrangerToken)
	Expect(rr.Code).To(Equal(http.StatusNotFound))

	rr = perform(s.Router, "PATCH", path+"/status", map[string]any{"status": 2}, s.StrangerToken)
	Expect(rr.Code).To(Equal(http.StatusNotFound))

	rr = perform(s.Router, "DELETE", path, nil, s.StrangerToken)
	Expect(rr.Code).To(Equal(http.StatusNotFound))

	code, own := s.get(todo.ID, s.OwnerToken)
	Expect(code).To(Equal(http.StatusOK))
	Expect(own.Name).To(Equal("mine"))
}

func (s *TodoHandlerSuite) TestUpdate() {
	category := s.createCategory("Work", s.OwnerToken)
	todo := s.createTodo(map[string]any{"name": "draft", "categoryId": category.ID}, s.OwnerToken)
	path := fmt.Sprintf("/api/TodoItems/%d", todo.ID)

	rr := perform(s.Router, "PUT", path, map[string]any{"id": todo.ID, "name": "final", "status": 1, "categoryId": 0}, s.OwnerToken)
	Expect(rr.Code).To(Equal(http.StatusNoContent))

	_, updated := s.get(todo.ID, s.OwnerToken)
	Expect(updated.Name).To(Equal("final"))
	Expect(updated.Status).To(Equal(1))
	Expect(updated.CategoryID).To(BeNil())
	Expect(updated.Category).To(BeNil())
}

func (s *TodoHandlerSuite) TestUpdateCompletionFlag() {
	todo := s.createTodo(map[string]any{"name": "task", "status": 1}, s.OwnerToken)
	path := fmt.Sprintf("/api/TodoItems/%d", todo.ID)

	rr := perform(s.Router, "PUT", path, map[string]any{"id": todo.ID, "name": "task", "isComplete": true}, s.OwnerToken)
	Expect(rr.Code).To(Equal(http.StatusNoContent))

	_, updated := s.get(todo.ID, s.OwnerToken)
	Expect(updated.Status).To(Equal(2))
	Expect(updated.IsComplete).To(BeTrue())

	rr = perform(s.Router, "PUT", path, map[string]any{"id": todo.ID, "name": "task", "isComplete": false}, s.OwnerToken)
	Expect(rr.Code).To(Equal(http.StatusNoContent))

	_, updated = s.get(todo.ID, s.OwnerToken)
	Expect(updated.Status).To(Equal(0))
	Expect(updated.IsComplete).To(BeFalse())
}

func (s *TodoHandlerSuite) TestUpdateRequiresMatchingID() {
	todo := s.createTodo(map[string]any{"name": "task"}, s.OwnerToken)
	path := fmt.Sprintf("/api/TodoItems/%d", todo.ID)

	rr := perform(s.Router, "PUT", path, map[string]any{"id": todo.ID + 1, "name": "task"}, s.OwnerToken)
	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	rr = perform(s.Router, "PUT", path, map[string]any{"name": "task"}, s.OwnerToken)
	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *TodoHandlerSuite) TestUpdateStatus() {
	todo := s.createTodo(map[string]any{"name": "task"}, s.OwnerToken)
	path := fmt.Sprintf("/api/TodoItems/%d/status", todo.ID)

	rr := perform(s.Router, "PATCH", path, map[string]any{"status": 2}, s.OwnerToken)
	Expect(rr.Code).To(Equal(http.StatusNoContent))

	_, updated := s.get(todo.ID, s.OwnerToken)
	Expect(updated.Status).To(Equal(2))
	Expect(updated.IsComplete).To(BeTrue())
	Expect(updated.Name).To(Equal("task"))

	rr = perform(s.Router, "PATCH", path, map[string]any{"status": 0}, s.OwnerToken)
	Expect(rr.Code).To(Equal(http.StatusNoContent))

	_, updated = s.get(todo.ID, s.OwnerToken)
	Expect(updated.IsComplete).To(BeFalse())
}

func (s *TodoHandlerSuite) TestUpdateStatusValidation() {
	todo := s.createTodo(map[string]any{"name": "task"}, s.OwnerToken)
	path := fmt.Sprintf("/api/TodoItems/%d/status", todo.ID)

	Expect(perform(s.Router, "PATCH", path, map[string]any{"status": 3}, s.OwnerToken).Code).To(Equal(http.StatusBadRequest))
	Expect(perform(s.Router, "PATCH", path, map[string]any{}, s.OwnerToken).Code).To(Equal(http.StatusBadRequest))

	rr := perform(s.Router, "PATCH", "/api/TodoItems/9999/status", map[string]any{"status": 1}, s.OwnerToken)
	Expect(rr.Code).To(Equal(http.StatusNotFound))
}

func (s *TodoHandlerSuite) TestDelete() {
	todo := s.createTodo(map[string]any{"name": "task"}, s.OwnerToken)
	path := fmt.Sprintf("/api/TodoItems/%d", todo.ID)

	Expect(perform(s.Router, "DELETE", path, nil, s.OwnerToken).Code).To(Equal(http.StatusNoContent))
	Expect(perform(s.Router, "DELETE", path, nil, s.OwnerToken).Code).To(Equal(http.StatusNotFound))

	code, _ := s.get(todo.ID, s.OwnerToken)
	Expect(code).To(Equal(http.StatusNotFound))
}
