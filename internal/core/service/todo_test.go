package service_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"tasktracker/internal/adapter/database"
	"tasktracker/internal/adapter/database/repository"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/port"
	"tasktracker/internal/core/service"
	. "tasktracker/pkg/test"
	"tasktracker/pkg/test/factory"
)

type TodoServiceTestSuite struct {
	suite.Suite
	db         *database.DB
	service    *service.TodoService
	repo       port.TodoRepository
	categories port.CategoryRepository
	recorder   *spyRecorder
	owner      domain.User
	stranger   domain.User
	ctx        context.Context
}

func (s *TodoServiceTestSuite) SetupTest() {
	s.db = InitTestDB(s.T())
	s.ctx = context.Background()
	s.repo = repository.NewTodoRepository(s.db)
	s.categories = repository.NewCategoryRepository(s.db)
	s.recorder = &spyRecorder{}
	s.service = service.NewTodoService(s.repo, s.categories, s.recorder)

	s.owner = createUser(s.T(), s.db)
	s.stranger = createUser(s.T(), s.db)
}

func TestTodoServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TodoServiceTestSuite))
}

func (s *TodoServiceTestSuite) category(ownerID int64, name string) domain.Category {
	category, err := s.categories.Create(s.ctx, factory.NewCategory(ownerID, map[string]any{"Name": name}))
	s.Require().NoError(err)

	return category
}

func (s *TodoServiceTestSuite) TestCreate_Defaults() {
	item, err := s.service.Create(s.ctx, s.owner.ID, port.TodoInput{Name: "  Buy milk "})

	Expect(err).To(BeNil())
	Expect(item.ID).To(BeNumerically(">", 0))
	Expect(item.Name).To(Equal("Buy milk"))
	Expect(item.Status).To(Equal(domain.TodoStatusNotStarted))
	Expect(item.IsComplete()).To(BeFalse())
	Expect(item.OwnerID).To(Equal(s.owner.ID))
	Expect(item.CategoryID).To(BeNil())
	Expect(item.Category).To(BeNil())
	Expect(s.recorder.Operations()).To(ConsistOf("todo.create"))
}

func (s *TodoServiceTestSuite) TestCreate_WithOwnCategory() {
	work := s.category(s.owner.ID, "Work")

	item, err := s.service.Create(s.ctx, s.owner.ID, port.TodoInput{Name: "Report", CategoryID: ptr(work.ID)})

	Expect(err).To(BeNil())
	Expect(*item.CategoryID).To(Equal(work.ID))
	Expect(item.Category).To(Equal(&domain.CategorySummary{ID: work.ID, Name: "Work"}))
}

func (s *TodoServiceTestSuite) TestCreate_ForeignCategory() {
	theirs := s.category(s.stranger.ID, "Theirs")

	_, err := s.service.Create(s.ctx, s.owner.ID, port.TodoInput{Name: "Sneaky", CategoryID: ptr(theirs.ID)})

	Expect(err).To(MatchError(domain.ErrInvalidInput))
	Expect(err.Error()).To(Equal("category not found or not owned"))

	items, _ := s.service.List(s.ctx, s.owner.ID)
	Expect(items).To(BeEmpty())
}

func (s *TodoServiceTestSuite) TestCreate_MissingCategory() {
	_, err := s.service.Create(s.ctx, s.owner.ID, port.TodoInput{Name: "Lost", CategoryID: ptr(int64(404))})

	assert.ErrorIs(s.T(), err, domain.ErrInvalidInput)
}

func (s *TodoServiceTestSuite) TestCreate_ZeroCategoryMeansNone() {
	item, err := s.service.Create(s.ctx, s.owner.ID, port.TodoInput{Name: "Loose", CategoryID: ptr(int64(0))})

	Expect(err).To(BeNil())
	Expect(item.CategoryID).To(BeNil())
}

func (s *TodoServiceTestSuite) TestCreate_BlankName() {
	_, err := s.service.Create(s.ctx, s.owner.ID, port.TodoInput{Name: " "})

	assert.ErrorIs(s.T(), err, domain.ErrInvalidInput)
}

func (s *TodoServiceTestSuite) TestCreate_CompletionFlag() {
	item, err := s.service.Create(s.ctx, s.owner.ID, port.TodoInput{Name: "Done already", IsComplete: ptr(true)})

	Expect(err).To(BeNil())
	Expect(item.Status).To(Equal(domain.TodoStatusCompleted))
	Expect(item.IsComplete()).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestCreate_DisagreeingStatus() {
	_, err := s.service.Create(s.ctx, s.owner.ID, port.TodoInput{
		Name:       "Confused",
		Status:     ptr(domain.TodoStatusInProgress),
		IsComplete: ptr(true),
	})

	assert.ErrorIs(s.T(), err, domain.ErrInvalidInput)
}

func (s *TodoServiceTestSuite) TestList_OnlyOwnWithCategory() {
	work := s.category(s.owner.ID, "Work")
	_, _ = s.repo.Create(s.ctx, factory.NewTodoItem(s.owner.ID, work.ID))
	_, _ = s.repo.Create(s.ctx, factory.NewTodoItem(s.owner.ID, 0))
	_, _ = s.repo.Create(s.ctx, factory.NewTodoItem(s.stranger.ID, 0))

	items, err := s.service.List(s.ctx, s.owner.ID)

	Expect(err).To(BeNil())
	Expect(items).To(HaveLen(2))
	Expect(items[0].Category.Name).To(Equal("Work"))
	Expect(items[1].Category).To(BeNil())

	for _, item := range items {
		Expect(item.OwnerID).To(Equal(s.owner.ID))
	}
}

func (s *TodoServiceTestSuite) TestGet_ForeignIsNotFound() {
	theirs, _ := s.repo.Create(s.ctx, factory.NewTodoItem(s.stranger.ID, 0))

	_, err := s.service.Get(s.ctx, s.owner.ID, theirs.ID)

	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}

func (s *TodoServiceTestSuite) TestUpdate_ReplacesFields() {
	work := s.category(s.owner.ID, "Work")
	item, _ := s.service.Create(s.ctx, s.owner.ID, port.TodoInput{Name: "Draft"})

	updated, err := s.service.Update(s.ctx, s.owner.ID, item.ID, item.ID, port.TodoInput{
		Name:       "Final",
		Status:     ptr(domain.TodoStatusInProgress),
		CategoryID: ptr(work.ID),
	})

	Expect(err).To(BeNil())
	Expect(updated.Name).To(Equal("Final"))
	Expect(updated.Status).To(Equal(domain.TodoStatusInProgress))
	Expect(updated.Category.Name).To(Equal("Work"))
	Expect(updated.Version).To(Equal(item.Version + 1))
}

func (s *TodoServiceTestSuite) TestUpdate_ClearsCategory() {
	work := s.category(s.owner.ID, "Work")
	item, _ := s.service.Create(s.ctx, s.owner.ID, port.TodoInput{Name: "Draft", CategoryID: ptr(work.ID)})

	updated, err := s.service.Update(s.ctx, s.owner.ID, item.ID, item.ID, port.TodoInput{Name: "Draft"})

	Expect(err).To(BeNil())
	Expect(updated.CategoryID).To(BeNil())
	Expect(updated.Category).To(BeNil())
}

func (s *TodoServiceTestSuite) TestUpdate_ClearingCompletionKeepsProgress() {
	item, _ := s.service.Create(s.ctx, s.owner.ID, port.TodoInput{Name: "Task", Status: ptr(domain.TodoStatusInProgress)})

	updated, err := s.service.Update(s.ctx, s.owner.ID, item.ID, item.ID, port.TodoInput{Name: "Task", IsComplete: ptr(false)})

	Expect(err).To(BeNil())
	Expect(updated.Status).To(Equal(domain.TodoStatusInProgress))

	updated, err = s.service.Update(s.ctx, s.owner.ID, item.ID, item.ID, port.TodoInput{Name: "Task", IsComplete: ptr(true)})

	Expect(err).To(BeNil())
	Expect(updated.Status).To(Equal(domain.TodoStatusCompleted))

	updated, err = s.service.Update(s.ctx, s.owner.ID, item.ID, item.ID, port.TodoInput{Name: "Task", IsComplete: ptr(false)})

	Expect(err).To(BeNil())
	Expect(updated.Status).To(Equal(domain.TodoStatusNotStarted))
}

func (s *TodoServiceTestSuite) TestUpdate_IDMismatch() {
	item, _ := s.service.Create(s.ctx, s.owner.ID, port.TodoInput{Name: "Task"})

	_, err := s.service.Update(s.ctx, s.owner.ID, item.ID, item.ID+1, port.TodoInput{Name: "Other"})

	assert.ErrorIs(s.T(), err, domain.ErrConflict)

	stored, _ := s.service.Get(s.ctx, s.owner.ID, item.ID)
	assert.Equal(s.T(), "Task", stored.Name)
}

func (s *TodoServiceTestSuite) TestUpdate_ForeignItem() {
	theirs, _ := s.repo.Create(s.ctx, factory.NewTodoItem(s.stranger.ID, 0, map[string]any{"Name": "Theirs"}))

	_, err := s.service.Update(s.ctx, s.owner.ID, theirs.ID, theirs.ID, port.TodoInput{Name: "Mine"})

	assert.ErrorIs(s.T(), err, domain.ErrNotFound)

	stored, _ := s.repo.GetByID(s.ctx, s.stranger.ID, theirs.ID)
	assert.Equal(s.T(), "Theirs", stored.Name)
}

func (s *TodoServiceTestSuite) TestUpdate_ForeignCategory() {
	theirs := s.category(s.stranger.ID, "Theirs")
	item, _ := s.service.Create(s.ctx, s.owner.ID, port.TodoInput{Name: "Task"})

	_, err := s.service.Update(s.ctx, s.owner.ID, item.ID, item.ID, port.TodoInput{Name: "Task", CategoryID: ptr(theirs.ID)})

	assert.ErrorIs(s.T(), err, domain.ErrInvalidInput)
}

func (s *TodoServiceTestSuite) TestUpdate_StaleVersion() {
	item, _ := s.service.Create(s.ctx, s.owner.ID, port.TodoInput{Name: "Task"})

	_, err := s.repo.Update(s.ctx, item)
	Expect(err).To(BeNil())

	item.Name = "Late write"
	_, err = s.repo.Update(s.ctx, item)

	Expect(err).To(MatchError(domain.ErrConcurrentUpdate))
}

func (s *TodoServiceTestSuite) TestUpdateStatus() {
	item, _ := s.service.Create(s.ctx, s.owner.ID, port.TodoInput{Name: "Task"})

	updated, err := s.service.UpdateStatus(s.ctx, s.owner.ID, item.ID, domain.TodoStatusCompleted)

	Expect(err).To(BeNil())
	Expect(updated.Status).To(Equal(domain.TodoStatusCompleted))
	Expect(updated.IsComplete()).To(BeTrue())
	Expect(updated.Name).To(Equal("Task"))
	Expect(s.recorder.Operations()).To(ContainElement("todo.update_status"))
}

func (s *TodoServiceTestSuite) TestUpdateStatus_Invalid() {
	item, _ := s.service.Create(s.ctx, s.owner.ID, port.TodoInput{Name: "Task"})

	_, err := s.service.UpdateStatus(s.ctx, s.owner.ID, item.ID, domain.TodoStatus(5))

	assert.ErrorIs(s.T(), err, domain.ErrInvalidInput)
	assert.EqualError(s.T(), err, "invalid status: 5")

	stored, _ := s.service.Get(s.ctx, s.owner.ID, item.ID)
	Expect(stored.Version).To(Equal(item.Version))
}

func (s *TodoServiceTestSuite) TestUpdateStatus_ForeignItem() {
	theirs, _ := s.repo.Create(s.ctx, factory.NewTodoItem(s.stranger.ID, 0))

	_, err := s.service.UpdateStatus(s.ctx, s.owner.ID, theirs.ID, domain.TodoStatusCompleted)

	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}

func (s *TodoServiceTestSuite) TestDelete() {
	item, _ := s.service.Create(s.ctx, s.owner.ID, port.TodoInput{Name: "Task"})

	Expect(s.service.Delete(s.ctx, s.owner.ID, item.ID)).To(Succeed())

	_, err := s.service.Get(s.ctx, s.owner.ID, item.ID)
	Expect(err).To(MatchError(domain.ErrNotFound))

	err = s.service.Delete(s.ctx, s.owner.ID, item.ID)
	Expect(err).To(MatchError(domain.ErrNotFound))
}

func (s *TodoServiceTestSuite) TestDelete_ForeignItem() {
	theirs, _ := s.repo.Create(s.ctx, factory.NewTodoItem(s.stranger.ID, 0))

	err := s.service.Delete(s.ctx, s.owner.ID, theirs.ID)
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)

	_, err = s.repo.GetByID(s.ctx, s.stranger.ID, theirs.ID)
	assert.NoError(s.T(), err)
}

func (s *TodoServiceTestSuite) TestRepository_ForeignKeyViolation() {
	_, err := s.repo.Create(s.ctx, factory.NewTodoItem(s.owner.ID, 777))

	assert.ErrorIs(s.T(), err, domain.ErrInvalidInput)
}
