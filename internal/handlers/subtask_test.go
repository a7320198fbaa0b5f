package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tasktrack/tasktrack-api/internal/constants"
	"github.com/tasktrack/tasktrack-api/internal/database"
	"github.com/tasktrack/tasktrack-api/internal/middleware"
	"github.com/tasktrack/tasktrack-api/internal/models"
	"github.com/tasktrack/tasktrack-api/internal/repository"
	"github.com/tasktrack/tasktrack-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SubtaskHandlerTestSuite defines the test suite for SubtaskHandler
type SubtaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *services.SubtaskService
	router  *gin.Engine
	userID  uint64
}

// SetupTest runs before each test
func (suite *SubtaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Task{}, &models.Subtask{})
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	taskRepo := repository.NewTaskRepository(suite.db)
	suite.service = services.NewSubtaskService(taskRepo)
	handler := NewSubtaskHandler(suite.service)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, suite.userID)
		c.Next()
	})

	tasks := suite.router.Group("/api/tasks/:id", middleware.RequireTaskOwnership())
	tasks.POST("/subtasks", handler.AddSubtask)
	tasks.GET("/subtasks", handler.ListSubtasks)
	tasks.PATCH("/subtasks/:subtaskId", handler.ToggleSubtask)
	tasks.PUT("/subtasks/:subtaskId", handler.UpdateSubtask)
	tasks.DELETE("/subtasks/:subtaskId", handler.DeleteSubtask)
}

// TearDownTest runs after each test
func (suite *SubtaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *SubtaskHandlerTestSuite) createTestUserAndTask() *models.Task {
	user := &models.User{Name: "Test User", Email: "test@example.com", PasswordHash: "hashedpassword"}
	suite.db.Create(user)
	suite.userID = user.ID

	task := &models.Task{
		Title:    "Parent task",
		Status:   models.TaskStatusTodo,
		Priority: models.TaskPriorityMedium,
		DueDate:  time.Now().AddDate(0, 0, 7),
		UserID:   user.ID,
	}
	suite.db.Create(task)
	return task
}

func (suite *SubtaskHandlerTestSuite) request(method, url string, payload any) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *SubtaskHandlerTestSuite) decodeBody(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// taskCounts reads the parent task's cached counters back from the database
func (suite *SubtaskHandlerTestSuite) taskCounts(taskID uint64) (int, int) {
	var task models.Task
	suite.Require().NoError(suite.db.First(&task, taskID).Error)
	return task.SubtasksTotal, task.SubtasksCompleted
}

// TestAddSubtask_Success tests adding a subtask and the count resync
func (suite *SubtaskHandlerTestSuite) TestAddSubtask_Success() {
	task := suite.createTestUserAndTask()

	w := suite.request("POST", fmt.Sprintf("/api/tasks/%d/subtasks", task.ID), map[string]interface{}{
		"title": "Step one",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	body := suite.decodeBody(w)
	assert.Equal(suite.T(), "Subtask added successfully", body["message"])

	subtask := body["subtask"].(map[string]interface{})
	assert.Equal(suite.T(), "Step one", subtask["title"])
	assert.Equal(suite.T(), false, subtask["completed"])
	assert.NotEmpty(suite.T(), subtask["id"])

	counts := body["counts"].(map[string]interface{})
	assert.Equal(suite.T(), float64(1), counts["total"])
	assert.Equal(suite.T(), float64(0), counts["completed"])

	total, completed := suite.taskCounts(task.ID)
	assert.Equal(suite.T(), 1, total)
	assert.Equal(suite.T(), 0, completed)
}

// TestAddSubtask_TitleRequired tests the blank title rejection
func (suite *SubtaskHandlerTestSuite) TestAddSubtask_TitleRequired() {
	task := suite.createTestUserAndTask()

	w := suite.request("POST", fmt.Sprintf("/api/tasks/%d/subtasks", task.ID), map[string]interface{}{
		"title": "   ",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "Subtask title is required", suite.decodeBody(w)["error"])
}

// TestListSubtasks_Percentage tests the completion percentage in listings
func (suite *SubtaskHandlerTestSuite) TestListSubtasks_Percentage() {
	task := suite.createTestUserAndTask()

	one, _, err := suite.service.AddSubtask(task.ID, "One")
	suite.Require().NoError(err)
	_, _, err = suite.service.AddSubtask(task.ID, "Two")
	suite.Require().NoError(err)

	_, _, err = suite.service.ToggleSubtask(task.ID, one.ID, true)
	suite.Require().NoError(err)

	w := suite.request("GET", fmt.Sprintf("/api/tasks/%d/subtasks", task.ID), nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	body := suite.decodeBody(w)
	assert.Len(suite.T(), body["subtasks"].([]interface{}), 2)

	counts := body["counts"].(map[string]interface{})
	assert.Equal(suite.T(), float64(2), counts["total"])
	assert.Equal(suite.T(), float64(1), counts["completed"])
	assert.Equal(suite.T(), float64(50), counts["percentage"])
}

// TestListSubtasks_PercentageRounds tests that uneven fractions round to the
// nearest whole percent
func (suite *SubtaskHandlerTestSuite) TestListSubtasks_PercentageRounds() {
	task := suite.createTestUserAndTask()

	one, _, err := suite.service.AddSubtask(task.ID, "One")
	suite.Require().NoError(err)
	two, _, err := suite.service.AddSubtask(task.ID, "Two")
	suite.Require().NoError(err)
	_, _, err = suite.service.AddSubtask(task.ID, "Three")
	suite.Require().NoError(err)

	_, _, err = suite.service.ToggleSubtask(task.ID, one.ID, true)
	suite.Require().NoError(err)
	_, _, err = suite.service.ToggleSubtask(task.ID, two.ID, true)
	suite.Require().NoError(err)

	w := suite.request("GET", fmt.Sprintf("/api/tasks/%d/subtasks", task.ID), nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	counts := suite.decodeBody(w)["counts"].(map[string]interface{})
	// 2 of 3 rounds to 67, never truncates to 66
	assert.Equal(suite.T(), float64(67), counts["percentage"])

	_, _, err = suite.service.ToggleSubtask(task.ID, two.ID, false)
	suite.Require().NoError(err)

	w = suite.request("GET", fmt.Sprintf("/api/tasks/%d/subtasks", task.ID), nil)
	counts = suite.decodeBody(w)["counts"].(map[string]interface{})
	assert.Equal(suite.T(), float64(33), counts["percentage"])
}

// TestListSubtasks_Empty tests an empty list with zero percentage
func (suite *SubtaskHandlerTestSuite) TestListSubtasks_Empty() {
	task := suite.createTestUserAndTask()

	w := suite.request("GET", fmt.Sprintf("/api/tasks/%d/subtasks", task.ID), nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	counts := suite.decodeBody(w)["counts"].(map[string]interface{})
	assert.Equal(suite.T(), float64(0), counts["total"])
	assert.Equal(suite.T(), float64(0), counts["percentage"])
}

// TestToggleSubtask tests completing and un-completing a subtask
func (suite *SubtaskHandlerTestSuite) TestToggleSubtask() {
	task := suite.createTestUserAndTask()
	subtask, _, err := suite.service.AddSubtask(task.ID, "Step one")
	suite.Require().NoError(err)

	url := fmt.Sprintf("/api/tasks/%d/subtasks/%s", task.ID, subtask.ID)

	w := suite.request("PATCH", url, map[string]interface{}{"completed": true})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	body := suite.decodeBody(w)
	got := body["subtask"].(map[string]interface{})
	assert.Equal(suite.T(), true, got["completed"])
	assert.NotNil(suite.T(), got["completed_at"])
	assert.Equal(suite.T(), float64(1), body["counts"].(map[string]interface{})["completed"])

	total, completed := suite.taskCounts(task.ID)
	assert.Equal(suite.T(), 1, total)
	assert.Equal(suite.T(), 1, completed)

	// Toggle back
	w = suite.request("PATCH", url, map[string]interface{}{"completed": false})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	got = suite.decodeBody(w)["subtask"].(map[string]interface{})
	assert.Equal(suite.T(), false, got["completed"])
	assert.Nil(suite.T(), got["completed_at"])

	_, completed = suite.taskCounts(task.ID)
	assert.Equal(suite.T(), 0, completed)
}

// TestToggleSubtask_MissingFlag tests the required completed field
func (suite *SubtaskHandlerTestSuite) TestToggleSubtask_MissingFlag() {
	task := suite.createTestUserAndTask()
	subtask, _, err := suite.service.AddSubtask(task.ID, "Step one")
	suite.Require().NoError(err)

	url := fmt.Sprintf("/api/tasks/%d/subtasks/%s", task.ID, subtask.ID)

	w := suite.request("PATCH", url, map[string]interface{}{})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "Completed status is required", suite.decodeBody(w)["error"])

	w = suite.request("PATCH", url, map[string]interface{}{"completed": "yes"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "Completed status must be a boolean", suite.decodeBody(w)["error"])
}

// TestToggleSubtask_NotFound tests toggling a nonexistent subtask
func (suite *SubtaskHandlerTestSuite) TestToggleSubtask_NotFound() {
	task := suite.createTestUserAndTask()

	w := suite.request("PATCH", fmt.Sprintf("/api/tasks/%d/subtasks/no-such-id", task.ID), map[string]interface{}{
		"completed": true,
	})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Equal(suite.T(), "Subtask not found", suite.decodeBody(w)["error"])
}

// TestUpdateSubtask_Title tests renaming a subtask
func (suite *SubtaskHandlerTestSuite) TestUpdateSubtask_Title() {
	task := suite.createTestUserAndTask()
	subtask, _, err := suite.service.AddSubtask(task.ID, "Old title")
	suite.Require().NoError(err)

	w := suite.request("PUT", fmt.Sprintf("/api/tasks/%d/subtasks/%s", task.ID, subtask.ID), map[string]interface{}{
		"title": "New title",
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	got := suite.decodeBody(w)["subtask"].(map[string]interface{})
	assert.Equal(suite.T(), "New title", got["title"])

	var stored models.Subtask
	suite.Require().NoError(suite.db.First(&stored, "id = ?", subtask.ID).Error)
	assert.Equal(suite.T(), "New title", stored.Title)
}

// TestDeleteSubtask tests removal and the count resync
func (suite *SubtaskHandlerTestSuite) TestDeleteSubtask() {
	task := suite.createTestUserAndTask()

	one, _, err := suite.service.AddSubtask(task.ID, "One")
	suite.Require().NoError(err)
	_, _, err = suite.service.AddSubtask(task.ID, "Two")
	suite.Require().NoError(err)
	_, _, err = suite.service.ToggleSubtask(task.ID, one.ID, true)
	suite.Require().NoError(err)

	w := suite.request("DELETE", fmt.Sprintf("/api/tasks/%d/subtasks/%s", task.ID, one.ID), nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	body := suite.decodeBody(w)
	assert.Equal(suite.T(), "Subtask deleted", body["message"])

	counts := body["counts"].(map[string]interface{})
	assert.Equal(suite.T(), float64(1), counts["total"])
	assert.Equal(suite.T(), float64(0), counts["completed"])

	total, completed := suite.taskCounts(task.ID)
	assert.Equal(suite.T(), 1, total)
	assert.Equal(suite.T(), 0, completed)
}

// TestDeleteSubtask_NotFound tests deleting a nonexistent subtask
func (suite *SubtaskHandlerTestSuite) TestDeleteSubtask_NotFound() {
	task := suite.createTestUserAndTask()

	w := suite.request("DELETE", fmt.Sprintf("/api/tasks/%d/subtasks/no-such-id", task.ID), nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestSubtask_ForeignTask tests that subtask routes honor task ownership
func (suite *SubtaskHandlerTestSuite) TestSubtask_ForeignTask() {
	suite.createTestUserAndTask()

	other := &models.User{Name: "Other", Email: "other@example.com", PasswordHash: "hashedpassword"}
	suite.db.Create(other)
	foreign := &models.Task{
		Title:    "Foreign task",
		Status:   models.TaskStatusTodo,
		Priority: models.TaskPriorityMedium,
		DueDate:  time.Now().AddDate(0, 0, 7),
		UserID:   other.ID,
	}
	suite.db.Create(foreign)

	w := suite.request("POST", fmt.Sprintf("/api/tasks/%d/subtasks", foreign.ID), map[string]interface{}{
		"title": "Sneaky",
	})

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func TestSubtaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SubtaskHandlerTestSuite))
}
