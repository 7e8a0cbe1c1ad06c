package gateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/connect-api/internal/models"
	"github.com/devconnect/connect-api/internal/store"
	"github.com/devconnect/connect-api/internal/validation"
)

// TodoResponse wraps a single todo
type TodoResponse struct {
	Message string      `json:"message"`
	Data    models.Todo `json:"data"`
}

// TodoListResponse wraps a list of todos
type TodoListResponse struct {
	Message string        `json:"message"`
	Data    []models.Todo `json:"data"`
}

// CreateTodo godoc
// @Summary Create todo
// @Tags todos
// @Accept json
// @Produce json
// @Param request body models.CreateTodoRequest true "Todo payload"
// @Success 201 {object} TodoResponse
// @Failure 400 {object} models.ErrorResponse
// @Security CookieAuth
// @Router /todos [post]
func (h *Handler) CreateTodo(c *gin.Context) {
	var req models.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Title is not valid",
			Code:    models.ErrCodeInvalidRequest,
		})
		return
	}

	if err := validation.ValidateTodo(req.Title); err != nil {
		respondError(c, err)
		return
	}

	todo := &models.Todo{Title: req.Title}
	if err := h.todos.Insert(c.Request.Context(), todo); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Message: "Todo with this title already exists",
				Code:    models.ErrCodeAlreadyExists,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TodoResponse{
		Message: "Todo created successfully",
		Data:    *todo,
	})
}

// ListTodos godoc
// @Summary List todos
// @Tags todos
// @Produce json
// @Success 200 {object} TodoListResponse
// @Security CookieAuth
// @Router /todos [get]
func (h *Handler) ListTodos(c *gin.Context) {
	todos, err := h.todos.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	list := make([]models.Todo, 0, len(todos))
	for _, todo := range todos {
		list = append(list, *todo)
	}

	c.JSON(http.StatusOK, TodoListResponse{
		Message: "Successfully get todos",
		Data:    list,
	})
}

// GetTodo godoc
// @Summary Get todo by ID
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} TodoResponse
// @Failure 404 {object} models.ErrorResponse
// @Security CookieAuth
// @Router /todos/{id} [get]
func (h *Handler) GetTodo(c *gin.Context) {
	todo, err := h.todos.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Todo not found",
				Code:    models.ErrCodeNotFound,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TodoResponse{
		Message: "Successfully get todo",
		Data:    *todo,
	})
}

// UpdateTodo godoc
// @Summary Update todo
// @Tags todos
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param request body models.UpdateTodoRequest true "Fields to update"
// @Success 200 {object} TodoResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security CookieAuth
// @Router /todos/{id} [patch]
func (h *Handler) UpdateTodo(c *gin.Context) {
	var req models.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid request",
			Code:    models.ErrCodeInvalidRequest,
		})
		return
	}

	todo, err := h.todos.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Todo not found",
				Code:    models.ErrCodeNotFound,
			})
			return
		}
		respondError(c, err)
		return
	}

	if req.Title != nil {
		if err := validation.ValidateTodo(*req.Title); err != nil {
			respondError(c, err)
			return
		}
		todo.Title = *req.Title
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}

	if err := h.todos.Update(c.Request.Context(), todo); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TodoResponse{
		Message: "Todo updated successfully",
		Data:    *todo,
	})
}

// DeleteTodo godoc
// @Summary Delete todo
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} models.ErrorResponse
// @Security CookieAuth
// @Router /todos/{id} [delete]
func (h *Handler) DeleteTodo(c *gin.Context) {
	if err := h.todos.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Todo not found",
				Code:    models.ErrCodeNotFound,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted successfully"})
}
