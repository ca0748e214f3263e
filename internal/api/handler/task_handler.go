package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdeck/task-system/internal/api/metrics"
	"github.com/taskdeck/task-system/internal/core/domain"
	"github.com/taskdeck/task-system/internal/core/ports"
	"github.com/taskdeck/task-system/pkg/dateutil"
)

// TaskHandler exposes per-account task CRUD and the derived visible sequence.
type TaskHandler struct {
	tasks ports.TaskService
	cal   *dateutil.Calendar
}

func NewTaskHandler(tasks ports.TaskService, cal *dateutil.Calendar) *TaskHandler {
	return &TaskHandler{tasks: tasks, cal: cal}
}

// parseViewState reads the filter/scope/anchor/sort query parameters.
// Unknown enum values are a client error; a missing or malformed anchor
// falls back to today.
func parseViewState(c echo.Context, cal *dateutil.Calendar) (domain.ViewState, error) {
	var state domain.ViewState
	var ok bool

	if state.Filter, ok = domain.ParseStatusFilter(c.QueryParam("filter")); !ok {
		return state, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown filter %q", c.QueryParam("filter")))
	}
	if state.Scope, ok = domain.ParseAgendaScope(c.QueryParam("scope")); !ok {
		return state, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown scope %q", c.QueryParam("scope")))
	}
	if state.Sort, ok = domain.ParseSortKey(c.QueryParam("sort")); !ok {
		return state, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown sort %q", c.QueryParam("sort")))
	}

	state.Anchor = cal.Normalize(c.QueryParam("anchor"))
	if state.Anchor == "" {
		state.Anchor = cal.Today()
	}
	return state, nil
}

// List returns the visible sequence for the current view state.
//
// @Summary      List visible tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        filter  query     string  false  "all | active | completed"
// @Param        scope   query     string  false  "all | day | week"
// @Param        anchor  query     string  false  "anchor date (YYYY-MM-DD), defaults to today"
// @Param        sort    query     string  false  "created | dueAt | priority"
// @Success      200     {object}  taskListResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	accountID, err := ctxAccount(c)
	if err != nil {
		return err
	}
	state, err := parseViewState(c, h.cal)
	if err != nil {
		return err
	}

	visible, err := h.tasks.Visible(c.Request().Context(), accountID, state)
	if err != nil {
		return err
	}

	metrics.ViewRequestsTotal.WithLabelValues(string(state.Scope), string(state.Sort)).Inc()
	return c.JSON(http.StatusOK, taskListResponse{
		Items:  toTaskListItems(visible),
		Count:  len(visible),
		Anchor: state.Anchor,
		Filter: string(state.Filter),
		Scope:  string(state.Scope),
		Sort:   string(state.Sort),
	})
}

// Create adds a new task for the authenticated account.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task fields"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	accountID, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.tasks.Create(c.Request().Context(), accountID, toCreateInput(req))
	if err != nil {
		return err
	}

	priority := string(task.Priority)
	if priority == "" {
		priority = "none"
	}
	metrics.TasksCreatedTotal.WithLabelValues(priority).Inc()
	return c.JSON(http.StatusCreated, toTaskResponse(task))
}

// Get returns a single task by id.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  taskResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	accountID, err := ctxAccount(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.Get(c.Request().Context(), accountID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Patch applies a partial update.
//
// @Summary      Patch a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Task id"
// @Param        body  body      patchTaskRequest  true  "Fields to change"
// @Success      200   {object}  taskResponse
// @Success      204   "id unknown, nothing to do"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/tasks/{id} [patch]
func (h *TaskHandler) Patch(c echo.Context) error {
	accountID, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req patchTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, changed, err := h.tasks.Update(c.Request().Context(), accountID, c.Param("id"), toTaskPatch(req))
	if err != nil {
		return err
	}
	// Patching an id that no longer exists is not an error: the client may
	// race with its own earlier delete.
	if task == nil {
		metrics.TaskUpdatesTotal.WithLabelValues("missing").Inc()
		return c.NoContent(http.StatusNoContent)
	}

	if changed {
		metrics.TaskUpdatesTotal.WithLabelValues("applied").Inc()
	} else {
		metrics.TaskUpdatesTotal.WithLabelValues("noop").Inc()
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete removes a task by id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id  path  string  true  "Task id"
// @Success      204  "deleted (or already gone)"
// @Failure      401  {object}  errorResponse
// @Router       /v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	accountID, err := ctxAccount(c)
	if err != nil {
		return err
	}

	if err := h.tasks.Remove(c.Request().Context(), accountID, c.Param("id")); err != nil {
		return err
	}
	metrics.TaskDeletesTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
