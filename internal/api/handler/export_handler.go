package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskdeck/task-system/internal/core/ports"
	"github.com/taskdeck/task-system/pkg/dateutil"
)

// exportColumns is the fixed column order of the CSV document.
var exportColumns = []string{"id", "title", "completed", "createdAt", "updatedAt", "dueAt", "priority"}

// ExportHandler renders the current visible sequence as a CSV document.
type ExportHandler struct {
	tasks ports.TaskService
	cal   *dateutil.Calendar
}

func NewExportHandler(tasks ports.TaskService, cal *dateutil.Calendar) *ExportHandler {
	return &ExportHandler{tasks: tasks, cal: cal}
}

// Export streams the visible sequence for the requested view state as CSV.
// Fields containing the delimiter, quotes, or newlines are quoted per RFC 4180.
//
// @Summary      Export visible tasks as CSV
// @Tags         tasks
// @Produce      text/csv
// @Security     BearerAuth
// @Param        filter  query  string  false  "all | active | completed"
// @Param        scope   query  string  false  "all | day | week"
// @Param        anchor  query  string  false  "anchor date (YYYY-MM-DD)"
// @Param        sort    query  string  false  "created | dueAt | priority"
// @Success      200  {string}  string  "CSV document"
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/tasks/export.csv [get]
func (h *ExportHandler) Export(c echo.Context) error {
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

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportColumns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range visible {
		row := []string{
			t.ID,
			t.Title,
			strconv.FormatBool(t.Completed),
			t.CreatedAt.Format(time.RFC3339),
			t.UpdatedAt.Format(time.RFC3339),
			t.DueAt,
			string(t.Priority),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="tasks.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
