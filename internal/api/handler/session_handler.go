package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdeck/task-system/internal/core/ports"
)

// SessionHandler exposes the persisted session pointer: startup restore and
// sign-out.
type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type sessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	Account       *accountResponse `json:"account"`
}

// Restore resolves the persisted session pointer to its account.
//
// @Summary      Restore the persisted session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /v1/session [get]
func (h *SessionHandler) Restore(c echo.Context) error {
	account, err := h.sessions.Restore(c.Request().Context())
	if err != nil {
		return err
	}

	// A nil account covers both "no pointer" and "stale pointer discarded";
	// the client treats either as signed out, never as an error.
	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: account != nil,
		Account:       toAccountResponse(account),
	})
}

// Logout clears the persisted session pointer.
//
// @Summary      Sign out
// @Tags         session
// @Success      204  "cleared"
// @Router       /v1/session [delete]
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.sessions.Clear(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
