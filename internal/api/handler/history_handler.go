package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/adminhub/identity-system/internal/core/ports"
)

// HistoryHandler exposes the version history and audit trail.
type HistoryHandler struct {
	historyService ports.HistoryService
}

func NewHistoryHandler(historyService ports.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// UserHistory returns one page of a user's version snapshots, newest first.
//
// @Summary      User version history
// @Tags         history
// @Produce      json
// @Param        userId  path   int  true   "User id"
// @Param        page    query  int  false  "Page number (1-based)"
// @Success      200  {object}  ports.UserHistoryPage
// @Router       /users/user-history/{userId} [get]
func (h *HistoryHandler) UserHistory(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	page := queryPage(c)
	result, err := h.historyService.UserHistory(c.Request().Context(), userID, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// AuditLogs returns one page of the global audit trail, newest first.
//
// @Summary      Audit log entries
// @Tags         history
// @Produce      json
// @Param        page  query  int  false  "Page number (1-based)"
// @Success      200  {object}  ports.AuditLogPage
// @Router       /users/audit-logs [get]
func (h *HistoryHandler) AuditLogs(c echo.Context) error {
	result, err := h.historyService.AuditLogs(c.Request().Context(), queryPage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// queryPage reads the optional 1-based page parameter. Missing, malformed,
// and non-positive values all clamp to the first page.
func queryPage(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
