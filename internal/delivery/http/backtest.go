package http

import (
	"net/http"
	"trading-journal/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupBacktest(base *echo.Group) {
	backtestGroup := base.Group("/backtest")
	{
		backtestGroup.POST("", h.runBacktest)
		backtestGroup.POST("/refresh-stats", h.refreshStats)
	}
}

func (h *HttpAPIHandler) runBacktest(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.BacktestRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	result, err := h.service.BacktestService.RunBacktest(ctx, *req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to run backtest", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("backtest completed", result))
}

func (h *HttpAPIHandler) refreshStats(c echo.Context) error {
	response := dto.NewSuccessResponse("rule stats refreshed", nil)
	if err := h.service.StatsRefresher.RefreshOnce(c.Request().Context()); err != nil {
		response.Code = http.StatusInternalServerError
		response.Message = err.Error()
	}
	return c.JSON(response.Code, response)
}
