package http

import (
	"net/http"
	"trading-journal/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupEvaluate(base *echo.Group) {
	evaluateGroup := base.Group("/evaluate")
	{
		evaluateGroup.POST("", h.evaluateSetup)
		evaluateGroup.GET("/:tradeID", h.evaluateTrade)
	}
}

func (h *HttpAPIHandler) evaluateSetup(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.EvaluateRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	eval, err := h.service.AdvisorService.EvaluateSetup(ctx, *req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to evaluate setup", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("setup evaluated", eval))
}

func (h *HttpAPIHandler) evaluateTrade(c echo.Context) error {
	ctx := c.Request().Context()

	tradeID := c.Param("tradeID")
	if tradeID == "" {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("trade id is required"))
	}

	eval, err := h.service.AdvisorService.EvaluateTrade(ctx, tradeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to evaluate trade", nil))
	}
	if eval == nil {
		return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "trade not found", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("trade evaluated", eval))
}
