package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	request "greenpro_billing/internal/adapter/http/dto/request"
	response "greenpro_billing/internal/adapter/http/dto/response"
	"greenpro_billing/internal/usecase"
	"greenpro_billing/pkg"
)

var (
	errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_ESTIMATE_INPUT", "Invalid estimate payload", http.StatusBadRequest)
)

// EstimateHandler serves the service catalog and the quote calculator.
type EstimateHandler struct {
	usecase usecase.IEstimateUseCase
}

func NewEstimateHandler(uc usecase.IEstimateUseCase) *EstimateHandler {
	return &EstimateHandler{usecase: uc}
}

// ListServices godoc
// @Summary      List services and prices
// @Tags         estimates
// @Produce      json
// @Success      200  {object}  response.ServiceCatalogResponse
// @Router       /services [get]
func (h *EstimateHandler) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromServiceCatalog(h.usecase.ListServices(c.Request.Context())))
}

// CreateEstimate godoc
// @Summary      Price a quote
// @Description  Area and rooms accept free text; unparseable values count as zero.
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Param        body  body      request.EstimateRequest  true  "Quote"
// @Success      200   {object}  response.EstimateResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /estimates [post]
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	var payload request.EstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.Calculate(c.Request.Context(), payload.ServiceName(), payload.Area.String(), payload.Rooms.String())
	if errors.Is(err, pkg.ErrInvalidAmount) {
		c.JSON(errInvalidAmount.HTTPStatus, errInvalidAmount.ToHTTPError())
		return
	}
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromEstimateQuote(quote))
}
