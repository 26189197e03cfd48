package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ashaconnect/payout-system/internal/api/metrics"
	"github.com/ashaconnect/payout-system/internal/core/ports"
)

type PaymentHandler struct {
	paymentService ports.PaymentService
}

func NewPaymentHandler(paymentService ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Submit stores a new pending payment request.
//
// @Summary      Submit a payment request
// @Tags         payment
// @Accept       json
// @Produce      json
// @Param        body  body      submitPaymentRequest  true  "Payment request details"
// @Success      201   {object}  submitPaymentResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/request [post]
func (h *PaymentHandler) Submit(c echo.Context) error {
	var req submitPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.paymentService.Submit(c.Request().Context(), ports.SubmitPaymentInput{
		Username: req.Username,
		Count:    req.Count,
		Credits:  req.Credits,
		Payment:  req.Payment,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, submitPaymentResponse{
		Message: "Payment request sent to Admin",
		Request: created,
	})
}

// List returns the full collection of payment requests.
//
// @Summary      List payment requests
// @Tags         payment
// @Produce      json
// @Success      200  {array}  domain.PaymentRequest
// @Router       /api/payment [get]
func (h *PaymentHandler) List(c echo.Context) error {
	requests, err := h.paymentService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// Status reports the lifecycle state for one worker as a typed enum. A worker
// with no stored request reads as "none"; this is the single poll the account
// client uses instead of scanning the full collection twice.
//
// @Summary      Poll payment request status
// @Tags         payment
// @Produce      json
// @Param        username  query     string  true  "Worker username"
// @Success      200       {object}  statusResponse
// @Failure      400       {object}  map[string]string
// @Router       /api/payment/status [get]
func (h *PaymentHandler) Status(c echo.Context) error {
	username := c.QueryParam("username")
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}

	start := time.Now()
	status, err := h.paymentService.Status(c.Request().Context(), username)
	if err != nil {
		return err
	}
	metrics.StatusPollDuration.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, statusResponse{Username: username, Status: status})
}

// Approve flips a pending request to approved. Admin only.
//
// @Summary      Approve a payment request
// @Tags         payment
// @Accept       json
// @Produce      json
// @Param        body  body      usernameRequest  true  "Worker to approve"
// @Success      200   {object}  submitPaymentResponse
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/payment/approve [post]
func (h *PaymentHandler) Approve(c echo.Context) error {
	if _, err := ctxUsername(c); err != nil {
		return err
	}

	var req usernameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	approved, err := h.paymentService.Approve(c.Request().Context(), req.Username)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, submitPaymentResponse{
		Message: "Payment approved",
		Request: approved,
	})
}

// Reset clears an approved request, returning the worker to a clean slate.
//
// @Summary      Reset a paid-out request
// @Tags         payment
// @Accept       json
// @Produce      json
// @Param        body  body      usernameRequest  true  "Worker to reset"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/payment/reset [post]
func (h *PaymentHandler) Reset(c echo.Context) error {
	var req usernameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.paymentService.Reset(c.Request().Context(), req.Username); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Payment cleared"})
}
