package handler

import "github.com/ashaconnect/payout-system/internal/core/domain"

type submitPaymentRequest struct {
	Username string `json:"username" validate:"required"`
	Count    int    `json:"count" validate:"gte=0"`
	Credits  int    `json:"credits" validate:"gte=0"`
	Payment  int    `json:"payment" validate:"gt=0"`
}

type usernameRequest struct {
	Username string `json:"username" validate:"required"`
}

type submitPaymentResponse struct {
	Message string                 `json:"message"`
	Request *domain.PaymentRequest `json:"request"`
}

type statusResponse struct {
	Username string               `json:"username"`
	Status   domain.PaymentStatus `json:"status"`
}
