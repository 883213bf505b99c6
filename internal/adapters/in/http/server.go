// Package http exposes the REST API for order lifecycle, proof-of-delivery
// verification, and delay monitoring.
package http

import (
	"errors"
	"net/http"
	"time"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON error body returned by all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderResponse reports an order's id and status after a lifecycle operation.
type OrderResponse struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// ProofResponse carries a freshly issued proof-of-delivery credential.
type ProofResponse struct {
	OrderID   string    `json:"orderId"`
	OTP       string    `json:"otp"`
	QRPayload string    `json:"qrPayload"`
	ExpiresAt time.Time `json:"expiresAt"`
	Status    string    `json:"status"`
}

// VerificationResponse reports a successful proof redemption.
type VerificationResponse struct {
	OrderID     string    `json:"orderId"`
	Status      string    `json:"status"`
	VerifiedAt  time.Time `json:"verifiedAt"`
	Method      string    `json:"method"`
	DeliveredAt time.Time `json:"deliveredAt"`
}

// ProofStatusResponse is the read-only credential projection of an order.
type ProofStatusResponse struct {
	OrderID            string     `json:"orderId"`
	Status             string     `json:"status"`
	OTP                *string    `json:"otp,omitempty"`
	QRPayload          *string    `json:"qrPayload,omitempty"`
	ExpiresAt          *time.Time `json:"expiresAt,omitempty"`
	VerifiedAt         *time.Time `json:"verifiedAt,omitempty"`
	VerificationMethod *string    `json:"verificationMethod,omitempty"`
	Delayed            bool       `json:"delayed"`
}

// DelayCheckResponse reports the outcome of an on-demand delay check.
type DelayCheckResponse struct {
	OrderID string `json:"orderId"`
	Result  string `json:"result"`
}

// DelayedOrderResponse describes one delayed order in the escalation listing.
type DelayedOrderResponse struct {
	OrderID           string    `json:"orderId"`
	PickedUpAt        time.Time `json:"pickedUpAt"`
	EstimatedDuration int       `json:"estimatedDuration"`
	ElapsedMinutes    int       `json:"elapsedMinutes"`
	OverdueMinutes    int       `json:"overdueMinutes"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler    commands.CreateOrderCommandHandler
	pickUpOrderHandler    commands.PickUpOrderCommandHandler
	startDeliveryHandler  commands.StartDeliveryCommandHandler
	cancelOrderHandler    commands.CancelOrderCommandHandler
	generateProofHandler  commands.GenerateProofCommandHandler
	verifyDeliveryHandler commands.VerifyDeliveryCommandHandler
	checkDelayHandler     commands.CheckDelayCommandHandler

	// Query handlers
	getProofHandler         queries.GetProofQueryHandler
	getDelayedOrdersHandler queries.GetDelayedOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	pickUpOrderHandler commands.PickUpOrderCommandHandler,
	startDeliveryHandler commands.StartDeliveryCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	generateProofHandler commands.GenerateProofCommandHandler,
	verifyDeliveryHandler commands.VerifyDeliveryCommandHandler,
	checkDelayHandler commands.CheckDelayCommandHandler,
	getProofHandler queries.GetProofQueryHandler,
	getDelayedOrdersHandler queries.GetDelayedOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		pickUpOrderHandler:      pickUpOrderHandler,
		startDeliveryHandler:    startDeliveryHandler,
		cancelOrderHandler:      cancelOrderHandler,
		generateProofHandler:    generateProofHandler,
		verifyDeliveryHandler:   verifyDeliveryHandler,
		checkDelayHandler:       checkDelayHandler,
		getProofHandler:         getProofHandler,
		getDelayedOrdersHandler: getDelayedOrdersHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/delayed", s.GetDelayedOrders)
	api.POST("/orders/proof/qr", s.VerifyProofQR)
	api.POST("/orders/:id/pickup", s.PickUpOrder)
	api.POST("/orders/:id/dispatch", s.StartDelivery)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/proof", s.GenerateProof)
	api.GET("/orders/:id/proof", s.GetProof)
	api.POST("/orders/:id/proof/otp", s.VerifyProofOTP)
	api.POST("/orders/:id/delay-check", s.CheckDelay)
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
// An order id may be supplied by the caller; one is generated otherwise.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body struct {
		OrderID string `json:"orderId"`
	}
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	if body.OrderID != "" {
		parsed, err := kernel.UUIDFromString(body.OrderID)
		if err != nil {
			return errorJSON(ctx, http.StatusBadRequest, "Invalid order id: "+err.Error())
		}
		orderID = parsed
	}

	cmd, err := commands.NewCreateOrderCommand(orderID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, OrderResponse{
		OrderID: orderID.String(),
		Status:  order.Created.String(),
	})
}

// PickUpOrder handles POST /api/v1/orders/:id/pickup - records package
// collection and the expected transit time in minutes.
func (s *Server) PickUpOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	var body struct {
		EstimatedMinutes int `json:"estimatedMinutes"`
	}
	if err = ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewPickUpOrderCommand(orderID, body.EstimatedMinutes)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid pickup data: "+err.Error())
	}

	if handleErr := s.pickUpOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr, "Failed to pick up order")
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		OrderID: orderID.String(),
		Status:  order.PickedUp.String(),
	})
}

// StartDelivery handles POST /api/v1/orders/:id/dispatch - marks the package
// as out for delivery.
func (s *Server) StartDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	cmd, err := commands.NewStartDeliveryCommand(orderID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid dispatch data: "+err.Error())
	}

	if handleErr := s.startDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr, "Failed to dispatch order")
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		OrderID: orderID.String(),
		Status:  order.OutForDelivery.String(),
	})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - aborts the order.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid cancel data: "+err.Error())
	}

	if handleErr := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return mapDomainError(ctx, handleErr, "Failed to cancel order")
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		OrderID: orderID.String(),
		Status:  order.Cancelled.String(),
	})
}

// GenerateProof handles POST /api/v1/orders/:id/proof - issues a fresh
// proof-of-delivery credential, overwriting any earlier one.
func (s *Server) GenerateProof(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	cmd, err := commands.NewGenerateProofCommand(orderID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid proof request: "+err.Error())
	}

	details, handleErr := s.generateProofHandler.Handle(ctx.Request().Context(), cmd)
	if handleErr != nil {
		return mapDomainError(ctx, handleErr, "Failed to generate proof")
	}

	metrics.ProofsGeneratedTotal.Inc()

	return ctx.JSON(http.StatusCreated, ProofResponse{
		OrderID:   details.OrderID.String(),
		OTP:       details.OTP,
		QRPayload: details.QRPayload,
		ExpiresAt: details.ExpiresAt,
		Status:    details.Status,
	})
}

// VerifyProofOTP handles POST /api/v1/orders/:id/proof/otp - redeems the
// credential with a manually entered one-time code.
func (s *Server) VerifyProofOTP(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	var body struct {
		OTP string `json:"otp"`
	}
	if err = ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewVerifyDeliveryCommand(orderID, body.OTP)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid verification data: "+err.Error())
	}

	return s.verify(ctx, cmd)
}

// VerifyProofQR handles POST /api/v1/orders/proof/qr - redeems the credential
// from a scanned QR payload. The order id is embedded in the payload.
func (s *Server) VerifyProofQR(ctx echo.Context) error {
	var body struct {
		Payload string `json:"payload"`
	}
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewVerifyDeliveryCommandFromQR(body.Payload)
	if err != nil {
		metrics.VerificationAttemptsTotal.
			WithLabelValues(order.MethodQR.String(), metrics.OutcomeMalformed).Inc()
		return mapDomainError(ctx, err, "Invalid QR payload")
	}

	return s.verify(ctx, cmd)
}

// verify runs a verification command and records the attempt outcome.
// Both presentation methods share this path and its failure taxonomy.
func (s *Server) verify(ctx echo.Context, cmd commands.VerifyDeliveryCommand) error {
	started := time.Now()
	result, err := s.verifyDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	metrics.VerificationDuration.Observe(time.Since(started).Seconds())

	method := cmd.Method().String()
	if err != nil {
		metrics.VerificationAttemptsTotal.WithLabelValues(method, verificationOutcome(err)).Inc()
		return mapDomainError(ctx, err, "Verification failed")
	}

	metrics.VerificationAttemptsTotal.WithLabelValues(method, metrics.OutcomeVerified).Inc()

	return ctx.JSON(http.StatusOK, VerificationResponse{
		OrderID:     result.OrderID.String(),
		Status:      result.Status,
		VerifiedAt:  result.VerifiedAt,
		Method:      result.Method,
		DeliveredAt: result.DeliveredAt,
	})
}

// GetProof handles GET /api/v1/orders/:id/proof - returns the credential
// projection of an order without mutating anything.
func (s *Server) GetProof(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	query, err := queries.NewGetProofQuery(orderID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid proof query: "+err.Error())
	}

	proof, handleErr := s.getProofHandler.Handle(ctx.Request().Context(), query)
	if handleErr != nil {
		return mapDomainError(ctx, handleErr, "Failed to retrieve proof")
	}

	return ctx.JSON(http.StatusOK, ProofStatusResponse{
		OrderID:            proof.OrderID.String(),
		Status:             proof.Status,
		OTP:                proof.OTP,
		QRPayload:          proof.QRPayload,
		ExpiresAt:          proof.ExpiresAt,
		VerifiedAt:         proof.VerifiedAt,
		VerificationMethod: proof.VerificationMethod,
		Delayed:            proof.Delayed,
	})
}

// CheckDelay handles POST /api/v1/orders/:id/delay-check - runs an on-demand
// delay reconciliation pass for one order.
func (s *Server) CheckDelay(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid order id")
	}

	cmd, err := commands.NewCheckDelayCommand(orderID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid delay check: "+err.Error())
	}

	result, handleErr := s.checkDelayHandler.Handle(ctx.Request().Context(), cmd)
	if handleErr != nil {
		return mapDomainError(ctx, handleErr, "Failed to check delay")
	}

	return ctx.JSON(http.StatusOK, DelayCheckResponse{
		OrderID: orderID.String(),
		Result:  result.String(),
	})
}

// GetDelayedOrders handles GET /api/v1/orders/delayed - lists all orders
// currently marked DELAYED, most overdue first.
func (s *Server) GetDelayedOrders(ctx echo.Context) error {
	query := queries.NewGetDelayedOrdersQuery()

	delayed, err := s.getDelayedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapDomainError(ctx, err, "Failed to retrieve delayed orders")
	}

	response := make([]DelayedOrderResponse, len(delayed))
	for i, d := range delayed {
		response[i] = DelayedOrderResponse{
			OrderID:           d.OrderID.String(),
			PickedUpAt:        d.PickedUpAt,
			EstimatedDuration: d.EstimatedDuration,
			ElapsedMinutes:    d.ElapsedMinutes,
			OverdueMinutes:    d.OverdueMinutes,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// verificationOutcome maps a verification failure to its metric label.
func verificationOutcome(err error) string {
	switch {
	case errors.Is(err, order.ErrProofMismatch):
		return metrics.OutcomeMismatch
	case errors.Is(err, order.ErrProofExpired):
		return metrics.OutcomeExpired
	case errors.Is(err, order.ErrNoProofIssued):
		return metrics.OutcomeNoProof
	case errors.Is(err, order.ErrAlreadyVerified):
		return metrics.OutcomeAlreadyDone
	default:
		return metrics.OutcomeError
	}
}

// mapDomainError translates domain failures into HTTP status codes:
//
//	not found            -> 404
//	malformed QR payload -> 400
//	proof mismatch       -> 422
//	proof expired        -> 410
//	no proof issued      -> 409
//	already verified     -> 409
//	invalid transition   -> 409
//	missing value        -> 400
func mapDomainError(ctx echo.Context, err error, fallback string) error {
	var notFound *errs.ObjectNotFoundError

	switch {
	case errors.As(err, &notFound):
		return errorJSON(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrMalformedQR):
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrProofMismatch):
		return errorJSON(ctx, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, order.ErrProofExpired):
		return errorJSON(ctx, http.StatusGone, err.Error())
	case errors.Is(err, order.ErrNoProofIssued):
		return errorJSON(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, order.ErrAlreadyVerified):
		return errorJSON(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, order.ErrOrderTerminal):
		return errorJSON(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid):
		return errorJSON(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	default:
		return errorJSON(ctx, http.StatusInternalServerError, fallback)
	}
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}
