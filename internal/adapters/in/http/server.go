// Package http carries the REST surface of the dispatch core. Handlers
// translate between JSON and the command/query objects; no business rules
// live here.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Server implements the HTTP API over the command and query handlers.
type Server struct {
	createOrder        commands.CreateOrderCommandHandler
	markOrderPreparing commands.MarkOrderPreparingCommandHandler
	markOrderReady     commands.MarkOrderReadyCommandHandler
	claimOrder         commands.ClaimOrderCommandHandler
	recordPickup       commands.RecordPickupCommandHandler
	startTransit       commands.StartTransitCommandHandler
	recordDelivery     commands.RecordDeliveryCommandHandler
	failDelivery       commands.FailDeliveryCommandHandler
	requeueOrder       commands.RequeueOrderCommandHandler
	cancelOrder        commands.CancelOrderCommandHandler

	createCourier          commands.CreateCourierCommandHandler
	setCourierAvailability commands.SetCourierAvailabilityCommandHandler
	reportCourierLocation  commands.ReportCourierLocationCommandHandler

	getEligibleOrders   queries.GetEligibleOrdersQueryHandler
	getCourierEarnings  queries.GetCourierEarningsQueryHandler
	getActiveAssignment queries.GetActiveAssignmentQueryHandler
}

// Handlers bundles everything the server dispatches to.
type Handlers struct {
	CreateOrder        commands.CreateOrderCommandHandler
	MarkOrderPreparing commands.MarkOrderPreparingCommandHandler
	MarkOrderReady     commands.MarkOrderReadyCommandHandler
	ClaimOrder         commands.ClaimOrderCommandHandler
	RecordPickup       commands.RecordPickupCommandHandler
	StartTransit       commands.StartTransitCommandHandler
	RecordDelivery     commands.RecordDeliveryCommandHandler
	FailDelivery       commands.FailDeliveryCommandHandler
	RequeueOrder       commands.RequeueOrderCommandHandler
	CancelOrder        commands.CancelOrderCommandHandler

	CreateCourier          commands.CreateCourierCommandHandler
	SetCourierAvailability commands.SetCourierAvailabilityCommandHandler
	ReportCourierLocation  commands.ReportCourierLocationCommandHandler

	GetEligibleOrders   queries.GetEligibleOrdersQueryHandler
	GetCourierEarnings  queries.GetCourierEarningsQueryHandler
	GetActiveAssignment queries.GetActiveAssignmentQueryHandler
}

// NewServer creates the HTTP server.
func NewServer(h Handlers) *Server {
	return &Server{
		createOrder:            h.CreateOrder,
		markOrderPreparing:     h.MarkOrderPreparing,
		markOrderReady:         h.MarkOrderReady,
		claimOrder:             h.ClaimOrder,
		recordPickup:           h.RecordPickup,
		startTransit:           h.StartTransit,
		recordDelivery:         h.RecordDelivery,
		failDelivery:           h.FailDelivery,
		requeueOrder:           h.RequeueOrder,
		cancelOrder:            h.CancelOrder,
		createCourier:          h.CreateCourier,
		setCourierAvailability: h.SetCourierAvailability,
		reportCourierLocation:  h.ReportCourierLocation,
		getEligibleOrders:      h.GetEligibleOrders,
		getCourierEarnings:     h.GetCourierEarnings,
		getActiveAssignment:    h.GetActiveAssignment,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/eligible", s.GetEligibleOrders)
	api.POST("/orders/:id/preparing", s.MarkOrderPreparing)
	api.POST("/orders/:id/ready", s.MarkOrderReady)
	api.POST("/orders/:id/claim", s.ClaimOrder)
	api.POST("/orders/:id/pickup", s.RecordPickup)
	api.POST("/orders/:id/transit", s.StartTransit)
	api.POST("/orders/:id/delivered", s.RecordDelivery)
	api.POST("/orders/:id/fail", s.FailDelivery)
	api.POST("/orders/:id/requeue", s.RequeueOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)

	api.POST("/couriers", s.CreateCourier)
	api.PUT("/couriers/:id/availability", s.SetCourierAvailability)
	api.PUT("/couriers/:id/location", s.ReportCourierLocation)
	api.GET("/couriers/:id/earnings", s.GetCourierEarnings)
	api.GET("/couriers/:id/assignment", s.GetActiveAssignment)

	e.GET("/health", s.Health)
}

// Health reports liveness.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "invalid customer_id")
	}
	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return badRequest(ctx, "invalid restaurant_id")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, restaurantID, req.City, req.Address)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.createOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, idResponse{ID: orderID.String()})
}

// MarkOrderPreparing handles POST /api/v1/orders/:id/preparing.
func (s *Server) MarkOrderPreparing(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewMarkOrderPreparingCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.markOrderPreparing.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkOrderReady handles POST /api/v1/orders/:id/ready. The response carries
// the pickup code so the restaurant can hand it to the courier at the counter.
func (s *Server) MarkOrderReady(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewMarkOrderReadyCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	code, err := s.markOrderReady.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, codeResponse{PickupCode: code})
}

// ClaimOrder handles POST /api/v1/orders/:id/claim.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req courierActionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier_id")
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.claimOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordPickup handles POST /api/v1/orders/:id/pickup.
func (s *Server) RecordPickup(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req codeActionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier_id")
	}

	cmd, err := commands.NewRecordPickupCommand(orderID, courierID, req.Code)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.recordPickup.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StartTransit handles POST /api/v1/orders/:id/transit.
func (s *Server) StartTransit(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req courierActionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier_id")
	}

	cmd, err := commands.NewStartTransitCommand(orderID, courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.startTransit.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordDelivery handles POST /api/v1/orders/:id/delivered.
func (s *Server) RecordDelivery(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req codeActionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier_id")
	}

	cmd, err := commands.NewRecordDeliveryCommand(orderID, courierID, req.Code)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.recordDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// FailDelivery handles POST /api/v1/orders/:id/fail. The reason is optional
// and travels to the customer unchanged.
func (s *Server) FailDelivery(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req failDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier_id")
	}

	cmd, err := commands.NewFailDeliveryCommand(orderID, courierID, req.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.failDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequeueOrder handles POST /api/v1/orders/:id/requeue.
func (s *Server) RequeueOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req courierActionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier_id")
	}

	cmd, err := commands.NewRequeueOrderCommand(orderID, courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.requeueOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.cancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var req createCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	courierID := kernel.NewUUID()
	cmd, err := commands.NewCreateCourierCommand(courierID, req.Name, req.City)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.createCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, idResponse{ID: courierID.String()})
}

// SetCourierAvailability handles PUT /api/v1/couriers/:id/availability.
func (s *Server) SetCourierAvailability(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	var req setAvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	var target courier.Availability
	switch req.Availability {
	case "online":
		target = courier.Online
	case "offline":
		target = courier.Offline
	default:
		return badRequest(ctx, "availability must be online or offline")
	}

	cmd, err := commands.NewSetCourierAvailabilityCommand(courierID, target)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.setCourierAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportCourierLocation handles PUT /api/v1/couriers/:id/location.
func (s *Server) ReportCourierLocation(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	var req reportLocationRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	location, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewReportCourierLocationCommand(courierID, location)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.reportCourierLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetEligibleOrders handles GET /api/v1/orders/eligible?city=<name>.
func (s *Server) GetEligibleOrders(ctx echo.Context) error {
	query, err := queries.NewGetEligibleOrdersQuery(ctx.QueryParam("city"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.getEligibleOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]eligibleOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = eligibleOrderResponse{
			ID:           o.ID.String(),
			RestaurantID: o.RestaurantID.String(),
			City:         o.City,
			Address:      o.Address,
			Status:       o.Status,
			PlacedAt:     o.PlacedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCourierEarnings handles GET /api/v1/couriers/:id/earnings.
func (s *Server) GetCourierEarnings(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	query, err := queries.NewGetCourierEarningsQuery(courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	ledger, err := s.getCourierEarnings.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	rows := make([]earningRowResponse, len(ledger.Rows))
	for i, row := range ledger.Rows {
		rows[i] = earningRowResponse{
			ID:        row.ID.String(),
			OrderID:   row.OrderID.String(),
			Amount:    row.Amount,
			Category:  row.Category,
			CreatedAt: row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, earningsResponse{Rows: rows, Total: ledger.Total})
}

// GetActiveAssignment handles GET /api/v1/couriers/:id/assignment.
func (s *Server) GetActiveAssignment(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	query, err := queries.NewGetActiveAssignmentQuery(courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	active, err := s.getActiveAssignment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, activeAssignmentResponse{
		AssignmentID: active.AssignmentID.String(),
		OrderID:      active.OrderID.String(),
		Status:       active.Status,
		OrderStatus:  active.OrderStatus,
		City:         active.City,
		Address:      active.Address,
		CreatedAt:    active.CreatedAt,
	})
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps domain failures onto HTTP statuses. ErrInvalidCode gets
// 422 so clients can tell a burned guess from a lost race.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	var notFound *errs.ObjectNotFoundError

	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrActiveAssignment):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrInvalidCode):
		status = http.StatusUnprocessableEntity
	}

	return ctx.JSON(status, errorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
