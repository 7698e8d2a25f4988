package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	ChangeOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
	}
	EditOrderItemsHandler interface {
		Handle(ctx context.Context, cmd commands.EditOrderItemsCommand) (*order.Order, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*queries.OrderView, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) (*queries.OrderPage, error)
	}
)

// Server handles HTTP requests by translating them into commands and queries.
// Request shapes are checked against the OpenAPI document by middleware
// before any handler runs.
type Server struct {
	// Command handlers
	createOrderHandler       CreateOrderHandler
	changeOrderStatusHandler ChangeOrderStatusHandler
	editOrderItemsHandler    EditOrderItemsHandler

	// Query handlers
	getOrderHandler   GetOrderHandler
	listOrdersHandler ListOrdersHandler
}

func NewServer(
	createOrderHandler CreateOrderHandler,
	changeOrderStatusHandler ChangeOrderStatusHandler,
	editOrderItemsHandler EditOrderItemsHandler,
	getOrderHandler GetOrderHandler,
	listOrdersHandler ListOrdersHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		editOrderItemsHandler:    editOrderItemsHandler,
		getOrderHandler:          getOrderHandler,
		listOrdersHandler:        listOrdersHandler,
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	userID, err := bindHeaderUUID(ctx, headerUserID)
	if err != nil {
		return err
	}

	var req CheckoutRequest
	if err = ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	clientType := order.Retail
	if req.ClientType != "" {
		if clientType, err = order.ParseClientType(req.ClientType); err != nil {
			return err
		}
	}

	cmd, err := commands.NewCreateOrderCommand(userID, clientType, req.checkout(), req.cartItems())
	if err != nil {
		return err
	}

	o, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, newOrderResponse(queries.NewOrderView(o)))
}

// ChangeOrderStatus handles PATCH /api/v1/orders/{id}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	caller, err := bindActor(ctx)
	if err != nil {
		return err
	}

	var req StatusChangeRequest
	if err = ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, req.Status, caller.id, caller.source, req.Comment, req.TrackingNumber)
	if err != nil {
		return err
	}

	o, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, newOrderResponse(queries.NewOrderView(o)))
}

// EditOrderItems handles PUT /api/v1/orders/{id}/items.
func (s *Server) EditOrderItems(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	caller, err := bindActor(ctx)
	if err != nil {
		return err
	}

	var req EditItemsRequest
	if err = ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewEditOrderItemsCommand(orderID, req.itemChanges(), caller.id, caller.source)
	if err != nil {
		return err
	}

	o, err := s.editOrderItemsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, newOrderResponse(queries.NewOrderView(o)))
}

// GetOrderByID handles GET /api/v1/orders/{id}.
func (s *Server) GetOrderByID(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderByIDQuery(orderID)
	if err != nil {
		return err
	}
	return s.getOrder(ctx, query)
}

// GetOrderByNumber handles GET /api/v1/orders/by-number/{number}.
func (s *Server) GetOrderByNumber(ctx echo.Context) error {
	query, err := queries.NewGetOrderByNumberQuery(ctx.Param("number"))
	if err != nil {
		return err
	}
	return s.getOrder(ctx, query)
}

func (s *Server) getOrder(ctx echo.Context, query queries.GetOrderQuery) error {
	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newOrderResponse(*view))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	filter, err := bindListFilter(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetAllOrdersQuery(filter)
	if err != nil {
		return err
	}
	return s.listOrders(ctx, query)
}

// ListUserOrders handles GET /api/v1/users/{userId}/orders.
func (s *Server) ListUserOrders(ctx echo.Context) error {
	userID, err := bindPathUUID(ctx, "userId")
	if err != nil {
		return err
	}
	filter, err := bindListFilter(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetUserOrdersQuery(userID, filter)
	if err != nil {
		return err
	}
	return s.listOrders(ctx, query)
}

func (s *Server) listOrders(ctx echo.Context, query queries.ListOrdersQuery) error {
	page, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newOrderPageResponse(*page))
}

// RegisterHandlers mounts the API routes on router.
func RegisterHandlers(router *echo.Echo, s *Server) {
	v1 := router.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.ListOrders)
	v1.GET("/orders/by-number/:number", s.GetOrderByNumber)
	v1.GET("/orders/:id", s.GetOrderByID)
	v1.PATCH("/orders/:id/status", s.ChangeOrderStatus)
	v1.PUT("/orders/:id/items", s.EditOrderItems)
	v1.GET("/users/:userId/orders", s.ListUserOrders)
}
