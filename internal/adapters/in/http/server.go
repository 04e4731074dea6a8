package http

import (
	"context"
	"net/http"

	"onlineshop/internal/core/application/usecases/commands"
	"onlineshop/internal/core/application/usecases/queries"
	"onlineshop/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/sirupsen/logrus"
)

type placeOrderHandler interface {
	Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (kernel.UUID, error)
}

type deliverOrderHandler interface {
	Handle(ctx context.Context, cmd commands.DeliverOrderCommand) error
}

type cancelOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CancelOrderCommand) error
}

type returnOrderHandler interface {
	Handle(ctx context.Context, cmd commands.ReturnOrderCommand) error
}

type getOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
}

type getProductHandler interface {
	Handle(ctx context.Context, query queries.GetProductQuery) (queries.GetProductQueryResponse, error)
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	placeOrderHandler   placeOrderHandler
	deliverOrderHandler deliverOrderHandler
	cancelOrderHandler  cancelOrderHandler
	returnOrderHandler  returnOrderHandler

	getOrderHandler   getOrderHandler
	getProductHandler getProductHandler

	logger logrus.FieldLogger
}

var _ ServerInterface = (*Server)(nil)

func NewServer(
	placeOrderHandler placeOrderHandler,
	deliverOrderHandler deliverOrderHandler,
	cancelOrderHandler cancelOrderHandler,
	returnOrderHandler returnOrderHandler,
	getOrderHandler getOrderHandler,
	getProductHandler getProductHandler,
	logger logrus.FieldLogger,
) *Server {
	return &Server{
		placeOrderHandler:   placeOrderHandler,
		deliverOrderHandler: deliverOrderHandler,
		cancelOrderHandler:  cancelOrderHandler,
		returnOrderHandler:  returnOrderHandler,
		getOrderHandler:     getOrderHandler,
		getProductHandler:   getProductHandler,
		logger:              logger.WithField("component", "http_server"),
	}
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context, customerID openapi_types.UUID) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	requester, err := kernel.UUIDFromGoogle(customerID)
	if err != nil {
		return s.fail(ctx, "place", invalidCustomerID(err))
	}

	lines := make([]commands.OrderLine, 0, len(body.Items))
	for _, item := range body.Items {
		productID, idErr := kernel.UUIDFromGoogle(item.ProductId)
		if idErr != nil {
			return s.fail(ctx, "place", invalidProductID(idErr))
		}
		lines = append(lines, commands.OrderLine{ProductID: productID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewPlaceOrderCommand(requester, lines)
	if err != nil {
		return s.fail(ctx, "place", err)
	}

	orderID, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "place", err)
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{Id: orderID.Google()})
}

// DeliverOrder handles POST /api/v1/orders/{orderId}/deliver.
func (s *Server) DeliverOrder(ctx echo.Context, orderID openapi_types.UUID, customerID openapi_types.UUID) error {
	id, requester, err := transitionIDs(orderID, customerID)
	if err != nil {
		return s.fail(ctx, "deliver", err)
	}

	cmd, err := commands.NewDeliverOrderCommand(id, requester)
	if err != nil {
		return s.fail(ctx, "deliver", err)
	}

	if err = s.deliverOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "deliver", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderID openapi_types.UUID, customerID openapi_types.UUID) error {
	id, requester, err := transitionIDs(orderID, customerID)
	if err != nil {
		return s.fail(ctx, "cancel", err)
	}

	cmd, err := commands.NewCancelOrderCommand(id, requester)
	if err != nil {
		return s.fail(ctx, "cancel", err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "cancel", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReturnOrder handles POST /api/v1/orders/{orderId}/return.
func (s *Server) ReturnOrder(ctx echo.Context, orderID openapi_types.UUID, customerID openapi_types.UUID) error {
	id, requester, err := transitionIDs(orderID, customerID)
	if err != nil {
		return s.fail(ctx, "return", err)
	}

	cmd, err := commands.NewReturnOrderCommand(id, requester)
	if err != nil {
		return s.fail(ctx, "return", err)
	}

	if err = s.returnOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "return", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := kernel.UUIDFromGoogle(orderID)
	if err != nil {
		return s.fail(ctx, "get_order", invalidOrderID(err))
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(ctx, "get_order", err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "get_order", err)
	}

	response := Order{
		Id:         view.ID.Google(),
		CustomerId: view.CustomerID.Google(),
		Status:     view.Status.String(),
		Delivered:  view.Delivered,
		Canceled:   view.Canceled,
		Returned:   view.Returned,
		Items:      make([]OrderLine, len(view.Items)),
	}
	for i, item := range view.Items {
		response.Items[i] = OrderLine{ProductId: item.ProductID.Google(), Quantity: item.Quantity}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetProduct handles GET /api/v1/products/{productId}.
func (s *Server) GetProduct(ctx echo.Context, productID openapi_types.UUID) error {
	id, err := kernel.UUIDFromGoogle(productID)
	if err != nil {
		return s.fail(ctx, "get_product", invalidProductID(err))
	}

	query, err := queries.NewGetProductQuery(id)
	if err != nil {
		return s.fail(ctx, "get_product", err)
	}

	view, err := s.getProductHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "get_product", err)
	}

	return ctx.JSON(http.StatusOK, Product{Id: view.ID.Google(), Name: view.Name, Stock: view.Stock})
}

func transitionIDs(orderID openapi_types.UUID, customerID openapi_types.UUID) (kernel.UUID, kernel.UUID, error) {
	id, err := kernel.UUIDFromGoogle(orderID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, invalidOrderID(err)
	}
	requester, err := kernel.UUIDFromGoogle(customerID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, invalidCustomerID(err)
	}
	return id, requester, nil
}
