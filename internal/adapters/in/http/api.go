package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const customerIDHeader = "X-Customer-ID"

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type OrderLine struct {
	ProductId openapi_types.UUID `json:"productId"`
	Quantity  int                `json:"quantity"`
}

type NewOrder struct {
	Items []OrderLine `json:"items"`
}

type OrderCreated struct {
	Id openapi_types.UUID `json:"id"`
}

type Order struct {
	Id         openapi_types.UUID `json:"id"`
	CustomerId openapi_types.UUID `json:"customerId"`
	Status     string             `json:"status"`
	Delivered  bool               `json:"delivered"`
	Canceled   bool               `json:"canceled"`
	Returned   bool               `json:"returned"`
	Items      []OrderLine        `json:"items"`
}

type Product struct {
	Id    openapi_types.UUID `json:"id"`
	Name  string             `json:"name"`
	Stock int                `json:"stock"`
}

// ServerInterface lists the operations of openapi.json.
type ServerInterface interface {
	// (POST /api/v1/orders)
	PlaceOrder(ctx echo.Context, customerID openapi_types.UUID) error
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderID openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/deliver)
	DeliverOrder(ctx echo.Context, orderID openapi_types.UUID, customerID openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderID openapi_types.UUID, customerID openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/return)
	ReturnOrder(ctx echo.Context, orderID openapi_types.UUID, customerID openapi_types.UUID) error
	// (GET /api/v1/products/{productId})
	GetProduct(ctx echo.Context, productID openapi_types.UUID) error
}

// ServerInterfaceWrapper binds path and header parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) PlaceOrder(ctx echo.Context) error {
	customerID, err := bindCustomerID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.PlaceOrder(ctx, customerID)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) DeliverOrder(ctx echo.Context) error {
	orderID, customerID, err := bindTransition(ctx)
	if err != nil {
		return err
	}
	return w.Handler.DeliverOrder(ctx, orderID, customerID)
}

func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	orderID, customerID, err := bindTransition(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CancelOrder(ctx, orderID, customerID)
}

func (w *ServerInterfaceWrapper) ReturnOrder(ctx echo.Context) error {
	orderID, customerID, err := bindTransition(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ReturnOrder(ctx, orderID, customerID)
}

func (w *ServerInterfaceWrapper) GetProduct(ctx echo.Context) error {
	productID, err := bindPathUUID(ctx, "productId")
	if err != nil {
		return err
	}
	return w.Handler.GetProduct(ctx, productID)
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

func RegisterHandlers(router EchoRouter, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST("/api/v1/orders", wrapper.PlaceOrder)
	router.GET("/api/v1/orders/:orderId", wrapper.GetOrder)
	router.POST("/api/v1/orders/:orderId/deliver", wrapper.DeliverOrder)
	router.POST("/api/v1/orders/:orderId/cancel", wrapper.CancelOrder)
	router.POST("/api/v1/orders/:orderId/return", wrapper.ReturnOrder)
	router.GET("/api/v1/products/:productId", wrapper.GetProduct)
}

func bindTransition(ctx echo.Context) (openapi_types.UUID, openapi_types.UUID, error) {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return openapi_types.UUID{}, openapi_types.UUID{}, err
	}
	customerID, err := bindCustomerID(ctx)
	if err != nil {
		return openapi_types.UUID{}, openapi_types.UUID{}, err
	}
	return orderID, customerID, nil
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var value openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return value, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}

func bindCustomerID(ctx echo.Context) (openapi_types.UUID, error) {
	var value openapi_types.UUID
	raw := ctx.Request().Header.Values(customerIDHeader)
	if len(raw) != 1 {
		return value, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Expected one value for header %s, got %d", customerIDHeader, len(raw)))
	}

	err := runtime.BindStyledParameterWithOptions("simple", customerIDHeader, raw[0], &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return value, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Invalid format for parameter %s: %s", customerIDHeader, err))
	}
	return value, nil
}
