package http

import (
	"context"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/oapi-codegen/runtime/types"
)

// UseCase is the shape shared by every command and query handler.
type UseCase[Req, Resp any] interface {
	Handle(ctx context.Context, req Req) (Resp, error)
}

// Handlers lists the use cases the server exposes.
type Handlers struct {
	CreateOrder      UseCase[commands.CreateOrderCommand, *order.Order]
	AcceptOrder      UseCase[commands.AcceptOrderCommand, *order.Order]
	TransitionOrder  UseCase[commands.TransitionOrderCommand, *order.Order]
	SubmitDelivery   UseCase[commands.SubmitDeliveryCommand, *order.Delivery]
	RequestRevision  UseCase[commands.RequestRevisionCommand, *order.RevisionRequest]
	ResolveRevision  UseCase[commands.ResolveRevisionCommand, *order.RevisionRequest]
	CompleteOrder    UseCase[commands.CompleteOrderCommand, *order.Order]
	CancelOrder      UseCase[commands.CancelOrderCommand, *order.Order]
	RefundEscrow     UseCase[commands.RefundEscrowCommand, *order.Order]
	GetOrder         UseCase[queries.GetOrderQuery, queries.GetOrderQueryResponse]
	GetCapabilities  UseCase[queries.GetOrderCapabilitiesQuery, queries.GetOrderCapabilitiesQueryResponse]
	ListAuditRecords UseCase[queries.ListAuditRecordsQuery, []queries.AuditRecordResponse]
}

// Server maps HTTP requests onto command and query handlers. Handlers return
// errors unchanged; NewErrorHandler renders them.
type Server struct {
	h Handlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	gigID, gigErr := kernel.UUIDFromBytes(req.GigID[:])
	packageID, pkgErr := kernel.UUIDFromBytes(req.PackageID[:])
	if gigErr != nil {
		return errs.NewValueIsInvalidErrorWithCause("gig_id", gigErr)
	}
	if pkgErr != nil {
		return errs.NewValueIsInvalidErrorWithCause("package_id", pkgErr)
	}

	cmd, err := commands.NewCreateOrderCommand(actorFrom(c), gigID, packageID, req.RequirementsResponse)
	if err != nil {
		return err
	}

	o, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, newOrderResponse(o))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(orderID, actorFrom(c))
	if err != nil {
		return err
	}

	details, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newOrderDetailsResponse(details))
}

// GetOrderCapabilities handles GET /api/v1/orders/{orderId}/capabilities.
func (s *Server) GetOrderCapabilities(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderCapabilitiesQuery(orderID, actorFrom(c))
	if err != nil {
		return err
	}

	caps, err := s.h.GetCapabilities.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newCapabilitiesResponse(caps))
}

// TransitionOrder handles POST /api/v1/orders/{orderId}/transitions.
func (s *Server) TransitionOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	var req TransitionRequest
	if err = c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, actorFrom(c), target, req.Reason)
	if err != nil {
		return err
	}

	o, err := s.h.TransitionOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newOrderResponse(o))
}

// AcceptOrder handles POST /api/v1/orders/{orderId}/accept.
func (s *Server) AcceptOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, actorFrom(c))
	if err != nil {
		return err
	}

	o, err := s.h.AcceptOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newOrderResponse(o))
}

// SubmitDelivery handles POST /api/v1/orders/{orderId}/deliveries.
func (s *Server) SubmitDelivery(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	var req DeliveryRequest
	if err = c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := commands.NewSubmitDeliveryCommand(orderID, actorFrom(c), req.Message, req.Attachments)
	if err != nil {
		return err
	}

	d, err := s.h.SubmitDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, newDeliveryResponse(d))
}

// RequestRevision handles POST /api/v1/orders/{orderId}/revisions.
func (s *Server) RequestRevision(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	var req RevisionRequest
	if err = c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := commands.NewRequestRevisionCommand(orderID, actorFrom(c), req.Message)
	if err != nil {
		return err
	}

	r, err := s.h.RequestRevision.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, newRevisionResponse(r))
}

// ResolveRevision handles POST /api/v1/orders/{orderId}/revisions/{revisionId}/resolution.
func (s *Server) ResolveRevision(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	revisionID, err := pathUUID(c, "revisionId")
	if err != nil {
		return err
	}

	var req ResolutionRequest
	if err = c.Bind(&req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := commands.NewResolveRevisionCommand(orderID, revisionID, actorFrom(c), order.RevisionStatus(req.Outcome))
	if err != nil {
		return err
	}

	r, err := s.h.ResolveRevision.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newRevisionResponse(r))
}

// CompleteOrder handles POST /api/v1/orders/{orderId}/complete.
func (s *Server) CompleteOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID, actorFrom(c))
	if err != nil {
		return err
	}

	o, err := s.h.CompleteOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newOrderResponse(o))
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel. The body is optional.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	req, err := bindReason(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actorFrom(c), req.Reason)
	if err != nil {
		return err
	}

	o, err := s.h.CancelOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newOrderResponse(o))
}

// RefundEscrow handles POST /api/v1/orders/{orderId}/refund.
func (s *Server) RefundEscrow(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	req, err := bindReason(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRefundEscrowCommand(orderID, actorFrom(c), req.Reason)
	if err != nil {
		return err
	}

	o, err := s.h.RefundEscrow.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newOrderResponse(o))
}

// ListAuditRecords handles GET /api/v1/orders/{orderId}/audit.
func (s *Server) ListAuditRecords(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	query, err := queries.NewListAuditRecordsQuery(orderID, actorFrom(c))
	if err != nil {
		return err
	}

	records, err := s.h.ListAuditRecords.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newAuditRecordResponses(records))
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}

	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return parsed, nil
}

func bindReason(c echo.Context) (ReasonRequest, error) {
	var req ReasonRequest
	if c.Request().ContentLength == 0 {
		return req, nil
	}
	if err := c.Bind(&req); err != nil {
		return req, errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return req, nil
}
