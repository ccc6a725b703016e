package http

import (
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/order"

	"github.com/oapi-codegen/runtime/types"
)

type CreateOrderRequest struct {
	GigID                types.UUID     `json:"gig_id"`
	PackageID            types.UUID     `json:"package_id"`
	RequirementsResponse map[string]any `json:"requirements_response,omitempty"`
}

type TransitionRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type DeliveryRequest struct {
	Message     string   `json:"message,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
}

type RevisionRequest struct {
	Message string `json:"message"`
}

type ResolutionRequest struct {
	Outcome string `json:"outcome"`
}

type ReasonRequest struct {
	Reason string `json:"reason,omitempty"`
}

type PackageResponse struct {
	Tier         string `json:"tier"`
	Price        string `json:"price"`
	DeliveryDays int    `json:"delivery_days"`
	Revisions    *int   `json:"revisions"`
}

// OrderResponse is returned by every order operation. Deliveries and revisions
// are only filled in by GET /orders/{orderId}.
type OrderResponse struct {
	ID                   types.UUID         `json:"id"`
	OrderNumber          string             `json:"order_number"`
	CustomerID           types.UUID         `json:"customer_id"`
	SellerID             types.UUID         `json:"seller_id"`
	GigID                types.UUID         `json:"gig_id"`
	PackageID            types.UUID         `json:"package_id"`
	Package              PackageResponse    `json:"package"`
	RequirementsResponse map[string]any     `json:"requirements_response"`
	Status               string             `json:"status"`
	EscrowStatus         string             `json:"escrow_status"`
	TotalAmount          string             `json:"total_amount"`
	PlatformFee          string             `json:"platform_fee"`
	SellerEarnings       string             `json:"seller_earnings"`
	DeliveryDate         time.Time          `json:"delivery_date"`
	CreatedAt            time.Time          `json:"created_at"`
	CompletedAt          *time.Time         `json:"completed_at"`
	CancelledAt          *time.Time         `json:"cancelled_at"`
	CancellationReason   string             `json:"cancellation_reason,omitempty"`
	RefundedAt           *time.Time         `json:"refunded_at"`
	Deliveries           []DeliveryResponse `json:"deliveries,omitempty"`
	Revisions            []RevisionResponse `json:"revisions,omitempty"`
}

type DeliveryResponse struct {
	ID          types.UUID `json:"id"`
	Message     string     `json:"message"`
	Attachments []string   `json:"attachments"`
	DeliveredAt time.Time  `json:"delivered_at"`
}

type RevisionResponse struct {
	ID          types.UUID `json:"id"`
	RequesterID types.UUID `json:"requester_id"`
	Message     string     `json:"message"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at"`
}

type CapabilitiesResponse struct {
	OrderID         types.UUID `json:"order_id"`
	Status          string     `json:"status"`
	Accept          bool       `json:"accept"`
	Deliver         bool       `json:"deliver"`
	RequestRevision bool       `json:"request_revision"`
	ResolveRevision bool       `json:"resolve_revision"`
	Complete        bool       `json:"complete"`
	Cancel          bool       `json:"cancel"`
	Refund          bool       `json:"refund"`
	Transitions     []string   `json:"transitions"`
	RevisionsLeft   *int       `json:"revisions_left"`
}

type AuditRecordResponse struct {
	ID         types.UUID `json:"id"`
	ActorID    types.UUID `json:"actor_id"`
	Action     string     `json:"action"`
	Reason     string     `json:"reason"`
	Amount     string     `json:"amount"`
	RecordedAt time.Time  `json:"recorded_at"`
}

func newOrderResponse(o *order.Order) OrderResponse {
	pkg := o.Package()
	split := o.Split()

	return OrderResponse{
		ID:          o.ID().Bytes(),
		OrderNumber: o.Number(),
		CustomerID:  o.CustomerID().Bytes(),
		SellerID:    o.SellerID().Bytes(),
		GigID:       o.GigID().Bytes(),
		PackageID:   o.PackageID().Bytes(),
		Package: PackageResponse{
			Tier:         pkg.Tier().String(),
			Price:        pkg.Price().String(),
			DeliveryDays: pkg.DeliveryDays(),
			Revisions:    pkg.Revisions(),
		},
		RequirementsResponse: o.Requirements(),
		Status:               o.Status().String(),
		EscrowStatus:         o.Escrow().String(),
		TotalAmount:          split.Total().String(),
		PlatformFee:          split.PlatformFee().String(),
		SellerEarnings:       split.SellerEarnings().String(),
		DeliveryDate:         o.DeliveryDate(),
		CreatedAt:            o.CreatedAt(),
		CompletedAt:          o.CompletedAt(),
		CancelledAt:          o.CancelledAt(),
		CancellationReason:   o.CancellationReason(),
		RefundedAt:           o.RefundedAt(),
	}
}

func newOrderDetailsResponse(d queries.GetOrderQueryResponse) OrderResponse {
	resp := OrderResponse{
		ID:          d.ID.Bytes(),
		OrderNumber: d.Number,
		CustomerID:  d.CustomerID.Bytes(),
		SellerID:    d.SellerID.Bytes(),
		GigID:       d.GigID.Bytes(),
		PackageID:   d.PackageID.Bytes(),
		Package: PackageResponse{
			Tier:         d.Package.Tier,
			Price:        d.Package.Price.String(),
			DeliveryDays: d.Package.DeliveryDays,
			Revisions:    d.Package.Revisions,
		},
		RequirementsResponse: d.Requirements,
		Status:               d.Status,
		EscrowStatus:         d.EscrowStatus,
		TotalAmount:          d.TotalAmount.String(),
		PlatformFee:          d.PlatformFee.String(),
		SellerEarnings:       d.SellerEarnings.String(),
		DeliveryDate:         d.DeliveryDate,
		CreatedAt:            d.CreatedAt,
		CompletedAt:          d.CompletedAt,
		CancelledAt:          d.CancelledAt,
		CancellationReason:   d.CancellationReason,
		RefundedAt:           d.RefundedAt,
		Deliveries:           make([]DeliveryResponse, 0, len(d.Deliveries)),
		Revisions:            make([]RevisionResponse, 0, len(d.Revisions)),
	}

	for _, delivery := range d.Deliveries {
		resp.Deliveries = append(resp.Deliveries, DeliveryResponse{
			ID:          delivery.ID.Bytes(),
			Message:     delivery.Message,
			Attachments: delivery.Attachments,
			DeliveredAt: delivery.DeliveredAt,
		})
	}
	for _, r := range d.Revisions {
		resp.Revisions = append(resp.Revisions, RevisionResponse{
			ID:          r.ID.Bytes(),
			RequesterID: r.RequesterID.Bytes(),
			Message:     r.Message,
			Status:      r.Status,
			CreatedAt:   r.CreatedAt,
			ResolvedAt:  r.ResolvedAt,
		})
	}

	return resp
}

func newDeliveryResponse(d *order.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:          d.ID().Bytes(),
		Message:     d.Message(),
		Attachments: d.Attachments(),
		DeliveredAt: d.DeliveredAt(),
	}
}

func newRevisionResponse(r *order.RevisionRequest) RevisionResponse {
	return RevisionResponse{
		ID:          r.ID().Bytes(),
		RequesterID: r.RequesterID().Bytes(),
		Message:     r.Message(),
		Status:      r.Status().String(),
		CreatedAt:   r.CreatedAt(),
		ResolvedAt:  r.ResolvedAt(),
	}
}

func newCapabilitiesResponse(c queries.GetOrderCapabilitiesQueryResponse) CapabilitiesResponse {
	return CapabilitiesResponse{
		OrderID:         c.OrderID.Bytes(),
		Status:          c.Status.String(),
		Accept:          c.Accept,
		Deliver:         c.Deliver,
		RequestRevision: c.RequestRevision,
		ResolveRevision: c.ResolveRevision,
		Complete:        c.Complete,
		Cancel:          c.Cancel,
		Refund:          c.Refund,
		Transitions:     order.Names(c.Transitions),
		RevisionsLeft:   c.RevisionsLeft,
	}
}

func newAuditRecordResponses(records []queries.AuditRecordResponse) []AuditRecordResponse {
	resp := make([]AuditRecordResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, AuditRecordResponse{
			ID:         r.ID.Bytes(),
			ActorID:    r.ActorID.Bytes(),
			Action:     r.Action,
			Reason:     r.Reason,
			Amount:     r.Amount.String(),
			RecordedAt: r.RecordedAt,
		})
	}
	return resp
}
