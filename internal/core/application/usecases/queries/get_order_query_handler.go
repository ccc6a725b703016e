package queries

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads order details for the parties and admins. Deliveries
// are returned oldest first, revision requests in the order they were made.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError for an unknown order and AuthorizationError
// when the actor is neither a party nor an admin.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	resp, err := h.readOrder(db, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if err = authorizeView(query.Actor(), resp.CustomerID, resp.SellerID); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.Deliveries, err = h.readDeliveries(db, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Revisions, err = h.readRevisions(db, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) readOrder(db *gorm.DB, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	var row struct {
		ID                  uuid.UUID
		OrderNumber         string
		CustomerID          uuid.UUID
		SellerID            uuid.UUID
		GigID               uuid.UUID
		PackageID           uuid.UUID
		PackageTier         string
		PackagePrice        decimal.Decimal
		PackageDeliveryDays int
		PackageRevisions    *int
		Requirements        datatypes.JSONMap
		Status              string
		EscrowStatus        string
		TotalAmount         decimal.Decimal
		PlatformFee         decimal.Decimal
		SellerEarnings      decimal.Decimal
		DeliveryDate        time.Time
		CreatedAt           time.Time
		CompletedAt         *time.Time
		CancelledAt         *time.Time
		CancellationReason  string
		RefundedAt          *time.Time
	}

	result := db.Raw(`
		SELECT
			id, order_number, customer_id, seller_id, gig_id, package_id,
			package_tier, package_price, package_delivery_days, package_revisions,
			requirements, status, escrow_status,
			total_amount, platform_fee, seller_earnings,
			delivery_date, created_at, completed_at, cancelled_at,
			COALESCE(cancellation_reason, '') AS cancellation_reason, refunded_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Scan(&row)
	if result.Error != nil {
		return GetOrderQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
	}

	ids, err := uuidsFromBytes(row.ID, row.CustomerID, row.SellerID, row.GigID, row.PackageID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	amounts, err := moneyFromDecimals(row.PackagePrice, row.TotalAmount, row.PlatformFee, row.SellerEarnings)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		ID:         ids[0],
		Number:     row.OrderNumber,
		CustomerID: ids[1],
		SellerID:   ids[2],
		GigID:      ids[3],
		PackageID:  ids[4],
		Package: PackageResponse{
			Tier:         row.PackageTier,
			Price:        amounts[0],
			DeliveryDays: row.PackageDeliveryDays,
			Revisions:    row.PackageRevisions,
		},
		Requirements:       map[string]any(row.Requirements),
		Status:             row.Status,
		EscrowStatus:       row.EscrowStatus,
		TotalAmount:        amounts[1],
		PlatformFee:        amounts[2],
		SellerEarnings:     amounts[3],
		DeliveryDate:       row.DeliveryDate,
		CreatedAt:          row.CreatedAt,
		CompletedAt:        row.CompletedAt,
		CancelledAt:        row.CancelledAt,
		CancellationReason: row.CancellationReason,
		RefundedAt:         row.RefundedAt,
	}, nil
}

func (h GetOrderQueryHandler) readDeliveries(db *gorm.DB, orderID kernel.UUID) ([]DeliveryResponse, error) {
	rows, err := db.Raw(`
		SELECT id, COALESCE(message, ''), attachments, delivered_at
		FROM deliveries
		WHERE order_id = ?
		ORDER BY delivered_at, id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]DeliveryResponse, 0)
	for rows.Next() {
		var d DeliveryResponse
		var id uuid.UUID
		var attachments pq.StringArray

		if err = rows.Scan(&id, &d.Message, &attachments, &d.DeliveredAt); err != nil {
			return nil, err
		}
		if d.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		d.Attachments = append([]string{}, attachments...)
		deliveries = append(deliveries, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (h GetOrderQueryHandler) readRevisions(db *gorm.DB, orderID kernel.UUID) ([]RevisionResponse, error) {
	rows, err := db.Raw(`
		SELECT id, requester_id, message, status, created_at, resolved_at
		FROM revision_requests
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	revisions := make([]RevisionResponse, 0)
	for rows.Next() {
		var r RevisionResponse
		var id, requesterID uuid.UUID

		if err = rows.Scan(&id, &requesterID, &r.Message, &r.Status, &r.CreatedAt, &r.ResolvedAt); err != nil {
			return nil, err
		}
		ids, idErr := uuidsFromBytes(id, requesterID)
		if idErr != nil {
			return nil, idErr
		}
		r.ID, r.RequesterID = ids[0], ids[1]
		revisions = append(revisions, r)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return revisions, nil
}

func uuidsFromBytes(raw ...uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func moneyFromDecimals(raw ...decimal.Decimal) ([]kernel.Money, error) {
	amounts := make([]kernel.Money, 0, len(raw))
	var errList []error
	for _, d := range raw {
		m, err := kernel.NewMoney(d)
		errList = append(errList, err)
		amounts = append(amounts, m)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return amounts, nil
}
