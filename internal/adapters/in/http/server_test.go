package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	api "marketplace/internal/adapters/in/http"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type useCaseFunc[Req, Resp any] func(ctx context.Context, req Req) (Resp, error)

func (f useCaseFunc[Req, Resp]) Handle(ctx context.Context, req Req) (Resp, error) {
	return f(ctx, req)
}

type ServerTestSuite struct {
	suite.Suite
	customer order.Actor
	seller   order.Actor
	admin    order.Actor
	order    *order.Order
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	s.customer = order.Actor{ID: kernel.NewUUID(), Role: order.RoleCustomer}
	s.seller = order.Actor{ID: kernel.NewUUID(), Role: order.RoleSeller}
	s.admin = order.Actor{ID: kernel.NewUUID(), Role: order.RoleAdmin}

	snapshot, err := catalog.NewPackageSnapshot(catalog.TierBasic, kernel.MustMoney("1000"), 3, nil)
	s.Require().NoError(err)
	s.order, err = order.NewOrder(kernel.NewUUID(), "ORD-TEST-000001", order.Purchase{
		CustomerID:   s.customer.ID,
		SellerID:     s.seller.ID,
		GigID:        kernel.NewUUID(),
		PackageID:    kernel.NewUUID(),
		Package:      snapshot,
		Requirements: map[string]any{"brand": "Acme"},
	}, now)
	s.Require().NoError(err)
}

func (s *ServerTestSuite) router(h api.Handlers) *echo.Echo {
	a, err := api.LoadAPI(context.Background())
	s.Require().NoError(err)
	a.RegisterSwagger()

	return api.NewRouter(api.RouterConfig{
		Server:      api.NewServer(h),
		API:         a,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		ServiceName: "marketplace-test",
	})
}

func (s *ServerTestSuite) do(e *echo.Echo, method, path string, actor *order.Actor, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if actor != nil {
		req.Header.Set("X-Actor-ID", actor.ID.String())
		req.Header.Set("X-Actor-Role", actor.Role.String())
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *ServerTestSuite) TestCreateOrder() {
	s.Run("should place the order for the calling customer", func() {
		gigID, packageID := kernel.NewUUID(), kernel.NewUUID()
		var got commands.CreateOrderCommand
		e := s.router(api.Handlers{
			CreateOrder: useCaseFunc[commands.CreateOrderCommand, *order.Order](
				func(_ context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
					got = cmd
					return s.order, nil
				}),
		})

		rec := s.do(e, http.MethodPost, "/api/v1/orders", &s.customer,
			`{"gig_id":"`+gigID.String()+`","package_id":"`+packageID.String()+`","requirements_response":{"brand":"Acme"}}`)

		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
		s.Equal(s.customer, got.Customer())
		s.True(gigID.IsEqual(got.GigID()))
		s.True(packageID.IsEqual(got.PackageID()))
		s.Equal(map[string]any{"brand": "Acme"}, got.Requirements())

		resp := decode[api.OrderResponse](s.T(), rec)
		s.Equal("ORD-TEST-000001", resp.OrderNumber)
		s.Equal("pending", resp.Status)
		s.Equal("held", resp.EscrowStatus)
		s.Equal("1000.00", resp.TotalAmount)
		s.Equal("150.00", resp.PlatformFee)
		s.Equal("850.00", resp.SellerEarnings)
		s.Nil(resp.Deliveries)
	})

	s.Run("should reject a body without package_id before calling the handler", func() {
		e := s.router(api.Handlers{})

		rec := s.do(e, http.MethodPost, "/api/v1/orders", &s.customer, `{"gig_id":"`+kernel.NewUUID().String()+`"}`)

		s.Equal(http.StatusBadRequest, rec.Code)
		resp := decode[api.ErrorResponse](s.T(), rec)
		s.Equal("validation_error", resp.Code)
		s.Contains(resp.Details, "problems")
	})

	s.Run("should require the actor headers", func() {
		e := s.router(api.Handlers{})

		rec := s.do(e, http.MethodPost, "/api/v1/orders", nil,
			`{"gig_id":"`+kernel.NewUUID().String()+`","package_id":"`+kernel.NewUUID().String()+`"}`)

		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("validation_error", decode[api.ErrorResponse](s.T(), rec).Code)
	})
}

func (s *ServerTestSuite) TestErrorMapping() {
	cases := map[string]struct {
		err    error
		status int
		code   string
	}{
		"not found":          {errs.NewObjectNotFoundError("order", "x"), http.StatusNotFound, "not_found"},
		"forbidden":          {errs.NewAuthorizationError("x", "customer", "accept"), http.StatusForbidden, "forbidden"},
		"invalid transition": {errs.NewInvalidTransitionError("pending", "completed", []string{"in_progress", "cancelled"}), http.StatusConflict, "invalid_transition"},
		"invalid state":      {errs.NewInvalidStateError("deliver", "pending", "in_progress"), http.StatusConflict, "invalid_state"},
		"quota exceeded":     {errs.NewQuotaExceededError("revisions", 1, 1), http.StatusUnprocessableEntity, "quota_exceeded"},
		"validation":         {errs.NewValueIsRequiredError("reason"), http.StatusBadRequest, "validation_error"},
		"internal":           {errors.New("connection reset by peer"), http.StatusInternalServerError, "internal_error"},
	}

	for name, tc := range cases {
		s.Run(name, func() {
			e := s.router(api.Handlers{
				CompleteOrder: useCaseFunc[commands.CompleteOrderCommand, *order.Order](
					func(context.Context, commands.CompleteOrderCommand) (*order.Order, error) {
						return nil, tc.err
					}),
			})

			rec := s.do(e, http.MethodPost, "/api/v1/orders/"+s.order.ID().String()+"/complete", &s.customer, "")

			s.Equal(tc.status, rec.Code)
			resp := decode[api.ErrorResponse](s.T(), rec)
			s.Equal(tc.code, resp.Code)
			if tc.code == "internal_error" {
				s.Equal("internal error", resp.Error)
				s.NotContains(rec.Body.String(), "connection reset")
			}
		})
	}

	s.Run("should carry the allowed transitions in details", func() {
		e := s.router(api.Handlers{
			CompleteOrder: useCaseFunc[commands.CompleteOrderCommand, *order.Order](
				func(context.Context, commands.CompleteOrderCommand) (*order.Order, error) {
					return nil, errs.NewInvalidTransitionError("pending", "completed", []string{"in_progress", "cancelled"})
				}),
		})

		rec := s.do(e, http.MethodPost, "/api/v1/orders/"+s.order.ID().String()+"/complete", &s.customer, "")

		resp := decode[api.ErrorResponse](s.T(), rec)
		s.Equal("pending", resp.Details["from"])
		s.Equal([]any{"in_progress", "cancelled"}, resp.Details["allowed"])
	})

	s.Run("should reject a malformed order id", func() {
		e := s.router(api.Handlers{})

		rec := s.do(e, http.MethodPost, "/api/v1/orders/not-a-uuid/complete", &s.customer, "")

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ServerTestSuite) TestOrderOperations() {
	path := func(suffix string) string {
		return "/api/v1/orders/" + s.order.ID().String() + suffix
	}

	s.Run("should pass the admin reason through cancel", func() {
		var got commands.CancelOrderCommand
		e := s.router(api.Handlers{
			CancelOrder: useCaseFunc[commands.CancelOrderCommand, *order.Order](
				func(_ context.Context, cmd commands.CancelOrderCommand) (*order.Order, error) {
					got = cmd
					return s.order, nil
				}),
		})

		rec := s.do(e, http.MethodPost, path("/cancel"), &s.admin, `{"reason":"  duplicate purchase "}`)

		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		s.Equal("duplicate purchase", got.Reason())
		s.Equal(s.admin, got.Actor())
	})

	s.Run("should accept cancel without a body", func() {
		called := false
		e := s.router(api.Handlers{
			CancelOrder: useCaseFunc[commands.CancelOrderCommand, *order.Order](
				func(_ context.Context, cmd commands.CancelOrderCommand) (*order.Order, error) {
					called = true
					s.Empty(cmd.Reason())
					return s.order, nil
				}),
		})

		rec := s.do(e, http.MethodPost, path("/cancel"), &s.customer, "")

		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
		s.True(called)
	})

	s.Run("should parse the generic transition target", func() {
		var got commands.TransitionOrderCommand
		e := s.router(api.Handlers{
			TransitionOrder: useCaseFunc[commands.TransitionOrderCommand, *order.Order](
				func(_ context.Context, cmd commands.TransitionOrderCommand) (*order.Order, error) {
					got = cmd
					return s.order, nil
				}),
		})

		rec := s.do(e, http.MethodPost, path("/transitions"), &s.seller, `{"status":"in_progress"}`)

		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		s.Equal(order.InProgress, got.Target())
	})

	s.Run("should reject an unknown transition target", func() {
		e := s.router(api.Handlers{})

		rec := s.do(e, http.MethodPost, path("/transitions"), &s.seller, `{"status":"refunded"}`)

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("should return the recorded delivery", func() {
		s.Require().NoError(s.order.Accept(s.seller, now))
		e := s.router(api.Handlers{
			SubmitDelivery: useCaseFunc[commands.SubmitDeliveryCommand, *order.Delivery](
				func(_ context.Context, cmd commands.SubmitDeliveryCommand) (*order.Delivery, error) {
					return s.order.Deliver(s.seller, kernel.NewUUID(), cmd.Message(), cmd.Attachments(), nil, now)
				}),
		})

		rec := s.do(e, http.MethodPost, path("/deliveries"), &s.seller,
			`{"message":"first draft","attachments":["s3://bucket/draft.png"]}`)

		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
		resp := decode[api.DeliveryResponse](s.T(), rec)
		s.Equal("first draft", resp.Message)
		s.Equal([]string{"s3://bucket/draft.png"}, resp.Attachments)
	})

	s.Run("should resolve a revision with the given outcome", func() {
		revisionID := kernel.NewUUID()
		var got commands.ResolveRevisionCommand
		e := s.router(api.Handlers{
			ResolveRevision: useCaseFunc[commands.ResolveRevisionCommand, *order.RevisionRequest](
				func(_ context.Context, cmd commands.ResolveRevisionCommand) (*order.RevisionRequest, error) {
					got = cmd
					return order.RestoreRevisionRequest(cmd.RevisionID(), cmd.OrderID(), s.customer.ID,
						"bigger logo", order.RevisionRejected, now, &now)
				}),
		})

		rec := s.do(e, http.MethodPost, path("/revisions/"+revisionID.String()+"/resolution"), &s.seller,
			`{"outcome":"rejected"}`)

		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		s.True(revisionID.IsEqual(got.RevisionID()))
		s.Equal(order.RevisionRejected, got.Outcome())
		s.Equal("rejected", decode[api.RevisionResponse](s.T(), rec).Status)
	})
}

func (s *ServerTestSuite) TestQueries() {
	s.Run("should render capabilities", func() {
		left := 1
		e := s.router(api.Handlers{
			GetCapabilities: useCaseFunc[queries.GetOrderCapabilitiesQuery, queries.GetOrderCapabilitiesQueryResponse](
				func(_ context.Context, q queries.GetOrderCapabilitiesQuery) (queries.GetOrderCapabilitiesQueryResponse, error) {
					return queries.GetOrderCapabilitiesQueryResponse{
						OrderID: q.OrderID(),
						Status:  order.Delivered,
						Capabilities: order.Capabilities{
							Complete:        true,
							RequestRevision: true,
							Cancel:          true,
							Transitions:     []order.Status{order.RevisionRequested, order.Completed, order.Cancelled},
							RevisionsLeft:   &left,
						},
					}, nil
				}),
		})

		rec := s.do(e, http.MethodGet, "/api/v1/orders/"+s.order.ID().String()+"/capabilities", &s.customer, "")

		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		resp := decode[api.CapabilitiesResponse](s.T(), rec)
		s.Equal("delivered", resp.Status)
		s.True(resp.Complete)
		s.False(resp.Accept)
		s.Equal([]string{"revision_requested", "completed", "cancelled"}, resp.Transitions)
		s.Require().NotNil(resp.RevisionsLeft)
		s.Equal(1, *resp.RevisionsLeft)
	})

	s.Run("should render the audit log", func() {
		e := s.router(api.Handlers{
			ListAuditRecords: useCaseFunc[queries.ListAuditRecordsQuery, []queries.AuditRecordResponse](
				func(context.Context, queries.ListAuditRecordsQuery) ([]queries.AuditRecordResponse, error) {
					return []queries.AuditRecordResponse{{
						ID:         kernel.NewUUID(),
						ActorID:    s.admin.ID,
						Action:     "refund",
						Reason:     "fraud",
						Amount:     kernel.MustMoney("1000"),
						RecordedAt: now,
					}}, nil
				}),
		})

		rec := s.do(e, http.MethodGet, "/api/v1/orders/"+s.order.ID().String()+"/audit", &s.admin, "")

		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		records := decode[[]api.AuditRecordResponse](s.T(), rec)
		s.Require().Len(records, 1)
		s.Equal("refund", records[0].Action)
		s.Equal("1000.00", records[0].Amount)
	})
}

func (s *ServerTestSuite) TestServiceRoutes() {
	e := s.router(api.Handlers{})

	s.Run("health", func() {
		rec := s.do(e, http.MethodGet, "/health", nil, "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("openapi document", func() {
		rec := s.do(e, http.MethodGet, "/openapi.json", nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "Marketplace Orders API")
	})

	s.Run("swagger document", func() {
		rec := s.do(e, http.MethodGet, "/swagger/doc.json", nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "/api/v1/orders/{orderId}/refund")
	})

	s.Run("unknown route", func() {
		rec := s.do(e, http.MethodGet, "/nope", nil, "")
		s.Equal(http.StatusNotFound, rec.Code)
		s.Equal("not_found", decode[api.ErrorResponse](s.T(), rec).Code)
	})
}

func TestLoadAPI(t *testing.T) {
	a, err := api.LoadAPI(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.0.0", a.Version())
}
