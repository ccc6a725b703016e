package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"marketplace/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// swag keeps a process-wide registry that rejects a second registration.
var registerSwaggerOnce sync.Once

// API holds the parsed OpenAPI document the server validates requests against.
type API struct {
	doc    *openapi3.T
	router routers.Router
	json   []byte
}

// LoadAPI parses and validates the embedded OpenAPI document.
func LoadAPI(ctx context.Context) (*API, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to parse openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}

	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to render openapi document: %w", err)
	}

	return &API{doc: doc, router: router, json: raw}, nil
}

// Version is the API version from the document's info block.
func (a *API) Version() string {
	return a.doc.Info.Version
}

// RegisterSwagger publishes the document to swag so echo-swagger can serve it
// under /swagger/doc.json. Only the first call in a process takes effect.
func (a *API) RegisterSwagger() {
	registerSwaggerOnce.Do(func() {
		swag.Register(swag.Name, &swag.Spec{
			Version:          a.doc.Info.Version,
			Title:            a.doc.Info.Title,
			Description:      a.doc.Info.Description,
			InfoInstanceName: swag.Name,
			SwaggerTemplate:  string(a.json),
			LeftDelim:        "{{",
			RightDelim:       "}}",
		})
	})
}

// ServeDocument handles GET /openapi.json.
func (a *API) ServeDocument(c echo.Context) error {
	return c.JSONBlob(http.StatusOK, a.json)
}

// ValidateRequests rejects API requests that do not match the document before
// they reach a handler. Paths outside the document are passed through.
func (a *API) ValidateRequests() echo.MiddlewareFunc {
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         true,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !strings.HasPrefix(req.URL.Path, apiPrefix) {
				return next(c)
			}

			route, pathParams, err := a.router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return newRequestError(err)
			}

			return next(c)
		}
	}
}

// newRequestError turns a validation failure into a validation_error with the
// individual problems listed in details.
func newRequestError(err error) error {
	problems := []string{err.Error()}

	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		problems = make([]string, 0, len(multi))
		for _, e := range multi {
			problems = append(problems, e.Error())
		}
	}

	return &requestError{problems: problems}
}

type requestError struct {
	problems []string
}

func (e *requestError) Error() string {
	return "request does not match the API: " + strings.Join(e.problems, "; ")
}

func (e *requestError) Unwrap() error {
	return errs.ErrValueIsInvalid
}

func (e *requestError) Details() map[string]any {
	return map[string]any{"problems": e.problems}
}
