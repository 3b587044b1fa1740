package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
)

// failureResponse is the body of a 500 reply: a generic message plus the
// underlying cause.
type failureResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// respond maps a gateway result onto the response: data is 200, no data is
// 204, a backend 4xx is 400 with the backend message and anything else is
// 500 with msg and the cause.
func respond[T any](c echo.Context, res domain.Result[T], msg string) error {
	if res.Err != nil {
		return gatewayFailure(c, res.Err, msg)
	}
	if res.Data == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, res.Data)
}

// acknowledge is respond for mark, unmark and delete calls: success is always
// 204 with an empty body, whatever the backend sent.
func acknowledge[T any](c echo.Context, res domain.Result[T], msg string) error {
	if res.Err != nil {
		return gatewayFailure(c, res.Err, msg)
	}
	return c.NoContent(http.StatusNoContent)
}

func gatewayFailure(c echo.Context, err *domain.GatewayError, msg string) error {
	if err.IsClientError() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Message})
	}
	return c.JSON(http.StatusInternalServerError, failureResponse{Error: msg, Details: err.Message})
}

// badInput reports a parameter, bind or validation problem. These are
// treated as unexpected failures of the handler, hence 500.
func badInput(c echo.Context, msg string, cause error) error {
	return c.JSON(http.StatusInternalServerError, failureResponse{Error: msg, Details: cause.Error()})
}

var errNotPositive = errors.New("must be a positive integer")

// pathID parses a base-10 positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, errNotPositive)
	}
	return id, nil
}

// pathIDs parses two path parameters in order.
func pathIDs(c echo.Context, first, second string) (int64, int64, error) {
	a, err := pathID(c, first)
	if err != nil {
		return 0, 0, err
	}
	b, err := pathID(c, second)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// bindValid binds the JSON body into req and runs the registered validator.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return fmt.Errorf("invalid payload: %v", he.Message)
		}
		return fmt.Errorf("invalid payload: %w", err)
	}
	return c.Validate(req)
}
