package rest

import (
	"errors"
	"fmt"
	"net/http"

	"connectrpc.com/connect"
	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/labstack/echo/v4"
)

// errorResponse is the body of every failed request. It has the shape of a
// Connect unary error, which is also what the authn middleware writes.
type errorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

// classify maps a service error to a Connect code and a message that is safe
// to show to the client.
func classify(err error) (connect.Code, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return connect.CodeInvalidArgument, "validation failed"
	case errors.Is(err, common.ErrorAlreadyExists):
		return connect.CodeAlreadyExists, "already exists"
	case errors.Is(err, common.ErrorUnauthorized):
		return connect.CodeUnauthenticated, "unauthorized"
	case errors.Is(err, common.ErrorNotFound):
		return connect.CodeNotFound, "not found"
	case errors.Is(err, common.ErrorUnavailable):
		return connect.CodeUnavailable, "service unavailable"
	}
	return connect.CodeInternal, "internal error"
}

func httpStatus(code connect.Code) int {
	switch code {
	case connect.CodeInvalidArgument:
		return http.StatusBadRequest
	case connect.CodeAlreadyExists:
		return http.StatusConflict
	case connect.CodeUnauthenticated:
		return http.StatusUnauthorized
	case connect.CodeNotFound:
		return http.StatusNotFound
	case connect.CodeUnavailable:
		return http.StatusServiceUnavailable
	case connect.CodeUnimplemented:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func codeForStatus(status int) connect.Code {
	switch status {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		return connect.CodeInvalidArgument
	case http.StatusUnauthorized:
		return connect.CodeUnauthenticated
	case http.StatusNotFound:
		return connect.CodeNotFound
	case http.StatusMethodNotAllowed:
		return connect.CodeUnimplemented
	case http.StatusServiceUnavailable:
		return connect.CodeUnavailable
	}
	return connect.CodeUnknown
}

// errorHandler is the echo HTTPErrorHandler. Domain errors become stable
// status codes; anything unexpected is logged and answered with an opaque 500.
func (s *HTTPServer) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	ctx := c.Request().Context()
	status, body := http.StatusInternalServerError, errorResponse{}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code := codeForStatus(he.Code)
		status = he.Code
		body = errorResponse{Code: code.String(), Message: fmt.Sprint(he.Message)}
		if he.Internal != nil {
			s.logger.Debug(ctx, "request rejected", "status", he.Code, "error", he.Internal)
		}
	} else {
		code, msg := classify(err)
		status = httpStatus(code)
		body = errorResponse{Code: code.String(), Message: msg}

		var ve *common.ValidationError
		if errors.As(err, &ve) {
			body.Fields = ve.Fields
		}

		switch code {
		case connect.CodeInternal:
			s.logger.Error(ctx, "request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
		case connect.CodeUnavailable:
			s.logger.Warn(ctx, "request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
		}
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		s.logger.Error(ctx, "failed to write error response", "error", err)
	}
}
