package grpc

import (
	"context"
	"errors"
	"sort"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	errUnauthenticated = status.Error(codes.Unauthenticated, "unauthorized")
	errUnavailable     = status.Error(codes.Unavailable, "service unavailable")
)

// toStatus maps a service error to a gRPC status. Validation problems are
// attached as a BadRequest detail. Unexpected errors are logged and answered
// with an opaque Internal status.
func (s *GRPCServer) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		st := status.New(codes.InvalidArgument, "validation failed")
		var ve *common.ValidationError
		if errors.As(err, &ve) {
			if withDetails, derr := st.WithDetails(badRequest(ve)); derr == nil {
				st = withDetails
			}
		}
		return st.Err()
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrorUnauthorized):
		return errUnauthenticated
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorUnavailable):
		s.logger.Warn(ctx, "request failed", "method", method, "error", err)
		return errUnavailable
	}

	s.logger.Error(ctx, "request failed", "method", method, "error", err)
	return status.Error(codes.Internal, "internal error")
}

func badRequest(ve *common.ValidationError) *errdetails.BadRequest {
	names := make([]string, 0, len(ve.Fields))
	for name := range ve.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	br := &errdetails.BadRequest{}
	for _, name := range names {
		for _, msg := range ve.Fields[name] {
			br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
				Field:       name,
				Description: msg,
			})
		}
	}
	return br
}
