package services

import (
	"context"
	stderrors "errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/turtacn/ProteinScope/pkg/errors"
)

// codeFor maps an error code onto a gRPC status code.
func codeFor(code errors.ErrorCode) codes.Code {
	switch code {
	case errors.ErrCodeBadRequest, errors.ErrCodeValidation,
		errors.ErrCodeStructureEmpty, errors.ErrCodeStructureParseFailed,
		errors.ErrCodeStructureTooLarge, errors.ErrCodeInvalidPDBID:
		return codes.InvalidArgument
	case errors.ErrCodeNotFound, errors.ErrCodeStructureNotFound:
		return codes.NotFound
	case errors.ErrCodeStructureFetchFailed, errors.ErrCodeExternalService,
		errors.ErrCodeServiceUnavailable, errors.ErrCodeMessagingError:
		return codes.Unavailable
	case errors.ErrCodeTimeout:
		return codes.DeadlineExceeded
	case errors.ErrCodeTooManyRequests:
		return codes.ResourceExhausted
	case errors.ErrCodeFeatureDisabled:
		return codes.FailedPrecondition
	case errors.ErrCodeNotImplemented:
		return codes.Unimplemented
	case errors.ErrCodeConflict:
		return codes.AlreadyExists
	}
	return codes.Internal
}

// toStatus converts err into a gRPC status error. Internal failures are
// masked; context errors keep their canonical codes.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	case stderrors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	}

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		return status.Error(codes.Internal, "internal server error")
	}
	code := codeFor(appErr.Code)
	if code == codes.Internal {
		return status.Error(codes.Internal, "internal server error")
	}
	msg := appErr.Message
	if appErr.Detail != "" {
		msg += ": " + appErr.Detail
	}
	return status.Errorf(code, "[%s] %s", appErr.Code, msg)
}

//Personal.AI order the ending
