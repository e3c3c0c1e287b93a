package rpc

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-catalog-service/pkg/apperr"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var kindCodes = map[apperr.Kind]codes.Code{
	apperr.KindUnknownItem:                codes.NotFound,
	apperr.KindItemNotInBasket:            codes.NotFound,
	apperr.KindBasketNotFound:             codes.NotFound,
	apperr.KindOutOfStock:                 codes.FailedPrecondition,
	apperr.KindInvalidQuantity:            codes.InvalidArgument,
	apperr.KindInvalidSortKey:             codes.InvalidArgument,
	apperr.KindInvalidPage:                codes.InvalidArgument,
	apperr.KindInvalidPriceGroupPredicate: codes.InvalidArgument,
	apperr.KindInvalidItem:                codes.InvalidArgument,
	apperr.KindDuplicateSession:           codes.AlreadyExists,
	apperr.KindDuplicateItem:              codes.AlreadyExists,
	apperr.KindDuplicateStock:             codes.AlreadyExists,
	apperr.KindStorageConflict:            codes.Aborted,
}

// ToStatus converts a usecase error into a gRPC status. Business errors keep
// their message and offending value; anything else is logged and reported as
// a bare internal error.
func ToStatus(err error, log logger.ZapLogger) error {
	if err == nil {
		return nil
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		if code, ok := kindCodes[appErr.Kind]; ok {
			if appErr.Kind == apperr.KindStorageConflict {
				log.Warn("request aborted by storage conflict", zap.Error(err))
			}
			return status.Error(code, appErr.Error())
		}
	}

	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}

	log.Error("internal error", zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}
