package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/yungbote/personamatch-backend/internal/engine/insights"
	"github.com/yungbote/personamatch-backend/internal/engine/pricing"
	"github.com/yungbote/personamatch-backend/internal/engine/style"
	"github.com/yungbote/personamatch-backend/internal/platform/apierr"
	"github.com/yungbote/personamatch-backend/internal/platform/ctxutil"
	"github.com/yungbote/personamatch-backend/internal/platform/errs"
)

const (
	CodeInvalidInput       = "invalid_simulation_input"
	CodeProductNotAnalyzed = "product_not_analyzed"
	CodeInvalidRecords     = "invalid_match_records"
	CodeCorruptMatchData   = "corrupt_match_data"
	CodeMissingTenant      = "missing_tenant"
	CodeNotFound           = "not_found"
	CodeInvalidArgument    = "invalid_argument"
	CodeInternal           = "internal_error"
)

// mapError turns engine, repo and sentinel errors into an *apierr.Error. callerData reports
// whether structural problems in the input came from the request body (400) or from storage
// (500, the stored corpus violates its own constraints).
func mapError(err error, callerData bool) error {
	if err == nil {
		return nil
	}
	if _, ok := apierr.As(err); ok {
		return err
	}

	var (
		ve  *pricing.ValidationError
		nd  *pricing.NoDataError
		up  *style.UnknownProductError
		dup *style.DuplicateRecordError
		ce  *insights.ContractError
	)
	switch {
	case errors.As(err, &ve):
		return apierr.BadRequest(CodeInvalidInput, err)
	case errors.As(err, &nd):
		return apierr.Unprocessable(CodeProductNotAnalyzed, errors.New("analyze this product first"))
	case errors.As(err, &up), errors.As(err, &dup), errors.As(err, &ce):
		if callerData {
			return apierr.BadRequest(CodeInvalidRecords, err)
		}
		return apierr.Internal(CodeCorruptMatchData, err)
	case errors.Is(err, errs.ErrMissingTenant):
		return apierr.BadRequest(CodeMissingTenant, err)
	case errors.Is(err, errs.ErrNotFound):
		return apierr.NotFound(CodeNotFound, err)
	case errors.Is(err, errs.ErrInvalidArgument):
		return apierr.BadRequest(CodeInvalidArgument, err)
	}
	return apierr.Internal(CodeInternal, err)
}

func requireTenant(ctx context.Context) (uuid.UUID, error) {
	id := ctxutil.Tenant(ctx)
	if id == uuid.Nil {
		return uuid.Nil, apierr.BadRequest(CodeMissingTenant, errs.ErrMissingTenant)
	}
	return id, nil
}
