package api

import (
	"context"
	"net/http"

	"github.com/checkmarble/asset-lists/dto"
	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/utils"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

var errorCodes = []struct {
	err  error
	code dto.ErrorCode
}{
	{models.ErrListTypeLocked, dto.ListTypeLocked},
	{models.ErrMemberAlreadyExists, dto.MemberAlreadyExists},
	{models.ErrAssetAlreadyInSection, dto.AssetAlreadyInSection},
	{models.ErrGroupListMismatch, dto.GroupListMismatch},
	{models.ErrPositionOutOfRange, dto.PositionOutOfRange},
	{models.ErrDuplicateSuggestion, dto.DuplicateSuggestion},
	{models.ErrSuggestionNotPending, dto.SuggestionNotPending},
}

func errorCodeOf(err error) dto.ErrorCode {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return ""
}

func presentError(ctx context.Context, c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	logger := utils.LoggerFromContext(ctx)

	errorResponse := dto.APIErrorResponse{
		Message:   err.Error(),
		ErrorCode: errorCodeOf(err),
	}

	switch {
	case errors.Is(err, models.BadParameterError):
		logger.InfoContext(ctx, "BadParameterError", "error", err.Error())
		c.JSON(http.StatusBadRequest, errorResponse)
	case errors.Is(err, models.UnAuthorizedError):
		logger.InfoContext(ctx, "UnAuthorizedError", "error", err.Error())
		c.JSON(http.StatusUnauthorized, errorResponse)
	case errors.Is(err, models.ForbiddenError):
		logger.InfoContext(ctx, "ForbiddenError", "error", err.Error())
		c.JSON(http.StatusForbidden, errorResponse)
	case errors.Is(err, models.NotFoundError):
		logger.InfoContext(ctx, "NotFoundError", "error", err.Error())
		c.JSON(http.StatusNotFound, errorResponse)
	case errors.Is(err, models.ConflictError):
		logger.InfoContext(ctx, "ConflictError", "error", err.Error())
		c.JSON(http.StatusConflict, errorResponse)
	case errors.Is(err, models.InvariantViolationError):
		utils.LogAndReportSentryError(ctx, err)
		c.JSON(http.StatusUnprocessableEntity, errorResponse)
	case errors.Is(err, context.Canceled):
		logger.InfoContext(ctx, "request canceled by the client", "error", err.Error())
		c.Status(499)
	default:
		utils.LogAndReportSentryError(ctx, err)
		c.JSON(http.StatusInternalServerError, dto.APIErrorResponse{
			Message: "An unexpected error occurred. Please try again later, or contact support if the problem persists.",
		})
	}
	return true
}

// presentBindError renders a request that gin could not bind or validate as a bad parameter.
func presentBindError(ctx context.Context, c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	return presentError(ctx, c, errors.Join(models.BadParameterError, err))
}
