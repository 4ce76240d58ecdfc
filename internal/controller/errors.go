package controller

import (
	"challengehub_backend/internal/repository"
	"challengehub_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleServiceError 业务错误到 HTTP 状态码的统一映射
// 未识别的错误按 500 处理并记录日志
func handleServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrChallengeNotFound),
		errors.Is(err, util.ErrChallengeNotOpen),
		errors.Is(err, util.ErrAcceptanceNotFound),
		errors.Is(err, util.ErrSubmissionNotFound),
		errors.Is(err, util.ErrReviewNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrActiveChallengeExists),
		errors.Is(err, util.ErrDuplicateSubmission),
		errors.Is(err, util.ErrReviewAlreadyFinal),
		errors.Is(err, util.ErrCommittedDateTooEarly),
		errors.Is(err, util.ErrAcceptanceNotActive),
		errors.Is(err, util.ErrInvalidStatusChange),
		errors.Is(err, util.ErrUsernameRegistered),
		errors.Is(err, repository.ErrPenaltyAlreadyApplied):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidURL),
		errors.Is(err, util.ErrInvalidReviewAction),
		errors.Is(err, util.ErrDescriptionTooShort),
		errors.Is(err, util.ErrNegativePoints):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
