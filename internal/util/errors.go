package util

import "errors"

var (
	ErrUserNotFound          = errors.New("用户不存在")
	ErrUsernameRegistered    = errors.New("该用户名已被注册")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrChallengeNotFound     = errors.New("challenge not found")
	ErrChallengeNotOpen      = errors.New("challenge not open")
	ErrActiveChallengeExists = errors.New("user already has an active challenge")
	ErrCommittedDateTooEarly = errors.New("committed date must be at least tomorrow")
	ErrAcceptanceNotFound    = errors.New("acceptance not found")
	ErrAcceptanceNotActive   = errors.New("acceptance is not active")
	ErrSubmissionNotFound    = errors.New("submission not found")
	ErrDuplicateSubmission   = errors.New("solution already submitted for this challenge")
	ErrReviewNotFound        = errors.New("review not found")
	ErrReviewAlreadyFinal    = errors.New("review already finalized")
	ErrInvalidReviewAction   = errors.New("invalid review action")
	ErrInvalidURL            = errors.New("invalid url")
	ErrInvalidStatusChange   = errors.New("invalid status transition")
	ErrDescriptionTooShort   = errors.New("描述过短，至少 10 个字符")
	ErrNegativePoints        = errors.New("积分和扣分必须为非负数")
)
