package response

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Response struct {
	ResponseError `json:"error,omitzero"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error Codes
type ErrCode string

var (
	FAILED_REQUEST     ErrCode = "REQUEST_FAILED"
	BAD_REQUEST        ErrCode = "FAILED_TO_DECODE"
	VALIDATION_FAILED  ErrCode = "VALIDATION_FAILED"
	NOT_FOUND          ErrCode = "NOT_FOUND"
	LOCKED             ErrCode = "LOCKED"
	CONFLICT           ErrCode = "CONFLICT"
	UNAUTHORIZED       ErrCode = "UNAUTHORIZED"
	SESSION_EXPIRED    ErrCode = "SESSION_EXPIRED"
	UPSTREAM_ERROR     ErrCode = "UPSTREAM_ERROR"
	DAY_LOCKED         ErrCode = "FULL_DAY_JOB_LOCKED"
	ILLEGAL_TRANSITION ErrCode = "ILLEGAL_TRANSITION"
	CONFIRM_REQUIRED   ErrCode = "CONFIRMATION_REQUIRED"
)

var (
	ErrBadRequest        = errors.New("bad request")
	ErrInvalidId         = errors.New("invalid id")
	ErrNotFound          = errors.New("resource not found")
	ErrLocked            = errors.New("resource is locked")
	ErrConflict          = errors.New("conflict")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrValidation        = errors.New("validation failed")
	ErrFullDayJobLocked  = errors.New("date is locked by a full-day job")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrConfirmRequired   = errors.New("confirmation required")
)

func Error(code, msg string) Response {
	return Response{
		ResponseError: ResponseError{
			Code:    code,
			Message: msg,
		},
	}
}

func ValidationError(errs validator.ValidationErrors) Response {
	var errMsg []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' is required", err.Field()))
		case "oneof":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' must be one of [%s]", err.Field(), err.Param()))
		case "datetime":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' must match the format %s", err.Field(), err.Param()))
		case "max":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' must be at most %s characters long", err.Field(), err.Param()))
		case "min":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' must be at least %s", err.Field(), err.Param()))
		default:
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' is invalid", err.Field()))
		}
	}

	return Error(string(VALIDATION_FAILED), strings.Join(errMsg, ", "))
}
