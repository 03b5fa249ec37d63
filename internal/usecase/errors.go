package usecase

import (
	"net/http"

	xhttp "SignalDash/pkg/http"
)

// Error codes surfaced to clients.
const (
	CodePasswordMismatch = "ERR_PASSWORD_MISMATCH"
	CodeTermsRequired    = "ERR_TERMS_REQUIRED"
	CodeNoModels         = "ERR_NO_MODELS"
	CodeBusy             = "ERR_GENERATION_IN_PROGRESS"
	CodeOneOf            = "ERR_ONEOF"
	CodeRateLimited      = "ERR_RATE_LIMITED"
)

func errPasswordMismatch() *xhttp.AppError {
	return xhttp.FieldError(CodePasswordMismatch, "confirmPassword", "كلمات المرور غير متطابقة")
}

func errTermsRequired() *xhttp.AppError {
	return xhttp.FieldError(CodeTermsRequired, "agreeToTerms", "يجب الموافقة على الشروط والأحكام")
}

func errNoModels() *xhttp.AppError {
	return xhttp.FieldError(CodeNoModels, "models", "يجب اختيار نموذج واحد على الأقل")
}

func errGenerationBusy() *xhttp.AppError {
	return xhttp.ConflictError(CodeBusy, "جاري توليد إشارة بالفعل")
}

func errOneOf(field, value string) *xhttp.AppError {
	return xhttp.FieldError(CodeOneOf, field, "unsupported value").WithParam("value", value)
}

// ErrRateLimited is returned when a client exceeds its request budget.
func ErrRateLimited() *xhttp.AppError {
	return xhttp.NewAppError(CodeRateLimited, "", "too many requests", http.StatusTooManyRequests)
}

func errStorage(err error) *xhttp.AppError {
	return xhttp.InternalError("storage unavailable").WithError(err)
}
