package crud

import (
	"placement_dashboard/internal/async"
	"placement_dashboard/internal/fielderrors"
)

// DefaultErrorMessage 是沒有伺服器訊息時的失敗提示
const DefaultErrorMessage = "Something went wrong"

// Succeeded 建立成功的 Outcome
func Succeeded(message string) Outcome {
	return Outcome{OK: true, Message: message}
}

// OutcomeFromError 把服務錯誤轉為 Outcome，known 為表單欄位
func OutcomeFromError(err error, known []string) Outcome {
	res := fielderrors.Extract(err, known)
	out := Outcome{
		OK:        false,
		Message:   async.Message(err, DefaultErrorMessage),
		FormError: res.FormError,
	}
	if len(res.Fields) > 0 {
		out.FieldErrors = res.Fields
	}
	if !res.HasFieldErrors() {
		out.FormError = out.Message
	}
	return out
}
