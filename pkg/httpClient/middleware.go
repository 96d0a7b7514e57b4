package httpClient

import (
	"net/http"

	"github.com/google/uuid"
)

// TraceMiddleware 確保每個請求都有追蹤ID，
// 沿用請求頭中的ID，否則創建新的，並寫回響應頭
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(HeaderTraceID)
		if traceID == "" {
			traceID = uuid.New().String()
			r.Header.Set(HeaderTraceID, traceID)
		}

		// 在交給下一個處理程序前設置，之後的 WriteHeader 都會帶上
		w.Header().Set(HeaderTraceID, traceID)

		next.ServeHTTP(w, r.WithContext(WithTraceID(r.Context(), traceID)))
	})
}
