package paginate

import (
	"net/url"
	"strconv"
)

// Response 是伺服器分頁回應的單頁資料
type Response[T any] struct {
	StatusCode  int     `json:"statusCode"`
	HasNextPage bool    `json:"hasNextPage"`
	Next        *string `json:"next"`
	Previous    *string `json:"previous"`
	Count       int     `json:"count"`
	Message     *string `json:"message"`
	Data        []T     `json:"data"`
}

// Query 是一次頁面讀取的完整輸入。Key 是呼叫端的依賴鍵（例如搜尋字串），
// 改變時觸發重新讀取。
type Query struct {
	Page    int
	PerPage int
	Key     string
}

// TotalPages 依 count 與每頁筆數計算總頁數
func TotalPages(count, perPage int) int {
	if count <= 0 || perPage <= 0 {
		return 0
	}
	return (count + perPage - 1) / perPage
}

// PageFromLink 從 next/previous 連結中取出 page 參數
func PageFromLink(link *string) (int, bool) {
	if link == nil || *link == "" {
		return 0, false
	}
	u, err := url.Parse(*link)
	if err != nil {
		return 0, false
	}
	p := u.Query().Get("page")
	if p == "" {
		// 部分後端省略第一頁的 page 參數
		return 1, true
	}
	n, err := strconv.Atoi(p)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
