package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 是非分頁回應的標準結構
type Response struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

// PageResponse 是分頁回應的標準結構
type PageResponse struct {
	StatusCode  int         `json:"statusCode"`
	HasNextPage bool        `json:"hasNextPage"`
	Next        *string     `json:"next"`
	Previous    *string     `json:"previous"`
	Count       int         `json:"count"`
	Message     *string     `json:"message"`
	Data        interface{} `json:"data"`
}

// ErrorResponse 是驗證失敗時的回應，errors 以欄位名稱分組
type ErrorResponse struct {
	StatusCode int                 `json:"statusCode"`
	Message    string              `json:"message"`
	Errors     map[string][]string `json:"errors,omitempty"`
}

func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		StatusCode: http.StatusOK,
		Message:    message,
		Data:       data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		StatusCode: http.StatusCreated,
		Message:    message,
		Data:       data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{
		StatusCode: code,
		Message:    message,
	})
}

// ValidationFailed 回傳 400 與欄位錯誤
func ValidationFailed(c *gin.Context, errors map[string][]string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Message:    "Validation failed",
		Errors:     errors,
	})
}

// PagedResponse 回傳一頁資料，next 與 previous 由呼叫端依頁碼產生
func PagedResponse(c *gin.Context, list interface{}, count int, next, previous *string) {
	c.JSON(http.StatusOK, PageResponse{
		StatusCode:  http.StatusOK,
		HasNextPage: next != nil,
		Next:        next,
		Previous:    previous,
		Count:       count,
		Data:        list,
	})
}

func ServerError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		StatusCode: http.StatusInternalServerError,
		Message:    "Internal server error: " + err.Error(),
	})
}

func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		StatusCode: http.StatusUnauthorized,
		Message:    "Authentication credentials were not provided",
	})
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		StatusCode: http.StatusNotFound,
		Message:    "Not found",
	})
}
