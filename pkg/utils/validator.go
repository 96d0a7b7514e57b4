package utils

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationRule 定義了驗證規則的自訂訊息
type ValidationRule struct {
	// Tag 是驗證標籤，例如 "required", "email", "min"
	Tag string

	// Message 是自定義錯誤訊息
	Message string
}

// ValidationError 表示單一驗證錯誤
type ValidationError struct {
	Field   string
	Tag     string
	Value   interface{}
	Message string
}

// CustomValidator 是一個基於 go-playground/validator 的客製化驗證器
type CustomValidator struct {
	validator   *validator.Validate
	lock        sync.RWMutex
	customRules map[string]map[string]ValidationRule // fieldName -> tagName -> rule
}

var (
	validatorInstance *CustomValidator
	validatorOnce     sync.Once
)

// GetValidator 返回全局驗證器實例
func GetValidator() *CustomValidator {
	validatorOnce.Do(func() {
		validatorInstance = NewCustomValidator()
	})
	return validatorInstance
}

// NewCustomValidator 創建一個新的客製化驗證器實例，並註冊自定義驗證
func NewCustomValidator() *CustomValidator {
	v := validator.New()

	// 使用 JSON 標籤作為欄位名稱
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	cv := &CustomValidator{
		validator:   v,
		customRules: make(map[string]map[string]ValidationRule),
	}
	registerCustomValidations(cv)
	return cv
}

// Engine 回傳底層的 validator，供 gin binding 等共用
func (v *CustomValidator) Engine() *validator.Validate {
	return v.validator
}

// Validate 驗證給定的結構體
func (v *CustomValidator) Validate(obj interface{}) []ValidationError {
	if err := v.validator.Struct(obj); err != nil {
		return v.translateErrors("", err)
	}
	return nil
}

// ValidateField 驗證單個值，field 用於錯誤訊息與自訂規則查找
func (v *CustomValidator) ValidateField(field string, val interface{}, tag string) []ValidationError {
	if strings.TrimSpace(tag) == "" {
		return nil
	}
	if err := v.validator.Var(val, tag); err != nil {
		return v.translateErrors(field, err)
	}
	return nil
}

// RegisterValidation 註冊自定義驗證函數
func (v *CustomValidator) RegisterValidation(tag string, fn validator.Func) error {
	return v.validator.RegisterValidation(tag, fn)
}

// RegisterCustomRule 註冊自定義驗證訊息
func (v *CustomValidator) RegisterCustomRule(field string, rule ValidationRule) {
	v.lock.Lock()
	defer v.lock.Unlock()

	if _, exists := v.customRules[field]; !exists {
		v.customRules[field] = make(map[string]ValidationRule)
	}
	v.customRules[field][rule.Tag] = rule
}

// translateErrors 將驗證錯誤轉換為客製化格式
func (v *CustomValidator) translateErrors(fieldName string, err error) []ValidationError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []ValidationError{{Field: fieldName, Tag: "invalid", Message: err.Error()}}
	}

	var result []ValidationError
	for _, e := range validationErrors {
		field := e.Field()
		if fieldName != "" {
			field = fieldName
		}
		tag := e.Tag()

		// 檢查是否有自定義錯誤訊息
		var message string
		v.lock.RLock()
		if fieldRules, exists := v.customRules[field]; exists {
			if rule, exists := fieldRules[tag]; exists {
				message = rule.Message
			}
		}
		v.lock.RUnlock()

		if message == "" {
			message = getDefaultErrorMessage(field, tag, e.Param(), e.Kind())
		}

		result = append(result, ValidationError{
			Field:   field,
			Tag:     tag,
			Value:   e.Value(),
			Message: message,
		})
	}

	return result
}

// getDefaultErrorMessage 獲取默認錯誤訊息
func getDefaultErrorMessage(field, tag, param string, kind reflect.Kind) string {
	label := humanize(field)
	numeric := kind >= reflect.Int && kind <= reflect.Float64

	switch tag {
	case "required":
		return label + " is required"
	case "email":
		return label + " must be a valid email address"
	case "url":
		return label + " must be a valid URL"
	case "min", "gte":
		if numeric {
			return label + " must be at least " + param
		}
		return label + " must be at least " + param + " characters"
	case "max", "lte":
		if numeric {
			return label + " must be at most " + param
		}
		return label + " must be at most " + param + " characters"
	case "numeric", "number":
		return label + " must be a number"
	case "oneof":
		return label + " must be one of: " + param
	case "strong_password":
		return "Password must be at least 8 characters with upper case, lower case and a number"
	case "phone":
		return label + " must be a valid phone number"
	case "slug":
		return label + " may only contain lower case letters, digits and dashes"
	default:
		return label + " is invalid"
	}
}

// humanize 把 snake_case 欄位名轉為首字大寫的顯示文字
func humanize(field string) string {
	if field == "" {
		return "Value"
	}
	s := strings.ReplaceAll(field, "_", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}

// Messages 將驗證錯誤依欄位分組
func Messages(errs []ValidationError) map[string][]string {
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string][]string, len(errs))
	for _, e := range errs {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}
