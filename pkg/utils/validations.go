package utils

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// registerCustomValidations 註冊所有自定義驗證函數到驗證器
func registerCustomValidations(v *CustomValidator) {
	// 註冊密碼驗證
	_ = v.RegisterValidation("strong_password", ValidateStrongPassword)

	// 註冊電話號碼驗證
	_ = v.RegisterValidation("phone", ValidatePhone)

	// 註冊 slug 驗證
	_ = v.RegisterValidation("slug", ValidateSlug)
}

// ValidateStrongPassword 驗證強密碼規則
func ValidateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	var (
		hasMinLen = len(password) >= 8
		hasUpper  = false
		hasLower  = false
		hasNumber = false
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	return hasMinLen && hasUpper && hasLower && hasNumber
}

// ValidatePhone 驗證國際電話號碼，允許開頭的 +
func ValidatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

// ValidateSlug 驗證小寫 slug
func ValidateSlug(fl validator.FieldLevel) bool {
	return slugRegex.MatchString(fl.Field().String())
}
