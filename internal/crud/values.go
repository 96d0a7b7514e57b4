package crud

import (
	"bytes"
	"strings"
)

// Values 是表單值，值為 string、bool、*File 或 nil
type Values map[string]any

// File 是檔案欄位的值。只有 PreviewURL 時代表伺服器上既有的檔案。
type File struct {
	Name       string
	Data       []byte
	PreviewURL string
}

// IsUpload 是否為使用者新選的檔案
func (f *File) IsUpload() bool {
	return f != nil && f.Data != nil
}

// Clone 複製 Values
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// emptyValue 是欄位類型對應的空值
func emptyValue(f Field) any {
	switch f.Type {
	case FieldCheckbox:
		return false
	case FieldFile:
		return nil
	default:
		return ""
	}
}

// Trim 去除所有字串值前後的空白
func Trim(v Values) Values {
	out := make(Values, len(v))
	for k, val := range v {
		if s, ok := val.(string); ok {
			out[k] = strings.TrimSpace(s)
			continue
		}
		out[k] = val
	}
	return out
}

// Diff 回傳去除空白之後與 initial 不同的欄位
func Diff(initial, current Values) Values {
	trimmed := Trim(current)
	patch := Values{}
	for k, val := range trimmed {
		if !equalValue(initial[k], val) {
			patch[k] = val
		}
	}
	return patch
}

func equalValue(a, b any) bool {
	switch av := a.(type) {
	case nil:
		switch bv := b.(type) {
		case nil:
			return true
		case *File:
			return bv == nil
		}
		return false
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case *File:
		bv, ok := b.(*File)
		if !ok {
			return b == nil && av == nil
		}
		if av == bv {
			return true
		}
		if av == nil || bv == nil {
			return false
		}
		return av.Name == bv.Name && av.PreviewURL == bv.PreviewURL && bytes.Equal(av.Data, bv.Data)
	}
	return false
}
