package admin

import (
	"bytes"
	"strconv"

	"placement_dashboard/internal/crud"
	"placement_dashboard/internal/service"
	"placement_dashboard/pkg/httpClient"
)

// payloadOf 依欄位類型把表單值轉為請求內容。
// 既有檔案（只有預覽網址）與空白的選填數字不送出。
func payloadOf(fields []crud.Field, values crud.Values) service.Payload {
	p := service.Payload{Fields: map[string]any{}}

	for _, f := range fields {
		val, ok := values[f.Name]
		if !ok {
			continue
		}

		switch f.Type {
		case crud.FieldFile:
			file, _ := val.(*crud.File)
			if file.IsUpload() {
				p.Files = append(p.Files, httpClient.FilePart{
					Field:    f.Name,
					FileName: file.Name,
					Content:  bytes.NewReader(file.Data),
				})
			}
		case crud.FieldCheckbox:
			b, _ := val.(bool)
			p.Fields[f.Name] = b
		case crud.FieldNumber, crud.FieldSearchSelect:
			s, _ := val.(string)
			if s == "" {
				continue
			}
			p.Fields[f.Name] = number(s)
		default:
			s, _ := val.(string)
			p.Fields[f.Name] = s
		}
	}
	return p
}

// number 將數字字串轉為 int64 或 float64，無法解析時保留字串
func number(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
