package crud

import (
	"strconv"
)

// Cell 是一格的內容，只有下列幾種
type Cell interface {
	// Display 是顯示用的文字
	Display() string
	cell()
}

// TextCell 是一般文字，顯示值即可編輯值
type TextCell struct {
	Value string
}

// ImageCell 顯示圖片，編輯時作為檔案欄位的預覽
type ImageCell struct {
	PreviewURL string
	Alt        string
}

// RichCell 顯示格式化的內容，同時保留編輯用的原始值
type RichCell struct {
	Text     string
	Editable string
}

// BoolCell 是布林值
type BoolCell struct {
	Value bool
}

func (c TextCell) Display() string { return c.Value }

func (c ImageCell) Display() string {
	if c.Alt != "" {
		return c.Alt
	}
	return c.PreviewURL
}

func (c RichCell) Display() string { return c.Text }

func (c BoolCell) Display() string {
	if c.Value {
		return "Yes"
	}
	return "No"
}

func (TextCell) cell()  {}
func (ImageCell) cell() {}
func (RichCell) cell()  {}
func (BoolCell) cell()  {}

// Row 是一筆顯示資料
type Row struct {
	ID    string
	Cells map[string]Cell
}

// seedValue 由 cell 取得欄位的編輯值
func seedValue(f Field, c Cell) any {
	switch v := c.(type) {
	case nil:
		return emptyValue(f)
	case TextCell:
		return coerceSeed(f, v.Value)
	case RichCell:
		return coerceSeed(f, v.Editable)
	case BoolCell:
		if f.Type == FieldCheckbox {
			return v.Value
		}
		return strconv.FormatBool(v.Value)
	case ImageCell:
		if f.Type != FieldFile {
			return v.PreviewURL
		}
		if v.PreviewURL == "" {
			return nil
		}
		return &File{PreviewURL: v.PreviewURL}
	}
	return emptyValue(f)
}

func coerceSeed(f Field, s string) any {
	switch f.Type {
	case FieldCheckbox:
		b, _ := strconv.ParseBool(s)
		return b
	case FieldFile:
		if s == "" {
			return nil
		}
		return &File{PreviewURL: s}
	}
	return s
}
