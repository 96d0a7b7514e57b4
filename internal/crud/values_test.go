package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	initial := Values{"a": "1", "b": "2"}
	assert.Equal(t, Values{"b": "3"}, Diff(initial, Values{"a": "1", "b": "3"}))
	assert.Equal(t, Values{}, Diff(initial, Values{"a": " 1 ", "b": "2"}))
}

func TestDiffFilesAndBools(t *testing.T) {
	existing := &File{PreviewURL: "https://cdn/logo.png"}
	upload := &File{Name: "new.png", Data: []byte("x")}

	initial := Values{"logo": existing, "active": true, "banner": nil}
	patch := Diff(initial, Values{"logo": upload, "active": true, "banner": nil})
	assert.Equal(t, Values{"logo": upload}, patch)

	patch = Diff(initial, Values{"logo": existing, "active": false, "banner": nil})
	assert.Equal(t, Values{"active": false}, patch)
}

func TestTrim(t *testing.T) {
	out := Trim(Values{"name": "  hello  ", "ok": true, "file": nil})
	assert.Equal(t, Values{"name": "hello", "ok": true, "file": nil}, out)
}

func TestSeedValue(t *testing.T) {
	text := Field{Name: "name", Type: FieldText}
	check := Field{Name: "active", Type: FieldCheckbox}
	file := Field{Name: "logo", Type: FieldFile}

	assert.Equal(t, "Acme", seedValue(text, TextCell{Value: "Acme"}))
	assert.Equal(t, "raw", seedValue(text, RichCell{Text: "<i>raw</i>", Editable: "raw"}))
	assert.Equal(t, true, seedValue(check, BoolCell{Value: true}))
	assert.Equal(t, true, seedValue(check, TextCell{Value: "true"}))
	assert.Equal(t, "true", seedValue(text, BoolCell{Value: true}))
	assert.Equal(t, &File{PreviewURL: "u"}, seedValue(file, ImageCell{PreviewURL: "u"}))
	assert.Nil(t, seedValue(file, ImageCell{}))
	assert.Equal(t, &File{PreviewURL: "u"}, seedValue(file, RichCell{Text: "logo", Editable: "u"}))
	assert.Equal(t, "", seedValue(text, nil))
	assert.Equal(t, false, seedValue(check, nil))
}

func TestCellDisplay(t *testing.T) {
	assert.Equal(t, "Yes", BoolCell{Value: true}.Display())
	assert.Equal(t, "No", BoolCell{}.Display())
	assert.Equal(t, "logo", ImageCell{PreviewURL: "u", Alt: "logo"}.Display())
	assert.Equal(t, "u", ImageCell{PreviewURL: "u"}.Display())
}
