package crud

import (
	"strconv"
	"strings"

	"placement_dashboard/pkg/utils"
)

// validateValues 檢查必填與 Min、Max，回傳欄位錯誤
func validateValues(fields []Field, values Values) map[string][]string {
	v := utils.GetValidator()
	errs := map[string][]string{}

	for _, f := range fields {
		val := values[f.Name]
		label := f.Label
		if label == "" {
			label = f.Name
		}

		switch f.Type {
		case FieldCheckbox:
			continue
		case FieldFile:
			if f.Required {
				if file, _ := val.(*File); file == nil {
					errs[f.Name] = append(errs[f.Name], label+" is required")
				}
			}
			continue
		}

		s, _ := val.(string)
		if s == "" {
			if f.Required {
				errs[f.Name] = append(errs[f.Name], label+" is required")
			}
			continue
		}

		var result []utils.ValidationError
		if f.Type == FieldNumber {
			n, err := strconv.ParseFloat(s, 64)
			if err != nil {
				errs[f.Name] = append(errs[f.Name], label+" must be a number")
				continue
			}
			result = v.ValidateField(f.Name, n, boundsTag(f))
		} else if f.Type != FieldSearchSelect {
			result = v.ValidateField(f.Name, s, boundsTag(f))
		}
		for _, e := range result {
			errs[f.Name] = append(errs[f.Name], relabel(e.Message, f))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func boundsTag(f Field) string {
	var tags []string
	if f.Min != nil {
		tags = append(tags, "min="+strconv.FormatFloat(*f.Min, 'f', -1, 64))
	}
	if f.Max != nil {
		tags = append(tags, "max="+strconv.FormatFloat(*f.Max, 'f', -1, 64))
	}
	return strings.Join(tags, ",")
}

// relabel 以欄位的 Label 取代訊息中由欄位名產生的名稱
func relabel(msg string, f Field) string {
	if f.Label == "" {
		return msg
	}
	generated := strings.ReplaceAll(f.Name, "_", " ")
	if generated != "" {
		generated = strings.ToUpper(generated[:1]) + generated[1:]
	}
	if strings.HasPrefix(msg, generated) {
		return f.Label + strings.TrimPrefix(msg, generated)
	}
	return msg
}
