package mockapi

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// 欄位型別錯誤的訊息，直接回傳給客戶端
var (
	errInteger = errors.New("A valid integer is required.")
	errNumber  = errors.New("A valid number is required.")
	errBoolean = errors.New("Must be a valid boolean.")
	errString  = errors.New("Not a valid string.")
)

// coerce 把請求欄位轉為 T 的欄位型別。multipart 的值都是字串，JSON 的數字是 float64。
// 不認識的欄位與 id 會被丟棄。
func coerce[T any](fields map[string]any) (map[string]any, map[string][]string) {
	var zero T
	kinds := jsonKinds(reflect.TypeOf(zero))

	out := make(map[string]any, len(fields))
	errs := map[string][]string{}
	for name, val := range fields {
		kind, ok := kinds[name]
		if !ok || name == "id" {
			continue
		}
		v, err := convert(kind, val)
		if err != nil {
			errs[name] = append(errs[name], err.Error())
			continue
		}
		out[name] = v
	}
	if len(errs) == 0 {
		errs = nil
	}
	return out, errs
}

func jsonKinds(t reflect.Type) map[string]reflect.Kind {
	out := map[string]reflect.Kind{}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		out[name] = f.Type.Kind()
	}
	return out
}

func convert(kind reflect.Kind, val any) (any, error) {
	switch {
	case kind >= reflect.Int && kind <= reflect.Int64:
		switch v := val.(type) {
		case float64:
			if v != math.Trunc(v) {
				return nil, errInteger
			}
			return int64(v), nil
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				return int64(0), nil
			}
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, errInteger
			}
			return n, nil
		case nil:
			return int64(0), nil
		}
		return nil, errInteger

	case kind == reflect.Float32 || kind == reflect.Float64:
		switch v := val.(type) {
		case float64:
			return v, nil
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				return float64(0), nil
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, errNumber
			}
			return f, nil
		case nil:
			return float64(0), nil
		}
		return nil, errNumber

	case kind == reflect.Bool:
		switch v := val.(type) {
		case bool:
			return v, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true", "1", "on", "yes":
				return true, nil
			case "false", "0", "off", "no", "":
				return false, nil
			}
		}
		return nil, errBoolean

	case kind == reflect.String:
		switch v := val.(type) {
		case string:
			return v, nil
		case nil:
			return "", nil
		}
		return nil, errString
	}
	return val, nil
}
