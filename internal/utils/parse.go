package utils

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/kaptinlin/jsonrepair"
)

var durationType = reflect.TypeFor[time.Duration]()

// ParseStringAs parses content into a T. Scalars (string, bool, integers,
// floats and time.Duration) are converted directly, which is how environment
// variables are read. Everything else is decoded as JSON; when that fails the
// content is passed through jsonrepair and decoded again, so hand-edited
// override files with trailing commas, single quotes or comments still load.
//
//	n, err := utils.ParseStringAs[int]("4")
//	m, err := utils.ParseStringAs[map[string]int](`{population: 50,}`)
func ParseStringAs[T any](content string) (T, error) {
	var result T
	target := reflect.ValueOf(&result).Elem()

	if target.Type() == durationType {
		d, err := time.ParseDuration(content)
		if err != nil {
			return result, fmt.Errorf("parse %q as duration: %w", content, err)
		}
		target.SetInt(int64(d))
		return result, nil
	}

	switch target.Kind() {
	case reflect.String:
		target.SetString(content)
	case reflect.Bool:
		v, err := strconv.ParseBool(content)
		if err != nil {
			return result, fmt.Errorf("parse %q as bool: %w", content, err)
		}
		target.SetBool(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(content, 10, target.Type().Bits())
		if err != nil {
			return result, fmt.Errorf("parse %q as int: %w", content, err)
		}
		target.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(content, 10, target.Type().Bits())
		if err != nil {
			return result, fmt.Errorf("parse %q as uint: %w", content, err)
		}
		target.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(content, target.Type().Bits())
		if err != nil {
			return result, fmt.Errorf("parse %q as float: %w", content, err)
		}
		target.SetFloat(v)
	default:
		return decodeJSON[T](content)
	}
	return result, nil
}

func decodeJSON[T any](content string) (T, error) {
	var result T
	err := json.Unmarshal([]byte(content), &result)
	if err == nil {
		return result, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return result, fmt.Errorf("decode %T: %w (repair failed: %v)", result, err, repairErr)
	}
	result = *new(T)
	if err := json.Unmarshal([]byte(repaired), &result); err != nil {
		return result, fmt.Errorf("decode repaired %T: %w", result, err)
	}
	return result, nil
}
