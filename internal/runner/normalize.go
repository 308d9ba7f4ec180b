package runner

import (
	"fmt"
	"math/big"
	"time"
)

// normalize converts a driver value into one of nil, int64, float64, bool,
// string or time.Time.
func normalize(v any) any {
	switch val := v.(type) {
	case nil, int64, float64, bool, string, time.Time:
		return val
	case []byte:
		return string(val)
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		if val <= 1<<63-1 {
			return int64(val)
		}
		return fmt.Sprint(val)
	case float32:
		return float64(val)
	case *big.Int:
		if val == nil {
			return nil
		}
		if val.IsInt64() {
			return val.Int64()
		}
		return val.String()
	case interface{ Float64() float64 }:
		return val.Float64()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
