package lua

import (
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"
)

// toGoValue converts a scalar Lua value to Go. Integral numbers become int.
func toGoValue(lv lua.LValue) (any, error) {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v), nil
	case lua.LNumber:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) <= math.MaxInt32 {
			return int(f), nil
		}
		return f, nil
	case lua.LString:
		return string(v), nil
	case *lua.LNilType:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", lv.Type())
	}
}
