package expr

import (
	"fmt"
	"io"
	"math"
	"strconv"
)

// FormatValue renders v the way results are shown to users: doubles with two
// decimals, integers truncated toward zero.
func FormatValue(v Value) string {
	return fmt.Sprintf("Type: %s Value: %s", v.Type, formatMagnitude(v))
}

func formatMagnitude(v Value) string {
	if math.IsNaN(v.Val) || math.IsInf(v.Val, 0) {
		return fmt.Sprint(v.Val)
	}
	if v.Type == DoubleType {
		return strconv.FormatFloat(v.Val, 'f', 2, 64)
	}
	t := math.Trunc(v.Val)
	if t == 0 {
		t = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(t, 'f', 0, 64)
}

// WriteValue writes FormatValue(v) followed by a newline.
func WriteValue(w io.Writer, v Value) error {
	_, err := fmt.Fprintln(w, FormatValue(v))
	return err
}
