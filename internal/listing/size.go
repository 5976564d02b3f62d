package listing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatSize renders a textual content length as a base-1024 size.
// Absent, unparseable or negative input renders as "".
func FormatSize(contentLength string) string {
	contentLength = strings.TrimSpace(contentLength)
	if contentLength == "" {
		return ""
	}

	n, err := strconv.ParseInt(contentLength, 10, 64)
	if err != nil || n < 0 {
		return ""
	}
	return FormatBytes(n)
}

// FormatBytes renders n bytes with the largest unit that keeps the value at or
// above one, rounded to an integer. Sizes past the TB unit stay in TB.
func FormatBytes(n int64) string {
	if n == 0 {
		return "0 Byte"
	}
	if n < 0 {
		return ""
	}

	i := int(math.Floor(math.Log(float64(n)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	// float rounding in Log can land one unit off around exact powers of 1024
	if i+1 < len(sizeUnits) && float64(n) >= math.Pow(1024, float64(i+1)) {
		i++
	}
	if i > 0 && float64(n) < math.Pow(1024, float64(i)) {
		i--
	}

	value := math.Round(float64(n) / math.Pow(1024, float64(i)))
	return fmt.Sprintf("%d %s", int64(value), sizeUnits[i])
}
