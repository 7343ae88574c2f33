package console

import (
	"math"
	"strconv"
)

var byteUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatBytes renders b in base-1024 units with at most two decimals, e.g. "1.5 KB".
func FormatBytes(b float64) string {
	if b == 0 {
		return "0 Bytes"
	}
	if b < 0 {
		return "-" + FormatBytes(-b)
	}

	i := int(math.Floor(math.Log(b) / math.Log(1024)))
	// log rounding can land just below an exact power of 1024
	if math.Pow(1024, float64(i+1)) <= b {
		i++
	}
	if i < 0 {
		i = 0
	}
	if i >= len(byteUnits) {
		i = len(byteUnits) - 1
	}

	value := math.Round(b/math.Pow(1024, float64(i))*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + byteUnits[i]
}

// FormatSpeed is FormatBytes with a per-second suffix.
func FormatSpeed(bytesPerSecond float64) string {
	return FormatBytes(bytesPerSecond) + "/s"
}

// Percent returns bytes as a percentage of size, or 0 when size is unknown.
func Percent(bytes, size int64) float64 {
	if size <= 0 {
		return 0
	}
	return float64(bytes) / float64(size) * 100
}
