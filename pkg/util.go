package pkg

import (
	"os"
	"time"
	"unsafe"
)

// BytesToString converts a byte slice to a string without copying
func BytesToString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}

// PathExists returns whether the given file or directory exists
func PathExists(path string, isDir bool) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if (isDir && stat.IsDir()) || (!isDir && !stat.IsDir()) {
		return true, nil
	}
	return false, err
}

// DateKey returns the calendar day of t in YYYY-MM-DD form, in UTC.
// A single timezone convention is used everywhere, otherwise completion
// flags can land in the wrong day bucket around midnight.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// RoundedPercentage returns round(part/total * 100), and 0 for an
// empty total, so that callers never divide by zero
func RoundedPercentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(float64(part)/float64(total)*100 + 0.5)
}
