package helpers

import "strconv"

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// QueryFlag treats "true" and "1" as set; anything else, including parse
// failures, is false.
func QueryFlag(s string) bool {
	return s == "true" || s == "1"
}
