package cli

import (
	"fmt"
	"strconv"
)

// parseID разбирает позиционный аргумент ID.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func optionalID(id *int64) string {
	if id == nil {
		return "-"
	}
	return formatID(*id)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
