package utils

import (
	"strconv"
	"strings"
)

// Transfer converts a decoded JWT claim into a user id. Numeric claims arrive as float64 after
// JSON decoding; ids issued as strings are parsed. It reports false for anything else.
func Transfer(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	case string:
		if intValue, err := strconv.ParseInt(v, 10, 64); err == nil {
			return intValue, true
		}
	}
	return 0, false
}

func ConvertStringToInt64(v string) (int64, error) {
	if res, err := strconv.ParseInt(v, 10, 64); err != nil {
		return -1, err
	} else {
		return res, nil
	}
}

// LikeEscapeChar is used with "LIKE ? ESCAPE '!'", which MySQL and SQLite both accept.
const LikeEscapeChar = "!"

var likeReplacer = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ContainsPattern builds a lower-cased LIKE pattern matching s anywhere, with wildcards in s escaped.
func ContainsPattern(s string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(s)) + "%"
}
