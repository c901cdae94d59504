package firestore

import (
	"fmt"
	"strings"
	"time"
)

func asString(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	default:
		return fmt.Sprint(v)
	}
}

func asInt(v any) int {
	if v == nil {
		return 0
	}
	switch t := v.(type) {
	case int:
		return t
	case int32:
		return int(t)
	case int64:
		return int(t)
	case float32:
		return int(t)
	case float64:
		return int(t)
	case string:
		tt := strings.TrimSpace(t)
		if tt == "" {
			return 0
		}
		var n int
		_, _ = fmt.Sscanf(tt, "%d", &n)
		return n
	default:
		// best-effort
		s := strings.TrimSpace(fmt.Sprint(v))
		if s == "" {
			return 0
		}
		var n int
		_, _ = fmt.Sscanf(s, "%d", &n)
		return n
	}
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// asTime returns (time, ok)
func asTime(v any) (time.Time, bool) {
	if v == nil {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t, true
	default:
		return time.Time{}, false
	}
}

// asEpochMillis normalizes the timestamp shapes seen in older docs to epoch
// milliseconds:
//   - native timestamp (time.Time)
//   - server timestamp map {seconds, nanos} written by early clients
//   - a bare epoch-millis number
//
// This is the single place timestamp shape is resolved; sorting only ever
// sees millis.
func asEpochMillis(v any) int64 {
	if v == nil {
		return 0
	}
	switch t := v.(type) {
	case time.Time:
		return t.UnixMilli()
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case map[string]any:
		// {seconds: ..., nanos: ...}
		if sec, ok := t["seconds"]; ok {
			ms := int64(asInt(sec)) * 1000
			if ns, ok2 := t["nanos"]; ok2 {
				ms += int64(asInt(ns)) / int64(time.Millisecond)
			}
			return ms
		}
		return 0
	default:
		return 0
	}
}

func asStringSlice(v any) []string {
	if v == nil {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		s := strings.TrimSpace(asString(e))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
