package request

import (
	"encoding/json"
	"strconv"
	"strings"
)

// productKeys are tried in order; urunId is what older clients send.
var productKeys = []string{"productId", "urunId"}

// ProductRef pulls the referenced product id out of a request payload.
// The id may be a JSON number or a numeric string.
func ProductRef(payload string) (uint64, bool) {
	if strings.TrimSpace(payload) == "" {
		return 0, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return 0, false
	}
	for _, k := range productKeys {
		raw, ok := fields[k]
		if !ok {
			continue
		}
		if id, ok := parseID(raw); ok {
			return id, true
		}
	}
	return 0, false
}

func parseID(raw json.RawMessage) (uint64, bool) {
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		if n, err := strconv.ParseUint(num.String(), 10, 64); err == nil && n > 0 {
			return n, true
		}
		return 0, false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
