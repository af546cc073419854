package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

var errBadID = errors.New("must be a positive integer")

func parseUint(raw string) (uint64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || n == 0 {
		return 0, errBadID
	}
	return n, nil
}

func pathID(c echo.Context) (uint64, error) { return parseUint(c.Param("id")) }

// queryUint returns 0 when the parameter is absent.
func queryUint(c echo.Context, name string) (uint64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return parseUint(raw)
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
