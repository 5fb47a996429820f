package client

import (
	"fmt"
	"strings"
)

func monthPath(year, month int) string {
	return fmt.Sprintf("/api/calendar/%d/%d", year, month)
}

func joinIDs(ids []string) string {
	return strings.Join(ids, ",")
}
