package admin

import (
	"fmt"
	"strings"
)

// RecalculationScope limits a filestore usage recalculation.
type RecalculationScope int

const (
	RecalculateAll RecalculationScope = iota
	RecalculateUser
	RecalculateContext
)

func (s RecalculationScope) String() string {
	switch s {
	case RecalculateAll:
		return "all"
	case RecalculateUser:
		return "user"
	case RecalculateContext:
		return "context"
	}
	return fmt.Sprintf("scope(%d)", int(s))
}

func ParseRecalculationScope(s string) (RecalculationScope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return RecalculateAll, nil
	case "user":
		return RecalculateUser, nil
	case "context":
		return RecalculateContext, nil
	}
	return 0, fmt.Errorf("unknown recalculation scope %q", s)
}
