package utils

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

func GetParam(ctx *gin.Context, name string) (string, error) {
	value := strings.TrimSpace(ctx.Param(name))

	if value == "" {
		return "", fmt.Errorf("%s not found", name)
	}

	return value, nil
}

func GetSubdomainID(ctx *gin.Context) (string, error) {
	return GetParam(ctx, "subdomain_id")
}

// ParseList splits a textarea or comma separated value into trimmed,
// non-empty items.
func ParseList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})

	items := make([]string, 0, len(fields))
	for _, f := range fields {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			items = append(items, trimmed)
		}
	}

	return items
}

// OptionalString maps blank input to nil.
func OptionalString(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
