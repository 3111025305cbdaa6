package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// ParseIntQuery parses an integer query param, falling back to defaultValue
func ParseIntQuery(c *gin.Context, key string, defaultValue int) int {
	if value := c.Query(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// ParsePagination reads page/limit and clamps them to sane bounds
func ParsePagination(c *gin.Context) (page, limit int) {
	page = ParseIntQuery(c, "page", DefaultPage)
	limit = ParseIntQuery(c, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// ParseDecimalQuery returns nil when the param is missing or malformed
func ParseDecimalQuery(c *gin.Context, key string) *decimal.Decimal {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &d
}

// ParseBoolQuery returns nil when the param is missing or malformed
func ParseBoolQuery(c *gin.Context, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}

// ParseUUIDParam parses a path param as uuid
func ParseUUIDParam(c *gin.Context, key string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(key))
}

// Offset converts page/limit into SQL OFFSET
func Offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
