package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"latin", "Modern Kitchen 2024!", "modern-kitchen-2024"},
		{"arabic", "مطبخ ألوميتال حديث", "مطبخ-ألوميتال-حديث"},
		{"arabic with diacritics", "مَطْبَخ", "مطبخ"},
		{"collapse separators", "  باب -- خشب  ", "باب-خشب"},
		{"symbols only", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}

func TestWhereBuilder(t *testing.T) {
	w := NewWhereBuilder()
	assert.Equal(t, "", w.SQL())

	w.Add("is_active = true")
	w.Add("category = ?", "doors")
	w.Add("price BETWEEN ? AND ?", 10, 20)

	assert.Equal(t, " WHERE is_active = true AND category = $1 AND price BETWEEN $2 AND $3", w.SQL())
	assert.Equal(t, []interface{}{"doors", 10, 20}, w.Args())
	assert.Equal(t, 4, w.Next())
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 20},
		{"?page=3&limit=50", 3, 50},
		{"?page=0&limit=1000", 1, 100},
		{"?page=abc&limit=-5", 1, 20},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/x"+tt.query, nil)

		page, limit := ParsePagination(c)
		assert.Equal(t, tt.wantPage, page, tt.query)
		assert.Equal(t, tt.wantLimit, limit, tt.query)
	}
}

func TestExtractClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", ExtractClientIP(c))

	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.RemoteAddr = "198.51.100.4:5555"
	assert.Equal(t, "198.51.100.4", ExtractClientIP(c))
}
