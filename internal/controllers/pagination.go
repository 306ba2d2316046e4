package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Page is the envelope every list endpoint returns.
type Page struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Pages int   `json:"pages"`
}

// NewPage builds the envelope. size is the item count of the current page and
// pages is ceil(total/limit).
func NewPage(items any, total int64, page, size, limit int) Page {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Page{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
		Pages: pages,
	}
}

// pageParams reads ?page= and ?limit= with defaults and returns the row
// offset alongside.
func pageParams(c *gin.Context) (page, limit, skip int) {
	page = queryIntWithDefault(c, "page", 1)
	if page < 1 {
		page = 1
	}
	limit = queryIntWithDefault(c, "limit", 10)
	if limit < 1 {
		limit = 10
	}
	skip = (page - 1) * limit
	return page, limit, skip
}

func queryIntWithDefault(c *gin.Context, key string, defaultValue int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
