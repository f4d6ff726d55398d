package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type pageQuery struct {
	All   bool
	Limit int
	Page  int
}

func (p pageQuery) offset() int {
	return (p.Page - 1) * p.Limit
}

func (p pageQuery) meta(total int64) gin.H {
	meta := gin.H{"total": total, "all": p.All}
	if !p.All {
		meta["limit"] = p.Limit
		meta["page"] = p.Page
	}
	return meta
}

// parsePage reads limit, page and all from the query string.
func parsePage(c *gin.Context, defaultLimit int) pageQuery {
	p := pageQuery{
		All:   strings.EqualFold(c.Query("all"), "true") || c.Query("all") == "1",
		Limit: defaultLimit,
		Page:  1,
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			if n > 100 {
				n = 100
			}
			p.Limit = n
		}
	}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Page = n
		}
	}
	return p
}

// nextSortOrder returns one past the highest sort_order of model's table.
func nextSortOrder(db *gorm.DB, model any) (int, error) {
	var top int
	if err := db.Model(model).Select("COALESCE(MAX(sort_order), -1)").Row().Scan(&top); err != nil {
		return 0, err
	}
	return top + 1, nil
}
