package postgres

import (
	"strings"

	"gorm.io/gorm"

	"github.com/adboard/advertisement-service/internal/core/ports"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere, case-folded.
// Wildcards in s match literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// searchScope ANDs every criterion present in f. The users table is joined
// only when filtering by author.
func searchScope(f ports.AdvertisementFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Title != "" {
			db = db.Where(`LOWER(advertisements.title) LIKE ? ESCAPE '\'`, containsPattern(f.Title))
		}
		if f.Description != "" {
			db = db.Where(`LOWER(advertisements.description) LIKE ? ESCAPE '\'`, containsPattern(f.Description))
		}
		if f.PriceMin != nil {
			db = db.Where("advertisements.price >= ?", *f.PriceMin)
		}
		if f.PriceMax != nil {
			db = db.Where("advertisements.price <= ?", *f.PriceMax)
		}
		if f.Author != "" {
			db = db.Joins("JOIN users ON users.id = advertisements.author_id").
				Where(`LOWER(users.username) LIKE ? ESCAPE '\'`, containsPattern(f.Author))
		}
		return db
	}
}
