package community

import (
	"github.com/pkg/errors"
	"github.com/technobugproject/technobug/model"
	"gorm.io/gorm"
)

// ListCodeExamples returns the seeded reference snippets for the "codigo"
// section, optionally filtered by category. Read-only content, users never
// mutate it.
func ListCodeExamples(db *gorm.DB, category string) ([]*model.CodeExample, error) {
	query := db.Order("title asc")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var examples []*model.CodeExample
	if err := query.Find(&examples).Error; err != nil {
		return nil, errors.Wrap(err, "fail to list code examples")
	}
	return examples, nil
}
