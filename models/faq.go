package models

import (
	"fmt"
	"server/db"

	"gorm.io/gorm"
)

type FAQ struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	Question  string `gorm:"type:varchar(500);not null" json:"question"`
	Answer    string `gorm:"type:text" json:"answer"`
	Published bool   `gorm:"not null;default:true" json:"published"`
	SortOrder int    `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

func PublishedFAQs() ([]FAQ, error) {
	faqs := []FAQ{}
	err := db.Instance.Where("published = ?", true).
		Order("sort_order ASC, id ASC").Find(&faqs).Error
	return faqs, err
}

func AllFAQs() ([]FAQ, error) {
	faqs := []FAQ{}
	err := db.Instance.Order("sort_order ASC, id ASC").Find(&faqs).Error
	return faqs, err
}

func CreateFAQ(question, answer string, published bool) (*FAQ, error) {
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", ErrValidation)
	}
	var maxSort int
	// New entries go to the end of the list
	db.Instance.Model(&FAQ{}).Select("ifnull(max(sort_order), -1)").Scan(&maxSort)
	faq := FAQ{
		Question:  question,
		Answer:    answer,
		Published: published,
		SortOrder: maxSort + 1,
	}
	if err := db.Instance.Create(&faq).Error; err != nil {
		return nil, err
	}
	return &faq, nil
}

func UpdateFAQ(id uint64, question, answer *string, published *bool) (*FAQ, error) {
	var faq FAQ
	if err := db.Instance.First(&faq, id).Error; err != nil {
		return nil, wrapRecordError(err)
	}
	if question != nil {
		if *question == "" {
			return nil, fmt.Errorf("%w: question is required", ErrValidation)
		}
		faq.Question = *question
	}
	if answer != nil {
		faq.Answer = *answer
	}
	if published != nil {
		faq.Published = *published
	}
	if err := db.Instance.Save(&faq).Error; err != nil {
		return nil, err
	}
	return &faq, nil
}

func DeleteFAQ(id uint64) error {
	result := db.Instance.Delete(&FAQ{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderFAQs applies the same atomic rewrite contract as media reorder.
func ReorderFAQs(ids []uint64) ([]FAQ, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no faq ids given", ErrValidation)
	}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		for position, id := range ids {
			err := tx.Model(&FAQ{}).Where("id = ?", id).
				UpdateColumn("sort_order", position).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return AllFAQs()
}
