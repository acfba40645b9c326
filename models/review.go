package models

import (
	"fmt"
	"server/db"
)

type Review struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	Author    string `gorm:"type:varchar(200);not null" json:"author"`
	Rating    int    `gorm:"not null" json:"rating"`
	Text      string `gorm:"type:text" json:"text"`
	Approved  bool   `gorm:"not null;default:false;index" json:"approved"`
	Featured  bool   `gorm:"not null;default:false" json:"featured"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

type ReviewInput struct {
	Author string
	Rating int
	Text   string
}

// CreateReview stores a visitor review. It lands unapproved and stays off
// the public listing until the admin approves it.
func CreateReview(in ReviewInput) (*Review, error) {
	if in.Author == "" {
		return nil, fmt.Errorf("%w: author is required", ErrValidation)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if len(in.Text) > maxTextLength {
		return nil, fmt.Errorf("%w: review longer than %d bytes", ErrValidation, maxTextLength)
	}
	review := Review{
		Author: in.Author,
		Rating: in.Rating,
		Text:   in.Text,
	}
	if err := db.Instance.Create(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ApprovedReviews lists the public reviews, featured ones first.
func ApprovedReviews() ([]Review, error) {
	reviews := []Review{}
	err := db.Instance.Where("approved = ?", true).
		Order("featured DESC, created_at DESC").Find(&reviews).Error
	return reviews, err
}

func AllReviews() ([]Review, error) {
	reviews := []Review{}
	err := db.Instance.Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

// ModerateReview flips the approved/featured flags.
func ModerateReview(id uint64, approved, featured *bool) (*Review, error) {
	var review Review
	if err := db.Instance.First(&review, id).Error; err != nil {
		return nil, wrapRecordError(err)
	}
	if approved != nil {
		review.Approved = *approved
	}
	if featured != nil {
		review.Featured = *featured
	}
	if err := db.Instance.Save(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func DeleteReview(id uint64) error {
	result := db.Instance.Delete(&Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
