package models

import (
	"fmt"
	"server/db"
)

const (
	InquiryStatusNew     = "new"
	InquiryStatusRead    = "read"
	InquiryStatusReplied = "replied"
)

type Inquiry struct {
	ID        uint64  `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"type:varchar(200);not null" json:"name"`
	Phone     string  `gorm:"type:varchar(50)" json:"phone"`
	Message   string  `gorm:"type:text" json:"message"`
	AlbumID   *uint64 `json:"album_id"`
	Status    string  `gorm:"type:varchar(20);index;default:new" json:"status"`
	CreatedAt int64   `json:"created_at"`
	UpdatedAt int64   `json:"updated_at"`
}

type InquiryInput struct {
	Name    string
	Phone   string
	Message string
	AlbumID *uint64
}

func validInquiryStatus(s string) bool {
	return s == InquiryStatusNew || s == InquiryStatusRead || s == InquiryStatusReplied
}

func CreateInquiry(in InquiryInput) (*Inquiry, error) {
	if in.Name == "" || in.Message == "" {
		return nil, fmt.Errorf("%w: name and message are required", ErrValidation)
	}
	if len(in.Message) > maxTextLength {
		return nil, fmt.Errorf("%w: message longer than %d bytes", ErrValidation, maxTextLength)
	}
	if in.AlbumID != nil {
		if _, err := GetAlbumByID(*in.AlbumID); err != nil {
			return nil, err
		}
	}
	inquiry := Inquiry{
		Name:    in.Name,
		Phone:   in.Phone,
		Message: in.Message,
		AlbumID: in.AlbumID,
		Status:  InquiryStatusNew,
	}
	if err := db.Instance.Create(&inquiry).Error; err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func ListInquiries(status string) ([]Inquiry, error) {
	q := db.Instance.Order("created_at DESC")
	if status != "" {
		if !validInquiryStatus(status) {
			return nil, fmt.Errorf("%w: unknown inquiry status %q", ErrValidation, status)
		}
		q = q.Where("status = ?", status)
	}
	inquiries := []Inquiry{}
	err := q.Find(&inquiries).Error
	return inquiries, err
}

func SetInquiryStatus(id uint64, status string) (*Inquiry, error) {
	if !validInquiryStatus(status) {
		return nil, fmt.Errorf("%w: unknown inquiry status %q", ErrValidation, status)
	}
	var inquiry Inquiry
	if err := db.Instance.First(&inquiry, id).Error; err != nil {
		return nil, wrapRecordError(err)
	}
	inquiry.Status = status
	if err := db.Instance.Save(&inquiry).Error; err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func DeleteInquiry(id uint64) error {
	result := db.Instance.Delete(&Inquiry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func UnreadInquiryCount() (int64, error) {
	var count int64
	err := db.Instance.Model(&Inquiry{}).
		Where("status = ?", InquiryStatusNew).Count(&count).Error
	return count, err
}
