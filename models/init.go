package models

import (
	"server/db"
)

func Init() {
	db.Instance.AutoMigrate(&Album{})
	db.Instance.AutoMigrate(&Media{})
	db.Instance.AutoMigrate(&Review{})
	db.Instance.AutoMigrate(&Inquiry{})
	db.Instance.AutoMigrate(&FAQ{})
	db.Instance.AutoMigrate(&Setting{})
}
