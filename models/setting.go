package models

import (
	"errors"
	"fmt"
	"server/db"
	"strings"

	cmap "github.com/orcaman/concurrent-map/v2"
	"gorm.io/gorm"
)

// PublicSettingPrefix marks keys the storefront may read; everything else
// is admin-only (push tokens, social handles, etc).
const PublicSettingPrefix = "public."

type Setting struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	Key       string `gorm:"type:varchar(200);uniqueIndex" json:"key"`
	Value     string `gorm:"type:text" json:"value"`
	UpdatedAt int64  `json:"updated_at"`
}

// Read-through cache in front of the settings table. Settings are read on
// every storefront render, so they never hit the DB twice for the same key.
var settingsCache = cmap.New[string]()

func GetSetting(key string) (string, error) {
	if value, ok := settingsCache.Get(key); ok {
		return value, nil
	}
	var setting Setting
	if err := db.Instance.Where("`key` = ?", key).First(&setting).Error; err != nil {
		return "", wrapRecordError(err)
	}
	settingsCache.Set(key, setting.Value)
	return setting.Value, nil
}

func SetSetting(key, value string) error {
	if key == "" {
		return fmt.Errorf("%w: setting key is required", ErrValidation)
	}
	var setting Setting
	err := db.Instance.Where("`key` = ?", key).First(&setting).Error
	switch {
	case err == nil:
		setting.Value = value
		err = db.Instance.Save(&setting).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = Setting{Key: key, Value: value}
		err = db.Instance.Create(&setting).Error
	}
	if err != nil {
		return err
	}
	settingsCache.Set(key, value)
	return nil
}

// PublicSettings returns only the keys the storefront is allowed to see.
func PublicSettings() (map[string]string, error) {
	return settingsByPrefix(PublicSettingPrefix)
}

func AllSettings() (map[string]string, error) {
	return settingsByPrefix("")
}

func settingsByPrefix(prefix string) (map[string]string, error) {
	settings := []Setting{}
	q := db.Instance.Order("`key` ASC")
	if prefix != "" {
		q = q.Where("`key` LIKE ?", prefix+"%")
	}
	if err := q.Find(&settings).Error; err != nil {
		return nil, err
	}
	result := map[string]string{}
	for _, s := range settings {
		if prefix != "" && !strings.HasPrefix(s.Key, prefix) {
			continue
		}
		result[s.Key] = s.Value
		settingsCache.Set(s.Key, s.Value)
	}
	return result, nil
}
