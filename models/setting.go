package models

import "gorm.io/gorm"

// Setting is the single-row application configuration edited from the
// admin panel.
type Setting struct {
	ID                int     `gorm:"primaryKey" json:"id"`
	Name              string  `gorm:"size:100" json:"name"`
	Company           string  `gorm:"size:100" json:"company"`
	MinWithdraw       float64 `gorm:"type:decimal(15,2);default:1" json:"min_withdraw"`
	MaxWithdraw       float64 `gorm:"type:decimal(15,2);default:1000" json:"max_withdraw"`
	DefaultDailyQuota int     `gorm:"not null;default:5" json:"default_daily_quota"`
	Maintenance       bool    `gorm:"default:false" json:"maintenance"`
	ClosedRegister    bool    `gorm:"default:false" json:"closed_register"`
	LinkCS            string  `gorm:"size:255" json:"link_cs"`
	LinkApp           string  `gorm:"size:255" json:"link_app"`
}

func (Setting) TableName() string {
	return "settings"
}

func GetSetting(db *gorm.DB) (*Setting, error) {
	setting := &Setting{}
	if err := db.Take(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}
