package models

// OptionModel is a generic name/value row, used for the persisted settings blob.
type OptionModel struct {
	Base
	Name  string `json:"name"  gorm:"uniqueIndex;not null"`
	Value string `json:"value" gorm:"type:longtext"`
}

func (OptionModel) TableName() string { return "options" }
