package models

type Tag struct {
	BaseModel

	Name  string `json:"name" gorm:"uniqueIndex"`
	Posts []Post `json:"-" gorm:"many2many:post_tags"`
}
