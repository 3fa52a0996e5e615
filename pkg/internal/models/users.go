package models

type User struct {
	BaseModel

	Username     string  `json:"username" gorm:"uniqueIndex;size:50"`
	Email        string  `json:"email" gorm:"uniqueIndex"`
	PasswordHash string  `json:"-"`
	FullName     *string `json:"full_name"`
	Bio          *string `json:"bio"`
	AvatarURL    *string `json:"avatar_url"`
	IsVerified   bool    `json:"is_verified"`
}
