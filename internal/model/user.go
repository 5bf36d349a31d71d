package model

import "time"

type User struct {
	ID           string `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`

	VerifyCode       string
	VerifyCodeExpiry time.Time
	Verified         bool `gorm:"default:false"`

	AcceptingMessages bool `gorm:"default:true"`

	ResetToken       *string `gorm:"index"`
	ResetTokenExpiry *time.Time

	CreatedAt time.Time

	Messages []Message `gorm:"foreignKey:UserID"`
}
