package model

import "time"

type User struct {
	UserID             string    `bson:"user_id" json:"user_id"`
	Username           string    `bson:"username" json:"username" binding:"required,min=4,max=20"`
	Email              string    `bson:"email" json:"email" binding:"required,email"`
	Password           string    `bson:"password" json:"-" binding:"required,password"` // stored hashed
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
	LastPasswordChange time.Time `bson:"lastPasswordChange,omitempty" json:"-"`
	LastEmailChange    time.Time `bson:"lastEmailChange,omitempty" json:"-"`
	IsActive           bool      `bson:"is_active" json:"is_active"`
	TwoFactorEnabled   bool      `bson:"two_factor_enabled" json:"two_factor_enabled"`
	TwoFactorSecret    string    `bson:"two_factor_secret,omitempty" json:"-"`
	RecoveryCodes      []string  `bson:"recovery_codes,omitempty" json:"-"`
}
