package models

import (
	"time"
)

type User struct {
	UserID    int       `db:"user_id" json:"user_id"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	Role      string    `db:"role" json:"role"`
	PLanguage string    `db:"p_language" json:"p_language"`
	PCurrency string    `db:"p_currency" json:"p_currency"`
	Disabled  bool      `db:"disabled" json:"disabled"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
