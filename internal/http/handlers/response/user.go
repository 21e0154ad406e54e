package response

import (
	"time"
	"ums/internal/core/domain/user"
)

type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Mobile     string     `json:"mno"`
	Image      string     `json:"image"`
	CreatedAt  time.Time  `json:"created_at"`
	IsVerified bool       `json:"is_verified"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = string(du.ID)
	u.Name = du.Name
	u.Email = string(du.Email)
	u.Mobile = du.Mobile
	u.Image = string(du.Image)
	u.CreatedAt = du.CreatedAt
	u.IsVerified = du.IsVerified()
	if du.VerifiedAt.IsPresent {
		verifiedAt := du.VerifiedAt.Value
		u.VerifiedAt = &verifiedAt
	}
}
