package models

import (
	"time"
)

type MemberStatus string

const (
	MemberPending  MemberStatus = "pending"
	MemberApproved MemberStatus = "approved"
	MemberBlocked  MemberStatus = "blocked"
)

func (s MemberStatus) IsValid() bool {
	switch s {
	case MemberPending, MemberApproved, MemberBlocked:
		return true
	}
	return false
}

type MemberRole string

const (
	RoleMember MemberRole = "member"
	RoleRector MemberRole = "rector"
)

func (r MemberRole) IsValid() bool {
	switch r {
	case RoleMember, RoleRector:
		return true
	}
	return false
}

// Member is a registered parishioner account, distinct from the
// administrative User account type.
type Member struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Username    string       `json:"username" gorm:"uniqueIndex"`
	Email       string       `json:"email" gorm:"uniqueIndex"`
	Password    string       `json:"-"`
	FullName    string       `json:"fullName"`
	PhoneNumber string       `json:"phoneNumber"`
	Status      MemberStatus `json:"status" gorm:"default:pending"`
	Role        MemberRole   `json:"role" gorm:"default:member"`
	IsAtChurch  bool         `json:"isAtChurch" gorm:"default:false"`
	CreatedAt   time.Time    `json:"createdAt"`
}
