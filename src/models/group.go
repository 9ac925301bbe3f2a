package models

import "fbs/src/types"

type Group struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"uniqueIndex" json:"name,omitempty"`

	Users    []User         `gorm:"foreignKey:group_id" json:"users,omitempty"`
	Director *GroupDirector `gorm:"foreignKey:group_id" json:"director,omitempty"`

	types.Timestamps
}

// GroupDirector binds one user as the approving director of one group.
type GroupDirector struct {
	ID      uint `gorm:"primarykey" json:"id"`
	UserID  uint `gorm:"uniqueIndex" json:"user_id,omitempty"`
	GroupID uint `gorm:"uniqueIndex" json:"group_id,omitempty"`

	User  *User  `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Group *Group `gorm:"foreignKey:group_id" json:"group,omitempty"`

	types.Timestamps
}
