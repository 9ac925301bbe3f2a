package models

import "fbs/src/types"

type Facility struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `json:"name,omitempty"`
	Slug        string `gorm:"uniqueIndex" json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	Manager  *FacilityManager `gorm:"foreignKey:facility_id" json:"facility_manager,omitempty"`
	Bookings []Booking        `gorm:"foreignKey:facility_id" json:"bookings,omitempty"`

	types.Timestamps
}

// FacilityManager binds one user as the approving manager of one facility.
type FacilityManager struct {
	ID         uint `gorm:"primarykey" json:"id"`
	UserID     uint `gorm:"uniqueIndex" json:"user_id,omitempty"`
	FacilityID uint `gorm:"uniqueIndex" json:"facility_id,omitempty"`

	User     *User     `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Facility *Facility `gorm:"foreignKey:facility_id" json:"facility,omitempty"`

	types.Timestamps
}
