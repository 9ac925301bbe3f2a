package models

import "fbs/src/types"

type User struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	Name       string     `json:"name,omitempty"`
	EmployeeID uint       `gorm:"uniqueIndex" json:"employee_id,omitempty"`
	Password   string     `json:"-"`
	Image      string     `json:"image,omitempty"`
	Role       types.Role `gorm:"default:EMPLOYEE" json:"role,omitempty"`
	GroupID    *uint      `json:"group_id,omitempty"`

	Group    *Group    `gorm:"foreignKey:group_id" json:"group,omitempty"`
	Bookings []Booking `gorm:"foreignKey:requested_by_id" json:"bookings,omitempty"`

	types.Timestamps
}
