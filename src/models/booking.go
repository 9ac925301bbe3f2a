package models

import (
	"time"

	"fbs/src/types"
)

type Booking struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `json:"title,omitempty"`
	Purpose   string    `json:"purpose,omitempty"`
	Color     string    `json:"color,omitempty"`
	StartTime time.Time `gorm:"uniqueIndex:facility_start" json:"start_time,omitempty"`
	EndTime   time.Time `json:"end_time,omitempty"`

	Status             types.BookingStatus      `gorm:"default:PENDING" json:"status,omitempty"`
	CancellationStatus types.CancellationStatus `gorm:"default:NOT_REQUESTED" json:"cancellation_status,omitempty"`
	CancellationRemark string                   `json:"cancellation_remark,omitempty"`
	StatusUpdatedAt    *time.Time               `json:"status_updated_at,omitempty"`

	RequestedByID uint  `json:"requested_by_id,omitempty"`
	GroupID       *uint `json:"group_id,omitempty"`
	FacilityID    uint  `gorm:"uniqueIndex:facility_start" json:"facility_id,omitempty"`

	RequestedBy *User     `gorm:"foreignKey:requested_by_id" json:"requested_by,omitempty"`
	Facility    *Facility `gorm:"foreignKey:facility_id" json:"facility,omitempty"`

	types.Timestamps
}
