package types

import (
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type SlugRequestParams struct {
	Slug string `uri:"slug" binding:"required"`
}

type EmployeeRequestParams struct {
	EmployeeID uint `uri:"employeeId" binding:"required"`
}

type LoginRequestBody struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	Password   string `json:"password" binding:"required,min=8"`
}

type RegisterUserRequestBody struct {
	Name       string `json:"name" binding:"required"`
	EmployeeID uint   `json:"employee_id" binding:"required"`
	Password   string `json:"password" binding:"required,min=8"`
	Image      string `json:"image,omitempty"`
	Role       Role   `json:"role,omitempty" binding:"omitempty,oneof=EMPLOYEE FACILITY_MANAGER GROUP_DIRECTOR ADMIN"`
	GroupID    *uint  `json:"group,omitempty"`
}

type ChangePasswordRequestBody struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type CreateBookingRequestBody struct {
	Title     string `json:"title" binding:"required"`
	Purpose   string `json:"purpose,omitempty"`
	Color     string `json:"color,omitempty"`
	StartTime string `json:"start_time" binding:"required,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
	EndTime   string `json:"end_time" binding:"required,bookabledate,gtdate=StartTime" time_format:"2006-01-02 15:04:05 -07:00"`
}

type ApprovalActionRequestBody struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
	Remark string `json:"remark,omitempty"`
}

type CreateFacilityRequestBody struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	ManagerID   uint   `json:"manager" binding:"required"`
}

type UpdateFacilityRequestBody struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type CreateGroupRequestBody struct {
	Name string `json:"name" binding:"required"`
}

type AddGroupDirectorRequestBody struct {
	GroupID         uint `json:"group" binding:"required"`
	GroupDirectorID uint `json:"director" binding:"required"`
}

type Role string

const (
	ROLE_EMPLOYEE         Role = "EMPLOYEE"
	ROLE_FACILITY_MANAGER Role = "FACILITY_MANAGER"
	ROLE_GROUP_DIRECTOR   Role = "GROUP_DIRECTOR"
	ROLE_ADMIN            Role = "ADMIN"
)

type BookingStatus string

const (
	BOOKING_PENDING           BookingStatus = "PENDING"
	BOOKING_APPROVED_BY_GD    BookingStatus = "APPROVED_BY_GD"
	BOOKING_APPROVED_BY_FM    BookingStatus = "APPROVED_BY_FM"
	BOOKING_APPROVED_BY_ADMIN BookingStatus = "APPROVED_BY_ADMIN"
	BOOKING_REJECTED          BookingStatus = "REJECTED"
)

type CancellationStatus string

const (
	CANCELLATION_NOT_REQUESTED  CancellationStatus = "NOT_REQUESTED"
	CANCELLATION_PENDING        CancellationStatus = "PENDING"
	CANCELLATION_APPROVED_BY_GD CancellationStatus = "APPROVED_BY_GD"
	CANCELLATION_APPROVED_BY_FM CancellationStatus = "APPROVED_BY_FM"
	CANCELLATION_REJECTED       CancellationStatus = "REJECTED"
)

// Terminal reports whether no further approval transition applies to s.
// APPROVED_BY_FM and APPROVED_BY_ADMIN both authorize calendar display;
// GD approval is only an intermediate gate.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BOOKING_APPROVED_BY_FM, BOOKING_APPROVED_BY_ADMIN, BOOKING_REJECTED:
		return true
	}
	return false
}

func (s BookingStatus) Approved() bool {
	return s == BOOKING_APPROVED_BY_FM || s == BOOKING_APPROVED_BY_ADMIN
}
