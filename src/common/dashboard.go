package common

import (
	"fmt"

	"fbs/src/models"
	"fbs/src/types"

	"gorm.io/gorm"
)

type PendingCounts struct {
	ApprovalCount     int64 `json:"approval_count"`
	CancellationCount int64 `json:"cancellation_count"`
}

// CountPending badges the approval and cancellation queues for the roles that
// have one. Every other role gets nil, not zeros.
func CountPending(dbc *gorm.DB, scope *Scope) (*PendingCounts, error) {
	var status types.BookingStatus
	var cancellation types.CancellationStatus
	var column string
	var scopeID uint

	switch scope.Role {
	case types.ROLE_GROUP_DIRECTOR:
		if scope.GroupID == nil {
			return nil, fmt.Errorf("%w: no group assigned to director", types.ErrForbidden)
		}
		status = types.BOOKING_PENDING
		cancellation = types.CANCELLATION_PENDING
		column = "group_id"
		scopeID = *scope.GroupID
	case types.ROLE_FACILITY_MANAGER:
		if scope.FacilityID == nil {
			return nil, fmt.Errorf("%w: no facility assigned to manager", types.ErrForbidden)
		}
		status = types.BOOKING_APPROVED_BY_GD
		cancellation = types.CANCELLATION_APPROVED_BY_GD
		column = "facility_id"
		scopeID = *scope.FacilityID
	default:
		return nil, nil
	}

	counts := &PendingCounts{}
	if err := dbc.
		Model(&models.Booking{}).
		Where(fmt.Sprintf("%s = ?", column), scopeID).
		Where(&models.Booking{Status: status}).
		Count(&counts.ApprovalCount).
		Error; err != nil {
		return nil, err
	}
	if err := dbc.
		Model(&models.Booking{}).
		Where(fmt.Sprintf("%s = ?", column), scopeID).
		Where(&models.Booking{CancellationStatus: cancellation}).
		Count(&counts.CancellationCount).
		Error; err != nil {
		return nil, err
	}
	return counts, nil
}
