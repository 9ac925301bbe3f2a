package common

import (
	"errors"
	"fmt"
	"time"

	"fbs/src/models"
	"fbs/src/types"

	"gorm.io/gorm"
)

// Approval moves along PENDING -> APPROVED_BY_GD -> APPROVED_BY_FM, with
// REJECTED reachable from either non-terminal state and APPROVED_BY_ADMIN as
// the admin override from any non-terminal state. The cancellation chain
// mirrors the same two-step gate over an independent column. Every transition
// ends in a conditional UPDATE on the expected current state; a second writer
// racing on the same booking sees zero rows affected and fails with Conflict
// instead of double-applying.

func approvalStep(role types.Role, approve bool) (expected, next types.BookingStatus, err error) {
	switch role {
	case types.ROLE_GROUP_DIRECTOR:
		expected = types.BOOKING_PENDING
		next = types.BOOKING_APPROVED_BY_GD
	case types.ROLE_FACILITY_MANAGER:
		expected = types.BOOKING_APPROVED_BY_GD
		next = types.BOOKING_APPROVED_BY_FM
	default:
		err = fmt.Errorf("%w: role %s cannot act on booking approvals", types.ErrForbidden, role)
		return
	}
	if !approve {
		next = types.BOOKING_REJECTED
	}
	return
}

func cancellationStep(role types.Role, approve bool) (expected, next types.CancellationStatus, err error) {
	switch role {
	case types.ROLE_GROUP_DIRECTOR:
		expected = types.CANCELLATION_PENDING
		next = types.CANCELLATION_APPROVED_BY_GD
	case types.ROLE_FACILITY_MANAGER:
		expected = types.CANCELLATION_APPROVED_BY_GD
		next = types.CANCELLATION_APPROVED_BY_FM
	default:
		err = fmt.Errorf("%w: role %s cannot act on cancellations", types.ErrForbidden, role)
		return
	}
	if !approve {
		next = types.CANCELLATION_REJECTED
	}
	return
}

// checkScope enforces that the acting role owns the booking's group or
// facility. Both the state guard and this scope check must hold.
func checkScope(scope *Scope, booking *models.Booking) error {
	switch scope.Role {
	case types.ROLE_GROUP_DIRECTOR:
		if scope.GroupID == nil || booking.GroupID == nil || *booking.GroupID != *scope.GroupID {
			return fmt.Errorf("%w: booking outside group scope", types.ErrForbidden)
		}
	case types.ROLE_FACILITY_MANAGER:
		if scope.FacilityID == nil || booking.FacilityID != *scope.FacilityID {
			return fmt.Errorf("%w: booking outside facility scope", types.ErrForbidden)
		}
	}
	return nil
}

func getBooking(tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.Where(&models.Booking{ID: id}).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking [%d]", types.ErrNotFound, id)
		}
		return nil, err
	}
	return &booking, nil
}

func TransitionApproval(dbc *gorm.DB, scope *Scope, id uint, approve bool) error {
	expected, next, err := approvalStep(scope.Role, approve)
	if err != nil {
		return err
	}
	return dbc.Transaction(func(tx *gorm.DB) error {
		booking, err := getBooking(tx, id)
		if err != nil {
			return err
		}
		if err := checkScope(scope, booking); err != nil {
			return err
		}
		if booking.Status != expected {
			return fmt.Errorf("%w: booking is %s, expected %s", types.ErrConflict, booking.Status, expected)
		}
		now := time.Now()
		res := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: id, Status: expected}).
			Updates(&models.Booking{Status: next, StatusUpdatedAt: &now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: booking status changed concurrently", types.ErrConflict)
		}
		return nil
	})
}

// OverrideBooking applies the admin override. It short-circuits the two-step
// chain from any non-terminal state.
func OverrideBooking(dbc *gorm.DB, scope *Scope, id uint) error {
	if scope.Role != types.ROLE_ADMIN {
		return fmt.Errorf("%w: only an admin may override", types.ErrForbidden)
	}
	return dbc.Transaction(func(tx *gorm.DB) error {
		booking, err := getBooking(tx, id)
		if err != nil {
			return err
		}
		if booking.Status.Terminal() {
			return fmt.Errorf("%w: booking is already %s", types.ErrConflict, booking.Status)
		}
		now := time.Now()
		res := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: id, Status: booking.Status}).
			Updates(&models.Booking{Status: types.BOOKING_APPROVED_BY_ADMIN, StatusUpdatedAt: &now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: booking status changed concurrently", types.ErrConflict)
		}
		return nil
	})
}

// RequestCancellation opens the cancellation chain. Only the original
// requester may ask, only for a booking whose approval already authorizes
// display. The approval status itself is left untouched; the booking stays on
// the calendar until the FM approves the cancellation.
func RequestCancellation(dbc *gorm.DB, scope *Scope, id uint) error {
	return dbc.Transaction(func(tx *gorm.DB) error {
		booking, err := getBooking(tx, id)
		if err != nil {
			return err
		}
		if booking.RequestedByID != scope.UserID {
			return fmt.Errorf("%w: only the requester may cancel a booking", types.ErrForbidden)
		}
		if !booking.Status.Approved() {
			return fmt.Errorf("%w: booking is %s, only approved bookings can be cancelled", types.ErrConflict, booking.Status)
		}
		current := booking.CancellationStatus
		if current != types.CANCELLATION_NOT_REQUESTED && current != types.CANCELLATION_REJECTED {
			return fmt.Errorf("%w: cancellation is already %s", types.ErrConflict, current)
		}
		res := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: id, CancellationStatus: current}).
			Updates(&models.Booking{CancellationStatus: types.CANCELLATION_PENDING})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: cancellation status changed concurrently", types.ErrConflict)
		}
		return nil
	})
}

func TransitionCancellation(dbc *gorm.DB, scope *Scope, id uint, approve bool, remark string) error {
	expected, next, err := cancellationStep(scope.Role, approve)
	if err != nil {
		return err
	}
	return dbc.Transaction(func(tx *gorm.DB) error {
		booking, err := getBooking(tx, id)
		if err != nil {
			return err
		}
		if err := checkScope(scope, booking); err != nil {
			return err
		}
		if booking.CancellationStatus != expected {
			return fmt.Errorf("%w: cancellation is %s, expected %s", types.ErrConflict, booking.CancellationStatus, expected)
		}
		res := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: id, CancellationStatus: expected}).
			Updates(&models.Booking{CancellationStatus: next, CancellationRemark: remark})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: cancellation status changed concurrently", types.ErrConflict)
		}
		return nil
	})
}
