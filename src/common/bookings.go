package common

import (
	"errors"
	"fmt"
	"time"

	"fbs/src/config"
	"fbs/src/models"
	"fbs/src/types"

	"gorm.io/gorm"
)

// CreateBooking inserts a new PENDING request on an active facility. The
// overlap guard runs inside the same transaction as the insert: any
// non-rejected, not-fully-cancelled booking on the facility whose time range
// intersects the new one is a Conflict.
func CreateBooking(dbc *gorm.DB, scope *Scope, facilitySlug string, params *types.CreateBookingRequestBody) (*models.Booking, error) {
	start, err := time.Parse(config.TIME_PARSE_FORMAT, params.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: field start_time", types.ErrValidation)
	}
	end, err := time.Parse(config.TIME_PARSE_FORMAT, params.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: field end_time", types.ErrValidation)
	}
	var booking models.Booking
	err = dbc.Transaction(func(tx *gorm.DB) error {
		var facility models.Facility
		if err := tx.Where(&models.Facility{Slug: facilitySlug, IsActive: true}).First(&facility).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: facility %s", types.ErrNotFound, facilitySlug)
			}
			return err
		}
		var requester models.User
		if err := tx.Where(&models.User{ID: scope.UserID}).First(&requester).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user [%d]", types.ErrNotFound, scope.UserID)
			}
			return err
		}
		var overlapping int64
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{FacilityID: facility.ID}).
			Where("status <> ?", types.BOOKING_REJECTED).
			Where("cancellation_status <> ?", types.CANCELLATION_APPROVED_BY_FM).
			Where("start_time < ? AND end_time > ?", end, start).
			Count(&overlapping).
			Error; err != nil {
			return err
		}
		if overlapping > 0 {
			return fmt.Errorf("%w: field start_time overlaps an existing booking", types.ErrConflict)
		}
		booking = models.Booking{
			Title:              params.Title,
			Purpose:            params.Purpose,
			Color:              params.Color,
			StartTime:          start,
			EndTime:            end,
			Status:             types.BOOKING_PENDING,
			CancellationStatus: types.CANCELLATION_NOT_REQUESTED,
			RequestedByID:      requester.ID,
			GroupID:            requester.GroupID,
			FacilityID:         facility.ID,
		}
		if err := tx.Create(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: field start_time must be unique", types.ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// FacilityCalendar returns the bookings visible to general viewers: FM
// approval or admin override authorizes display, and a booking stays visible
// while its cancellation is still under review.
func FacilityCalendar(dbc *gorm.DB, facilitySlug string) ([]models.Booking, error) {
	var facility models.Facility
	if err := dbc.Where(&models.Facility{Slug: facilitySlug}).First(&facility).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: facility %s", types.ErrNotFound, facilitySlug)
		}
		return nil, err
	}
	var bookings []models.Booking
	err := dbc.
		Model(&models.Booking{}).
		Where(&models.Booking{FacilityID: facility.ID}).
		Where("status IN ?", []types.BookingStatus{types.BOOKING_APPROVED_BY_FM, types.BOOKING_APPROVED_BY_ADMIN}).
		Where("cancellation_status <> ?", types.CANCELLATION_APPROVED_BY_FM).
		Order("start_time desc").
		Preload("RequestedBy").
		Find(&bookings).
		Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// scopedQuery narrows a booking query to the rows the role may see.
func scopedQuery(dbc *gorm.DB, scope *Scope) (*gorm.DB, error) {
	switch scope.Role {
	case types.ROLE_GROUP_DIRECTOR:
		if scope.GroupID == nil {
			return nil, fmt.Errorf("%w: no group assigned to director", types.ErrForbidden)
		}
		return dbc.Model(&models.Booking{}).Where("group_id = ?", *scope.GroupID), nil
	case types.ROLE_FACILITY_MANAGER:
		if scope.FacilityID == nil {
			return nil, fmt.Errorf("%w: no facility assigned to manager", types.ErrForbidden)
		}
		return dbc.Model(&models.Booking{}).Where("facility_id = ?", *scope.FacilityID), nil
	case types.ROLE_ADMIN:
		return dbc.Model(&models.Booking{}), nil
	}
	return nil, fmt.Errorf("%w: role %s has no booking queue", types.ErrForbidden, scope.Role)
}

func ScopedBookings(dbc *gorm.DB, scope *Scope) ([]models.Booking, error) {
	q, err := scopedQuery(dbc, scope)
	if err != nil {
		return nil, err
	}
	var bookings []models.Booking
	if err := q.
		Order("start_time desc").
		Preload("RequestedBy").
		Preload("Facility").
		Find(&bookings).
		Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// PendingApprovals lists the bookings awaiting the acting role's approval
// step: PENDING for a GD, APPROVED_BY_GD for an FM.
func PendingApprovals(dbc *gorm.DB, scope *Scope) ([]models.Booking, error) {
	expected, _, err := approvalStep(scope.Role, true)
	if err != nil {
		return nil, err
	}
	q, err := scopedQuery(dbc, scope)
	if err != nil {
		return nil, err
	}
	var bookings []models.Booking
	if err := q.
		Where(&models.Booking{Status: expected}).
		Order("start_time asc").
		Preload("RequestedBy").
		Preload("Facility").
		Find(&bookings).
		Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func PendingCancellations(dbc *gorm.DB, scope *Scope) ([]models.Booking, error) {
	expected, _, err := cancellationStep(scope.Role, true)
	if err != nil {
		return nil, err
	}
	q, err := scopedQuery(dbc, scope)
	if err != nil {
		return nil, err
	}
	var bookings []models.Booking
	if err := q.
		Where(&models.Booking{CancellationStatus: expected}).
		Order("start_time asc").
		Preload("RequestedBy").
		Preload("Facility").
		Find(&bookings).
		Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func OwnBookings(dbc *gorm.DB, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := dbc.
		Model(&models.Booking{}).
		Where(&models.Booking{RequestedByID: userID}).
		Order("start_time desc").
		Preload("Facility").
		Find(&bookings).
		Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
