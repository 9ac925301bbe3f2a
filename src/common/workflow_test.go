package common

import (
	"testing"
	"time"

	"fbs/src/types"

	"github.com/stretchr/testify/assert"
)

func TestApprovalChain(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, types.BOOKING_PENDING, 0)

	err := TransitionApproval(f.db, f.directorScope, booking.ID, true)
	assert.NoError(t, err)
	assert.Equal(t, types.BOOKING_APPROVED_BY_GD, f.reload(t, booking.ID).Status)

	err = TransitionApproval(f.db, f.managerScope, booking.ID, true)
	assert.NoError(t, err)
	assert.Equal(t, types.BOOKING_APPROVED_BY_FM, f.reload(t, booking.ID).Status)
}

func TestApprovalCannotSkipDirector(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, types.BOOKING_PENDING, 0)

	err := TransitionApproval(f.db, f.managerScope, booking.ID, true)
	assert.ErrorIs(t, err, types.ErrConflict)
	assert.Equal(t, types.BOOKING_PENDING, f.reload(t, booking.ID).Status)
}

func TestApprovalRoleGuard(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, types.BOOKING_PENDING, 0)

	err := TransitionApproval(f.db, f.employeeScope, booking.ID, true)
	assert.ErrorIs(t, err, types.ErrForbidden)

	err = TransitionApproval(f.db, f.adminScope, booking.ID, true)
	assert.ErrorIs(t, err, types.ErrForbidden)
}

func TestApprovalScopeGuard(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, types.BOOKING_PENDING, 0)

	err := TransitionApproval(f.db, f.otherDirectorScope, booking.ID, true)
	assert.ErrorIs(t, err, types.ErrForbidden)
	assert.Equal(t, types.BOOKING_PENDING, f.reload(t, booking.ID).Status)

	gdApproved := f.createBooking(t, types.BOOKING_APPROVED_BY_GD, time.Hour)
	err = TransitionApproval(f.db, f.otherManagerScope, gdApproved.ID, true)
	assert.ErrorIs(t, err, types.ErrForbidden)
	assert.Equal(t, types.BOOKING_APPROVED_BY_GD, f.reload(t, gdApproved.ID).Status)
}

func TestApprovalStalePrecondition(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, types.BOOKING_PENDING, 0)

	err := TransitionApproval(f.db, f.directorScope, booking.ID, true)
	assert.NoError(t, err)

	// A duplicate click or a racing approver finds the state already moved.
	err = TransitionApproval(f.db, f.directorScope, booking.ID, true)
	assert.ErrorIs(t, err, types.ErrConflict)
	assert.Equal(t, types.BOOKING_APPROVED_BY_GD, f.reload(t, booking.ID).Status)
}

func TestRejection(t *testing.T) {
	f := newFixture(t)

	booking := f.createBooking(t, types.BOOKING_PENDING, 0)
	err := TransitionApproval(f.db, f.directorScope, booking.ID, false)
	assert.NoError(t, err)
	assert.Equal(t, types.BOOKING_REJECTED, f.reload(t, booking.ID).Status)

	gdApproved := f.createBooking(t, types.BOOKING_APPROVED_BY_GD, time.Hour)
	err = TransitionApproval(f.db, f.managerScope, gdApproved.ID, false)
	assert.NoError(t, err)
	assert.Equal(t, types.BOOKING_REJECTED, f.reload(t, gdApproved.ID).Status)
}

func TestRejectedBookingIsTerminal(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, types.BOOKING_REJECTED, 0)

	err := TransitionApproval(f.db, f.directorScope, booking.ID, true)
	assert.ErrorIs(t, err, types.ErrConflict)

	err = OverrideBooking(f.db, f.adminScope, booking.ID)
	assert.ErrorIs(t, err, types.ErrConflict)
}

func TestAdminOverride(t *testing.T) {
	f := newFixture(t)

	pending := f.createBooking(t, types.BOOKING_PENDING, 0)
	err := OverrideBooking(f.db, f.adminScope, pending.ID)
	assert.NoError(t, err)
	assert.Equal(t, types.BOOKING_APPROVED_BY_ADMIN, f.reload(t, pending.ID).Status)

	gdApproved := f.createBooking(t, types.BOOKING_APPROVED_BY_GD, time.Hour)
	err = OverrideBooking(f.db, f.adminScope, gdApproved.ID)
	assert.NoError(t, err)
	assert.Equal(t, types.BOOKING_APPROVED_BY_ADMIN, f.reload(t, gdApproved.ID).Status)

	err = OverrideBooking(f.db, f.directorScope, f.createBooking(t, types.BOOKING_PENDING, 2*time.Hour).ID)
	assert.ErrorIs(t, err, types.ErrForbidden)
}

func TestOverrideNotFound(t *testing.T) {
	f := newFixture(t)
	err := OverrideBooking(f.db, f.adminScope, 9999)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestCancellationChain(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, types.BOOKING_APPROVED_BY_FM, 0)

	err := RequestCancellation(f.db, f.employeeScope, booking.ID)
	assert.NoError(t, err)
	reloaded := f.reload(t, booking.ID)
	assert.Equal(t, types.CANCELLATION_PENDING, reloaded.CancellationStatus)
	// Opening the cancellation chain never touches the approval status.
	assert.Equal(t, types.BOOKING_APPROVED_BY_FM, reloaded.Status)

	err = TransitionCancellation(f.db, f.directorScope, booking.ID, true, "")
	assert.NoError(t, err)
	assert.Equal(t, types.CANCELLATION_APPROVED_BY_GD, f.reload(t, booking.ID).CancellationStatus)

	err = TransitionCancellation(f.db, f.managerScope, booking.ID, true, "room freed")
	assert.NoError(t, err)
	reloaded = f.reload(t, booking.ID)
	assert.Equal(t, types.CANCELLATION_APPROVED_BY_FM, reloaded.CancellationStatus)
	assert.Equal(t, "room freed", reloaded.CancellationRemark)
	assert.Equal(t, types.BOOKING_APPROVED_BY_FM, reloaded.Status)
}

func TestCancellationGuards(t *testing.T) {
	f := newFixture(t)

	pending := f.createBooking(t, types.BOOKING_PENDING, 0)
	err := RequestCancellation(f.db, f.employeeScope, pending.ID)
	assert.ErrorIs(t, err, types.ErrConflict)

	approved := f.createBooking(t, types.BOOKING_APPROVED_BY_FM, time.Hour)
	err = RequestCancellation(f.db, f.directorScope, approved.ID)
	assert.ErrorIs(t, err, types.ErrForbidden)

	err = TransitionCancellation(f.db, f.managerScope, approved.ID, true, "")
	assert.ErrorIs(t, err, types.ErrConflict)
}

func TestCancellationSkipsDirectorForbidden(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, types.BOOKING_APPROVED_BY_FM, 0)
	assert.NoError(t, RequestCancellation(f.db, f.employeeScope, booking.ID))

	// FM acts only after the GD gate, same order as the approval chain.
	err := TransitionCancellation(f.db, f.managerScope, booking.ID, true, "")
	assert.ErrorIs(t, err, types.ErrConflict)
	assert.Equal(t, types.CANCELLATION_PENDING, f.reload(t, booking.ID).CancellationStatus)
}

func TestCancellationRejectAllowsNewRequest(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, types.BOOKING_APPROVED_BY_FM, 0)
	assert.NoError(t, RequestCancellation(f.db, f.employeeScope, booking.ID))

	err := TransitionCancellation(f.db, f.directorScope, booking.ID, false, "needed after all")
	assert.NoError(t, err)
	assert.Equal(t, types.CANCELLATION_REJECTED, f.reload(t, booking.ID).CancellationStatus)

	assert.NoError(t, RequestCancellation(f.db, f.employeeScope, booking.ID))
	assert.Equal(t, types.CANCELLATION_PENDING, f.reload(t, booking.ID).CancellationStatus)
}

func TestCancellationStalePrecondition(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t, types.BOOKING_APPROVED_BY_FM, 0)
	assert.NoError(t, RequestCancellation(f.db, f.employeeScope, booking.ID))
	assert.NoError(t, TransitionCancellation(f.db, f.directorScope, booking.ID, true, ""))

	err := TransitionCancellation(f.db, f.directorScope, booking.ID, true, "")
	assert.ErrorIs(t, err, types.ErrConflict)
}
