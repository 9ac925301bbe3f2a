package common

import (
	"fmt"
	"log"
	"testing"
	"time"

	"fbs/src/models"
	"fbs/src/types"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixture struct {
	db *gorm.DB

	group      models.Group
	otherGroup models.Group
	facility   models.Facility
	otherFac   models.Facility

	employee models.User
	director models.User
	manager  models.User
	admin    models.User

	employeeScope *Scope
	directorScope *Scope
	managerScope  *Scope
	adminScope    *Scope

	otherDirectorScope *Scope
	otherManagerScope  *Scope
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbc, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("error opening test database: %s", err.Error())
	}
	err = dbc.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.GroupDirector{},
		&models.Facility{},
		&models.FacilityManager{},
		&models.Booking{},
	)
	if err != nil {
		t.Fatalf("error migration: %s", err.Error())
	}
	return dbc
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{db: newTestDB(t)}

	f.group = models.Group{Name: "engineering"}
	f.otherGroup = models.Group{Name: "finance"}
	if err := f.db.Create(&f.group).Error; err != nil {
		t.Fatal(err)
	}
	if err := f.db.Create(&f.otherGroup).Error; err != nil {
		t.Fatal(err)
	}

	f.facility = models.Facility{Name: "Conference Hall", Slug: "conference-hall", IsActive: true}
	f.otherFac = models.Facility{Name: "Auditorium", Slug: "auditorium", IsActive: true}
	if err := f.db.Create(&f.facility).Error; err != nil {
		t.Fatal(err)
	}
	if err := f.db.Create(&f.otherFac).Error; err != nil {
		t.Fatal(err)
	}

	f.employee = f.createUser(t, 1001, types.ROLE_EMPLOYEE, &f.group.ID)
	f.director = f.createUser(t, 1002, types.ROLE_GROUP_DIRECTOR, &f.group.ID)
	f.manager = f.createUser(t, 1003, types.ROLE_FACILITY_MANAGER, nil)
	f.admin = f.createUser(t, 1004, types.ROLE_ADMIN, nil)
	otherDirector := f.createUser(t, 1005, types.ROLE_GROUP_DIRECTOR, &f.otherGroup.ID)
	otherManager := f.createUser(t, 1006, types.ROLE_FACILITY_MANAGER, nil)

	for _, gd := range []models.GroupDirector{
		{UserID: f.director.ID, GroupID: f.group.ID},
		{UserID: otherDirector.ID, GroupID: f.otherGroup.ID},
	} {
		if err := f.db.Create(&gd).Error; err != nil {
			t.Fatal(err)
		}
	}
	for _, fm := range []models.FacilityManager{
		{UserID: f.manager.ID, FacilityID: f.facility.ID},
		{UserID: otherManager.ID, FacilityID: f.otherFac.ID},
	} {
		if err := f.db.Create(&fm).Error; err != nil {
			t.Fatal(err)
		}
	}

	f.employeeScope = f.resolve(t, &f.employee)
	f.directorScope = f.resolve(t, &f.director)
	f.managerScope = f.resolve(t, &f.manager)
	f.adminScope = f.resolve(t, &f.admin)
	f.otherDirectorScope = f.resolve(t, &otherDirector)
	f.otherManagerScope = f.resolve(t, &otherManager)
	return f
}

func (f *fixture) createUser(t *testing.T, employeeID uint, role types.Role, groupID *uint) models.User {
	t.Helper()
	user := models.User{
		Name:       fmt.Sprintf("user-%d", employeeID),
		EmployeeID: employeeID,
		Password:   "not-a-real-hash",
		Role:       role,
		GroupID:    groupID,
	}
	if err := f.db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	return user
}

func (f *fixture) resolve(t *testing.T, user *models.User) *Scope {
	t.Helper()
	scope, err := ResolveScope(f.db, user)
	if err != nil {
		t.Fatalf("error resolving scope for %s: %s", user.Name, err.Error())
	}
	return scope
}

// createBooking seeds a booking directly, bypassing the creation guards.
func (f *fixture) createBooking(t *testing.T, status types.BookingStatus, offset time.Duration) *models.Booking {
	t.Helper()
	start := time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC).Add(offset)
	booking := models.Booking{
		Title:              "standup",
		StartTime:          start,
		EndTime:            start.Add(time.Hour),
		Status:             status,
		CancellationStatus: types.CANCELLATION_NOT_REQUESTED,
		RequestedByID:      f.employee.ID,
		GroupID:            &f.group.ID,
		FacilityID:         f.facility.ID,
	}
	if err := f.db.Create(&booking).Error; err != nil {
		t.Fatal(err)
	}
	return &booking
}

func (f *fixture) reload(t *testing.T, id uint) *models.Booking {
	t.Helper()
	var booking models.Booking
	if err := f.db.Where(&models.Booking{ID: id}).First(&booking).Error; err != nil {
		log.Printf("error reloading booking [%d]: %s\n", id, err.Error())
		t.Fatal(err)
	}
	return &booking
}
