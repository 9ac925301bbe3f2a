package boot

import (
	"errors"
	"log"
	"os"
	"strconv"

	"fbs/src/db"
	"fbs/src/models"
	"fbs/src/types"
	"fbs/src/utils"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.GroupDirector{},
		&models.Facility{},
		&models.FacilityManager{},
		&models.Booking{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	SeedAdmin(db)

	return db
}

// SeedAdmin bootstraps the first admin account from the environment when the
// users table has none. Without it there is no one to create facilities or
// groups through the admin surface.
func SeedAdmin(dbc *gorm.DB) {
	adminID := os.Getenv("ADMIN_EMPLOYEE_ID")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminID == "" || adminPassword == "" {
		return
	}
	employeeID, err := strconv.ParseUint(adminID, 10, 64)
	if err != nil {
		log.Printf("Invalid ADMIN_EMPLOYEE_ID: %s\n", err.Error())
		return
	}
	var existing models.User
	err = dbc.Where(&models.User{Role: types.ROLE_ADMIN}).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking for admin account: %s\n", err.Error())
		return
	}
	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Printf("Error hashing admin password: %s\n", err.Error())
		return
	}
	admin := models.User{
		Name:       "Administrator",
		EmployeeID: uint(employeeID),
		Password:   hashed,
		Role:       types.ROLE_ADMIN,
	}
	if err := dbc.Create(&admin).Error; err != nil {
		log.Printf("Error creating admin account: %s\n", err.Error())
		return
	}
	log.Printf("Created admin account with employee id %d\n", admin.EmployeeID)
}
