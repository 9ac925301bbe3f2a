package common

import (
	"errors"
	"fmt"

	"fbs/src/models"
	"fbs/src/types"

	"gorm.io/gorm"
)

// Scope is the resolved identity a request acts under. GroupID is set only
// for a Group Director (the group they approve for), FacilityID only for a
// Facility Manager (the facility they own).
type Scope struct {
	UserID     uint
	EmployeeID uint
	Role       types.Role
	GroupID    *uint
	FacilityID *uint
}

// Capabilities is the per-route access requirement evaluated against a Scope.
type Capabilities struct {
	RequiresGD    bool
	RequiresFM    bool
	RequiresAdmin bool
	ExcludesAdmin bool
}

func ResolveScope(dbc *gorm.DB, user *models.User) (*Scope, error) {
	scope := &Scope{
		UserID:     user.ID,
		EmployeeID: user.EmployeeID,
		Role:       user.Role,
	}
	switch user.Role {
	case types.ROLE_GROUP_DIRECTOR:
		var gd models.GroupDirector
		if err := dbc.Where(&models.GroupDirector{UserID: user.ID}).First(&gd).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: no group assigned to director", types.ErrForbidden)
			}
			return nil, err
		}
		scope.GroupID = &gd.GroupID
	case types.ROLE_FACILITY_MANAGER:
		var fm models.FacilityManager
		if err := dbc.Where(&models.FacilityManager{UserID: user.ID}).First(&fm).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: no facility assigned to manager", types.ErrForbidden)
			}
			return nil, err
		}
		scope.FacilityID = &fm.FacilityID
	}
	return scope, nil
}

// Satisfies reports whether the scope matches every required flag and fails
// every excluding flag of c.
func (s *Scope) Satisfies(c Capabilities) bool {
	if c.RequiresAdmin && s.Role != types.ROLE_ADMIN {
		return false
	}
	if c.ExcludesAdmin && s.Role == types.ROLE_ADMIN {
		return false
	}
	if c.RequiresGD && s.Role != types.ROLE_GROUP_DIRECTOR {
		return false
	}
	if c.RequiresFM && s.Role != types.ROLE_FACILITY_MANAGER {
		return false
	}
	return true
}
