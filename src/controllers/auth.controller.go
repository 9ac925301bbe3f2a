package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"fbs/src/config"
	"fbs/src/db"
	"fbs/src/lib"
	"fbs/src/models"
	"fbs/src/types"
	"fbs/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AuthLogin(ctx *gin.Context) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dbc := db.GetDb()
	var user models.User
	if err := dbc.Where(&models.User{EmployeeID: body.EmployeeID}).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User does not exist."})
			return
		}
		utils.HTTPError(ctx, err)
		return
	}
	ok, err := utils.VerifyPassword(user.Password, body.Password)
	if err != nil {
		log.Printf("Error verifying password for user [%d]: %s\n", user.ID, err.Error())
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials."})
		return
	}
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials."})
		return
	}
	sid, err := lib.GetSessionStore().Create(ctx, user.EmployeeID)
	if err != nil {
		log.Printf("Error creating session for user [%d]: %s\n", user.ID, err.Error())
		utils.HTTPError(ctx, err)
		return
	}
	ctx.SetCookie(config.SESSION_COOKIE, sid, int(config.SESSION_TTL.Seconds()), "/", "", false, true)
	ctx.JSON(http.StatusOK, gin.H{
		"name":        user.Name,
		"employee_id": user.EmployeeID,
		"image":       user.Image,
		"role":        user.Role,
	})
}

func AuthLogout(ctx *gin.Context) {
	sid, err := ctx.Cookie(config.SESSION_COOKIE)
	if err == nil && sid != "" {
		if err := lib.GetSessionStore().Destroy(ctx, sid); err != nil {
			log.Printf("Error destroying session: %s\n", err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
			return
		}
	}
	ctx.SetCookie(config.SESSION_COOKIE, "", -1, "/", "", false, true)
	ctx.JSON(http.StatusOK, gin.H{"message": "Log out successful."})
}

func AuthRegister(ctx *gin.Context) {
	var body types.RegisterUserRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dbc := db.GetDb()
	var existing models.User
	err := dbc.Where(&models.User{EmployeeID: body.EmployeeID}).First(&existing).Error
	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "User already exists.", "field": "employee_id"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.HTTPError(ctx, err)
		return
	}
	hashed, err := utils.HashPassword(body.Password)
	if err != nil {
		utils.HTTPError(ctx, err)
		return
	}
	role := body.Role
	if role == "" {
		role = types.ROLE_EMPLOYEE
	}
	user := models.User{
		Name:       body.Name,
		EmployeeID: body.EmployeeID,
		Password:   hashed,
		Image:      body.Image,
		Role:       role,
		GroupID:    body.GroupID,
	}
	if err := dbc.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "User already exists.", "field": "employee_id"})
			return
		}
		utils.HTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, &user)
}

func ChangePassword(ctx *gin.Context) {
	var body types.ChangePasswordRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	employeeID := ctx.GetUint("employee_id")
	dbc := db.GetDb()
	var user models.User
	if err := dbc.Where(&models.User{EmployeeID: employeeID}).First(&user).Error; err != nil {
		utils.HTTPError(ctx, fmt.Errorf("%w: user [%d]", types.ErrNotFound, employeeID))
		return
	}
	ok, err := utils.VerifyPassword(user.Password, body.OldPassword)
	if err != nil || !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid old password."})
		return
	}
	hashed, err := utils.HashPassword(body.NewPassword)
	if err != nil {
		utils.HTTPError(ctx, err)
		return
	}
	if err := dbc.
		Model(&models.User{}).
		Where(&models.User{ID: user.ID}).
		Update("password", hashed).
		Error; err != nil {
		utils.HTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Password updated."})
}

func ListUsers(ctx *gin.Context) {
	dbc := db.GetDb()
	var users []models.User
	if err := dbc.Model(&models.User{}).Preload("Group").Find(&users).Error; err != nil {
		utils.HTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": users, "count": len(users)})
}

func CreateGroup(ctx *gin.Context) {
	var body types.CreateGroupRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dbc := db.GetDb()
	group := models.Group{Name: body.Name}
	if err := dbc.Create(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "Group already exists.", "field": "name"})
			return
		}
		utils.HTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, &group)
}

// AddGroupDirector assigns a user as the single approving director of a
// group. The user's role is promoted in the same transaction so the next
// session resolution already sees the scope.
func AddGroupDirector(ctx *gin.Context) {
	var body types.AddGroupDirectorRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dbc := db.GetDb()
	var director models.GroupDirector
	err := dbc.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where(&models.User{ID: body.GroupDirectorID}).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user [%d]", types.ErrNotFound, body.GroupDirectorID)
			}
			return err
		}
		var group models.Group
		if err := tx.Where(&models.Group{ID: body.GroupID}).First(&group).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: group [%d]", types.ErrNotFound, body.GroupID)
			}
			return err
		}
		director = models.GroupDirector{UserID: user.ID, GroupID: group.ID}
		if err := tx.Create(&director).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: group already has a director", types.ErrConflict)
			}
			return err
		}
		if err := tx.
			Model(&models.User{}).
			Where(&models.User{ID: user.ID}).
			Update("role", types.ROLE_GROUP_DIRECTOR).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		utils.HTTPError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, &director)
}
