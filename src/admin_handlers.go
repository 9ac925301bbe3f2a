package main

import (
	"errors"
	"fmt"
	"net/http"

	"fbs/src/common"
	"fbs/src/controllers"
	"fbs/src/db"
	"fbs/src/middlewares"
	"fbs/src/models"
	"fbs/src/types"
	"fbs/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/admin/bookings", func(ctx *gin.Context) {
			scope := middlewares.GetScope(ctx)
			bookings, err := common.ScopedBookings(db.GetDb(), scope)
			if err != nil {
				utils.HTTPError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		PUT("/admin/bookings/:id/override", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			scope := middlewares.GetScope(ctx)
			if err := common.OverrideBooking(db.GetDb(), scope, params.ID); err != nil {
				utils.HTTPError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		GET("/admin/facilities", func(ctx *gin.Context) {
			dbc := db.GetDb()
			var facilities []models.Facility
			if err := dbc.Preload("Manager.User").Find(&facilities).Error; err != nil {
				utils.HTTPError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": facilities, "count": len(facilities)})
		}).
		POST("/admin/facilities", func(ctx *gin.Context) {
			var body types.CreateFacilityRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			dbc := db.GetDb()
			var facility models.Facility
			err := dbc.Transaction(func(tx *gorm.DB) error {
				var manager models.User
				if err := tx.Where(&models.User{ID: body.ManagerID}).First(&manager).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("%w: user [%d]", types.ErrNotFound, body.ManagerID)
					}
					return err
				}
				facility = models.Facility{
					Name:        body.Name,
					Slug:        slug.Make(body.Name),
					Description: body.Description,
					Icon:        body.Icon,
					IsActive:    true,
				}
				if err := tx.Create(&facility).Error; err != nil {
					if errors.Is(err, gorm.ErrDuplicatedKey) {
						return fmt.Errorf("%w: facility slug must be unique", types.ErrConflict)
					}
					return err
				}
				fm := models.FacilityManager{UserID: manager.ID, FacilityID: facility.ID}
				if err := tx.Create(&fm).Error; err != nil {
					if errors.Is(err, gorm.ErrDuplicatedKey) {
						return fmt.Errorf("%w: user already manages a facility", types.ErrConflict)
					}
					return err
				}
				if err := tx.
					Model(&models.User{}).
					Where(&models.User{ID: manager.ID}).
					Update("role", types.ROLE_FACILITY_MANAGER).
					Error; err != nil {
					return err
				}
				return nil
			})
			if err != nil {
				utils.HTTPError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, &facility)
		}).
		PUT("/admin/facilities/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateFacilityRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			dbc := db.GetDb()
			res := dbc.
				Model(&models.Facility{}).
				Where(&models.Facility{ID: params.ID}).
				Update("is_active", *body.IsActive)
			if res.Error != nil {
				utils.HTTPError(ctx, res.Error)
				return
			}
			if res.RowsAffected == 0 {
				utils.HTTPError(ctx, fmt.Errorf("%w: facility [%d]", types.ErrNotFound, params.ID))
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		POST("/admin/groups", controllers.CreateGroup).
		POST("/admin/groups/director", controllers.AddGroupDirector)
	return g
}
