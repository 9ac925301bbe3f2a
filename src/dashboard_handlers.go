package main

import (
	"net/http"

	"fbs/src/common"
	"fbs/src/db"
	"fbs/src/middlewares"
	"fbs/src/models"
	"fbs/src/types"
	"fbs/src/utils"

	"github.com/gin-gonic/gin"
)

func dashboardHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/dashboard", func(ctx *gin.Context) {
			employeeID := ctx.GetUint("employee_id")
			dbc := db.GetDb()
			var user models.User
			if err := dbc.
				Select("id", "name", "employee_id", "role", "image").
				Where(&models.User{EmployeeID: employeeID}).
				First(&user).
				Error; err != nil {
				utils.HTTPError(ctx, err)
				return
			}
			var facilities []models.Facility
			if err := dbc.
				Where(&models.Facility{IsActive: true}).
				Preload("Manager.User").
				Find(&facilities).
				Error; err != nil {
				utils.HTTPError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"user": user, "facilities": facilities})
		}).
		GET("/dashboard/count/:employeeId", func(ctx *gin.Context) {
			var params types.EmployeeRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			scope := middlewares.GetScope(ctx)
			// The badge is private to the approver; the path param exists
			// for the client's routing but may not name someone else.
			if params.EmployeeID != scope.EmployeeID {
				ctx.JSON(http.StatusForbidden, gin.H{"error": types.ErrForbidden.Error()})
				return
			}
			counts, err := common.CountPending(db.GetDb(), scope)
			if err != nil {
				utils.HTTPError(ctx, err)
				return
			}
			if counts == nil {
				ctx.JSON(http.StatusOK, gin.H{})
				return
			}
			ctx.JSON(http.StatusOK, counts)
		})
	return g
}
