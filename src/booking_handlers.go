package main

import (
	"net/http"

	"fbs/src/common"
	"fbs/src/db"
	"fbs/src/middlewares"
	"fbs/src/types"
	"fbs/src/utils"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/employee/mybookings", func(ctx *gin.Context) {
			scope := middlewares.GetScope(ctx)
			bookings, err := common.OwnBookings(db.GetDb(), scope.UserID)
			if err != nil {
				utils.HTTPError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		PUT("/employee/mybookings/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			scope := middlewares.GetScope(ctx)
			if err := common.RequestCancellation(db.GetDb(), scope, params.ID); err != nil {
				utils.HTTPError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
