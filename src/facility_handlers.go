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

func facilityHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/facility/:slug", func(ctx *gin.Context) {
			var params types.SlugRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			bookings, err := common.FacilityCalendar(db.GetDb(), params.Slug)
			if err != nil {
				utils.HTTPError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		POST("/facility/:slug", func(ctx *gin.Context) {
			var params types.SlugRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			scope := middlewares.GetScope(ctx)
			booking, err := common.CreateBooking(db.GetDb(), scope, params.Slug, &body)
			if err != nil {
				utils.HTTPError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, booking)
		})
	return g
}
