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

// approvalHandlers registers the queue and action routes for one approver
// role. The same handlers serve both suffixes; which approval step applies
// is decided by the resolved scope, the suffix only scopes the route guard.
func approvalHandlers(g *gin.RouterGroup, suffix string) *gin.RouterGroup {
	g.
		GET("/employee/approvals/"+suffix, func(ctx *gin.Context) {
			scope := middlewares.GetScope(ctx)
			bookings, err := common.PendingApprovals(db.GetDb(), scope)
			if err != nil {
				utils.HTTPError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		PUT("/employee/approvals/"+suffix+"/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.ApprovalActionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			scope := middlewares.GetScope(ctx)
			if err := common.TransitionApproval(db.GetDb(), scope, params.ID, body.Action == "approve"); err != nil {
				utils.HTTPError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		GET("/employee/cancellations/"+suffix, func(ctx *gin.Context) {
			scope := middlewares.GetScope(ctx)
			bookings, err := common.PendingCancellations(db.GetDb(), scope)
			if err != nil {
				utils.HTTPError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		PUT("/employee/cancellations/"+suffix+"/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.ApprovalActionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			scope := middlewares.GetScope(ctx)
			if err := common.TransitionCancellation(db.GetDb(), scope, params.ID, body.Action == "approve", body.Remark); err != nil {
				utils.HTTPError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		GET("/bookings/"+suffix, func(ctx *gin.Context) {
			scope := middlewares.GetScope(ctx)
			bookings, err := common.ScopedBookings(db.GetDb(), scope)
			if err != nil {
				utils.HTTPError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		})
	return g
}
