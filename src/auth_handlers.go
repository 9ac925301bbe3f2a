package main

import (
	"fbs/src/controllers"

	"github.com/gin-gonic/gin"
)

func guestAuthRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.
		POST("/auth/login", controllers.AuthLogin).
		POST("/auth/register", controllers.AuthRegister).
		POST("/auth/logout", controllers.AuthLogout)
	return apiv1
}

func adminAuthHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/auth/reset-password", controllers.ChangePassword).
		GET("/auth/users", controllers.ListUsers)
	return g
}
