package middlewares

import (
	"errors"
	"log"
	"net/http"

	"fbs/src/common"
	"fbs/src/config"
	"fbs/src/db"
	"fbs/src/lib"
	"fbs/src/models"
	"fbs/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const ScopeKey = "scope"

// SessionMiddleware resolves the request identity from the sid cookie. The
// session payload holds only the employee id; role and scope are re-resolved
// from the current user record on every request so a revoked role never
// survives in a stale session.
func SessionMiddleware(ctx *gin.Context) {
	sid, err := ctx.Cookie(config.SESSION_COOKIE)
	if err != nil || sid == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": types.ErrUnauthenticated.Error()})
		return
	}
	employeeID, err := lib.GetSessionStore().Get(ctx, sid)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": types.ErrUnauthenticated.Error()})
		return
	}
	dbc := db.GetDb()
	var user models.User
	if err := dbc.Where(&models.User{EmployeeID: employeeID}).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User does not exist."})
			return
		}
		log.Printf("Error loading session user [%d]: %s\n", employeeID, err.Error())
		ctx.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	scope, err := common.ResolveScope(dbc, &user)
	if err != nil {
		if errors.Is(err, types.ErrForbidden) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error resolving scope for user [%d]: %s\n", user.ID, err.Error())
		ctx.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	ctx.Set("id", user.ID)
	ctx.Set("employee_id", user.EmployeeID)
	ctx.Set("role", string(user.Role))
	ctx.Set(ScopeKey, scope)
}

// RequireCaps guards a route group with a capability set. SessionMiddleware
// must run first.
func RequireCaps(caps common.Capabilities) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		scope := GetScope(ctx)
		if scope == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": types.ErrUnauthenticated.Error()})
			return
		}
		if !scope.Satisfies(caps) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": types.ErrForbidden.Error()})
			return
		}
	}
}

func GetScope(ctx *gin.Context) *common.Scope {
	v, ok := ctx.Get(ScopeKey)
	if !ok {
		return nil
	}
	scope, ok := v.(*common.Scope)
	if !ok {
		return nil
	}
	return scope
}

func SecureHeaders(ctx *gin.Context) {
	ctx.Header("X-Content-Type-Options", "nosniff")
	ctx.Header("X-Frame-Options", "DENY")
	ctx.Header("Referrer-Policy", "same-origin")
	ctx.Next()
}
