package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/igorsily/users-api/internal/interface/http"
	"github.com/igorsily/users-api/internal/interface/middleware"
	"github.com/igorsily/users-api/pkg/helpers"
)

// UserModule wires the user CRUD handlers into routes under /api/users.
// Search requires a bearer token; the CRUD surface is public.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")

	users.POST("", m.Handler.Create)
	users.GET("", m.Handler.List)
	users.GET("/search", middleware.Auth(m.JWT), m.Handler.Search)
	users.GET("/:id", m.Handler.GetByID)
	users.PATCH("/:id", m.Handler.Update)
	users.DELETE("/:id", m.Handler.Delete)
}
