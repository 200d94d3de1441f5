package router

import "github.com/gin-gonic/gin"

// Module registers a feature's routes on the /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// ModuleFunc adapts a plain function to Module, for single-route modules
// that need no handler struct.
type ModuleFunc func(rg *gin.RouterGroup)

func (f ModuleFunc) Register(rg *gin.RouterGroup) { f(rg) }
