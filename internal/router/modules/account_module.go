package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-registration/internal/interface/http"
)

// AccountModule wires account registration under the given RouterGroup (usually /api).
// Public: POST /api/users
type AccountModule struct {
	Handler *handlers.AccountHandler
	Limiter gin.HandlerFunc
}

func NewAccountModule(h *handlers.AccountHandler, limiter gin.HandlerFunc) *AccountModule {
	return &AccountModule{Handler: h, Limiter: limiter}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	chain := []gin.HandlerFunc{}
	if m.Limiter != nil {
		chain = append(chain, m.Limiter)
	}
	chain = append(chain, m.Handler.Register)
	rg.POST("/users", chain...)
}
