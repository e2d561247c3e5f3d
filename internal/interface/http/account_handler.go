package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-registration/internal/application"
	"github.com/oksasatya/go-ddd-registration/pkg/response"
	"github.com/oksasatya/go-ddd-registration/pkg/validation"
)

type Registrar interface {
	Register(ctx context.Context, in application.RegisterInput) (application.RegisterResult, error)
}

type AccountHandler struct {
	Svc    Registrar
	Logger *logrus.Logger
}

func NewAccountHandler(svc Registrar, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

// Rules live in application.RegisterInput; binding only decodes.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register handles POST /api/users.
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tokenResponse{Token: res.Token}, "registered")
}

func (h *AccountHandler) writeError(c *gin.Context, err error) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, application.ErrValidationFailed.Error(), verr.Violations)
	case errors.Is(err, application.ErrDuplicateAccount):
		response.Error(c, http.StatusConflict, "User already exists", nil)
	default:
		if !application.IsServerFault(err) {
			h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("unclassified registration error")
		}
		response.Error(c, http.StatusInternalServerError, "Server error", nil)
	}
}
