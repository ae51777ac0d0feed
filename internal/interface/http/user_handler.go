package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	userapp "github.com/igorsily/users-api/internal/application"
	"github.com/igorsily/users-api/internal/domain/entity"
	"github.com/igorsily/users-api/pkg/apperrors"
	"github.com/igorsily/users-api/pkg/validation"
)

// UserHandler translates HTTP shapes to service calls. It holds no business
// logic: its contract is shape translation and secret redaction. Errors are
// attached to the context and rendered by the boundary middleware.
type UserHandler struct {
	Svc *userapp.Service
}

func NewUserHandler(svc *userapp.Service) *UserHandler {
	return &UserHandler{Svc: svc}
}

type createUserRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Username  string  `json:"username" binding:"required,min=3,max=50"`
	Password  string  `json:"password" binding:"required,pwd"`
	FirstName *string `json:"firstName" binding:"omitempty,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,max=100"`
}

type updateUserRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,max=100"`
}

type userParams struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type listUsersQuery struct {
	Page     int `form:"page,default=1" binding:"gte=1"`
	PageSize int `form:"pageSize,default=10" binding:"gte=1,lte=100"`
}

type searchUsersQuery struct {
	Q    string `form:"q" binding:"required"`
	Size int    `form:"size,default=10" binding:"gte=1,lte=50"`
}

// userResponse is the outbound representation. The password hash has no field
// here, so it cannot leave the process boundary.
type userResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	FirstName     *string   `json:"firstName"`
	LastName      *string   `json:"lastName"`
	IsActive      bool      `json:"isActive"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:            u.ID,
		Email:         u.Email,
		Username:      u.Username,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		IsActive:      u.IsActive,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewValidation("Validation failed", validation.ToIssues(err)))
		return
	}

	u, err := h.Svc.CreateUser(c.Request.Context(), userapp.CreateUserInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(u))
}

func (h *UserHandler) GetByID(c *gin.Context) {
	var params userParams
	if err := c.ShouldBindUri(&params); err != nil {
		_ = c.Error(apperrors.NewValidation("Invalid parameters", nil))
		return
	}

	u, err := h.Svc.GetUserByID(c.Request.Context(), params.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) Update(c *gin.Context) {
	var params userParams
	if err := c.ShouldBindUri(&params); err != nil {
		_ = c.Error(apperrors.NewValidation("Invalid parameters", nil))
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.NewValidation("Validation failed", validation.ToIssues(err)))
		return
	}

	u, err := h.Svc.UpdateUser(c.Request.Context(), params.ID, userapp.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) Delete(c *gin.Context) {
	var params userParams
	if err := c.ShouldBindUri(&params); err != nil {
		_ = c.Error(apperrors.NewValidation("Invalid parameters", nil))
		return
	}

	if err := h.Svc.DeleteUser(c.Request.Context(), params.ID); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) List(c *gin.Context) {
	var query listUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		_ = c.Error(apperrors.NewValidation("Invalid query parameters", nil))
		return
	}

	users, err := h.Svc.ListUsers(c.Request.Context(), query.Page, query.PageSize)
	if err != nil {
		_ = c.Error(err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Search(c *gin.Context) {
	var query searchUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		_ = c.Error(apperrors.NewValidation("Invalid query parameters", nil))
		return
	}

	hits, err := h.Svc.SearchUsers(c.Request.Context(), query.Q, query.Size)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, hits)
}
