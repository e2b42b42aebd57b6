package stubserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sajilokaam/client-core/internal/core/domain"
)

// AuthHandler exposes the /api/auth endpoints the client core consumes.
type AuthHandler struct {
	svc *AuthService
}

func NewAuthHandler(svc *AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=CLIENT FREELANCER"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateMeRequest struct {
	FullName string `json:"fullName"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type meResponse struct {
	ID       int64         `json:"id"`
	Email    string        `json:"email"`
	FullName string        `json:"fullName"`
	Roles    []domain.Role `json:"roles"`
}

func toMeResponse(u *User) meResponse {
	return meResponse{ID: u.ID, Email: u.Email, FullName: u.FullName, Roles: u.Roles}
}

// Register creates an account and answers with a bearer token, the shape the
// web client's signup form expects.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.svc.Register(c.Request().Context(), req.Email, req.Password, req.FullName, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tokenResponse{Token: token})
}

// Login authenticates and answers with a bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Me resolves the bearer token into the minimal identity shape.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _ := c.Get("user_id").(int64)
	user, err := h.svc.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMeResponse(user))
}

// UpdateMe applies account-settings changes and returns the fresh identity.
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	var req updateMeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID, _ := c.Get("user_id").(int64)
	user, err := h.svc.UpdateProfile(c.Request().Context(), userID, req.FullName, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMeResponse(user))
}
