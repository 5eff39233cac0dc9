package handler

import (
	"errors"
	"net/http"
	"time"

	"shopapi/internal/domain/model"
	"shopapi/internal/middleware"
	auth "shopapi/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// 認証まわり（登録・ログイン・ロール確認）のHTTP
type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase
	loginUC    *auth.LoginUsecase
}

// DI
func NewAuthHandler(registerUC *auth.RegisterUserUsecase, loginUC *auth.LoginUsecase) *AuthHandler {
	return &AuthHandler{registerUC: registerUC, loginUC: loginUC}
}

type RegisterRequest struct {
	Name            string `json:"name"`
	LastNameFather  string `json:"lstF"`
	LastNameMother  string `json:"lstM"`
	Address         string `json:"address"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Phone           string `json:"phone"`
	Payment         string `json:"payment"`
	Role            int    `json:"role"`
}

type RegisterResponse struct {
	Message string     `json:"message"`
	User    model.User `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type RoleResponse struct {
	Message string `json:"message"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	user, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Name:            req.Name,
		LastNameFather:  req.LastNameFather,
		LastNameMother:  req.LastNameMother,
		Address:         req.Address,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Phone:           req.Phone,
		Payment:         req.Payment,
		Role:            req.Role,
	})
	if err != nil {
		var ve *auth.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, ValidationErrorResponse{
				Error:  ve.Fields[0].Message,
				Fields: ve.Fields,
			})
		}
		if errors.Is(err, auth.ErrEmailAlreadyExists) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User already registered"})
		}
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, RegisterResponse{
		Message: "User registered successfully",
		User:    user,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrMissingCredentials) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email and password are required"})
		}
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
		}
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		AccessToken: out.AccessToken,
		ExpiresIn:   int64(time.Until(out.ExpiresAt).Seconds()),
	})
}

// ログイン済みユーザのロールに応じた挨拶を返す。
func (h *AuthHandler) Role(c echo.Context) error {
	role, ok := c.Get(middleware.CtxUserRoleKey).(int)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	switch role {
	case model.RoleAdmin:
		return c.JSON(http.StatusOK, RoleResponse{Message: "Welcome, administrator!"})
	case model.RoleUser:
		return c.JSON(http.StatusOK, RoleResponse{Message: "Welcome, user!"})
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown role"})
	}
}
