package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
	"shopapi/internal/validator"
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

type UserUsecase struct {
	userRepo repo.UserRepository
	hasher   PasswordHasher
	idGen    IDGenerator
}

// DI
func NewUserUsecase(userRepo repo.UserRepository, hasher PasswordHasher, idGen IDGenerator) *UserUsecase {
	return &UserUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		idGen:    idGen,
	}
}

type UserInput struct {
	Name            string
	LastNameFather  string
	LastNameMother  string
	Address         string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	Payment         string
	Role            int
}

// UserView はパスワード類を外した返却形。
type UserView struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	LstF    string `json:"lstF"`
	LstM    string `json:"lstM"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Payment string `json:"payment"`
	Role    int    `json:"role"`
}

func (u *UserUsecase) Create(ctx context.Context, in UserInput) (UserView, error) {
	if errs := validator.ValidateUser(toValidatorInput(in)); len(errs) > 0 {
		return UserView{}, NewValidationError(errs)
	}

	email := strings.TrimSpace(in.Email)

	//email重複チェック
	if _, err := u.userRepo.FindByEmail(ctx, email); err == nil {
		return UserView{}, NewHTTPError(http.StatusBadRequest, "User already registered")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return UserView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//平文は保存しない
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return UserView{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	created, err := u.userRepo.Create(ctx, model.User{
		Name:           in.Name,
		LastNameFather: in.LastNameFather,
		LastNameMother: in.LastNameMother,
		Address:        in.Address,
		Email:          email,
		Password:       hashed,
		Phone:          in.Phone,
		Payment:        in.Payment,
		Role:           in.Role,
		RememberToken:  u.idGen.NewID(),
	})
	if err != nil {
		return UserView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toUserView(created), nil
}

func (u *UserUsecase) Get(ctx context.Context, userID int64) (UserView, error) {
	if userID <= 0 {
		return UserView{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return UserView{}, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return UserView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toUserView(user), nil
}

func (u *UserUsecase) Update(ctx context.Context, userID int64, in UserInput) (UserView, error) {
	if userID <= 0 {
		return UserView{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if errs := validator.ValidateUser(toValidatorInput(in)); len(errs) > 0 {
		return UserView{}, NewValidationError(errs)
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return UserView{}, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return UserView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return UserView{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user.Name = in.Name
	user.LastNameFather = in.LastNameFather
	user.LastNameMother = in.LastNameMother
	user.Address = in.Address
	user.Email = strings.TrimSpace(in.Email)
	user.Password = hashed
	user.Phone = in.Phone
	user.Payment = in.Payment
	user.Role = in.Role

	if err := u.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return UserView{}, NewHTTPError(http.StatusNotFound, "User not found")
		}
		return UserView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toUserView(user), nil
}

func (u *UserUsecase) Delete(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.userRepo.DeleteByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "User not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *UserUsecase) List(ctx context.Context) ([]UserView, error) {
	users, err := u.userRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	views := make([]UserView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}
	return views, nil
}

func toValidatorInput(in UserInput) validator.UserInput {
	return validator.UserInput{
		Name:            in.Name,
		LastNameFather:  in.LastNameFather,
		LastNameMother:  in.LastNameMother,
		Address:         in.Address,
		Email:           in.Email,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
		Phone:           in.Phone,
		Payment:         in.Payment,
		Role:            in.Role,
	}
}

func toUserView(user model.User) UserView {
	return UserView{
		ID:      user.ID,
		Name:    user.Name,
		LstF:    user.LastNameFather,
		LstM:    user.LastNameMother,
		Address: user.Address,
		Email:   user.Email,
		Phone:   user.Phone,
		Payment: user.Payment,
		Role:    user.Role,
	}
}
