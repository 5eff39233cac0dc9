package usecase

import (
	"context"
	"errors"
	"net/http"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
	"shopapi/internal/validator"
)

type BrandUsecase struct {
	brandRepo repo.BrandRepository
}

// DI
func NewBrandUsecase(brandRepo repo.BrandRepository) *BrandUsecase {
	return &BrandUsecase{brandRepo: brandRepo}
}

type BrandInput struct {
	Username string
	Address  string
	Phone    string
}

func (u *BrandUsecase) List(ctx context.Context) ([]model.Brand, error) {
	brands, err := u.brandRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return brands, nil
}

func (u *BrandUsecase) Detail(ctx context.Context, brandID int64) (model.Brand, error) {
	if brandID <= 0 {
		return model.Brand{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	b, err := u.brandRepo.FindByID(ctx, brandID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Brand{}, NewHTTPError(http.StatusNotFound, "Brand not found")
	}
	if err != nil {
		return model.Brand{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return b, nil
}

func (u *BrandUsecase) Create(ctx context.Context, in BrandInput) (model.Brand, error) {
	if validator.IsBlank(in.Username) {
		return model.Brand{}, NewHTTPError(http.StatusBadRequest, "Username cannot be empty")
	}
	if validator.IsBlank(in.Address) {
		return model.Brand{}, NewHTTPError(http.StatusBadRequest, "Address cannot be empty")
	}
	if validator.IsBlank(in.Phone) {
		return model.Brand{}, NewHTTPError(http.StatusBadRequest, "Phone cannot be empty")
	}

	created, err := u.brandRepo.Create(ctx, model.Brand{
		Username: in.Username,
		Address:  in.Address,
		Phone:    in.Phone,
	})
	if err != nil {
		return model.Brand{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *BrandUsecase) Update(ctx context.Context, brandID int64, in BrandInput) (model.Brand, error) {
	if brandID <= 0 {
		return model.Brand{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	b, err := u.brandRepo.FindByID(ctx, brandID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Brand{}, NewHTTPError(http.StatusNotFound, "Brand not found")
	}
	if err != nil {
		return model.Brand{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	b.Username = in.Username
	b.Address = in.Address
	b.Phone = in.Phone

	if err := u.brandRepo.Update(ctx, b); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Brand{}, NewHTTPError(http.StatusNotFound, "Brand not found")
		}
		return model.Brand{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return b, nil
}

func (u *BrandUsecase) Delete(ctx context.Context, brandID int64) (SuccessResponse, error) {
	if brandID <= 0 {
		return SuccessResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.brandRepo.DeleteByID(ctx, brandID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return SuccessResponse{}, NewHTTPError(http.StatusNotFound, "Brand not found")
		}
		return SuccessResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return SuccessResponse{Message: "Brand deleted successfully"}, nil
}
