package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
	"shopapi/internal/validator"
)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
}

// DI
func NewCategoryUsecase(categoryRepo repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categoryRepo: categoryRepo}
}

type CategoryInput struct {
	Name        string
	Description string
}

type CategoryCreatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	categories, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return categories, nil
}

func (u *CategoryUsecase) Detail(ctx context.Context, categoryID int64) (model.Category, error) {
	if categoryID <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	c, err := u.categoryRepo.FindByID(ctx, categoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "Category not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CategoryUsecase) Create(ctx context.Context, in CategoryInput) (CategoryCreatedResponse, error) {
	if validator.IsBlank(in.Name) {
		return CategoryCreatedResponse{}, NewHTTPError(http.StatusBadRequest, "Name cannot be empty")
	}
	if validator.IsBlank(in.Description) {
		return CategoryCreatedResponse{}, NewHTTPError(http.StatusBadRequest, "Description cannot be empty")
	}

	//同名カテゴリは拒否
	if _, err := u.categoryRepo.FindByName(ctx, in.Name); err == nil {
		return CategoryCreatedResponse{}, NewHTTPError(http.StatusBadRequest, "Category already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return CategoryCreatedResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.categoryRepo.Create(ctx, model.Category{
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		return CategoryCreatedResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CategoryCreatedResponse{
		Message: "Category created successfully",
		ID:      created.ID,
	}, nil
}

// Update は空でないフィールドだけ差し替える。
func (u *CategoryUsecase) Update(ctx context.Context, categoryID int64, in CategoryInput) (SuccessResponse, error) {
	if categoryID <= 0 {
		return SuccessResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	c, err := u.categoryRepo.FindByID(ctx, categoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return SuccessResponse{}, NewHTTPError(http.StatusNotFound, "Category not found")
	}
	if err != nil {
		return SuccessResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !validator.IsBlank(in.Name) {
		c.Name = in.Name
	}
	if !validator.IsBlank(in.Description) {
		c.Description = in.Description
	}

	if err := u.categoryRepo.Update(ctx, c); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return SuccessResponse{}, NewHTTPError(http.StatusNotFound, "Category not found")
		}
		return SuccessResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return SuccessResponse{Message: fmt.Sprintf("Category %d updated", categoryID)}, nil
}

func (u *CategoryUsecase) Delete(ctx context.Context, categoryID int64) (SuccessResponse, error) {
	if categoryID <= 0 {
		return SuccessResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.categoryRepo.DeleteByID(ctx, categoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return SuccessResponse{}, NewHTTPError(http.StatusNotFound, "Category not found")
		}
		return SuccessResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return SuccessResponse{Message: "Category deleted successfully"}, nil
}
