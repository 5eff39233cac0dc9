package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
	"shopapi/internal/validator"
)

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	brandRepo    repo.BrandRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	brandRepo repo.BrandRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
	}
}

type ProductInput struct {
	Name        string
	Price       float64
	Description string
	Stock       int64
	CategoryID  int64
	BrandID     int64
	ImageURL    string
}

// ProductView はカテゴリ名・ブランド名で補完した返却形。
type ProductView struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Description   string    `json:"description"`
	Stock         int64     `json:"stock"`
	ImageURL      string    `json:"img"`
	CategoryName  string    `json:"category_name"`
	BrandUsername string    `json:"brand_username"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (u *ProductUsecase) List(ctx context.Context) ([]ProductView, error) {
	products, err := u.productRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, u.toView(ctx, p))
	}
	return views, nil
}

func (u *ProductUsecase) Detail(ctx context.Context, productID int64) (ProductView, error) {
	if productID <= 0 {
		return ProductView{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductView{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return ProductView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.toView(ctx, p), nil
}

func (u *ProductUsecase) Create(ctx context.Context, in ProductInput) (ProductView, error) {
	if err := u.validate(in); err != nil {
		return ProductView{}, err
	}

	//カテゴリとブランドは実在チェック
	if _, err := u.categoryRepo.FindByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ProductView{}, NewHTTPError(http.StatusNotFound, "Category not found")
		}
		return ProductView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if _, err := u.brandRepo.FindByID(ctx, in.BrandID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ProductView{}, NewHTTPError(http.StatusNotFound, "Brand not found")
		}
		return ProductView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//商品名の重複は拒否
	if _, err := u.productRepo.FindByName(ctx, in.Name); err == nil {
		return ProductView{}, NewHTTPError(http.StatusBadRequest, "Product already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return ProductView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	categoryID := in.CategoryID
	brandID := in.BrandID
	created, err := u.productRepo.Create(ctx, model.Product{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		CategoryID:  &categoryID,
		BrandID:     &brandID,
	})
	if err != nil {
		return ProductView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.toView(ctx, created), nil
}

func (u *ProductUsecase) Update(ctx context.Context, productID int64, in ProductInput) (ProductView, error) {
	if productID <= 0 {
		return ProductView{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.validate(in); err != nil {
		return ProductView{}, err
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductView{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return ProductView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	categoryID := in.CategoryID
	brandID := in.BrandID
	p.Name = in.Name
	p.Price = in.Price
	p.Description = in.Description
	p.Stock = in.Stock
	p.ImageURL = in.ImageURL
	p.CategoryID = &categoryID
	p.BrandID = &brandID

	if err := u.productRepo.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ProductView{}, NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return ProductView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.toView(ctx, p), nil
}

func (u *ProductUsecase) Delete(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.productRepo.DeleteByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ProductUsecase) validate(in ProductInput) error {
	if validator.IsBlank(in.Name) {
		return NewHTTPError(http.StatusBadRequest, "Name cannot be empty")
	}
	if in.Price <= 0 {
		return NewHTTPError(http.StatusBadRequest, "Price must be greater than 0")
	}
	if validator.IsBlank(in.Description) {
		return NewHTTPError(http.StatusBadRequest, "Description cannot be empty")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "Stock cannot be negative")
	}
	if !strings.HasPrefix(in.ImageURL, "http://") && !strings.HasPrefix(in.ImageURL, "https://") {
		return NewHTTPError(http.StatusBadRequest, "Image URL must start with 'http://' or 'https://'")
	}
	if in.CategoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "Category ID cannot be empty")
	}
	if in.BrandID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "Brand ID cannot be empty")
	}
	return nil
}

// カテゴリ名・ブランド名を引いて返却形に詰める。
// 参照先が消えていたら空文字のまま返す。
func (u *ProductUsecase) toView(ctx context.Context, p model.Product) ProductView {
	v := ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	if p.CategoryID != nil {
		if c, err := u.categoryRepo.FindByID(ctx, *p.CategoryID); err == nil {
			v.CategoryName = c.Name
		}
	}
	if p.BrandID != nil {
		if b, err := u.brandRepo.FindByID(ctx, *p.BrandID); err == nil {
			v.BrandUsername = b.Username
		}
	}

	return v
}
