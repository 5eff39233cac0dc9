package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
	"shopapi/internal/validator"

	"golang.org/x/crypto/bcrypt"
)

var (
	// email が既に使用済み
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// ValidationError はフィールド単位の検証エラーを運ぶ。
type ValidationError struct {
	Fields []validator.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s)", len(e.Fields))
}

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// ハッシュと平文の照合。
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 会員登録の入力
type RegisterUserInput struct {
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

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	userRepo repo.UserRepository
	hasher   PasswordHasher
	idGen    IDGenerator
	clock    Clock
}

// DI
func NewRegisterUserUsecase(
	userRepo repo.UserRepository,
	hasher PasswordHasher,
	idGen IDGenerator,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		idGen:    idGen,
		clock:    clock,
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (model.User, error) {
	//全フィールド検証
	if errs := validator.ValidateUser(validator.UserInput{
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
	}); len(errs) > 0 {
		return model.User{}, &ValidationError{Fields: errs}
	}

	email := strings.TrimSpace(in.Email)

	//email重複チェック
	if _, err := u.userRepo.FindByEmail(ctx, email); err == nil {
		return model.User{}, ErrEmailAlreadyExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return model.User{}, err
	}

	//パスワードをハッシュ化（平文は保存しない）
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, err
	}

	now := u.clock.Now()

	user, err := u.userRepo.Create(ctx, model.User{
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
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return model.User{}, err
	}

	//返すときはハッシュを空にして漏洩防止
	user.Password = ""
	return user, nil
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
