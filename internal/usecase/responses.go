package usecase

// SuccessResponse はメッセージだけ返す操作の共通形。
type SuccessResponse struct {
	Message string `json:"message"`
}
