package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tealeg/xlsx"
)

// 商品一覧をxlsxでダウンロードさせる（管理者のみ）。
func (h *ProductHandler) Export(c echo.Context) error {
	products, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return writeError(c, err)
	}

	header := sheet.AddRow()
	for _, title := range []string{"ID", "Name", "Price", "Stock", "Category", "Brand", "Created At"} {
		header.AddCell().Value = title
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().Value = strconv.FormatInt(p.ID, 10)
		row.AddCell().Value = p.Name
		row.AddCell().Value = strconv.FormatFloat(p.Price, 'f', 2, 64)
		row.AddCell().Value = strconv.FormatInt(p.Stock, 10)
		row.AddCell().Value = p.CategoryName
		row.AddCell().Value = p.BrandUsername
		row.AddCell().Value = p.CreatedAt.Format(time.RFC3339)
	}

	filename := fmt.Sprintf("products_%s.xlsx", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Response().WriteHeader(http.StatusOK)
	return file.Write(c.Response())
}
