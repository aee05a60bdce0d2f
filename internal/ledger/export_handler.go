package ledger

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/stores/:storeId/inventory/export
// Mağazanın stok durumunu XLSX dosyası olarak indirir.
func ExportInventoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID := c.Params("storeId")

		records, err := svc.ListByStore(storeID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok kayıtları listelenemedi")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Stok"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"Ürün", "Ürün Kodu", "Stok (kg)", "Birim Maliyet", "Satış Fiyatı", "Kritik Seviye (kg)"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			if err := f.SetCellValue(sheet, cell, h); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
			}
		}

		for row, rec := range records {
			values := []any{
				rec.Fruit,
				rec.ProductID,
				rec.OnHandKg.InexactFloat64(),
				rec.UnitCost.InexactFloat64(),
				rec.UnitPrice.InexactFloat64(),
				rec.ReorderLevelKg.InexactFloat64(),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
				}
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası yazılamadı")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="stok-%s.xlsx"`, storeID))
		return c.Send(buf.Bytes())
	}
}
