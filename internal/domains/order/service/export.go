package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"alupro-backend/internal/domains/order/model"
	"alupro-backend/pkg/logger"
)

const exportSheet = "الطلبات"

var exportHeaders = []string{
	"رقم الطلب",
	"التاريخ",
	"العميل",
	"البريد الإلكتروني",
	"الهاتف",
	"العنوان",
	"المنتجات",
	"الإجمالي الفرعي",
	"الضريبة",
	"الشحن",
	"الخصم",
	"كود الخصم",
	"الإجمالي",
	"الحالة",
}

// ExportOrders builds an RTL workbook with every order matching filter
func (s *orderService) ExportOrders(ctx context.Context, filter model.ListFilter) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, model.ErrExportFailed.Wrap(err)
	}
	rtl := true
	if err := f.SetSheetView(exportSheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return nil, model.ErrExportFailed.Wrap(err)
	}

	// Row 1: header
	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(exportSheet, cell, header)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E5E7EB"}},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		f.SetCellStyle(exportSheet, "A1", last, headerStyle)
	}
	f.SetColWidth(exportSheet, "A", "A", 24)
	f.SetColWidth(exportSheet, "C", "G", 28)

	// Data rows from row 2
	rowNum := 1
	err = s.orderRepo.Each(ctx, filter, func(o *model.Order) error {
		rowNum++
		row := []interface{}{
			o.OrderNumber,
			o.CreatedAt.Format("2006-01-02 15:04"),
			o.CustomerName,
			o.CustomerEmail,
			o.CustomerPhone,
			o.CustomerAddress,
			describeItems(o),
			o.Subtotal.InexactFloat64(),
			o.Tax.InexactFloat64(),
			o.Shipping.InexactFloat64(),
			o.DiscountAmount.InexactFloat64(),
			derefString(o.PromoCode),
			o.Total.InexactFloat64(),
			o.Status.Label(),
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		return f.SetSheetRow(exportSheet, cell, &row)
	})
	if err != nil {
		f.Close()
		return nil, model.ErrExportFailed.Wrap(err)
	}

	logger.Info("Orders exported", map[string]interface{}{"rows": rowNum - 1})
	return f, nil
}

// describeItems renders "name × qty" lines
func describeItems(o *model.Order) string {
	parts := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		parts = append(parts, fmt.Sprintf("%s × %d", it.Name, it.Quantity))
	}
	return strings.Join(parts, "\n")
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
