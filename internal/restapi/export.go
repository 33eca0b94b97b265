package restapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/restokit/restopos/internal/domain"
	"github.com/restokit/restopos/internal/ordering"
)

// orderExportRow is one flattened order line for xlsx and csv export.
type orderExportRow struct {
	OrderNumber   string  `csv:"order_number"`
	Customer      string  `csv:"customer"`
	TableNumber   string  `csv:"table_number"`
	OrderType     string  `csv:"order_type"`
	TotalAmount   float64 `csv:"total_amount"`
	PaymentStatus string  `csv:"payment_status"`
	OrderStatus   string  `csv:"order_status"`
	CreatedAt     string  `csv:"created_at"`
}

// exportOrders streams the filtered order listing as an xlsx workbook, or
// as csv when format=csv. The same filters as GET /orders apply;
// pagination is bypassed.
func exportOrders(c echo.Context) error {
	svc := ordering.NewOrderService(GetDB(c))
	filter := orderFilterFromQuery(c)
	filter.Page = 1
	filter.PerPage = 100

	var rows []orderExportRow
	for {
		orders, _, err := svc.List(c.Request().Context(), filter)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to export orders", err.Error())
		}
		for _, order := range orders {
			rows = append(rows, exportRowOf(order))
		}
		if len(orders) < filter.PerPage {
			break
		}
		filter.Page++
	}

	stamp := time.Now().Format("20060102-150405")
	if c.QueryParam("format") == "csv" {
		return writeOrdersCSV(c, rows, stamp)
	}
	return writeOrdersXLSX(c, rows, stamp)
}

func exportRowOf(order domain.Order) orderExportRow {
	row := orderExportRow{
		OrderNumber:   order.OrderNumber,
		OrderType:     order.OrderType,
		TotalAmount:   order.TotalAmount,
		PaymentStatus: order.PaymentStatus,
		OrderStatus:   order.OrderStatus,
		CreatedAt:     order.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if order.User != nil {
		row.Customer = order.User.Name
	}
	if order.Table != nil {
		row.TableNumber = order.Table.TableNumber
	}
	return row
}

func writeOrdersCSV(c echo.Context, rows []orderExportRow, stamp string) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", "orders-"+stamp+".csv"))
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().WriteHeader(http.StatusOK)
	return gocsv.Marshal(&rows, c.Response())
}

func writeOrdersXLSX(c echo.Context, rows []orderExportRow, stamp string) error {
	xlsx := excelize.NewFile()
	sheet := "Orders"
	xlsx.SetSheetName("Sheet1", sheet)

	headers := []string{"Order Number", "Customer", "Table", "Type",
		"Total Amount", "Payment Status", "Order Status", "Created At"}
	for col, h := range headers {
		xlsx.SetCellValue(sheet, fmt.Sprintf("%s1", excelize.ToAlphaString(col)), h)
	}

	for i, row := range rows {
		values := []interface{}{
			row.OrderNumber, row.Customer, row.TableNumber, row.OrderType,
			row.TotalAmount, row.PaymentStatus, row.OrderStatus, row.CreatedAt,
		}
		for col, v := range values {
			xlsx.SetCellValue(sheet, fmt.Sprintf("%s%d", excelize.ToAlphaString(col), i+2), v)
		}
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", "orders-"+stamp+".xlsx"))
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return xlsx.Write(c.Response())
}
