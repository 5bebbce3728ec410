package handler

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// Printable receipt, served when the client asks for format=html.
var receiptTmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Receipt {{.OrderNumber}}</title>
<style>
body { font-family: monospace; max-width: 360px; margin: 0 auto; }
table { width: 100%; border-collapse: collapse; }
td { padding: 2px 0; }
td.amount { text-align: right; }
.totals { border-top: 1px dashed #000; margin-top: 8px; padding-top: 8px; }
.qr { text-align: center; margin-top: 12px; }
</style>
</head>
<body>
<h3>Order {{.OrderNumber}}</h3>
<table>
{{range .Items}}<tr><td>{{.Quantity}} x {{.Name}}</td><td class="amount">{{printf "%.2f" .Subtotal}}</td></tr>
{{end}}</table>
<table class="totals">
<tr><td>Subtotal</td><td class="amount">{{printf "%.2f" .Subtotal}}</td></tr>
{{if gt .Discount 0.0}}<tr><td>Discount</td><td class="amount">-{{printf "%.2f" .Discount}}</td></tr>{{end}}
<tr><td>Tax</td><td class="amount">{{printf "%.2f" .Tax}}</td></tr>
{{if gt .Tip 0.0}}<tr><td>Tip</td><td class="amount">{{printf "%.2f" .Tip}}</td></tr>{{end}}
<tr><td><strong>Total</strong></td><td class="amount"><strong>{{printf "%.2f" .GrandTotal}}</strong></td></tr>
<tr><td>Paid by</td><td class="amount">{{.PaymentMethod}}</td></tr>
</table>
{{if .QRCode}}<div class="qr"><img src="data:image/png;base64,{{.QRCode}}" alt="order lookup"></div>{{end}}
</body>
</html>`))

// GetPendingPayments lists completed orders still waiting for payment,
// the cashier's work queue.
func GetPendingPayments(c *fiber.Ctx) error {
	var orders []model.Order
	err := database.DB.
		Where("status = ? AND payment_status = ?", constants.ORDER_COMPLETED, constants.PAYMENT_PENDING).
		Preload("Items").Preload("Table").
		Order("completed_time").
		Find(&orders).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

func ProcessPayment(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)

	input, ok := c.Locals("inputPayment").(model.PaymentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse payment input fail"))
	}

	actor := helper.CurrentUser(c)

	order, err := helper.SettlePayment(database.DB, uint(orderId), input, actor.ID)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrOrderNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
		case errors.Is(err, helper.ErrAlreadyPaid), errors.Is(err, helper.ErrOrderCancelled):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot process payment", err)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	helper.Audit(c, &actor.ID, "payment_processed", true, map[string]any{
		"orderId": order.ID,
		"method":  input.PaymentMethod,
		"amount":  order.TotalAmount,
	})
	BroadcastKitchenOrder(order)

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// GetReceipt builds the receipt payload, including a QR code of the public
// order lookup URL.
func GetReceipt(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)

	var order model.Order
	err := database.DB.
		Preload("Items").Preload("Items.MenuItem").Preload("Table").
		First(&order, orderId).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	if order.PaymentStatus != constants.PAYMENT_PAID {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Receipt is only available for paid orders", nil)
	}

	type receiptLine struct {
		Name     string  `json:"name"`
		Quantity int     `json:"quantity"`
		Price    float64 `json:"price"`
		Subtotal float64 `json:"subtotal"`
	}
	lines := make([]receiptLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, receiptLine{
			Name:     item.MenuItem.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: item.Price * float64(item.Quantity),
		})
	}

	grandTotal := order.TotalAmount - order.Discount + order.Tax + order.Tip
	perPerson := grandTotal
	if order.SplitCount > 1 {
		perPerson = grandTotal / float64(order.SplitCount)
	}

	lookupURL := fmt.Sprintf("%s/api/orders/number/%s", c.BaseURL(), order.OrderNumber)
	var qrBase64 string
	if png, qrErr := utils.GenerateQRCode(lookupURL, 256); qrErr == nil {
		qrBase64 = base64.StdEncoding.EncodeToString(png)
	}

	if c.Query("format") == "html" {
		var buf bytes.Buffer
		err := receiptTmpl.Execute(&buf, fiber.Map{
			"OrderNumber":   order.OrderNumber,
			"Items":         lines,
			"Subtotal":      order.TotalAmount,
			"Discount":      order.Discount,
			"Tax":           order.Tax,
			"Tip":           order.Tip,
			"GrandTotal":    grandTotal,
			"PaymentMethod": order.PaymentMethod,
			"QRCode":        qrBase64,
		})
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		c.Set("Content-Type", fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(buf.Bytes())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orderNumber":   order.OrderNumber,
		"orderTime":     order.OrderTime,
		"completedTime": order.CompletedTime,
		"items":         lines,
		"subtotal":      order.TotalAmount,
		"discount":      order.Discount,
		"tax":           order.Tax,
		"tip":           order.Tip,
		"grandTotal":    grandTotal,
		"splitCount":    order.SplitCount,
		"perPerson":     perPerson,
		"paymentMethod": order.PaymentMethod,
		"qrCode":        qrBase64,
	})
}

// ApplyDiscount sets a discount on an unpaid order.
func ApplyDiscount(c *fiber.Ctx) error {
	orderId := c.Locals("inputId").(int)

	input, ok := c.Locals("inputDiscount").(model.DiscountInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse discount input fail"))
	}

	var order model.Order
	if err := database.DB.First(&order, orderId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}
	if order.PaymentStatus == constants.PAYMENT_PAID {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Order is already paid", nil)
	}
	if order.Status == constants.ORDER_CANCELLED {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Order is cancelled", nil)
	}
	if input.Discount > order.TotalAmount {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Discount exceeds the order total", nil)
	}

	if err := database.DB.Model(&order).Update("discount", input.Discount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	actor := helper.CurrentUser(c)
	helper.Audit(c, &actor.ID, "discount_applied", true, map[string]any{
		"orderId":  order.ID,
		"discount": input.Discount,
		"reason":   input.Reason,
	})

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// GetSalesSummary aggregates paid orders over a date range, with a breakdown
// per payment method.
func GetSalesSummary(c *fiber.Ctx) error {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	if startStr := c.Query("startDate"); startStr != "" {
		parsed, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "startDate must be YYYY-MM-DD", err)
		}
		start = parsed
	}
	if endStr := c.Query("endDate"); endStr != "" {
		parsed, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "endDate must be YYYY-MM-DD", err)
		}
		end = parsed.AddDate(0, 0, 1)
	}

	var orders []model.Order
	err := database.DB.
		Where("payment_status = ? AND completed_time >= ? AND completed_time < ?", constants.PAYMENT_PAID, start, end).
		Find(&orders).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	totals := fiber.Map{}
	byMethod := map[string]float64{}
	totalSales, totalTax, totalTips, totalDiscounts := 0.0, 0.0, 0.0, 0.0
	for _, order := range orders {
		totalSales += order.TotalAmount
		totalTax += order.Tax
		totalTips += order.Tip
		totalDiscounts += order.Discount
		byMethod[order.PaymentMethod] += order.TotalAmount - order.Discount + order.Tax + order.Tip
	}

	totals["startDate"] = start.Format("2006-01-02")
	totals["endDate"] = end.AddDate(0, 0, -1).Format("2006-01-02")
	totals["orderCount"] = len(orders)
	totals["totalSales"] = totalSales
	totals["totalTax"] = totalTax
	totals["totalTips"] = totalTips
	totals["totalDiscounts"] = totalDiscounts
	totals["byPaymentMethod"] = byMethod

	return utils.SuccessResponse(c, fiber.StatusOK, totals)
}
