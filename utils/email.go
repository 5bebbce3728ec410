package utils

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type LowStockItem struct {
	Name         string
	CurrentStock float64
	MinimumStock float64
	Unit         string
	SupplierName string
}

var lowStockTmpl = template.Must(template.New("lowstock").Parse(`
<h3>Low stock alert</h3>
<p>The following ingredients are at or below their minimum stock level:</p>
<table border="1" cellpadding="4">
<tr><th>Ingredient</th><th>Current</th><th>Minimum</th><th>Unit</th><th>Supplier</th></tr>
{{range .}}<tr><td>{{.Name}}</td><td>{{.CurrentStock}}</td><td>{{.MinimumStock}}</td><td>{{.Unit}}</td><td>{{.SupplierName}}</td></tr>
{{end}}</table>`))

// SendLowStockEmail mails the manager address asynchronously so the caller
// never waits on SMTP.
func SendLowStockEmail(items []LowStockItem) {
	go func() {
		to := os.Getenv("ALERT_EMAIL")
		if to == "" || len(items) == 0 {
			return
		}

		var body bytes.Buffer
		if err := lowStockTmpl.Execute(&body, items); err != nil {
			log.Printf("failed to render low stock email: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Low stock alert")
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("failed to send low stock email: %v", err)
		}
	}()
}
