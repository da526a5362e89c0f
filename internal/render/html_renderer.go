package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/salonhq/invoice-delivery-service/internal/domain"
)

// RootElementID is the id of the invoice root element. The rasterizer locates
// this element after load to confirm the template produced the expected
// structure.
const RootElementID = "invoice-root"

const invoiceHTMLTemplate = `<div class="invoice" id="invoice-root">
  <div class="header">
    <div class="brand">
      {{if .Invoice.CompanyLogo}}
      <img src="{{.Invoice.CompanyLogo}}" alt="Company logo" />
      {{end}}
      <div>
        <div class="seller-name"><strong>{{.Invoice.Seller.Name}}</strong></div>
        {{if .Invoice.Seller.Address}}<div>{{.Invoice.Seller.Address}}</div>{{end}}
        {{if .Invoice.Seller.Phone}}<div>{{.Invoice.Seller.Phone}}</div>{{end}}
        {{if .Invoice.Seller.Email}}<div>{{.Invoice.Seller.Email}}</div>{{end}}
        {{if .Invoice.Seller.TaxID}}<div>Tax ID: {{.Invoice.Seller.TaxID}}</div>{{end}}
      </div>
    </div>
    <div class="meta">
      <div class="label">Invoice</div>
      <div><strong>{{if .Invoice.Order.Number}}{{.Invoice.Order.Number}}{{else}}{{.Invoice.Order.ID}}{{end}}</strong></div>
      <div>Order: {{.Invoice.Order.ID}}</div>
      {{if .Invoice.Order.Date}}<div>Date: {{.Invoice.Order.Date}}</div>{{end}}
    </div>
  </div>

  <div class="section">
    <div class="label">Billed To</div>
    <div class="customer-name"><strong>{{.Invoice.Customer.Name}}</strong></div>
    {{if .Invoice.Customer.Address}}<div>{{.Invoice.Customer.Address}}</div>{{end}}
    {{if .Invoice.Customer.Phone}}<div>{{.Invoice.Customer.Phone}}</div>{{end}}
    {{if .Invoice.Customer.Email}}<div>{{.Invoice.Customer.Email}}</div>{{end}}
  </div>

  <div class="section">
    <table>
      <thead>
        <tr>
          <th>Description</th>
          <th>Qty</th>
          <th>Unit Price</th>
          <th>Tax</th>
          <th>Amount</th>
        </tr>
      </thead>
      <tbody>
        {{range .Invoice.Items}}
        <tr>
          <td>{{.Description}}</td>
          <td>{{formatQuantity .Quantity}}</td>
          <td>{{formatMoney .UnitPrice}}</td>
          <td>{{formatPercent .TaxPercent}}</td>
          <td>{{formatMoney .Amount}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
    <div class="totals">
      {{if .Invoice.Discount}}
      <div class="discount">Discount <strong>-{{formatMoney .Invoice.Discount}}</strong></div>
      {{end}}
      <div class="grand-total">Total <strong>{{formatMoney .Invoice.Total}}</strong></div>
    </div>
  </div>

  {{if .Invoice.Notes}}
  <div class="footer">{{.Invoice.Notes}}</div>
  {{end}}

  {{if .Interactive}}
  <div class="actions">
    <button type="button" class="download-button" onclick="window.print()">Download</button>
  </div>
  {{end}}
</div>
`

// HTMLRenderer renders invoices via html/template. Safe for concurrent use;
// the parsed template is read-only after construction.
type HTMLRenderer struct {
	tpl *template.Template
}

// NewHTMLRenderer parses the invoice template once.
func NewHTMLRenderer() *HTMLRenderer {
	funcs := template.FuncMap{
		"formatMoney":    formatMoney,
		"formatQuantity": formatQuantity,
		"formatPercent":  formatPercent,
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceHTMLTemplate)),
	}
}

type templateInput struct {
	Invoice     *domain.Invoice
	Interactive bool
}

// RenderHTML renders the invoice to markup. ModeServer omits the download
// control; everything else is identical between modes.
func (r *HTMLRenderer) RenderHTML(invoice *domain.Invoice, mode Mode) (string, error) {
	var buf bytes.Buffer
	input := templateInput{
		Invoice:     invoice,
		Interactive: mode == ModeInteractive,
	}
	if err := r.tpl.Execute(&buf, input); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

func formatQuantity(value float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
}

func formatPercent(value float64) string {
	if value == 0 {
		return "-"
	}
	return fmt.Sprintf("%s%%", formatQuantity(value))
}
