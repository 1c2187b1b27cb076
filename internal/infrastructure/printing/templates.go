package printing

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Document template names
const (
	TemplateLeaseAgreement = "lease_agreement"
	TemplatePaymentReceipt = "payment_receipt"
)

// LeaseAgreementData is bound to the lease agreement template
type LeaseAgreementData struct {
	AgreementNumber string
	GeneratedAt     time.Time
	OwnerName       string
	TenantName      string
	TenantEmail     string
	TenantPhone     string
	PropertyName    string
	PropertyAddress string
	UnitNumber      string
	StartDate       time.Time
	EndDate         time.Time
	RentAmount      decimal.Decimal
	SecurityDeposit decimal.Decimal
	Notes           string
}

// PaymentReceiptData is bound to the payment receipt template
type PaymentReceiptData struct {
	ReceiptNumber string
	GeneratedAt   time.Time
	TenantName    string
	PropertyName  string
	UnitNumber    string
	Amount        decimal.Decimal
	PaidAt        time.Time
	Method        string
	Status        string
	Reference     string
	Notes         string
	TotalPaid     decimal.Decimal
}

// DocumentTemplates executes the built-in document templates
type DocumentTemplates struct {
	companyName string
	templates   *template.Template
}

// NewDocumentTemplates parses the built-in templates. companyName is printed
// in every document header.
func NewDocumentTemplates(companyName string) *DocumentTemplates {
	title := cases.Title(language.English)
	funcs := template.FuncMap{
		"formatMoney": formatMoney,
		"formatDate":  formatDate,
		"title":       func(s string) string { return title.String(strings.ToLower(s)) },
		"humanize": func(s string) string {
			return title.String(strings.ReplaceAll(strings.ToLower(s), "_", " "))
		},
		"upper": strings.ToUpper,
	}
	t := template.Must(template.New("documents").Funcs(funcs).Parse(baseTemplate))
	template.Must(t.New(TemplateLeaseAgreement).Parse(leaseAgreementTemplate))
	template.Must(t.New(TemplatePaymentReceipt).Parse(paymentReceiptTemplate))
	return &DocumentTemplates{companyName: companyName, templates: t}
}

// LeaseAgreement renders the lease agreement HTML
func (d *DocumentTemplates) LeaseAgreement(data LeaseAgreementData) (string, error) {
	return d.execute(TemplateLeaseAgreement, data)
}

// PaymentReceipt renders the payment receipt HTML
func (d *DocumentTemplates) PaymentReceipt(data PaymentReceiptData) (string, error) {
	return d.execute(TemplatePaymentReceipt, data)
}

func (d *DocumentTemplates) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	err := d.templates.ExecuteTemplate(&buf, name, struct {
		Company string
		Doc     any
	}{d.companyName, data})
	if err != nil {
		return "", NewRenderError(ErrCodeTemplateFailed, "failed to execute template "+name, err)
	}
	return buf.String(), nil
}

// formatMoney formats an amount with thousand separators and two decimals.
// Example: 1234.5 -> "1,234.50"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	intPart, decPart, _ := strings.Cut(d.StringFixed(2), ".")

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + b.String() + "." + decPart
}

// formatDate formats a date as "January 2, 2006". Zero times render empty.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

const baseTemplate = `{{define "header"}}<!DOCTYPE html>
<html><head><meta charset="UTF-8"><title>{{.}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #222; }
h1 { font-size: 20px; margin: 0 0 4px 0; }
.company { color: #555; font-size: 11px; text-transform: uppercase; letter-spacing: 1px; }
table { width: 100%; border-collapse: collapse; margin-top: 12px; }
td, th { padding: 6px 8px; border-bottom: 1px solid #ddd; text-align: left; }
.amount { text-align: right; }
.signature { margin-top: 48px; display: flex; justify-content: space-between; }
.signature div { width: 40%; border-top: 1px solid #222; padding-top: 4px; }
</style></head><body>{{end}}
{{define "footer"}}</body></html>{{end}}`

const leaseAgreementTemplate = `{{template "header" "Lease Agreement"}}
<div class="company">{{.Company}}</div>
<h1>Residential Lease Agreement</h1>
<p>Agreement No. {{upper .Doc.AgreementNumber}} &middot; issued {{formatDate .Doc.GeneratedAt}}</p>
<p>This agreement is made between <strong>{{title .Doc.OwnerName}}</strong> ("Landlord") and
<strong>{{title .Doc.TenantName}}</strong> ("Tenant") for the premises described below.</p>
<table>
<tr><th>Property</th><td>{{.Doc.PropertyName}}</td></tr>
<tr><th>Address</th><td>{{.Doc.PropertyAddress}}</td></tr>
<tr><th>Unit</th><td>{{.Doc.UnitNumber}}</td></tr>
<tr><th>Lease term</th><td>{{formatDate .Doc.StartDate}} to {{formatDate .Doc.EndDate}}</td></tr>
<tr><th>Monthly rent</th><td class="amount">{{formatMoney .Doc.RentAmount}}</td></tr>
<tr><th>Security deposit</th><td class="amount">{{formatMoney .Doc.SecurityDeposit}}</td></tr>
<tr><th>Tenant contact</th><td>{{.Doc.TenantEmail}}{{if .Doc.TenantPhone}} &middot; {{.Doc.TenantPhone}}{{end}}</td></tr>
</table>
{{if .Doc.Notes}}<p><strong>Additional terms:</strong> {{.Doc.Notes}}</p>{{end}}
<p>Rent is due on the first day of each month. The security deposit is returned at the end of the
lease term less any amounts owed for damage beyond normal wear.</p>
<div class="signature"><div>Landlord</div><div>Tenant</div></div>
{{template "footer"}}`

const paymentReceiptTemplate = `{{template "header" "Payment Receipt"}}
<div class="company">{{.Company}}</div>
<h1>Payment Receipt</h1>
<p>Receipt No. {{upper .Doc.ReceiptNumber}} &middot; issued {{formatDate .Doc.GeneratedAt}}</p>
<table>
<tr><th>Received from</th><td>{{title .Doc.TenantName}}</td></tr>
<tr><th>Property</th><td>{{.Doc.PropertyName}}, unit {{.Doc.UnitNumber}}</td></tr>
<tr><th>Payment date</th><td>{{formatDate .Doc.PaidAt}}</td></tr>
<tr><th>Method</th><td>{{humanize .Doc.Method}}</td></tr>
<tr><th>Status</th><td>{{humanize .Doc.Status}}</td></tr>
{{if .Doc.Reference}}<tr><th>Reference</th><td>{{.Doc.Reference}}</td></tr>{{end}}
<tr><th>Amount</th><td class="amount"><strong>{{formatMoney .Doc.Amount}}</strong></td></tr>
<tr><th>Total paid to date</th><td class="amount">{{formatMoney .Doc.TotalPaid}}</td></tr>
</table>
{{if .Doc.Notes}}<p>{{.Doc.Notes}}</p>{{end}}
{{template "footer"}}`
