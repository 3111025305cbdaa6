package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"alupro-backend/internal/shared"
)

// Egyptian Arabic formatting: Arabic-Indic digits and separators
var arPrinter = message.NewPrinter(language.MustParse("ar-EG"))

// FormatMoney renders a decimal string as "١٬٢٣٤٫٥٠ جنيه", unparseable input is returned as-is
func FormatMoney(amount string) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}
	f, _ := d.Round(2).Float64()
	return arPrinter.Sprintf("%.2f", f) + " جنيه"
}

func FormatNumber(n int) string {
	return arPrinter.Sprintf("%d", n)
}

const layoutTmpl = `{{define "layout"}}<!DOCTYPE html>
<html dir="rtl" lang="ar">
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body style="font-family:Tahoma,Arial,sans-serif;direction:rtl;text-align:right;background:#f8fafc;margin:0;padding:24px">
<div style="max-width:600px;margin:0 auto;background:#ffffff;border-radius:8px;overflow:hidden">
<div style="background:#2563eb;color:#ffffff;padding:16px 24px;font-size:20px">ألوميتال برو</div>
<div style="padding:24px">{{template "content" .}}</div>
<div style="background:#f1f5f9;color:#64748b;padding:12px 24px;font-size:12px">هذه رسالة آلية، يرجى عدم الرد عليها مباشرة.</div>
</div>
</body>
</html>{{end}}`

const orderConfirmationTmpl = `{{define "content"}}
<h2>{{.Heading}}</h2>
<p>مرحباً {{.Order.CustomerName}}،</p>
<p>رقم الطلب: <strong>{{.Order.OrderNumber}}</strong></p>
<table style="width:100%;border-collapse:collapse">
<tr style="background:#eff6ff"><th style="padding:6px">المنتج</th><th style="padding:6px">الكمية</th><th style="padding:6px">السعر</th><th style="padding:6px">الإجمالي</th></tr>
{{range .Order.Items}}<tr><td style="padding:6px">{{.Name}}</td><td style="padding:6px">{{number .Quantity}}</td><td style="padding:6px">{{money .UnitPrice}}</td><td style="padding:6px">{{money .LineTotal}}</td></tr>
{{end}}</table>
<p>المجموع الفرعي: {{money .Order.Subtotal}}</p>
{{if .HasDiscount}}<p>الخصم{{if .Order.PromoCode}} ({{.Order.PromoCode}}){{end}}: -{{money .Order.Discount}}</p>{{end}}
<p>الشحن: {{money .Order.Shipping}}</p>
<p>الضريبة: {{money .Order.Tax}}</p>
<p style="font-size:18px"><strong>الإجمالي: {{money .Order.Total}}</strong></p>
<p>عنوان التوصيل: {{.Order.Address}}</p>
{{if .SiteURL}}<p><a href="{{.SiteURL}}">زيارة المتجر</a></p>{{end}}
{{end}}`

const orderStatusTmpl = `{{define "content"}}
<h2>تحديث حالة الطلب</h2>
<p>مرحباً {{.Status.CustomerName}}،</p>
<p>تم تحديث حالة طلبك رقم <strong>{{.Status.OrderNumber}}</strong> من "{{.Status.FromStatus}}" إلى "<strong>{{.Status.ToStatus}}</strong>".</p>
{{if .Status.Note}}<p>ملاحظة: {{.Status.Note}}</p>{{end}}
{{end}}`

const contactReplyTmpl = `{{define "content"}}
<h2>رد على رسالتك</h2>
<p>مرحباً {{.Reply.Name}}،</p>
<p style="white-space:pre-line">{{.Reply.Reply}}</p>
<hr>
<p style="color:#64748b">رسالتك الأصلية ({{.Reply.Subject}}):</p>
<blockquote style="color:#64748b;white-space:pre-line">{{.Reply.OriginalMessage}}</blockquote>
{{end}}`

const contactNoticeTmpl = `{{define "content"}}
<h2>رسالة تواصل جديدة</h2>
<p>الاسم: {{.Notice.Name}}</p>
<p>البريد: {{.Notice.Email}}</p>
{{if .Notice.Phone}}<p>الهاتف: {{.Notice.Phone}}</p>{{end}}
<p>الموضوع: {{.Notice.Subject}}</p>
<p style="white-space:pre-line">{{.Notice.Message}}</p>
{{end}}`

var funcs = template.FuncMap{
	"money":  FormatMoney,
	"number": FormatNumber,
}

func mustTemplate(name, content string) *template.Template {
	return template.Must(template.Must(template.New(name).Funcs(funcs).Parse(layoutTmpl)).Parse(content))
}

var (
	orderConfirmationTemplate = mustTemplate("order_confirmation", orderConfirmationTmpl)
	orderStatusTemplate       = mustTemplate("order_status", orderStatusTmpl)
	contactReplyTemplate      = mustTemplate("contact_reply", contactReplyTmpl)
	contactNoticeTemplate     = mustTemplate("contact_notice", contactNoticeTmpl)
)

type templateData struct {
	Title       string
	Heading     string
	SiteURL     string
	HasDiscount bool
	Order       shared.OrderEmailPayload
	Status      shared.OrderStatusEmailPayload
	Reply       shared.ContactReplyPayload
	Notice      shared.ContactNoticePayload
}

func render(t *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// =====================================================
// BUILDERS
// =====================================================

func OrderConfirmationEmail(p shared.OrderEmailPayload, siteURL string) (EmailRequest, error) {
	subject := fmt.Sprintf("تأكيد استلام طلبك %s", p.OrderNumber)
	return orderEmail(p, siteURL, subject, "شكراً لطلبك!", p.CustomerEmail)
}

// OrderAdminNoticeEmail is the back-office copy of a new order
func OrderAdminNoticeEmail(p shared.OrderEmailPayload) (EmailRequest, error) {
	subject := fmt.Sprintf("طلب جديد %s", p.OrderNumber)
	req, err := orderEmail(p, "", subject, "طلب جديد من "+p.CustomerName, p.To)
	if err == nil && p.CustomerEmail != "" {
		req.ReplyTo = p.CustomerEmail
	}
	return req, err
}

func orderEmail(p shared.OrderEmailPayload, siteURL, subject, heading, to string) (EmailRequest, error) {
	discount, _ := decimal.NewFromString(p.Discount)
	body, err := render(orderConfirmationTemplate, templateData{
		Title:       subject,
		Heading:     heading,
		SiteURL:     siteURL,
		HasDiscount: discount.IsPositive(),
		Order:       p,
	})
	if err != nil {
		return EmailRequest{}, err
	}
	return EmailRequest{To: []string{to}, Subject: subject, Body: body, IsHTML: true}, nil
}

func OrderStatusEmail(p shared.OrderStatusEmailPayload) (EmailRequest, error) {
	subject := fmt.Sprintf("تحديث حالة الطلب %s: %s", p.OrderNumber, p.ToStatus)
	body, err := render(orderStatusTemplate, templateData{Title: subject, Status: p})
	if err != nil {
		return EmailRequest{}, err
	}
	return EmailRequest{To: []string{p.CustomerEmail}, Subject: subject, Body: body, IsHTML: true}, nil
}

func ContactReplyEmail(p shared.ContactReplyPayload) (EmailRequest, error) {
	subject := "رد: " + p.Subject
	body, err := render(contactReplyTemplate, templateData{Title: subject, Reply: p})
	if err != nil {
		return EmailRequest{}, err
	}
	return EmailRequest{To: []string{p.Email}, Subject: subject, Body: body, IsHTML: true}, nil
}

func ContactNoticeEmail(p shared.ContactNoticePayload) (EmailRequest, error) {
	subject := "رسالة تواصل جديدة: " + p.Subject
	body, err := render(contactNoticeTemplate, templateData{Title: subject, Notice: p})
	if err != nil {
		return EmailRequest{}, err
	}
	return EmailRequest{To: []string{p.To}, ReplyTo: p.Email, Subject: subject, Body: body, IsHTML: true}, nil
}
