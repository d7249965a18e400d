package services

import (
	"bytes"
	"html/template"
	"strings"
)

// mailField is one label/value row of the summary table in a mail.
type mailField struct {
	Label string
	Value string
}

type mailView struct {
	Subject    string
	Greeting   string
	Paragraphs []string
	Fields     []mailField
}

var mailLayout = template.Must(template.New("mail").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Subject}}</title>
</head>
<body style="margin:0;padding:0;background-color:#f9fafb;font-family:'Segoe UI',Tahoma,Arial,sans-serif;">
<div style="max-width:640px;margin:0 auto;padding:24px 20px;">
<div style="background-color:#ffffff;border:1px solid #e5e7eb;border-radius:12px;padding:24px;">
<h1 style="margin:0 0 18px 0;font-size:22px;font-weight:700;color:#111827;">{{.Subject}}</h1>
{{if .Greeting}}<p style="margin:0 0 18px 0;line-height:1.7;">Dear {{.Greeting}},</p>{{end}}
{{range .Paragraphs}}<p style="margin:0 0 18px 0;line-height:1.7;word-break:break-word;">{{.}}</p>
{{end}}{{if .Fields}}<table role="presentation" cellpadding="0" cellspacing="0" width="100%" style="border:1px solid #e5e7eb;border-radius:12px;background-color:#f9fafb;">
<tbody>
{{range .Fields}}<tr>
<td style="padding:12px 16px;font-size:13px;color:#6b7280;width:38%;">{{.Label}}</td>
<td style="padding:12px 16px;font-size:15px;color:#111827;font-weight:600;white-space:pre-wrap;">{{.Value}}</td>
</tr>
{{end}}</tbody>
</table>{{end}}
</div>
</div>
</body>
</html>`))

// renderMail lays out a notification mail. Empty paragraphs and fields with
// an empty value are skipped; every value is HTML escaped by the template.
func renderMail(subject, greeting string, paragraphs []string, fields []mailField) (string, error) {
	view := mailView{Subject: subject, Greeting: strings.TrimSpace(greeting)}
	for _, p := range paragraphs {
		if p = strings.TrimSpace(p); p != "" {
			view.Paragraphs = append(view.Paragraphs, p)
		}
	}
	for _, f := range fields {
		if strings.TrimSpace(f.Value) != "" {
			view.Fields = append(view.Fields, f)
		}
	}

	var buf bytes.Buffer
	if err := mailLayout.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
