package templates

import (
	"fmt"
	"html"
	"strings"
)

// RenderGenericEmail generates branded HTML for a plain text message. The body is
// HTML-escaped and newlines become <br> tags.
func RenderGenericEmail(subject, bodyContent string) string {
	return renderLayout(subject, paragraph(bodyContent))
}

// renderLayout wraps already escaped inner html in the branded shell
func renderLayout(subject, inner string) string {
	safeSubject := html.EscapeString(subject)

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>%s</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f4f6f5; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background-color: #00573f; padding: 32px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 22px; font-weight: 700; }
    .content { padding: 32px 30px; color: #1f2933; line-height: 1.6; font-size: 15px; }
    .content table { border-collapse: collapse; width: 100%%; }
    .content td { padding: 6px 8px; border-bottom: 1px solid #e4e7eb; }
    .button { display: inline-block; padding: 12px 24px; background-color: #00573f; color: #fff; text-decoration: none; border-radius: 4px; }
    .footer { padding: 24px; text-align: center; color: #7b8794; font-size: 12px; border-top: 1px solid #e4e7eb; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
    </div>
    <div class="content">
      %s
    </div>
    <div class="footer">
      <p>Land Dispute Management | National Land Authority</p>
      <p>This is an automated message, please do not reply.</p>
    </div>
  </div>
</body>
</html>`, safeSubject, safeSubject, inner)
}

func paragraph(text string) string {
	escaped := html.EscapeString(text)
	return "<p>" + strings.ReplaceAll(escaped, "\n", "<br>") + "</p>"
}

func greeting(name string) string {
	if strings.TrimSpace(name) == "" {
		return "<p>Hello,</p>"
	}
	return "<p>Hello " + html.EscapeString(name) + ",</p>"
}
