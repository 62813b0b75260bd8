package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"nnx1/internal/diagnostic"
	"nnx1/internal/model"
)

// EmailInput is the content of a report email.
type EmailInput struct {
	Name      string
	Tool      model.ToolID
	Score     int
	Content   string // Markdown report body
	WithPDF   bool
	SignUpURL string
}

// DefaultSignUpURL is the partner sign-up form linked from the email.
const DefaultSignUpURL = "https://nblk.typeform.com/NBLKForm"

// Raw HTML in the report body is not rendered; goldmark escapes it unless
// html.WithUnsafe is set.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough, extension.Table),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

type emailData struct {
	Name             string
	ToolName         string
	Score            int
	PerformanceLevel string
	Body             template.HTML
	WithPDF          bool
	SignUpURL        string
}

var emailTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Your NBLK Diagnostic Report</title>
<style>
body { font-family: 'Inter', -apple-system, BlinkMacSystemFont, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; background-color: #f8f9fa; }
.container { background: white; border-radius: 12px; box-shadow: 0 4px 6px rgba(0,0,0,0.1); overflow: hidden; }
.header { background: linear-gradient(135deg, #000 0%, #006400 100%); color: white; text-align: center; padding: 40px 20px; }
.logo { font-size: 36px; font-weight: bold; margin-bottom: 10px; letter-spacing: 2px; }
.score-section { background: linear-gradient(135deg, #f8f9fa 0%, #e9ecef 100%); padding: 40px; text-align: center; border-bottom: 3px solid #006400; }
.score { font-size: 64px; font-weight: bold; color: #006400; margin-bottom: 10px; }
.performance-level { font-size: 24px; font-weight: 600; color: #495057; margin-bottom: 10px; }
.content { padding: 40px; font-size: 16px; text-align: left; }
.section { margin: 32px 40px 0 40px; text-align: left; font-size: 16px; line-height: 1.6; }
.section-title { font-size: 1.15rem; font-weight: bold; color: #006400; margin-bottom: 8px; margin-top: 24px; }
.b2b-link { font-weight: bold; color: #006400; text-decoration: underline; font-size: 16px; }
.footer { background: #006400; color: white; text-align: center; padding: 30px; font-size: 14px; }
.footer-logo { font-size: 24px; font-weight: bold; margin-bottom: 15px; letter-spacing: 1px; }
strong { color: #006400; }
.pdf-notice { background: #e8f5e8; border: 1px solid #006400; border-radius: 8px; padding: 15px; margin: 20px 0; text-align: center; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <div class="logo">NBLK</div>
    <h2 style="margin: 0; font-weight: 300;">{{.ToolName}} Report</h2>
  </div>
  <div class="score-section">
    <div class="score">{{.Score}}/100</div>
    <div class="performance-level">{{.PerformanceLevel}} Performance</div>
    <p style="margin: 15px 0 0 0; color: #666; font-size: 16px;">Prepared for {{.Name}}</p>
  </div>
  {{if .WithPDF}}<div class="pdf-notice">
    <strong>Professional PDF Report Attached</strong><br>
    Your detailed diagnostic report with charts, analysis, and strategic recommendations is attached to this email.
  </div>{{end}}
  <div class="content">
{{.Body}}
  </div>
  <div class="section">
    <div class="section-title">B2B Partner</div>
    <div>
      This is just the beginning. You've taken the first step in a modular toolset designed to help small businesses identify gaps, unlock AI-powered support, and grow with clarity. More diagnostic modules will be released soon, each building toward a full-spectrum profile that provides deeper insights, smarter recommendations, and actionable plans.<br><br>
      If you'd like to:<br>
      Be alerted when new modules go live<br>
      Track your progress toward a complete diagnostic report<br>
      Or apply to be a B2B partner (and potentially be recommended to other businesses through our network)<br>
      <a href="{{.SignUpURL}}" class="b2b-link">Sign up here</a><br><br>
      This diagnostic tool is powered by the NNX1™ Engine, built to put people first and AI to work for them. We're excited to have you on this journey.<br><br>
      Thanks for being part of the NBLK community,<br>
      <strong>The NBLK Team</strong>
    </div>
  </div>
  <div class="footer">
    <div class="footer-logo">NBLK CONSULTING</div>
    <p style="margin: 10px 0;">442 5th Avenue, #2304, New York, NY 10018</p>
    <p style="margin: 10px 0;">Email: admin@nblkconsulting.com | Phone: (212) 598-3030</p>
  </div>
</div>
</body>
</html>
`))

// RenderMarkdown converts a report body to HTML.
func RenderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// EmailHTML renders the branded report email.
func EmailHTML(in EmailInput) (string, error) {
	body, err := RenderMarkdown(in.Content)
	if err != nil {
		return "", err
	}
	name := in.Name
	if name == "" {
		name = DefaultClientName
	}
	signUp := in.SignUpURL
	if signUp == "" {
		signUp = DefaultSignUpURL
	}

	var buf bytes.Buffer
	err = emailTemplate.Execute(&buf, emailData{
		Name:             name,
		ToolName:         in.Tool.DisplayName(),
		Score:            in.Score,
		PerformanceLevel: diagnostic.PerformanceLevel(in.Score),
		Body:             template.HTML(body),
		WithPDF:          in.WithPDF,
		SignUpURL:        signUp,
	})
	if err != nil {
		return "", fmt.Errorf("render email: %w", err)
	}
	return buf.String(), nil
}
