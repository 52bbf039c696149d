package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"

	"github.com/jtmonrad/huginn/internal/timezone"
)

var (
	boldRe    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	linkRe    = regexp.MustCompile(`\[(.+?)\]\((.+?)\)`)
	orderedRe = regexp.MustCompile(`^\d+\.\s`)
)

// FormatBody converts generated newsletter markdown into inline-styled HTML,
// one line at a time. Block structure is decided per line, so consecutive
// list items come out as bare <li> elements with no enclosing list.
func FormatBody(text string) string {
	lines := strings.Split(text, "\n")
	htmlLines := make([]string, 0, len(lines))

	for _, line := range lines {
		s := strings.TrimSpace(line)
		if s == "" {
			htmlLines = append(htmlLines, "")
			continue
		}

		s = formatInline(s)

		switch {
		case strings.HasPrefix(s, "### "):
			htmlLines = append(htmlLines, fmt.Sprintf(`<h3 style="color: #2c3e50; margin-top: 20px; margin-bottom: 8px; font-size: 16px;">%s</h3>`, s[4:]))
		case strings.HasPrefix(s, "## "):
			htmlLines = append(htmlLines, fmt.Sprintf(`<h2 style="color: #2c3e50; margin-top: 24px; margin-bottom: 10px; font-size: 18px; border-bottom: 1px solid #eee; padding-bottom: 6px;">%s</h2>`, s[3:]))
		case strings.HasPrefix(s, "# "):
			htmlLines = append(htmlLines, fmt.Sprintf(`<h1 style="color: #1a5276; margin-top: 0; margin-bottom: 16px; font-size: 22px;">%s</h1>`, s[2:]))
		case strings.HasPrefix(s, "- ") || strings.HasPrefix(s, "* "):
			htmlLines = append(htmlLines, fmt.Sprintf(`<li style="margin-bottom: 6px; line-height: 1.6;">%s</li>`, s[2:]))
		case orderedRe.MatchString(s):
			htmlLines = append(htmlLines, fmt.Sprintf(`<li style="margin-bottom: 6px; line-height: 1.6;">%s</li>`, orderedRe.ReplaceAllString(s, "")))
		default:
			htmlLines = append(htmlLines, fmt.Sprintf(`<p style="margin: 0 0 12px 0; line-height: 1.6;">%s</p>`, s))
		}
	}

	return strings.Join(htmlLines, "\n")
}

// formatInline rewrites bold, italic and link markdown within one line.
func formatInline(line string) string {
	line = boldRe.ReplaceAllString(line, "<strong>${1}</strong>")
	line = italicize(line)
	line = linkRe.ReplaceAllString(line, `<a href="${2}" style="color: #1a5276;">${1}</a>`)
	return line
}

// italicize converts single-asterisk emphasis, leaving double asterisks
// untouched. Go regexps have no lookarounds, so walk the line by hand: an
// emphasis delimiter is an asterisk with no asterisk neighbor.
func italicize(line string) string {
	isStar := func(i int) bool {
		return i >= 0 && i < len(line) && line[i] == '*'
	}

	var b strings.Builder
	i := 0
	for i < len(line) {
		if line[i] != '*' || isStar(i-1) || isStar(i+1) {
			b.WriteByte(line[i])
			i++
			continue
		}

		closer := -1
		for j := i + 2; j < len(line); j++ {
			if line[j] == '*' && !isStar(j-1) && !isStar(j+1) {
				closer = j
				break
			}
		}
		if closer < 0 {
			b.WriteByte(line[i])
			i++
			continue
		}

		b.WriteString("<em>")
		b.WriteString(line[i+1 : closer])
		b.WriteString("</em>")
		i = closer + 1
	}
	return b.String()
}

// Renderer produces the complete HTML email document around a formatted body.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a renderer with the newsletter document template.
func NewRenderer() *Renderer {
	t := template.Must(template.New("newsletter").Parse(newsletterTemplate))
	return &Renderer{tmpl: t}
}

type documentData struct {
	Name string
	Date string
	Body template.HTML
}

// Render converts generated newsletter text into the full email document.
func (r *Renderer) Render(name, text string, now time.Time) (string, error) {
	data := documentData{
		Name: name,
		Date: now.Format(timezone.LongDate),
		Body: template.HTML(FormatBody(text)),
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return buf.String(), nil
}
