// Package notify builds conflict alert messages for engineering.
package notify

import (
	"fmt"
	"html"
	"strings"

	"partsync/internal/port"
)

// Message is a rendered conflict alert.
type Message struct {
	Subject  string
	TextBody string
	HTMLBody string
}

// RunURL returns the approval UI link for a run.
func RunURL(reviewURL string, alert port.ConflictAlert) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(reviewURL, "/"), alert.RunID)
}

// BuildConflictMessage renders the alert for alert.PartNumber, listing every conflict.
func BuildConflictMessage(alert port.ConflictAlert, reviewURL string) Message {
	part := alert.PartNumber
	if part == "" {
		part = alert.FilePath
	}
	link := RunURL(reviewURL, alert)

	noun := "conflicts"
	if len(alert.Conflicts) == 1 {
		noun = "conflict"
	}
	subject := fmt.Sprintf("[PartSync] %d %s on %s", len(alert.Conflicts), noun, part)

	var text strings.Builder
	fmt.Fprintf(&text, "The drawing for %s disagrees with the part model.\n\n", part)
	for _, c := range alert.Conflicts {
		fmt.Fprintf(&text, "- %s: part %q, drawing %q (%s, %s)\n", c.Field, c.ModelValue, c.DrawingValue, c.Severity, c.Recommendation)
	}
	fmt.Fprintf(&text, "\nReview: %s\n", link)

	var rows strings.Builder
	for _, c := range alert.Conflicts {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(string(c.Field)),
			html.EscapeString(c.ModelValue),
			html.EscapeString(c.DrawingValue),
			html.EscapeString(c.Recommendation))
	}
	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Drawing conflicts on %s</h2>
  <table style="border-collapse: collapse; width: 100%%;">
    <tr><th align="left">Field</th><th align="left">Part</th><th align="left">Drawing</th><th align="left">Recommendation</th></tr>
    %s
  </table>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Review Run</a>
  </p>
</body>
</html>`, html.EscapeString(part), rows.String(), html.EscapeString(link))

	return Message{Subject: subject, TextBody: text.String(), HTMLBody: htmlBody}
}
