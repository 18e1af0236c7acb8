package service

import "fmt"

const htmlTemplate = `&nbsp;<!DOCTYPE html><html><head>` +
	`<meta http-equiv="Content-Type" content="text/html; charset=utf-8">` +
	`<title></title></head><body>%s</body></html>`

// WrapHTML embeds a parsed dictionary entry fragment into the document
// template used for browseable display. An empty body stays empty.
func WrapHTML(body string) string {
	if body == "" {
		return ""
	}
	return fmt.Sprintf(htmlTemplate, body)
}
