package views

import (
	"html/template"
	"io"
	"time"
)

// ProcessingPage is shown while the order is still waiting for the
// gateway's server-side notification.
type ProcessingPage struct {
	OrderRef     string
	RefreshURL   string
	RefreshAfter time.Duration
}

func (p ProcessingPage) RefreshSeconds() int {
	s := int(p.RefreshAfter / time.Second)
	if s < 1 {
		return 1
	}
	return s
}

type ErrorPage struct {
	Title   string
	Message string
}

var processingTmpl = template.Must(template.New("processing").Parse(`<!doctype html>
<html lang="uk">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="robots" content="noindex">
<meta http-equiv="refresh" content="{{.RefreshSeconds}};url={{.RefreshURL}}">
<title>Оплата обробляється / Payment processing</title>
<style>body{font-family:system-ui,sans-serif;max-width:32rem;margin:4rem auto;padding:0 1rem;text-align:center;color:#222}small{color:#777}</style>
</head>
<body>
<h1>Оплата обробляється</h1>
<p>Ми чекаємо на підтвердження від платіжної системи. Сторінка оновиться автоматично.</p>
<p>We are waiting for the payment provider to confirm your payment. This page refreshes automatically.</p>
<p><a href="{{.RefreshURL}}">Оновити / Refresh</a></p>
{{if .OrderRef}}<small>{{.OrderRef}}</small>{{end}}
</body>
</html>
`))

var errorTmpl = template.Must(template.New("error").Parse(`<!doctype html>
<html lang="uk">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="robots" content="noindex">
<title>{{.Title}}</title>
<style>body{font-family:system-ui,sans-serif;max-width:32rem;margin:4rem auto;padding:0 1rem;text-align:center;color:#222}</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
</body>
</html>
`))

func RenderProcessing(w io.Writer, page ProcessingPage) error {
	return processingTmpl.Execute(w, page)
}

func RenderError(w io.Writer, page ErrorPage) error {
	return errorTmpl.Execute(w, page)
}
