package handlers

import "html/template"

const pageStyle = `font-family: Arial, sans-serif; max-width: 600px; margin: 50px auto; padding: 20px;`

var indexPage = template.Must(template.New("index").Parse(`<html>
<head><title>LinkedIn OAuth - Local Server</title></head>
<body style="` + pageStyle + `">
<h1>LinkedIn OAuth Setup</h1>
<p>Local server is running for OAuth callback.</p>
<p>Use this authorization URL:</p>
<p><a href="{{.AuthURL}}" target="_blank">Authorize with LinkedIn</a></p>
</body>
</html>`))

var errorPage = template.Must(template.New("error").Parse(`<html>
<head><title>{{.Title}}</title></head>
<body style="` + pageStyle + `">
<h1 style="color: red;">{{.Title}}</h1>
<p><strong>Error:</strong> {{.Error}}</p>
{{with .Description}}<p><strong>Description:</strong> {{.}}</p>{{end}}
{{with .Hint}}<p>{{.}}</p>{{end}}
</body>
</html>`))

var successPage = template.Must(template.New("success").Parse(`<html>
<head><title>OAuth Success</title></head>
<body style="` + pageStyle + `">
<h1 style="color: green;">OAuth Success!</h1>
<p>Your LinkedIn access token has been obtained and saved.</p>
<p>You can now close this window and return to the terminal.</p>
<p>The token has been saved to <code>{{.TokenFile}}</code></p>
<p>Posting as <code>{{.PersonURN}}</code></p>
</body>
</html>`))
