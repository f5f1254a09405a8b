package server

import (
	"html/template"

	"github.com/hiwaldo89/admon-software-client/internal/valuation"
)

// formTemplate is the single page the application renders: the property form,
// the result banner, and the recent valuations table. Markup is structural
// only; the small script keeps the submit button disabled with a busy label
// while a submission is in flight.
const formTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
	<meta charset="utf-8">
	<title>Avalúo de propiedades</title>
</head>
<body>
	<h1>Avalúo de propiedades</h1>

	{{if .Result}}
	<p class="banner {{if .Result.OK}}banner-success{{else}}banner-error{{end}}" role="status">{{.Result.Message}}</p>
	{{end}}

	<form method="POST" action="/estimate" id="estimate-form">
		{{range .Fields}}
		<div class="field">
			<label for="{{.Name}}">{{.Label}}</label>
			{{if eq .Kind "select"}}
			<select name="{{.Name}}" id="{{.Name}}">
				<option value=""></option>
				{{$selected := index $.Values .Name}}
				{{range .Options}}
				<option value="{{.}}"{{if eq . $selected}} selected{{end}}>{{.}}</option>
				{{end}}
			</select>
			{{else}}
			<input type="text" name="{{.Name}}" id="{{.Name}}" value="{{index $.Values .Name}}">
			{{end}}
			{{with index $.Errors .Name}}<span class="field-error">{{.}}</span>{{end}}
		</div>
		{{end}}
		<button type="submit" id="submit-button">Estimate</button>
	</form>

	{{if .History}}
	<h2>Recent valuations</h2>
	<table>
		<tr><th>Date</th><th>Type</th><th>Location</th><th>Estimate</th></tr>
		{{range .History}}
		<tr>
			<td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td>
			<td>{{.PropertyType}}</td>
			<td>{{.Localidad}}, {{.Municipio}}, {{.Estado}}</td>
			<td>{{mxn .Prediction}}</td>
		</tr>
		{{end}}
	</table>
	{{end}}

	<script>
	document.getElementById("estimate-form").addEventListener("submit", function () {
		var button = document.getElementById("submit-button");
		button.disabled = true;
		button.textContent = "Estimating...";
	});
	</script>
</body>
</html>
`

func newTemplate() *template.Template {
	return template.Must(
		template.New("form").
			Funcs(template.FuncMap{"mxn": valuation.FormatMXN}).
			Parse(formTemplate),
	)
}
