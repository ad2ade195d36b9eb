package http

import "html/template"

// The form and result pages are deliberately plain server-rendered HTML; the
// service's value is the itinerary text, not the chrome around it.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>AI Trip Planner</title>
<style>
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; }
form { display: grid; gap: 0.75rem; max-width: 28rem; }
label { font-weight: bold; }
input, select, button { padding: 0.4rem; font-size: 1rem; }
button { cursor: pointer; }
pre.itinerary { white-space: pre-wrap; background: #f6f6f6; padding: 1rem; border-radius: 4px; }
p.error { color: #b00020; }
p.note { color: #555; font-style: italic; }
</style>
</head>
<body>
<h1>AI Trip Planner</h1>
<p>Plan your next adventure with a detailed, weather-aware itinerary.</p>
<form method="post" action="/plan">
  <label for="region">Destination</label>
  <input id="region" name="region" value="{{.Region}}" placeholder="e.g. Goa, India or Northern Italy" required>
  <label for="start_date">Start date</label>
  <input id="start_date" name="start_date" type="date" value="{{.StartDate}}" required>
  <label for="end_date">End date</label>
  <input id="end_date" name="end_date" type="date" value="{{.EndDate}}" required>
  <label for="preference">Travel style</label>
  <select id="preference" name="preference">
    <option value="1" {{if eq .Preference "1"}}selected{{end}}>Popular &amp; famous places</option>
    <option value="2" {{if eq .Preference "2"}}selected{{end}}>Hidden gems &amp; off-the-beaten-path</option>
    <option value="3" {{if eq .Preference "3"}}selected{{end}}>A mix of both</option>
  </select>
  <button type="submit">Plan my trip</button>
</form>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .Itinerary}}
<h2>Your itinerary for {{.Region}}</h2>
<pre class="itinerary">{{.Itinerary}}</pre>
{{end}}
</body>
</html>
`))

// pageData feeds pageTemplate. Form values round-trip so a validation error
// does not wipe the user's input.
type pageData struct {
	Region     string
	StartDate  string
	EndDate    string
	Preference string
	Itinerary  string
	Error      string
}
