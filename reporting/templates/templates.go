package templates

// ReportTempl is the built in report. It is executed with a *summary.Context.
var ReportTempl = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ index .Texts "title" }}{{ with .WebApp }} | {{ . }}{{ end }}</title>
<style>{{ style }}</style>
</head>
<body>
<ul class="nav">
  <li><a href="#summary">{{ index .Texts "severity_summary" }}</a></li>
  <li><a href="#dynamics">{{ index .Texts "dynamics" }}</a></li>
  <li><a href="#event-types">{{ index .Texts "event_types" }}</a></li>
  <li><a href="#attackers">{{ index .Texts "attacker_ips" }}</a></li>
  <li><a href="#protectors">{{ index .Texts "protectors" }}</a></li>
</ul>
<div class="container">
<h1>{{ index .Texts "title" }}</h1>
<table>
  <tr><th>{{ index .Texts "webapp" }}</th><td>{{ .WebApp }}</td></tr>
  <tr><th>{{ index .Texts "period" }}</th><td>{{ .StartDate }} &ndash; {{ .EndDate }}</td></tr>
  {{- if not .GeneratedAt.IsZero }}
  <tr><th>{{ index .Texts "generated" }}</th><td>{{ .GeneratedAt | date "02.01.2006 15:04" }}</td></tr>
  {{- end }}
  {{- with .ReportID }}
  <tr><th>{{ index $.Texts "report_id" }}</th><td>{{ . }}</td></tr>
  {{- end }}
</table>

<h2 id="summary">{{ index .Texts "severity_summary" }}</h2>
<table class="severity">
  <tr>
    <th style="background-color: {{ .Theme.High }}">{{ index .SeverityLabels "high" }}</th>
    <th style="background-color: {{ .Theme.Medium }}">{{ index .SeverityLabels "medium" }}</th>
    <th style="background-color: {{ .Theme.Low }}">{{ index .SeverityLabels "low" }}</th>
    <th style="background-color: {{ .Theme.Info }}">{{ index .SeverityLabels "info" }}</th>
    <th>{{ index .Texts "total" }}</th>
  </tr>
  <tr>
    <td>{{ .Counts.High }}</td>
    <td>{{ .Counts.Medium }}</td>
    <td>{{ .Counts.Low }}</td>
    <td>{{ .Counts.Info }}</td>
    <td>{{ .TotalEvents }}</td>
  </tr>
</table>
{{- if eq .TotalEvents 0 }}
<div class="info">{{ index .Texts "no_events" }}</div>
{{- end }}

<h2 id="dynamics">{{ index .Texts "dynamics" }}</h2>
{{ lineChart .Charts.Dynamics }}

<h2 id="event-types">{{ index .Texts "event_types" }}</h2>
{{ barChart .Charts.EventTypes }}
<table>
  <tr><th>{{ index .Texts "event_type" }}</th><th>{{ index .Texts "events" }}</th><th>%</th></tr>
  {{- range .EventTypes }}
  <tr>
    <td><span class="swatch" style="background-color: {{ tagColor $.Theme .Tag }}"></span>{{ .Label }}</td>
    <td class="num">{{ .Count }}</td>
    <td class="num">{{ percent .Count $.TotalEvents }}</td>
  </tr>
  {{- end }}
</table>

<h2 id="attackers">{{ index .Texts "attacker_ips" }}</h2>
{{ template "ranking" dict "List" .AttackerIPs "Chart" .Charts.AttackerIPs "Column" (index .Texts "ip") "Events" (index .Texts "events") }}

<h2 id="countries">{{ index .Texts "countries" }}</h2>
{{ template "ranking" dict "List" .Countries "Chart" .Charts.Countries "Column" (index .Texts "country") "Events" (index .Texts "events") }}

<h2 id="browsers">{{ index .Texts "browsers" }}</h2>
{{ template "ranking" dict "List" .Browsers "Chart" .Charts.Browsers "Column" (index .Texts "browser") "Events" (index .Texts "events") }}

<h2 id="protectors">{{ index .Texts "protectors" }}</h2>
{{- range $id := .ProtectorIDs }}
<h3>{{ index $.Texts "protector" }}: {{ $id }}</h3>
{{- $rules := $.RulesFor $id }}
{{- if $rules }}
<table>
  <tr><th>{{ index $.Texts "mode" }}</th><th></th></tr>
  {{- range $rules }}
  <tr>
    <td>{{ .DisplayMode }}</td>
    <td class="attrs">{{ range $k, $v := .Attributes }}{{ if $v }}{{ $k }}: {{ $v }}<br>{{ end }}{{ end }}</td>
  </tr>
  {{- end }}
</table>
{{- else }}
<div class="info">{{ index $.Texts "no_rules" }}</div>
{{- end }}
{{- end }}
</div>
<footer>{{ .WebApp }} &middot; {{ .StartDate }} &ndash; {{ .EndDate }}</footer>
</body>
</html>
{{- define "ranking" }}
{{- if .List }}
<div class="split">
{{ pieChart .Chart }}
<table>
  <tr><th>{{ .Column }}</th><th>{{ .Events }}</th><th>%</th></tr>
  {{- $total := .List.Total }}
  {{- range $i, $e := .List }}
  <tr>
    <td><span class="swatch" style="background-color: {{ index $.Chart.Colors $i }}"></span>{{ $e.Label }}</td>
    <td class="num">{{ $e.Count }}</td>
    <td class="num">{{ percent $e.Count $total }}</td>
  </tr>
  {{- end }}
</table>
</div>
{{- end }}
{{- end }}
`
