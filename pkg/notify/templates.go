package notify

import (
	"bytes"
	"fmt"
	"strconv"
	"text/template"

	"github.com/dependabot-report/pkg/alert"
	"github.com/dependabot-report/pkg/summary"
)

var funcs = template.FuncMap{
	"open": func(r summary.RepoSummary, sev string) int {
		return r.Open.Count(alert.Severity(sev))
	},
	"exceeded": func(r summary.RepoSummary, sev string) int {
		return r.SLO.Exceeded[alert.ParseSeverity(sev)]
	},
	"percent": func(r summary.RepoSummary, sev string) string {
		return strconv.FormatFloat(r.SLO.Percentage[alert.ParseSeverity(sev)], 'f', -1, 64)
	},
}

var reposTmpl = template.Must(template.New("repos").Funcs(funcs).Parse(
	"{{ range . }}```" + `{{ printf "%-28s" .Name }} No. alerts exceeding SLO

{{ printf "%-10s%10d" "Critical" (open . "critical") }}          {{ exceeded . "critical" }} ({{ percent . "critical" }}%)
{{ printf "%-10s%10d" "High" (open . "high") }}          {{ exceeded . "high" }} ({{ percent . "high" }}%)
{{ printf "%-10s%10d" "Medium" (open . "medium") }}          {{ exceeded . "medium" }} ({{ percent . "medium" }}%)
{{ printf "%-10s%10d" "Low" (open . "low") }}          {{ exceeded . "low" }} ({{ percent . "low" }}%)

{{ printf "%-10s%10d" "Total Open" .Open.Total }}
` + "```\n{{ end }}"))

var orgTmpl = template.Must(template.New("org").Parse("```" + `{{ .Title }}

{{ printf "%-10s%10d" "Critical" .Org.Open.Critical }}
{{ printf "%-10s%10d" "High" .Org.Open.High }}
{{ printf "%-10s%10d" "Medium" .Org.Open.Medium }}
{{ printf "%-10s%10d" "Low" .Org.Open.Low }}

{{ printf "%-10s%10d" "Total Open" .Org.Open.Total }}
` + "```\n"))

// RenderRepos renders one code block per repository, in the given order.
func RenderRepos(repos []summary.RepoSummary) (string, error) {
	var buf bytes.Buffer
	if err := reposTmpl.Execute(&buf, repos); err != nil {
		return "", fmt.Errorf("render repos message: %w", err)
	}
	return buf.String(), nil
}

// RenderOrg renders the organization totals as a single code block.
func RenderOrg(title string, org summary.OrgSummary) (string, error) {
	data := struct {
		Title string
		Org   summary.OrgSummary
	}{title, org}

	var buf bytes.Buffer
	if err := orgTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render org message: %w", err)
	}
	return buf.String(), nil
}
