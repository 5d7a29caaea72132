package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/flosch/pongo2/v6"
)

// indexTemplate renders a bundle's self-contained index.html. Plot paths in
// the report are bundle-relative, so the page works from the bundle
// directory without a server.
var indexTemplate = pongo2.Must(pongo2.FromString(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>linefit report {{ report.RunID }}</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 60rem; color: #222; }
h1 { font-size: 1.4rem; }
h2 { font-size: 1.1rem; margin-top: 2rem; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.7rem; text-align: right; }
th { background: #f2f2f2; }
td.name, th.name { text-align: left; }
img { max-width: 100%; border: 1px solid #ddd; margin: 0.5rem 0; }
.meta { color: #666; font-size: 0.9rem; }
</style>
</head>
<body>
<h1>Least-squares line fitting report</h1>
<p class="meta">
run {{ report.RunID }} &middot; seed {{ report.Seed }} &middot;
created {{ report.CreatedAt|date:"2006-01-02 15:04:05" }}{% if report.Version %} &middot; linefit {{ report.Version }}{% endif %}
</p>

{% for sc in report.Scenarios %}
<h2>Scenario {{ sc.Config.Name }}</h2>
<p class="meta">
n = {{ sc.Config.N }}, true line y = {{ sc.Config.Intercept }} + {{ sc.Config.Slope }}&middot;x,
noise &sigma; = {{ sc.Config.NoiseSigma }},
grid {{ sc.Config.GridCount }} points over [{{ sc.Config.GridLo }}, {{ sc.Config.GridHi }}]
</p>
<table>
<tr><th class="name">Estimator</th><th>Intercept</th><th>Slope</th><th>RSS</th><th>R&sup2;</th></tr>
{% for e in sc.Estimates %}
<tr>
<td class="name">{{ e.Estimator }}</td>
<td>{{ e.Intercept|floatformat:4 }}</td>
<td>{{ e.Slope|floatformat:4 }}</td>
<td>{{ e.RSS|floatformat:4 }}</td>
<td>{{ e.RSquared|floatformat:4 }}</td>
</tr>
{% endfor %}
</table>
<p class="meta">max parameter gap between estimators: {{ sc.MaxParamGap|floatformat:6 }}</p>
{% if sc.PlotFile %}<img src="{{ sc.PlotFile }}" alt="fit plot for {{ sc.Config.Name }}">{% endif %}
{% endfor %}

{% if report.ResolutionSweep %}
<h2>Grid resolution sweep</h2>
<table>
<tr><th>Resolution</th><th>Grid RSS</th><th>Closed-form RSS</th><th>Gap</th></tr>
{% for p in report.ResolutionSweep %}
<tr>
<td>{{ p.Resolution }}</td>
<td>{{ p.GridRSS|floatformat:6 }}</td>
<td>{{ p.ClosedFormRSS|floatformat:6 }}</td>
<td>{{ p.Gap|floatformat:6 }}</td>
</tr>
{% endfor %}
</table>
{% if report.ResolutionPlot %}<img src="{{ report.ResolutionPlot }}" alt="grid resolution convergence">{% endif %}
{% endif %}
</body>
</html>
`))

// WriteHTML renders the bundle's index.html into runDir.
func WriteHTML(r *Report, runDir string) error {
	if r == nil {
		return fmt.Errorf("report cannot be nil")
	}

	out, err := indexTemplate.Execute(pongo2.Context{"report": r})
	if err != nil {
		return fmt.Errorf("failed to render report template: %w", err)
	}

	path := filepath.Join(runDir, "index.html")
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write index.html: %w", err)
	}
	return nil
}
