// Copyright 2020 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package dirwatch

import (
	"html/template"
	"net/http"
	"time"

	"github.com/golang/glog"
)

const statusTemplate = `
<!DOCTYPE html>
<html>
<head>
<title>dirwatch on {{.BindAddress}}</title>
</head>
<body>
<h1>dirwatch on {{.BindAddress}}</h1>
<p>Build: {{.BuildInfo}}</p>
<p>Metrics: <a href="/metrics">prometheus</a></p>
<p>Info: {{ if .HTTPInfoEndpoints }}<a href="/tracez">tracez</a>{{ else }} disabled {{ end }}</p>
<p>Debug: {{ if .HTTPDebugEndpoints }}<a href="/debug/pprof">debug/pprof</a>, <a href="/debug/vars">debug/vars</a>{{ else }} disabled {{ end }}</p>
<h2>Watching {{.Dir}}</h2>
<p>{{.Listeners}} listeners, {{len .Files}} files</p>
<table border=1>
<tr><th>file</th><th>modified</th></tr>
{{range .Files}}<tr><td>{{.Path}}</td><td>{{.ModTime}}</td></tr>
{{end}}</table>
</body>
</html>
`

var statusTmpl = template.Must(template.New("status").Parse(statusTemplate))

type fileStatus struct {
	Path    string
	ModTime time.Time
}

// ServeHTTP satisfies the http.Handler interface, and is used to serve the
// root page of dirwatch for online status reporting.
func (m *Server) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	s := m.w.Snapshot()
	files := make([]fileStatus, 0, s.Len())
	for _, p := range s.Paths() {
		t, _ := s.ModTime(p)
		files = append(files, fileStatus{p, t})
	}
	data := struct {
		BindAddress        string
		BuildInfo          string
		HTTPDebugEndpoints bool
		HTTPInfoEndpoints  bool
		Dir                string
		Listeners          int
		Files              []fileStatus
	}{
		m.Addr(),
		m.buildInfo.String(),
		m.httpDebugEndpoints,
		m.httpInfoEndpoints,
		m.w.Dir(),
		m.w.Listeners(),
		files,
	}
	w.Header().Add("Content-type", "text/html")
	w.WriteHeader(http.StatusOK)
	if err := statusTmpl.Execute(w, data); err != nil {
		glog.Warningf("Error while writing status page: %s", err)
	}
}
