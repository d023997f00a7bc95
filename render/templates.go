// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package render

const tmplPage = `{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap-icons@1.11.3/font/bootstrap-icons.min.css">
<style>
.icon-rotate{display:inline-block;transform:rotate(90deg)}
#main-table > tbody > tr.summary-row{cursor:pointer}
.detail-row > td{padding:0}
</style>
</head>
<body>
<div class="container-fluid">
<div class="row">
<nav class="col-md-3 col-lg-2 d-md-block bg-light sidebar py-3">
  <ul class="nav flex-column">
    <li class="nav-item"><a id="home-link" class="nav-link" href="{{.HomeHref}}"><i class="bi-house"></i> Home</a></li>
    <li class="nav-item"><a id="about-link" class="nav-link" href="{{.AboutHref}}"><i class="bi-info-circle"></i> About</a></li>
  </ul>
  <h6 class="sidebar-heading px-3 mt-4 mb-1 text-muted">Phenomena</h6>
  <ul id="phenomena-menu" class="nav flex-column">
  {{- range .Menu}}
    <li class="nav-item"><a class="nav-link{{if .Active}} active{{end}}" href="{{.Href}}"><i class="{{.Icon}}"></i> {{.Name}}</a></li>
  {{- end}}
  </ul>
</nav>
<main class="col-md-9 ms-sm-auto col-lg-10 px-md-4 py-3">
{{- if .Alert}}
<div id="error-alert" class="alert alert-danger" role="alert">{{.Alert}}</div>
{{- end}}
<div id="home"{{if ne .Panel "home"}} hidden{{end}}>
  <h1>{{.Title}}</h1>
  <p>Select a phenomenon in the menu to display the rules extracted for each treebank.</p>
</div>
<div id="about"{{if ne .Panel "about"}} hidden{{end}}>
{{- if .About}}
{{.About}}
{{- else}}
  <h1>About</h1>
  <p>Grammatical rules extracted from treebanks, one table per phenomenon.</p>
{{- end}}
</div>
<div id="results"{{if ne .Panel "results"}} hidden{{end}}>
  <h2 id="results-text">{{if .Results}}{{.Results.HeadingHTML}}{{end}}</h2>
  {{- if .ExportHref}}
  <p class="export-links small">
    <a href="{{.ExportHref}}/xlsx"><i class="bi-file-earmark-spreadsheet"></i> XLSX</a>
    <a href="{{.ExportHref}}/markdown"><i class="bi-markdown"></i> Markdown</a>
  </p>
  {{- end}}
  <table id="main-table" class="table table-hover">
    <thead>
      <tr>{{range .SummaryColumns}}<th scope="col">{{.}}</th>{{end}}</tr>
    </thead>
    <tbody>
    {{- if .Results}}{{range .Results.Rows}}
      <tr class="summary-row">
        <th scope="row">{{.Seq}}</th>
        <td>{{.TreebankID}}</td>
        <td>{{.FilteredDepsLen}}</td>
        <td>{{.Positive}}</td>
        <td>{{.Toggle}}</td>
      </tr>
      <tr class="detail-row" hidden>
        <td colspan="{{$.DetailColspan}}">
          <table class="table mb-0 table-hover">
            <thead><tr>{{range .Detail.Columns}}<th>{{.}}</th>{{end}}</tr></thead>
            <tbody>
            {{- range .Detail.Rows}}
              <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
            {{- end}}
            </tbody>
          </table>
        </td>
      </tr>
    {{- end}}{{end}}
    </tbody>
  </table>
</div>
</main>
</div>
</div>
<script>
(function () {
  var panels = ["home", "about", "results"];
  function showPanel(id) {
    panels.forEach(function (p) {
      document.getElementById(p).hidden = p !== id;
    });
  }
  document.getElementById("home-link").addEventListener("click", function (evt) {
    evt.preventDefault();
    showPanel("home");
  });
  document.getElementById("about-link").addEventListener("click", function (evt) {
    evt.preventDefault();
    showPanel("about");
  });
  document.querySelectorAll("#main-table > tbody > tr.summary-row").forEach(function (row) {
    row.addEventListener("click", function () {
      var detail = row.nextElementSibling;
      detail.hidden = !detail.hidden;
    });
  });
  {{- if .Alert}}
  window.alert({{.Alert}});
  {{- end}}
})();
</script>
</body>
</html>
{{end}}`
