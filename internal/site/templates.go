package site

const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="{{.Theme}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Header.Name}} | {{.SiteTitle}}</title>
<link rel="stylesheet" href="style.css">
</head>
<body>
<aside class="sidebar">
  <a class="brand" href="index.html">{{.SiteTitle}}</a>
  <nav>
  {{- range .Sidebar}}
    <section class="group{{if .Expanded}} open{{end}}{{if .HasActive}} has-active{{end}}">
      <button class="group-toggle" type="button">{{.Category}}</button>
      <ul>
      {{- range .Items}}
        <li><a href="{{.Href}}"{{if .Active}} class="active" aria-current="page"{{end}}>{{.Name}}</a></li>
      {{- end}}
      </ul>
    </section>
  {{- end}}
  </nav>
</aside>
<main>
  <header class="pattern-header">
    <span class="badge">{{.Header.Category}}</span>
    <h1>{{.Header.Name}}</h1>
    <p class="tagline">{{.Header.Tagline}}</p>
    <div class="description">{{.Description}}</div>
  </header>

  <section class="panel" id="diagram">
    <div class="panel-bar">
      <h2>Structure</h2>
      <button type="button" class="expand" data-modal="diagram-modal">Expand</button>
    </div>
    <div class="mermaid">{{.Diagram}}</div>
    {{- if .TextDiagram}}
    <details><summary>Text diagram</summary><pre class="text-diagram">{{.TextDiagram}}</pre></details>
    {{- end}}
  </section>

  <section class="panel" id="roles">
    <h2>Participants</h2>
    <ul class="roles">
    {{- range .Roles}}
      <li><span class="icon">{{.Icon}}</span><div><h3>{{.Title}}</h3><p>{{.Description}}</p></div></li>
    {{- end}}
    </ul>
  </section>

  <section class="panel" id="code">
    <div class="panel-bar">
      <div class="tabs" role="tablist">
      {{- range .Tabs}}
        <button type="button" role="tab" data-lang="{{.Language}}"{{if .Active}} class="active"{{end}}>{{.Label}}</button>
      {{- end}}
      </div>
      <div>
        <button type="button" class="copy">Copy</button>
        <button type="button" class="expand" data-modal="code-modal">Expand</button>
      </div>
    </div>
    {{- range .Tabs}}
    <div class="tab-pane{{if .Active}} active{{end}}" data-lang="{{.Language}}">{{.Code}}</div>
    {{- end}}
  </section>

  <nav class="pager">
    <a href="{{.Prev.Href}}" rel="prev">&larr; {{.Prev.Name}}</a>
    <a href="{{.Next.Href}}" rel="next">{{.Next.Name}} &rarr;</a>
  </nav>
</main>

<div class="modal" id="diagram-modal" hidden>
  <div class="modal-body">
    <div class="panel-bar"><h2>UML: {{.Header.Name}}</h2><button type="button" class="close">Close</button></div>
    <div class="mermaid">{{.Diagram}}</div>
  </div>
</div>
<div class="modal" id="code-modal" hidden>
  <div class="modal-body">
    <div class="panel-bar"><h2>Code: {{.Header.Name}}</h2><button type="button" class="close">Close</button></div>
    <div class="modal-code"></div>
  </div>
</div>

<script src="{{.MermaidURL}}"></script>
<script src="script.js"></script>
</body>
</html>
`

const cssContent = `:root {
  --bg: #ffffff;
  --fg: #1f2328;
  --muted: #59636e;
  --panel: #f6f8fa;
  --border: #d1d9e0;
  --accent: #0969da;
}
[data-theme="dark"] {
  --bg: #0d1117;
  --fg: #e6edf3;
  --muted: #9198a1;
  --panel: #151b23;
  --border: #3d444d;
  --accent: #4493f8;
}
* { box-sizing: border-box; }
body {
  margin: 0;
  display: flex;
  min-height: 100vh;
  background: var(--bg);
  color: var(--fg);
  font: 15px/1.5 -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif;
}
a { color: var(--accent); text-decoration: none; }
.sidebar {
  width: 260px;
  flex-shrink: 0;
  padding: 1rem;
  border-right: 1px solid var(--border);
  background: var(--panel);
  position: sticky;
  top: 0;
  height: 100vh;
  overflow-y: auto;
}
.brand { display: block; font-weight: 600; font-size: 1.1rem; margin-bottom: 1rem; color: var(--fg); }
.group-toggle {
  width: 100%;
  text-align: left;
  background: none;
  border: none;
  color: var(--fg);
  font-weight: 600;
  padding: .4rem 0;
  cursor: pointer;
  text-transform: capitalize;
}
.group-toggle::before { content: "\25B8  "; }
.group.open .group-toggle::before { content: "\25BE  "; }
.group.has-active .group-toggle { color: var(--accent); }
.group ul { display: none; list-style: none; margin: 0; padding-left: 1rem; }
.group.open ul { display: block; }
.group li a { display: block; padding: .15rem .4rem; border-radius: 4px; color: var(--muted); }
.group li a.active { background: var(--accent); color: var(--bg); }
main { flex: 1; max-width: 980px; padding: 2rem 3rem; }
.badge {
  display: inline-block;
  padding: 0 .5rem;
  border: 1px solid var(--border);
  border-radius: 999px;
  color: var(--muted);
  font-size: .8rem;
  text-transform: capitalize;
}
.tagline { color: var(--muted); font-style: italic; }
.panel { border: 1px solid var(--border); border-radius: 8px; padding: 1rem; margin: 1.5rem 0; }
.panel-bar { display: flex; justify-content: space-between; align-items: center; gap: 1rem; }
.panel h2 { font-size: 1rem; margin: 0; }
button { font: inherit; }
.panel-bar button, .tabs button {
  background: var(--panel);
  color: var(--fg);
  border: 1px solid var(--border);
  border-radius: 6px;
  padding: .2rem .7rem;
  cursor: pointer;
}
.tabs button.active { border-color: var(--accent); color: var(--accent); }
.tab-pane { display: none; }
.tab-pane.active { display: block; }
.tab-pane pre, .modal-code pre { padding: 1rem; overflow-x: auto; border-radius: 6px; }
.roles { list-style: none; padding: 0; display: grid; grid-template-columns: repeat(auto-fill, minmax(260px, 1fr)); gap: .8rem; }
.roles li { display: flex; gap: .6rem; padding: .6rem; border: 1px solid var(--border); border-radius: 6px; }
.roles .icon { font-size: 1.4rem; line-height: 1; }
.roles h3 { margin: 0; font-size: .95rem; }
.roles p { margin: .2rem 0 0; color: var(--muted); font-size: .9rem; }
.text-diagram { font-size: 12px; line-height: 1.2; overflow-x: auto; }
.pager { display: flex; justify-content: space-between; margin-top: 2rem; }
.modal { position: fixed; inset: 0; background: rgba(0, 0, 0, .6); display: flex; align-items: center; justify-content: center; }
.modal[hidden] { display: none; }
.modal-body { background: var(--bg); width: 90vw; height: 90vh; overflow: auto; border-radius: 8px; padding: 1rem; }
`

const jsContent = `(function () {
  var ackMs = 2000;

  document.querySelectorAll(".group-toggle").forEach(function (btn) {
    btn.addEventListener("click", function () {
      var group = btn.parentElement;
      var wasOpen = group.classList.contains("open");
      document.querySelectorAll(".group.open").forEach(function (g) { g.classList.remove("open"); });
      if (!wasOpen) group.classList.add("open");
    });
  });

  function activeLang() {
    var tab = document.querySelector(".tabs button.active");
    return tab ? tab.dataset.lang : "";
  }

  function activePane() {
    return document.querySelector('.tab-pane[data-lang="' + activeLang() + '"]');
  }

  document.querySelectorAll(".tabs button").forEach(function (tab) {
    tab.addEventListener("click", function () {
      document.querySelectorAll(".tabs button, .tab-pane").forEach(function (el) {
        el.classList.toggle("active", el.dataset.lang === tab.dataset.lang);
      });
    });
  });

  var copyTimer = null;
  var copyBtn = document.querySelector("button.copy");
  if (copyBtn) {
    copyBtn.addEventListener("click", function () {
      var pane = activePane();
      if (!pane || !navigator.clipboard) return;
      navigator.clipboard.writeText(pane.innerText).then(function () {
        copyBtn.textContent = "Copied!";
        clearTimeout(copyTimer);
        copyTimer = setTimeout(function () { copyBtn.textContent = "Copy"; }, ackMs);
      }).catch(function () {});
    });
  }

  function openModal(id) {
    var modal = document.getElementById(id);
    if (!modal) return;
    if (id === "code-modal") {
      var pane = activePane();
      modal.querySelector(".modal-code").innerHTML = pane ? pane.innerHTML : "";
    }
    modal.hidden = false;
  }

  function closeModals() {
    document.querySelectorAll(".modal").forEach(function (m) { m.hidden = true; });
  }

  function modalOpen() {
    return document.querySelector(".modal:not([hidden])") !== null;
  }

  document.querySelectorAll("button.expand").forEach(function (btn) {
    btn.addEventListener("click", function () { openModal(btn.dataset.modal); });
  });
  document.querySelectorAll(".modal").forEach(function (m) {
    m.addEventListener("click", function (e) {
      if (e.target === m || e.target.classList.contains("close")) closeModals();
    });
  });

  document.addEventListener("keydown", function (e) {
    if (e.key === "Escape") {
      closeModals();
      return;
    }
    if (modalOpen()) return;
    var rel = e.key === "ArrowDown" ? "next" : e.key === "ArrowUp" ? "prev" : "";
    if (!rel) return;
    var link = document.querySelector('.pager a[rel="' + rel + '"]');
    if (link) {
      e.preventDefault();
      window.location.href = link.getAttribute("href");
    }
  });

  if (window.mermaid) {
    var dark = document.documentElement.dataset.theme === "dark";
    window.mermaid.initialize({ startOnLoad: true, theme: dark ? "dark" : "default" });
  }
})();
`
