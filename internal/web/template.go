package web

// indexTemplate is the whole frontend: one form, one section per
// configured drivetrain, and a download link. Styling mirrors the CLI
// palette (steel blue primary, rose highlight).
const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Bicycle Gear-Range Calculator</title>
  <style>
    body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 60rem; color: #222; }
    h1 { color: #006699; }
    h2 { color: #006699; border-bottom: 2px solid #006699; padding-bottom: .25rem; }
    form.config { display: grid; grid-template-columns: 14rem 1fr; gap: .5rem 1rem; max-width: 36rem; }
    form.config label { align-self: center; }
    form.config input, form.config select { padding: .3rem; }
    button { background: #006699; color: #fff; border: none; padding: .4rem 1rem; cursor: pointer; }
    button.remove { background: #cc6699; }
    .error { background: #fdd; border: 1px solid #c33; padding: .5rem 1rem; }
    .meta { color: #666; font-size: .9rem; }
    section.config { margin-bottom: 2rem; }
    a.download { display: inline-block; margin-top: 1rem; color: #006699; }
  </style>
</head>
<body>
  <h1>Bicycle Gear-Range Calculator</h1>
  <p>Configure a drivetrain to see the speed range each gear covers at your cadence.</p>

  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}

  <h2>Configure your Drivetrain</h2>
  <form class="config" method="post" action="/configurations">
    <label for="name">Configuration Name</label>
    <input id="name" name="name" value="{{.Form.Name}}" required>

    <label for="chainring">Chainring Cogs</label>
    <input id="chainring" name="chainring" value="{{.Form.Chainring}}" placeholder="40">

    <label for="preset">Cassette</label>
    <select id="preset" name="preset">
      {{range .Presets}}<option value="{{.}}"{{if eq . $.Form.Preset}} selected{{end}}>{{.}}</option>
      {{end}}
    </select>

    <label for="cassette">Custom Cassette Cogs</label>
    <input id="cassette" name="cassette" value="{{.Form.Cassette}}" placeholder="11,13,15,18,21,24,28">

    <label for="wheel">Rim Diameter [mm]</label>
    <input id="wheel" name="wheel" value="{{.Form.Wheel}}">

    <label for="tyre_offset">Tyre Offset [mm]</label>
    <input id="tyre_offset" name="tyre_offset" value="{{.Form.Offset}}">

    <label for="cadence">Cadence Range [rpm]</label>
    <input id="cadence" name="cadence" value="{{.Form.Cadence}}" placeholder="85,95">

    <span></span>
    <button type="submit">Add Configuration</button>
  </form>

  {{if .Configs}}
  <h2>Your current Drivetrains</h2>
  {{range .Configs}}
  <section class="config">
    <h3>Gear Range for {{.Name}}</h3>
    <p class="meta">{{.Meta}}</p>
    {{.PlotSVG}}
    <form method="post" action="/configurations/{{.Name}}/delete">
      <button class="remove" type="submit">Remove {{.Name}}</button>
    </form>
  </section>
  {{end}}
  <a class="download" href="/download.csv">Download Data (CSV)</a>
  {{end}}
</body>
</html>
`
