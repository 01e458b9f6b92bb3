package handlers

import "html/template"

var progressTemplate = template.Must(template.New("progress").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
  body { margin: 0; font-family: system-ui, sans-serif; }
  main { height: 100vh; display: flex; flex-direction: column; align-items: center; justify-content: center; gap: 2rem; padding: 1rem; }
  h1 { font-size: 3rem; font-weight: 900; text-align: center; word-break: break-word; margin: 0; }
  .track { height: 2rem; width: 100%; max-width: 42rem; border: 1px solid #000; }
  .fill { background: #d1d5db; height: 100%; }
  .percent { font-size: 2.25rem; font-weight: 800; margin: 0; }
  .left { font-family: monospace; font-size: 0.75rem; min-height: 2rem; }
  .big { font-size: 6rem; font-weight: 900; text-align: center; }
  .hidden { display: none; }
  footer a { font-size: 0.875rem; text-decoration: underline; color: inherit; }
</style>
</head>
<body>
<main>
  <section id="countdown" class="big hidden"></section>
  <section id="bar">
    <h1>{{.Name}}</h1>
    <div class="track"><div class="fill" id="fill" style="width: {{.Percent}}%"></div></div>
    <h2 class="percent" id="percent">{{.Percent}}%</h2>
    <div class="left" id="left"></div>
    {{if not .IsYearPage}}<footer><a href="/">back to year progress</a></footer>{{end}}
  </section>
</main>
<script>
(function () {
  var endTime = new Date("{{.EndRFC3339}}");
  var totalSeconds = {{.TotalSeconds}};
  var closeThreshold = {{.CloseThreshold}};
  var completed = false;
  var intervalId = null;

  var bar = document.getElementById("bar");
  var countdown = document.getElementById("countdown");
  var fill = document.getElementById("fill");
  var percentEl = document.getElementById("percent");
  var leftEl = document.getElementById("left");

  function tick() {
    // Always recompute from the absolute end instant; deriving the new
    // remainder from the previous one accumulates scheduling jitter.
    var remainingMs = endTime.getTime() - Date.now();
    var remaining = Math.floor(remainingMs / 1000);
    if (remaining < 0) remaining = 0;

    var elapsed = totalSeconds - remaining;
    if (elapsed < 0) elapsed = 0;
    if (elapsed > totalSeconds) elapsed = totalSeconds;
    var percent = totalSeconds > 0 ? Math.floor(100 * elapsed / totalSeconds) : 100;

    if (remaining > 0 && remaining <= closeThreshold) {
      bar.classList.add("hidden");
      countdown.classList.remove("hidden");
      countdown.textContent = remaining;
    } else {
      countdown.classList.add("hidden");
      bar.classList.remove("hidden");
      fill.style.width = percent + "%";
      percentEl.textContent = percent + "%";
      leftEl.textContent = remaining > 0 ? formatLeft(remainingMs) : "done";
    }

    if (remaining <= 0 && !completed) {
      completed = true;
      countdown.classList.remove("hidden");
      bar.classList.add("hidden");
      countdown.textContent = "Done!";
      if (intervalId !== null) {
        clearInterval(intervalId);
        intervalId = null;
      }
    }
  }

  function formatLeft(ms) {
    var s = Math.floor(ms / 1000);
    var days = Math.floor(s / 86400);
    var hours = Math.floor((s % 86400) / 3600);
    var minutes = Math.floor((s % 3600) / 60);
    var seconds = s % 60;
    var parts = [];
    if (days > 0) parts.push(days + "d");
    parts.push(hours + "h", minutes + "m", seconds + "s");
    return "left: " + parts.join(" ");
  }

  tick();
  intervalId = setInterval(tick, 1000);
  window.addEventListener("beforeunload", function () {
    if (intervalId !== null) clearInterval(intervalId);
  });
})();
</script>
</body>
</html>
`))

var notFoundTemplate = template.Must(template.New("notfound").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Progress bar not found</title>
<style>
  body { margin: 0; font-family: system-ui, sans-serif; }
  main { height: 100vh; display: flex; align-items: center; justify-content: center; text-align: center; }
  a { text-decoration: underline; color: inherit; }
</style>
</head>
<body>
<main>
  <div>
    <h1>Progress bar not found</h1>
    <p>{{.Message}}</p>
    <a href="/">back to year progress</a>
  </div>
</main>
</body>
</html>
`))
