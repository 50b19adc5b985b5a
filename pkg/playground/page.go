package playground

import (
	"strconv"

	"github.com/vango-dev/declarative/pkg/render"
	. "github.com/vango-dev/declarative/pkg/vdom"
)

const clientScript = `(function () {
  var root = document.getElementById("root");
  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  var version = 0;
  function connect() {
    var ws = new WebSocket(proto + "//" + location.host + "/ws");
    ws.onmessage = function (ev) {
      var msg = JSON.parse(ev.data);
      if (msg.type === "render" && msg.version > version) {
        version = msg.version;
        root.innerHTML = msg.html;
      }
    };
    ws.onclose = function () { setTimeout(connect, 1000); };
  }
  document.addEventListener("click", function (ev) {
    var name = ev.target.getAttribute("data-signal");
    if (!name) return;
    fetch("/signals/" + encodeURIComponent(name), {
      method: "POST",
      headers: {"Content-Type": "application/x-www-form-urlencoded"},
      body: "value=toggle"
    });
  });
  connect();
})();`

// page wraps the current frame in the playground shell.
func page(f Frame, names []string, state map[string]bool) *VNode {
	controls := make([]*VNode, 0, len(names))
	for _, name := range names {
		controls = append(controls, Li(
			Button(A("type", "button"), Data("signal", name), A("aria-pressed", strconv.FormatBool(state[name])), name),
		))
	}

	return Html(A("lang", "en"),
		Head(
			Meta(A("charset", "utf-8")),
			Title("declarative playground"),
		),
		Body(
			Header(H1("declarative playground"), Nav(Ul(Class("signals"), controls))),
			Main(ID("root"), Data("version", strconv.FormatUint(f.Version, 10)), Raw(f.HTML)),
			Script(Raw(clientScript)),
		),
	)
}

func renderPage(r *render.Renderer, f Frame, names []string, state map[string]bool) (string, error) {
	body, err := r.RenderToString(page(f, names, state))
	if err != nil {
		return "", err
	}
	return "<!DOCTYPE html>\n" + body, nil
}
