// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package templates

const (
	/**** Configuration template ****/
	// executed with text/template over a configuration.Configuration
	ConfigurationTemplate = `-- connmgr.conf  -*- mode: lua -*-

return {
    data_directory = {{printf "%q" .DataDirectory}},
    pidfile = {{printf "%q" .PidFile}},

    poll_interval = {{printf "%q" .PollInterval}},
    parallel_poll = {{.ParallelPoll}},
    addr_cache_ttl = {{printf "%q" .AddrCacheTTL}},

    panel = {
        listen = {{printf "%q" .Panel.Listen}},
        rate_limit = {{.Panel.RateLimit}},
        rate_burst = {{.Panel.RateBurst}},
{{- if .Panel.TLS}}
        certificate = {{printf "%q" .Panel.Certificate}},
        private_key = {{printf "%q" .Panel.PrivateKey}},
{{- end}}
    },

    nodes = {
{{- range .Nodes}}
        {
            name = {{printf "%q" .Name}},
            rpc = {{printf "%q" .RPC}},
            token = {{printf "%q" .Token}},
{{- if .P2PAddress}}
            p2p_address = {{printf "%q" .P2PAddress}},
{{- else}}
            peer_id = {{printf "%q" .PeerID}},
{{- end}}
        },
{{- end}}
    },

    logging = {
        directory = {{printf "%q" .Logging.Directory}},
        file = {{printf "%q" .Logging.File}},
        size = {{.Logging.Size}},
        count = {{.Logging.Count}},
        console = {{.Logging.Console}},
        levels = {
{{- range $tag, $level := .Logging.Levels}}
            {{$tag}} = {{printf "%q" $level}},
{{- end}}
        },
    },
}
`

	/**** Panel template ****/
	// executed with html/template over a web.Matrix
	PanelTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; }
table { border-collapse: collapse; }
th, td { padding: 2px 6px; text-align: center; }
form { display: inline; margin: 0; }
.error { color: #b00; }
</style>
</head>
<body>
<div class="ConnMgr">
<h3 id="title">{{.Title}}</h3>
<p id="error" class="error">{{.Error}}</p>
<table>
<thead>
<tr><th></th>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{- range .Rows}}
<tr><th>{{.Name}}</th>
{{- range .Cells}}
<td><form method="post" action="/toggle">
<input type="hidden" name="from" value="{{.From}}">
<input type="hidden" name="to" value="{{.To}}">
<input type="hidden" name="action" value="{{if .Checked}}disconnect{{else}}connect{{end}}">
<input type="checkbox" data-key="{{.Key}}" onchange="this.form.submit()"{{if .Checked}} checked{{end}}{{if .Disabled}} disabled{{end}}>
</form></td>
{{- end}}
</tr>
{{- end}}
</tbody>
</table>
<div>
{{- range .Buttons}}
<form method="post" action="/topology/{{.Kind}}"><button type="submit">{{.Label}}</button></form>
{{- end}}
</div>
</div>
<script>
(function () {
  var proto = "https:" === location.protocol ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (event) {
    var s = JSON.parse(event.data);
    document.title = "Connection Manager" + (s.lock ? " (syncing)" : "");
    document.getElementById("title").textContent = document.title;
    document.getElementById("error").textContent = s.error || "";
    var boxes = document.querySelectorAll("input[data-key]");
    for (var i = 0; i < boxes.length; i += 1) {
      var box = boxes[i];
      var on = true === s.conns[box.dataset.key];
      box.checked = on;
      box.disabled = s.lock;
      box.form.elements["action"].value = on ? "disconnect" : "connect";
    }
  };
})();
</script>
</body>
</html>
`
)
