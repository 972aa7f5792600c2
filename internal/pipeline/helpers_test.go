package pipeline

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// notionPage is a trimmed Notion export with the elements every stage touches.
const notionPage = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Post</title><style>body{}</style></head>
<body><article id="a1" class="page sans"><header><h1 class="page-title">Post</h1></header>
<div class="page-body"><h1>One</h1><h2>Two</h2><h3>Three</h3>
<pre class="code"><code>print(1)</code></pre>
<details open=""><summary>s</summary>hidden</details>
<img src="Post/a.png"></div></article></body></html>`

func mustParse(t *testing.T, content string) *html.Node {
	t.Helper()

	doc, err := ParseString(content)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	return doc
}

func mustRender(t *testing.T, n *html.Node) string {
	t.Helper()

	out, err := RenderString(n)
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	return out
}

func assertContains(t *testing.T, got string, want ...string) {
	t.Helper()

	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("output missing %q\ngot: %s", w, got)
		}
	}
}

func assertNotContains(t *testing.T, got string, unwanted ...string) {
	t.Helper()

	for _, u := range unwanted {
		if strings.Contains(got, u) {
			t.Errorf("output should not contain %q\ngot: %s", u, got)
		}
	}
}
