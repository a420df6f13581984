package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestCompactText(t *testing.T) {
	cases := []struct {
		name string
		html string
		want string
	}{
		{
			name: "nested elements",
			html: `<p><strong>Shoots:</strong>
			Right
			</p>`,
			want: "Shoots: Right",
		},
		{
			name: "non breaking spaces",
			html: "<p>6-6,\u00a0216lb\u00a0(198cm,\u00a097kg)</p>",
			want: "6-6, 216lb (198cm, 97kg)",
		},
		{
			name: "newlines inside a phrase",
			html: "<p><strong>Draft:</strong>\nLos\nAngeles Lakers, 1st round</p>",
			want: "Draft: Los Angeles Lakers, 1st round",
		},
		{
			name: "empty",
			html: "<p>   \n\t </p>",
			want: "",
		},
	}
	for _, c := range cases {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(c.html))
		require.NoError(t, err)
		got := CompactText(doc.Find("p"))
		require.Equal(t, c.want, got, c.name)
	}
}

func TestGetText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<h1><span>Kobe Bryant</span></h1>`,
	))
	require.NoError(t, err)
	sel := doc.Find("h1")
	require.Len(t, sel.Nodes, 1)
	require.Equal(t, "Kobe Bryant", GetText(sel.Nodes[0]))
}
