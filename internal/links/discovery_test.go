package links

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const fixture = `<html><body>
<a href="/admissions">Admissions</a>
<a href="https://www.yu.edu.jo/academics?tab=2#staff">Academics</a>
<a href="https://external.com/b">Elsewhere</a>
<a href="javascript:void(0)">JS</a>
<a href="mailto:info@yu.edu.jo">Mail</a>
<a href="/files/catalog.pdf">Catalog</a>
<a href="/files/Catalog.PDF">Catalog again</a>
<a href="https://yu.edu.jo/files/form.docx">Form</a>
<a href="https://cdn.example.net/remote.pdf">Remote file</a>
<a href="/admissions">Duplicate</a>
</body></html>`

func TestDiscover(t *testing.T) {
	t.Parallel()

	got, err := Discover([]byte(fixture), "https://yu.edu.jo/index.html", "yu.edu.jo")
	require.NoError(t, err)

	require.Equal(t, []string{
		"https://www.yu.edu.jo/academics",
		"https://yu.edu.jo/admissions",
	}, got.Pages)

	require.Equal(t, []string{
		"https://yu.edu.jo/files/Catalog.PDF",
		"https://yu.edu.jo/files/catalog.pdf",
		"https://yu.edu.jo/files/form.docx",
	}, got.Files)
}

func TestDiscoverHonorsBaseHref(t *testing.T) {
	t.Parallel()

	page := `<html><head><base href="https://yu.edu.jo/sub/dir/"></head>
<body><a href="page.html">Relative</a></body></html>`
	got, err := Discover([]byte(page), "https://yu.edu.jo/other.html", "yu.edu.jo")
	require.NoError(t, err)
	require.Equal(t, []string{"https://yu.edu.jo/sub/dir/page.html"}, got.Pages)
}

func TestDiscoverRejectsOtherDomains(t *testing.T) {
	t.Parallel()

	page := `<html><body>
<a href="https://other-domain.example.com/x">Out</a>
<a href="https://other-domain.example.com/doc.pdf">Out file</a>
</body></html>`
	got, err := Discover([]byte(page), "https://yu.edu.jo/", "yu.edu.jo")
	require.NoError(t, err)
	require.Empty(t, got.Pages)
	require.Empty(t, got.Files)
}

func TestDiscoverEmptyBody(t *testing.T) {
	t.Parallel()

	got, err := Discover(nil, "https://yu.edu.jo/", "yu.edu.jo")
	require.NoError(t, err)
	require.Empty(t, got.Pages)
	require.Empty(t, got.Files)
}
