package odflavor

import "testing"

func TestDispatchApache(t *testing.T) {
	body := []byte(`<html><head><title>Index of /files</title></head><body>
<h1>Index of /files</h1>
<pre><a href="/files/">Parent Directory</a>
<a href="a.zip">a.zip</a>
<a href="sub/">sub/</a>
</pre></body></html>`)

	flavor, doc, err := Dispatch(body, "Apache/2.4.41 (Ubuntu)")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if flavor != Apache {
		t.Fatalf("flavor = %v, want Apache", flavor)
	}

	links := Extract(flavor, doc, "http://x/files/")
	want := []string{"a.zip", "sub/"}
	if len(links) != len(want) {
		t.Fatalf("links = %v, want %v", links, want)
	}
	for i, w := range want {
		if links[i] != w {
			t.Errorf("links[%d] = %q, want %q", i, links[i], w)
		}
	}
}

func TestDispatchNginx(t *testing.T) {
	body := []byte(`<html><body>
<pre><a href="../">../</a>
<a href="one.mp4">one.mp4</a>
<a href="two.mp4">two.mp4</a>
</pre>
</body></html>`)

	flavor, doc, err := Dispatch(body, "nginx/1.21.0")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if flavor != NGINX {
		t.Fatalf("flavor = %v, want NGINX", flavor)
	}

	links := Extract(flavor, doc, "http://x/dir/")
	if len(links) != 2 || links[0] != "one.mp4" || links[1] != "two.mp4" {
		t.Errorf("links = %v", links)
	}
}

func TestDispatchMicrosoftIIS(t *testing.T) {
	body := []byte(`<html><body>
<pre><a href="/">[To Parent Directory]</a>
<a href="movies/">movies/</a>
<a href="readme.txt">readme.txt</a>
</pre>
</body></html>`)

	flavor, doc, err := Dispatch(body, "Microsoft-IIS/10.0")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if flavor != MicrosoftIIS {
		t.Fatalf("flavor = %v, want MicrosoftIIS", flavor)
	}

	links := Extract(flavor, doc, "http://x/")
	if len(links) != 2 || links[0] != "movies/" || links[1] != "readme.txt" {
		t.Errorf("links = %v", links)
	}
}

func TestDispatchOLAINDEX(t *testing.T) {
	body := []byte(`<html><body><div class="mdui-container">
<a data-route="/home/docs">docs</a>
<a data-route="/download/docs/file.pdf">file.pdf</a>
<a href="?page=2">next</a>
</div></body></html>`)

	flavor, doc, err := Dispatch(body, "")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if flavor != OLAINDEX {
		t.Fatalf("flavor = %v, want OLAINDEX", flavor)
	}

	links := Extract(flavor, doc, "http://x/docs")
	want := []string{"/docs", "/docs/file.pdf", "?page=2"}
	if len(links) != len(want) {
		t.Fatalf("links = %v, want %v", links, want)
	}
}

func TestDispatchAutoIndexPHPBreadcrumbSplit(t *testing.T) {
	withCrumb := []byte(`<html><body>
<nav class="crumbs">Home / docs</nav>
<table><tbody>
<tr><td><a class="autoindex_a" href="a.txt">a.txt</a></td></tr>
</tbody></table>
</body></html>`)

	flavor, _, err := Dispatch(withCrumb, "")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if flavor != AutoIndexPHP {
		t.Fatalf("flavor = %v, want AutoIndexPHP", flavor)
	}

	withoutCrumb := []byte(`<html><body>
<table><tbody>
<tr><td><a class="default_a" href="a.txt">a.txt</a></td></tr>
</tbody></table>
</body></html>`)

	flavor, doc, err := Dispatch(withoutCrumb, "")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if flavor != AutoIndexPHPNoCrumb {
		t.Fatalf("flavor = %v, want AutoIndexPHPNoCrumb", flavor)
	}

	links := Extract(flavor, doc, "http://x/")
	if len(links) != 1 || links[0] != "a.txt" {
		t.Errorf("links = %v", links)
	}
}

func TestDispatchDirectoryLister(t *testing.T) {
	body := []byte(`<html><body>
<ul>
<li><a href="report.pdf">report.pdf</a></li>
<li><a href="images/">images/</a></li>
</ul>
</body></html>`)

	flavor, doc, err := Dispatch(body, "")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if flavor != DirectoryLister {
		t.Fatalf("flavor = %v, want DirectoryLister", flavor)
	}

	links := Extract(flavor, doc, "http://x/")
	if len(links) != 2 {
		t.Errorf("links = %v", links)
	}
}

func TestDispatchDirectoryListingScript(t *testing.T) {
	body := []byte(`<html><body>
<div id="listingcontainer">
<a href="movie.mkv">movie.mkv</a>
</div>
</body></html>`)

	flavor, doc, err := Dispatch(body, "")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if flavor != DirectoryListingScript {
		t.Fatalf("flavor = %v, want DirectoryListingScript", flavor)
	}

	links := Extract(flavor, doc, "http://x/")
	if len(links) != 1 || links[0] != "movie.mkv" {
		t.Errorf("links = %v", links)
	}
}

func TestDispatchGenericFallback(t *testing.T) {
	body := []byte(`<html><body>
<div class="listing">
<a href="file1.txt">file1.txt</a>
<a href="/view/file1.txt">preview</a>
</div>
</body></html>`)

	flavor, doc, err := Dispatch(body, "")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if flavor != Generic {
		t.Fatalf("flavor = %v, want Generic", flavor)
	}

	links := Extract(flavor, doc, "http://x/")
	if len(links) != 1 || links[0] != "file1.txt" {
		t.Errorf("links = %v, want just file1.txt (preview link discarded as noise)", links)
	}
}

func TestDispatchSkipsSelfAndParentLinks(t *testing.T) {
	body := []byte(`<html><body>
<h1>Index of /files</h1>
<pre>
<a href="http://x/files/">Parent Directory</a>
<a href="./">.</a>
<a href="keep.txt">keep.txt</a>
</pre>
</body></html>`)

	flavor, doc, err := Dispatch(body, "Apache")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	links := Extract(flavor, doc, "http://x/files/")
	if len(links) != 1 || links[0] != "keep.txt" {
		t.Errorf("links = %v, want [keep.txt]", links)
	}
}
