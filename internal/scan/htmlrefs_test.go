package scan

import "testing"

func containsRef(refs []string, want string) bool {
	for _, r := range refs {
		if r == want {
			return true
		}
	}
	return false
}

func TestExtractHTMLRefs(t *testing.T) {
	page := `<!DOCTYPE html>
<html>
<head>
  <link rel="icon" href="favicon.ico">
  <link rel="stylesheet" href="css/style.css">
</head>
<body style="background-image: url('img/body-bg.jpg')">
  <img src="img/hero.png" srcset="img/hero.png 1x, img/hero@2x.png 2x">
  <picture>
    <source srcset="img/pic-small.webp 480w, img/pic-large.webp 1200w">
    <img data-src="img/lazy.gif">
  </picture>
  <video poster="img/poster.jpg"></video>
  <img src="https://cdn.example.com/external.png">
</body>
</html>`

	refs := ExtractHTMLRefs([]byte(page))

	expected := []string{
		"favicon.ico",
		"css/style.css",
		"img/body-bg.jpg",
		"img/hero.png",
		"img/hero@2x.png",
		"img/pic-small.webp",
		"img/pic-large.webp",
		"img/lazy.gif",
		"img/poster.jpg",
		"https://cdn.example.com/external.png",
	}

	for _, want := range expected {
		if !containsRef(refs, want) {
			t.Errorf("Expected reference %q in %v", want, refs)
		}
	}
}

func TestExtractHTMLRefsInvalidMarkup(t *testing.T) {
	// html.Parse is lenient; even broken markup should yield what it can
	refs := ExtractHTMLRefs([]byte(`<img src="a.png"><div><img src="b.png"`))
	if !containsRef(refs, "a.png") || !containsRef(refs, "b.png") {
		t.Errorf("Expected refs from lenient parse, got %v", refs)
	}
}

func TestExtractCSSRefs(t *testing.T) {
	css := `
.hero { background: url("../img/hero-bg.jpg") no-repeat; }
.logo { background-image: url('img/logo.svg'); }
@font-face { src: url(fonts/icons.woff2) format("woff2"); }
.inline { background: url(data:image/png;base64,iVBOR); }
`

	refs := ExtractCSSRefs([]byte(css))

	for _, want := range []string{"../img/hero-bg.jpg", "img/logo.svg", "fonts/icons.woff2"} {
		if !containsRef(refs, want) {
			t.Errorf("Expected reference %q in %v", want, refs)
		}
	}
}

func TestSplitSrcset(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"img/a.png 1x, img/b.png 2x", []string{"img/a.png", "img/b.png"}},
		{"img/only.png", []string{"img/only.png"}},
		{"  img/w.png 480w ,img/v.png 800w", []string{"img/w.png", "img/v.png"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := splitSrcset(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("splitSrcset(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("splitSrcset(%q)[%d] = %q, expected %q",
						tt.input, i, got[i], tt.expected[i])
				}
			}
		})
	}
}
