package security

import "testing"

func TestSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hey", "hey"},
		{"H2", "h2"},
		{"H2 again", "h2-again"},
		{"H4 some \U0001F603 brOK!$en title ééààà", "h4-some--broken-title-ééààà"},
	}
	for _, c := range cases {
		if got := Slug(c.in); got != c.want {
			t.Errorf("Slug(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestHeadingID(t *testing.T) {
	if got := HeadingID("Hey"); got != "h-hey" {
		t.Errorf("HeadingID = %q", got)
	}
}
