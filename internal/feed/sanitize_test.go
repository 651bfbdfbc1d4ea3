package feed

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>Hurricane nears coast</p>", "Hurricane nears coast"},
		{"<b>Flood</b> and <i>surge</i> warnings", "Flood and surge warnings"},
		{"No tags here", "No tags here"},
		{"<div>  Multiple   spaces  </div>", "Multiple spaces"},
		{"", ""},
		{"<a href=\"url\">Shelter list</a> updated", "Shelter list updated"},
		// Entity-encoded markup must be decoded and then stripped.
		{"&lt;p&gt;Evacuation order &amp; shelter info&lt;/p&gt;", "Evacuation order & shelter info"},
		{"Storm &quot;intensifies&quot; overnight", `Storm "intensifies" overnight`},
	}
	for _, tt := range tests {
		got := Clean(tt.input)
		if got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this is a long string", 10, "this is..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		got := TruncateText(tt.input, tt.n)
		if got != tt.want {
			t.Errorf("TruncateText(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestTruncateTextUTF8(t *testing.T) {
	// Multi-byte characters must truncate by rune, not byte.
	input := "ハリケーン速報です"
	got := TruncateText(input, 5)
	want := "ハリ..."
	if got != want {
		t.Errorf("TruncateText(%q, 5) = %q, want %q", input, got, want)
	}
}
