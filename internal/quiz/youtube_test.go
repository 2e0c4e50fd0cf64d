package quiz

import (
	"errors"
	"testing"
)

func TestNormalizeVideoURLCanonicalizes(t *testing.T) {
	want := "https://www.youtube.com/watch?v=abcdefghijk"

	cases := []string{
		"https://www.youtube.com/watch?v=abcdefghijk",
		"https://youtube.com/watch?v=abcdefghijk",
		"https://m.youtube.com/watch?v=abcdefghijk",
		"https://youtu.be/abcdefghijk",
		"  https://youtu.be/abcdefghijk  ",
		"https://www.youtube.com/watch?v=abcdefghijk&t=42s",
	}

	for _, raw := range cases {
		got, err := NormalizeVideoURL(raw)
		if err != nil {
			t.Fatalf("NormalizeVideoURL(%q) returned error: %v", raw, err)
		}
		if got != want {
			t.Errorf("NormalizeVideoURL(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestNormalizeVideoURLIsFixpoint(t *testing.T) {
	canonical, err := NormalizeVideoURL("https://youtu.be/abcdefghijk")
	if err != nil {
		t.Fatal(err)
	}

	again, err := NormalizeVideoURL(canonical)
	if err != nil {
		t.Fatalf("re-normalizing canonical URL failed: %v", err)
	}
	if again != canonical {
		t.Errorf("re-normalizing changed the URL: %q -> %q", canonical, again)
	}
}

func TestNormalizeVideoURLRejections(t *testing.T) {
	cases := []struct {
		raw  string
		want error
	}{
		{"https://example.com/video", ErrNotYouTube},
		{"https://vimeo.com/watch?v=abcdefghijk", ErrNotYouTube},
		{"https://www.youtube.com/watch?v=123", ErrInvalidVideoID},
		{"https://www.youtube.com/watch", ErrInvalidVideoID},
		{"https://youtu.be/", ErrInvalidVideoID},
		{"https://www.youtube.com/watch?v=abc!efghijk", ErrInvalidVideoID},
		{"https://www.youtube.com/watch?v=abcdefghijkl", ErrInvalidVideoID},
	}

	for _, tc := range cases {
		_, err := NormalizeVideoURL(tc.raw)
		if !errors.Is(err, tc.want) {
			t.Errorf("NormalizeVideoURL(%q) error = %v, want %v", tc.raw, err, tc.want)
		}
	}
}
