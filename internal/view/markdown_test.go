package view

import (
	"strings"
	"testing"
)

func TestMarkdownSanitizes(t *testing.T) {
	out := string(Markdown("**Bold** <script>alert(1)</script>\n\n[x](javascript:alert(1))"))
	if !strings.Contains(out, "<strong>Bold</strong>") {
		t.Fatalf("expected bold markup, got %s", out)
	}
	if strings.Contains(out, "<script") || strings.Contains(out, "javascript:") {
		t.Fatalf("unsafe markup survived: %s", out)
	}
	if Markdown("  ") != "" {
		t.Fatal("expected empty output for blank content")
	}
}

func TestMarkdownEmbedsVideos(t *testing.T) {
	out := string(Markdown("Demo reel:\n\nhttps://www.youtube.com/watch?v=abc123&t=1m5s\n\nhttps://vimeo.com/76979871"))
	if !strings.Contains(out, `src="https://www.youtube-nocookie.com/embed/abc123?playsinline=1&amp;rel=0&amp;start=65"`) {
		t.Fatalf("expected youtube iframe, got %s", out)
	}
	if !strings.Contains(out, `src="https://player.vimeo.com/video/76979871"`) {
		t.Fatalf("expected vimeo iframe, got %s", out)
	}
}

func TestMarkdownSkipsVideosInCode(t *testing.T) {
	out := string(Markdown("```\nhttps://youtu.be/abc123\n```"))
	if strings.Contains(out, "<iframe") {
		t.Fatalf("video embedded inside code fence: %s", out)
	}
}

func TestPlainTruncates(t *testing.T) {
	if got := Plain("# Title\n\nSome *long* text here", 10); got != "Title Some…" {
		t.Fatalf("unexpected plain text %q", got)
	}
}
