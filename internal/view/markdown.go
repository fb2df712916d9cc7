package view

import (
	"bytes"
	"fmt"
	htmlstd "html"
	"html/template"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML(), html.WithUnsafe()),
	)
	sanitizer = buildContentSanitizer()

	videoLinePattern = regexp.MustCompile(`^\s*<?(https?://[^\s>]+)>?\s*$`)
	videoSrcPattern  = regexp.MustCompile(`^https://(?:www\.youtube-nocookie\.com/embed/|player\.vimeo\.com/video/)`)
	videoTimePattern = regexp.MustCompile(`(?i)(\d+)(h|m|s)`)
)

func buildContentSanitizer() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("iframe")
	policy.AllowAttrs("class", "data-video-platform").OnElements("div")
	policy.AllowAttrs("src").Matching(videoSrcPattern).OnElements("iframe")
	policy.AllowAttrs("title", "allow", "allowfullscreen", "frameborder", "loading", "referrerpolicy").OnElements("iframe")
	return policy
}

// Markdown 渲染描述文本并过滤 HTML；独占一行的 YouTube / Vimeo 链接会转成内嵌播放器
func Markdown(content string) template.HTML {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(applyVideoEmbeds(content)), &buf); err != nil {
		return template.HTML(htmlstd.EscapeString(content))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

// Plain 去掉全部标签，用于列表卡片的摘要
func Plain(content string, limit int) string {
	text := strings.Join(strings.Fields(bluemonday.StrictPolicy().Sanitize(string(Markdown(content)))), " ")
	text = htmlstd.UnescapeString(text)
	runes := []rune(text)
	if limit > 0 && len(runes) > limit {
		return strings.TrimSpace(string(runes[:limit])) + "…"
	}
	return text
}

type videoEmbed struct {
	Platform string
	EmbedURL string
}

func applyVideoEmbeds(markdown string) string {
	lines := strings.Split(markdown, "\n")
	inFence := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence || strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t") {
			continue
		}
		match := videoLinePattern.FindStringSubmatch(trimmed)
		if match == nil {
			continue
		}
		if embed, ok := parseVideoEmbed(match[1]); ok {
			lines[i] = buildVideoEmbedHTML(embed)
		}
	}
	return strings.Join(lines, "\n")
}

func parseVideoEmbed(raw string) (videoEmbed, bool) {
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return videoEmbed{}, false
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	path := strings.Trim(parsed.Path, "/")

	switch {
	case host == "youtu.be" || host == "youtube.com" || host == "m.youtube.com":
		videoID := ""
		switch {
		case host == "youtu.be":
			videoID = path
		case path == "watch":
			videoID = parsed.Query().Get("v")
		case strings.HasPrefix(path, "shorts/"), strings.HasPrefix(path, "embed/"), strings.HasPrefix(path, "live/"):
			videoID = path[strings.Index(path, "/")+1:]
		}
		videoID, _, _ = strings.Cut(videoID, "/")
		if videoID == "" {
			return videoEmbed{}, false
		}
		values := url.Values{}
		values.Set("rel", "0")
		values.Set("playsinline", "1")
		if start := youTubeStart(parsed.Query()); start > 0 {
			values.Set("start", strconv.Itoa(start))
		}
		return videoEmbed{
			Platform: "youtube",
			EmbedURL: "https://www.youtube-nocookie.com/embed/" + url.PathEscape(videoID) + "?" + values.Encode(),
		}, true
	case host == "vimeo.com":
		videoID, _, _ := strings.Cut(path, "/")
		if _, err := strconv.ParseUint(videoID, 10, 64); err != nil {
			return videoEmbed{}, false
		}
		return videoEmbed{Platform: "vimeo", EmbedURL: "https://player.vimeo.com/video/" + videoID}, true
	}
	return videoEmbed{}, false
}

func youTubeStart(query url.Values) int {
	value := query.Get("start")
	if value == "" {
		value = query.Get("t")
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return seconds
	}
	total := 0
	for _, match := range videoTimePattern.FindAllStringSubmatch(value, -1) {
		n, _ := strconv.Atoi(match[1])
		switch strings.ToLower(match[2]) {
		case "h":
			total += n * 3600
		case "m":
			total += n * 60
		default:
			total += n
		}
	}
	return total
}

func buildVideoEmbedHTML(embed videoEmbed) string {
	return fmt.Sprintf(
		`<div class="video-embed" data-video-platform="%s"><iframe src="%s" title="%s video" loading="lazy" allow="encrypted-media; picture-in-picture" allowfullscreen frameborder="0" referrerpolicy="strict-origin-when-cross-origin"></iframe></div>`,
		htmlstd.EscapeString(embed.Platform),
		htmlstd.EscapeString(embed.EmbedURL),
		htmlstd.EscapeString(embed.Platform),
	)
}
