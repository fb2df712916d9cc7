package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/mail"
	"net/url"
	"strings"

	"github.com/agencysite/internal/db"
	"github.com/microcosm-cc/bluemonday"
)

var plainText = bluemonday.StrictPolicy()

// SplitLines 将多行文本拆成列表，去掉空行，用于 features 字段
func SplitLines(text string) []string {
	return splitOn(text, func(r rune) bool { return r == '\n' })
}

// SplitTags 按换行或逗号拆分，用于 skills 字段
func SplitTags(text string) []string {
	return splitOn(text, func(r rune) bool { return r == '\n' || r == ',' })
}

func splitOn(text string, sep func(rune) bool) []string {
	parts := strings.FieldsFunc(strings.ReplaceAll(text, "\r\n", "\n"), sep)
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// JoinLines 是 SplitLines 的逆操作，编辑表单回填时使用
func JoinLines(items []string) string {
	return strings.Join(items, "\n")
}

// JoinTags 是 SplitTags 的逆操作
func JoinTags(items []string) string {
	return strings.Join(items, ", ")
}

// ParsePricing 解析后台填写的价格方案 JSON。
// 空文本表示没有价格方案；格式错误返回 ErrInvalidPricing，调用方需在写库前调用。
func ParsePricing(text string) ([]db.PricingTier, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	decoder := json.NewDecoder(strings.NewReader(trimmed))
	decoder.DisallowUnknownFields()

	var tiers []db.PricingTier
	if err := decoder.Decode(&tiers); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPricing, err)
	}
	// 数组之后只允许空白，多余的 ] 或 } 也算格式错误
	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidPricing)
	}
	for i, tier := range tiers {
		if strings.TrimSpace(tier.Name) == "" {
			return nil, fmt.Errorf("%w: tier %d has no name", ErrInvalidPricing, i+1)
		}
	}
	return tiers, nil
}

// FormatPricing 将价格方案格式化为可编辑的 JSON 文本
func FormatPricing(tiers []db.PricingTier) string {
	if len(tiers) == 0 {
		return ""
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(tiers); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}

// cleanText 去掉访客输入中的 HTML 标签。
// 反转义后再过一遍 sanitizer，避免 &lt;script&gt; 这类实体还原成标签入库。
func cleanText(value string) string {
	text := strings.TrimSpace(value)
	for i := 0; i < 4; i++ {
		next := html.UnescapeString(plainText.Sanitize(text))
		if next == text {
			return strings.TrimSpace(text)
		}
		text = next
	}
	return strings.TrimSpace(plainText.Sanitize(text))
}

func validEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	return err == nil && addr.Address == value
}

func validURL(value string) bool {
	if value == "" {
		return true
	}
	parsed, err := url.Parse(value)
	return err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// required 按 name, value 成对传入，返回第一个缺失的字段
func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return invalidf("%s is required", pairs[i])
		}
	}
	return nil
}
