package service

import (
	"net/url"
	"strings"
)

// DefaultWhatsAppNumber 在未保存 whatsapp 联系方式且无设置时使用
const DefaultWhatsAppNumber = "+1234567890"

// DigitsOnly 去掉所有非数字字符，例如 "+1 (555) 123-4567" 变为 "15551234567"
func DigitsOnly(number string) string {
	var b strings.Builder
	b.Grow(len(number))
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppLink 生成 wa.me 聊天链接，text 非空时附带预填消息
func WhatsAppLink(number, text string) string {
	link := "https://wa.me/" + DigitsOnly(number)
	if message := strings.TrimSpace(text); message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link
}
