package translation

import "strings"

// AutoDetect is the source language sentinel that lets the gateway detect the
// input language.
const AutoDetect = "auto"

// Request is a single user-triggered translation.
type Request struct {
	Text       string
	SourceLang string
	TargetLang string
}

// NewRequest trims the text and defaults an empty source language to
// AutoDetect.
func NewRequest(text, sourceLang, targetLang string) Request {
	sourceLang = strings.TrimSpace(sourceLang)
	if sourceLang == "" {
		sourceLang = AutoDetect
	}
	return Request{
		Text:       strings.TrimSpace(text),
		SourceLang: sourceLang,
		TargetLang: strings.TrimSpace(targetLang),
	}
}

// Validate reports KindInvalidInput when the request must not reach a gateway.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return &Error{Kind: KindInvalidInput, Message: MsgEmptyText}
	}
	if r.SourceLang != AutoDetect && r.SourceLang == r.TargetLang {
		return &Error{Kind: KindInvalidInput, Message: MsgSameLanguage}
	}
	return nil
}

// IsChinese reports whether lang names a Chinese target ("zh", "zh-CN", "zh-TW").
func IsChinese(lang string) bool {
	lang = strings.ToLower(strings.TrimSpace(lang))
	return lang == "zh" || strings.HasPrefix(lang, "zh-")
}
