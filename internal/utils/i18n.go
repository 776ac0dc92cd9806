package utils

// Fixed server-side strings. Japanese is the product's home locale; English
// is the fallback for everything the map carries in both.

var translations = map[string]map[string]string{
	"ja": {
		"health.ok":              "稼働中",
		"mentor.empty_prompt":    "お疲れ様！何か相談かな？",
		"mentor.advice_fallback": "えへへ、ちょっとトラブルかな？でもあいすはいつでもプロデューサーさんを応援してるよ！",
		"mentor.empty_reply":     "ごめんね、ちょっと電波が悪かったみたい…もう一度お話ししてくれるかな？(>_<)",
		"mentor.quote_fallback":  "努力するプロデューサーさんは世界で一番輝いてるよ☆",
		"mentor.quote_default":   "今日もあいすと一緒に、ハッピーに頑張ろうねっ！",
		"confirm.required":       "この操作には確認が必要です",
	},
	"en": {
		"health.ok":              "ok",
		"mentor.empty_prompt":    "Good work today! Anything you want to talk about?",
		"mentor.advice_fallback": "Oops, a little hiccup on my side... but I'm always cheering for you, Producer!",
		"mentor.empty_reply":     "Sorry, the signal dropped for a moment... could you tell me that once more?",
		"mentor.quote_fallback":  "A Producer who keeps trying shines brighter than anyone.",
		"mentor.quote_default":   "Let's make today a happy one together!",
		"confirm.required":       "This operation requires confirmation",
	},
}

// T returns the translated string for key in locale; falls back to Japanese,
// then to the key itself.
func T(locale, key string) string {
	if m, ok := translations[locale]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := translations["ja"][key]; ok {
		return v
	}
	return key
}
