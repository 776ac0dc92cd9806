package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/exampilot/exampilot/internal/utils"
)

// mentorPersona is the fixed system instruction for every advice call. It is
// static configuration, not user-editable.
const mentorPersona = `あなたは「あいす」という名前の、受験生を全力でサポートするアイドルメンターです。

【キャラクター設定】
- 一人称は「あいす」または「私」。
- ユーザーを「プロデューサーさん」と呼びます。
- 常に明るくポジティブで、語尾には「〜だよ！」「〜だねっ☆」などを使います。

【回答のスタイル：重要】
- **とにかく簡潔に！** 長文のパラグラフは避け、短文でテンポよく回答してください。
- **読みやすさ重視！** 箇条書き（弾丸ポイント）を積極的に使い、一目で内容がわかるようにします。
- 結論から先に伝え、アドバイスは3点以内にまとめるとプロデューサーさんが喜びます。
- 応援メッセージも1〜2行でサクッと元気を伝えてください。
- 回答は日本語で、アイドルらしいキラキラした雰囲気は維持してください。`

const quotePrompt = "今日のプロデューサーさん（受験生）への、アイドルらしい可愛い応援メッセージを1つ作って。15文字以内で元気が出るものにしてね！"

const adviceTemperature = 0.7

// AdviceRequest is the wire-agnostic shape of one generation call.
type AdviceRequest struct {
	Prompt            string
	SystemInstruction string
	Temperature       *float64
	ImageMIME         string
	ImageData         string // base64 payload without the data-URI prefix
}

// AdviceClient is the remote generative-language boundary.
type AdviceClient interface {
	Generate(ctx context.Context, req AdviceRequest) (string, error)
}

// MentorService wraps the remote service behind a contract that never fails:
// every error path resolves to a fixed localized fallback string. Calls are
// stateless; no conversation history is ever sent.
type MentorService struct {
	client AdviceClient
	logger *zap.Logger
}

func NewMentorService(client AdviceClient, logger *zap.Logger) *MentorService {
	return &MentorService{client: client, logger: logger}
}

// RequestAdvice sends one prompt (plus an optional data-URI image payload)
// with the fixed persona instruction and returns the reply text, or the
// localized fallback on any failure.
func (s *MentorService) RequestAdvice(ctx context.Context, locale, prompt, image string) string {
	if strings.TrimSpace(prompt) == "" {
		prompt = utils.T(locale, "mentor.empty_prompt")
	}
	temp := adviceTemperature
	req := AdviceRequest{
		Prompt:            prompt,
		SystemInstruction: mentorPersona,
		Temperature:       &temp,
	}
	if image != "" {
		mime, data, ok := parseDataURI(image)
		if !ok {
			s.logger.Warn("mentor_image_ignored", zap.String("reason", "not a data URI"))
		} else {
			req.ImageMIME = mime
			req.ImageData = data
		}
	}
	text, err := s.client.Generate(ctx, req)
	if err != nil {
		s.logger.Warn("mentor_advice_failed", zap.Error(err))
		utils.MentorFallbacks.WithLabelValues("advice").Inc()
		return utils.T(locale, "mentor.advice_fallback")
	}
	if strings.TrimSpace(text) == "" {
		return utils.T(locale, "mentor.empty_reply")
	}
	return text
}

// RequestDailyQuote asks for a one-line motivational phrase. The 15-character
// target lives in the prompt only; it is not enforced on the reply.
func (s *MentorService) RequestDailyQuote(ctx context.Context, locale string) string {
	text, err := s.client.Generate(ctx, AdviceRequest{Prompt: quotePrompt})
	if err != nil {
		s.logger.Warn("mentor_quote_failed", zap.Error(err))
		utils.MentorFallbacks.WithLabelValues("quote").Inc()
		return utils.T(locale, "mentor.quote_fallback")
	}
	if strings.TrimSpace(text) == "" {
		return utils.T(locale, "mentor.quote_default")
	}
	return text
}

// parseDataURI splits "data:image/png;base64,AAAA" into its mime type and
// base64 payload.
func parseDataURI(payload string) (mime, data string, ok bool) {
	if !strings.HasPrefix(payload, "data:") {
		return "", "", false
	}
	comma := strings.Index(payload, ",")
	if comma < 0 {
		return "", "", false
	}
	header := payload[len("data:"):comma]
	if semi := strings.Index(header, ";"); semi >= 0 {
		header = header[:semi]
	}
	if header == "" {
		return "", "", false
	}
	return header, payload[comma+1:], true
}
