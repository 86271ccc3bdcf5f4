package translation

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	// BestEffortGatewayName identifies the Google gtx gateway.
	BestEffortGatewayName = "gtx"

	DefaultBestEffortURL = "https://translate.googleapis.com/translate_a/single"
)

// GoogleGateway talks to the undocumented gtx endpoint. The answer is an
// array of arrays: segment i of the translation sits at [0][i][0], an optional
// per-segment pinyin hint at [0][i][3] and an optional whole-text
// transcription block at [1][0][0].
type GoogleGateway struct {
	baseURL    string
	httpClient *http.Client
}

// NewGoogleGateway creates a gateway for baseURL.
func NewGoogleGateway(baseURL string, timeout time.Duration) *GoogleGateway {
	if baseURL == "" {
		baseURL = DefaultBestEffortURL
	}
	return &GoogleGateway{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns the gateway name
func (g *GoogleGateway) Name() string {
	return BestEffortGatewayName
}

// Translate fetches the nested array response. Only dt=t (translation) and
// dt=rm (transliteration) are requested so that index 1 is never filled with
// dictionary data.
func (g *GoogleGateway) Translate(ctx context.Context, req Request) (*Result, error) {
	params := url.Values{
		"client": {"gtx"},
		"sl":     {req.SourceLang},
		"tl":     {req.TargetLang},
		"dt":     {"t", "rm"},
		"q":      {req.Text},
	}

	body, err := fetch(ctx, g.httpClient, g.Name(), g.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	text, err := parseGtx(body)
	if err != nil {
		return nil, err
	}

	return &Result{
		Text:    text,
		Payload: Payload{Gateway: g.Name(), Raw: body},
	}, nil
}

// parseGtx requires a string at [0][0][0] and concatenates the translated
// string of every segment that has one.
func parseGtx(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", unexpectedResponse(BestEffortGatewayName, "response is not valid JSON")
	}

	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return "", unexpectedResponse(BestEffortGatewayName, "expected a JSON array, got %s", root.Type)
	}

	// gjson also matches numeric keys of objects, so check each level is an array
	segments := root.Get("0")
	if !segments.IsArray() || !segments.Get("0").IsArray() {
		return "", unexpectedResponse(BestEffortGatewayName, "expected segment arrays at [0]")
	}
	if first := segments.Get("0.0"); first.Type != gjson.String {
		return "", unexpectedResponse(BestEffortGatewayName, "no translated string at [0][0][0]")
	}

	var sb strings.Builder
	for _, segment := range segments.Array() {
		if !segment.IsArray() {
			continue
		}
		if part := segment.Get("0"); part.Type == gjson.String {
			sb.WriteString(part.Str)
		}
	}

	return sb.String(), nil
}
