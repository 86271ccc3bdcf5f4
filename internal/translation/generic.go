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
	// GenericGatewayName identifies the Lingva-compatible gateway.
	GenericGatewayName = "lingva"

	DefaultGenericURL = "https://lingva.ml/api/v1"
)

// LingvaGateway talks to a Lingva-compatible API:
//
//	GET {base}/{source}/{target}/{text} -> {"translation": "..."}
//
// It never supplies pinyin inline, although some instances add an
// info.pronunciation section.
type LingvaGateway struct {
	baseURL    string
	httpClient *http.Client
}

// NewLingvaGateway creates a gateway rooted at baseURL.
func NewLingvaGateway(baseURL string, timeout time.Duration) *LingvaGateway {
	if baseURL == "" {
		baseURL = DefaultGenericURL
	}
	return &LingvaGateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns the gateway name
func (g *LingvaGateway) Name() string {
	return GenericGatewayName
}

// Translate fetches the translation record and checks its shape.
func (g *LingvaGateway) Translate(ctx context.Context, req Request) (*Result, error) {
	reqURL := g.baseURL + "/" + url.PathEscape(req.SourceLang) + "/" +
		url.PathEscape(req.TargetLang) + "/" + url.PathEscape(req.Text)

	body, err := fetch(ctx, g.httpClient, g.Name(), reqURL)
	if err != nil {
		return nil, err
	}

	text, err := parseLingva(body)
	if err != nil {
		return nil, err
	}

	return &Result{
		Text:    text,
		Payload: Payload{Gateway: g.Name(), Raw: body},
	}, nil
}

func parseLingva(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", unexpectedResponse(GenericGatewayName, "response is not valid JSON")
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return "", unexpectedResponse(GenericGatewayName, "expected a JSON object, got %s", root.Type)
	}

	translation := root.Get("translation")
	if translation.Type != gjson.String {
		return "", unexpectedResponse(GenericGatewayName, "translation field missing or not a string")
	}

	return translation.Str, nil
}
