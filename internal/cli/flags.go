package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	From       string
	To         string
	BatchFile  string
	JSON       bool
	ListModels bool
	LogLevel   string

	// Gateway flags
	ChineseRoute  string
	GenericURL    string
	BestEffortURL string
	Timeout       string

	// Pinyin flags
	PinyinBackend string
	OpenAIModel   string
	GeminiModel   string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		From:          "auto",
		To:            "zh",
		LogLevel:      "warn",
		ChineseRoute:  "besteffort",
		GenericURL:    "https://lingva.ml/api/v1",
		BestEffortURL: "https://translate.googleapis.com/translate_a/single",
		Timeout:       "15s",
		PinyinBackend: "library",
		OpenAIModel:   "gpt-4o-mini",
		GeminiModel:   "gemini-2.0-flash",
	}
}
