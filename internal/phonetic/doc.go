// Package phonetic resolves a pinyin transcription for translated Chinese
// text. It tries an ordered list of strategies (data inlined in the gateway
// payload, a transcription backend, pronunciation metadata) and returns the
// first hit. A process-wide Capability holds the optional transcription
// backend: go-pinyin, OpenAI or Gemini.
package phonetic
