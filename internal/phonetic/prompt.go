package phonetic

const transcriptionInstruction = "You convert Chinese text to Hanyu Pinyin. " +
	"Reply with the pinyin only: tone marks as diacritics (nǐ hǎo), " +
	"exactly one space between syllables, no Chinese characters, " +
	"no punctuation, no explanations."

// maxOutputTokens scales the reply budget with the input length.
func maxOutputTokens(text string) int {
	return 16 + 8*len([]rune(text))
}
