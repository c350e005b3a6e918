package genai

import (
	"fmt"
	"strings"
)

// buildWordPrompt creates the instruction for a word analysis.
func buildWordPrompt(query string) string {
	var sb strings.Builder

	sb.WriteString("You are a trilingual Japanese/English/Chinese dictionary.\n\n")
	sb.WriteString(fmt.Sprintf("Input: %q\n\n", query))

	sb.WriteString("The input may be Japanese, English or Chinese. Identify the intended\n")
	sb.WriteString("vocabulary word and fill in the requested JSON object.\n\n")

	sb.WriteString("Rules:\n")
	sb.WriteString("- coreWord: the word itself in Japanese, English and Simplified Chinese\n")
	sb.WriteString("- pronunciation: kana for jp, IPA for en, tone-marked pinyin for zh\n")
	sb.WriteString("- definitions.jp_furigana: same as definitions.jp but every kanji run\n")
	sb.WriteString("  wrapped as <ruby>kanji<rt>reading</rt></ruby>; use no other markup anywhere\n")
	sb.WriteString("- examples: two Japanese sentences (lang \"jp\", translation in English)\n")
	sb.WriteString("  and two English sentences (lang \"en\", translation in Japanese)\n")
	sb.WriteString("- etymology: one or two sentences on the word's origin, in English\n")
	sb.WriteString("- related: up to five synonyms and five antonyms in the word's language\n")

	return sb.String()
}

// buildSentencePrompt creates the instruction for a sentence analysis.
func buildSentencePrompt(sentence string) string {
	var sb strings.Builder

	sb.WriteString("You are a trilingual Japanese/English/Chinese sentence analyzer.\n\n")
	sb.WriteString(fmt.Sprintf("Sentence: %q\n\n", sentence))

	sb.WriteString("Break the sentence down and fill in the requested JSON object.\n\n")

	sb.WriteString("Rules:\n")
	sb.WriteString("- original: repeat the sentence exactly as given\n")
	sb.WriteString("- breakdown: one entry per word or grammatical unit, in order;\n")
	sb.WriteString("  include a reading for every Japanese or Chinese unit\n")
	sb.WriteString("- grammarAnalysis: explain the grammatical structure in Japanese,\n")
	sb.WriteString("  English and Simplified Chinese\n")
	sb.WriteString("- translations: translate the whole sentence into all three languages;\n")
	sb.WriteString("  jp_furigana uses <ruby>kanji<rt>reading</rt></ruby> annotations and no other markup\n")

	return sb.String()
}

// buildImagePrompt creates the scene description for an illustration.
func buildImagePrompt(concept string) string {
	var sb strings.Builder

	sb.WriteString("A single clean illustration depicting the concept: ")
	sb.WriteString(concept)
	sb.WriteString(".\n")
	sb.WriteString("Soft watercolor style, gentle colors, no text, no lettering, no captions.")

	return sb.String()
}
