package service

import "fmt"

const (
	generateSystem     = "You write natural Japanese sentences for English translation practice. Reply with the Japanese sentence only."
	generatePrompt     = "Write one natural Japanese sentence about business or daily life."
	generateSeedPrompt = "Write one natural Japanese sentence whose English translation would naturally use the word %q."

	checkSystem = "You are an English teacher. Review the student's English translation of a Japanese sentence and give concise feedback."
	checkPrompt = "Original Japanese: %s\nStudent's translation: %s"

	reviewSystem = `あなたは英語教師です。学習者の英訳を添削し、日本語でフィードバックしてください。
次の項目を箇条書きで含めてください:
- 改善点
- 正しい英訳 (全文)
- 文法と語彙の解説`
	reviewPrompt = "次の英訳を添削してください。\n\n元の日本語: %s\n学習者の英訳: %s"

	translateSystem = `あなたは英語教師です。日本語を英語に翻訳し、日本語で解説してください。
最初の段落は英訳のみとし、空行を挟んでから解説を書いてください。
解説には文法のポイント、重要な語彙や表現、翻訳の注意点を含めてください。`
	translatePrompt = "次の日本語を英語に翻訳し、解説を付けてください:\n\n%s"

	variationPrompt = "日本語: %s\n現在の英訳: %s\n\n%s\n最初の段落は英訳のみとし、空行を挟んでから違いの解説を日本語で書いてください。"
)

func variationInstruction(kind VariationKind, situation string) string {
	switch kind {
	case VariationFormal:
		return "この英訳をビジネスの場にふさわしいフォーマルな表現に書き換えてください。"
	case VariationCasual:
		return "この英訳を友人との会話で使うカジュアルな表現に書き換えてください。"
	default:
		return fmt.Sprintf("この英訳を次の場面にふさわしい表現に書き換えてください: %s", situation)
	}
}
