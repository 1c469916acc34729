package activation

import "strings"

// Cyrillic capitals (and '?') that Tesseract's Russian model returns for
// digits in the code block, mapped back to the digit they resemble.
var digitLookalikes = []string{
	"В", "8", "У", "9", "Т", "7", "Ь", "1", "Ч", "4",
	"З", "3", "О", "0", "Ю", "0", "?", "3",
	"Д", "0", "А", "4", "С", "5", "Е", "6", "К", "6", "М", "1",
	"И", "1", "Л", "1", "П", "1", "Р", "2", "Х", "4", "Ц", "7",
	"Щ", "9", "Ъ", "1", "Ы", "1", "Э", "3", "Я", "9",
}

// Every replacement is a digit, which is never a key, so a single pass is
// equivalent to applying the substitutions one after another in any order.
var corrector = strings.NewReplacer(digitLookalikes...)

// Correct replaces every lookalike character in text with its digit.
func Correct(text string) string {
	return corrector.Replace(text)
}
