// Package symbol holds the per-language punctuation table the sentence
// splitter and the symbol validators read from.
package symbol

import (
	"sort"
	"strings"
)

// Name identifies a symbol in the table.
type Name string

const (
	FullStop                 Name = "FULL_STOP"
	QuestionMark             Name = "QUESTION_MARK"
	ExclamationMark          Name = "EXCLAMATION_MARK"
	Comma                    Name = "COMMA"
	Colon                    Name = "COLON"
	Semicolon                Name = "SEMICOLON"
	LeftParenthesis          Name = "LEFT_PARENTHESIS"
	RightParenthesis         Name = "RIGHT_PARENTHESIS"
	LeftSingleQuotationMark  Name = "LEFT_SINGLE_QUOTATION_MARK"
	RightSingleQuotationMark Name = "RIGHT_SINGLE_QUOTATION_MARK"
	LeftDoubleQuotationMark  Name = "LEFT_DOUBLE_QUOTATION_MARK"
	RightDoubleQuotationMark Name = "RIGHT_DOUBLE_QUOTATION_MARK"
)

const (
	defaultLanguage = "en"
	japanese        = "ja"
	variantHankaku  = "hankaku"
	variantZenkaku  = "zenkaku"
)

// terminalNames end a sentence; quotationNames may trail a terminal.
var (
	terminalNames  = []Name{FullStop, QuestionMark, ExclamationMark}
	quotationNames = []Name{RightSingleQuotationMark, RightDoubleQuotationMark}
)

// Symbol is one entry of the table.
type Symbol struct {
	Name            Name   `json:"name"`
	Value           rune   `json:"value"`
	InvalidChars    []rune `json:"invalid_chars,omitempty"`
	NeedBeforeSpace bool   `json:"need_before_space,omitempty"`
	NeedAfterSpace  bool   `json:"need_after_space,omitempty"`
}

func (s Symbol) clone() Symbol {
	if s.InvalidChars != nil {
		s.InvalidChars = append([]rune(nil), s.InvalidChars...)
	}
	return s
}

// Table is an immutable symbol table. With returns a modified copy.
type Table struct {
	lang    string
	variant string
	symbols map[Name]Symbol
}

// Default returns the built-in table for a language and variant. Unknown
// languages fall back to English; Japanese defaults to the zenkaku variant.
func Default(lang, variant string) Table {
	lang = strings.ToLower(strings.TrimSpace(lang))
	variant = strings.ToLower(strings.TrimSpace(variant))
	if lang == japanese {
		if variant != variantHankaku {
			variant = variantZenkaku
		}
		if variant == variantHankaku {
			return newTable(lang, variant, japaneseHankaku())
		}
		return newTable(lang, variant, japaneseZenkaku())
	}
	if lang == "" {
		lang = defaultLanguage
	}
	return newTable(lang, variant, english())
}

func newTable(lang, variant string, syms []Symbol) Table {
	t := Table{lang: lang, variant: variant, symbols: make(map[Name]Symbol, len(syms))}
	for _, s := range syms {
		t.symbols[s.Name] = s
	}
	return t
}

func english() []Symbol {
	return []Symbol{
		{Name: FullStop, Value: '.', InvalidChars: []rune("．。"), NeedAfterSpace: true},
		{Name: QuestionMark, Value: '?', InvalidChars: []rune("？"), NeedAfterSpace: true},
		{Name: ExclamationMark, Value: '!', InvalidChars: []rune("！"), NeedAfterSpace: true},
		{Name: Comma, Value: ',', InvalidChars: []rune("、，"), NeedAfterSpace: true},
		{Name: Colon, Value: ':', InvalidChars: []rune("："), NeedAfterSpace: true},
		{Name: Semicolon, Value: ';', InvalidChars: []rune("；"), NeedAfterSpace: true},
		{Name: LeftParenthesis, Value: '(', InvalidChars: []rune("（"), NeedBeforeSpace: true},
		{Name: RightParenthesis, Value: ')', InvalidChars: []rune("）"), NeedAfterSpace: true},
		{Name: LeftSingleQuotationMark, Value: '\''},
		{Name: RightSingleQuotationMark, Value: '\''},
		{Name: LeftDoubleQuotationMark, Value: '"'},
		{Name: RightDoubleQuotationMark, Value: '"'},
	}
}

func japaneseZenkaku() []Symbol {
	return []Symbol{
		{Name: FullStop, Value: '。', InvalidChars: []rune(".．")},
		{Name: QuestionMark, Value: '？', InvalidChars: []rune("?")},
		{Name: ExclamationMark, Value: '！', InvalidChars: []rune("!")},
		{Name: Comma, Value: '、', InvalidChars: []rune(",，")},
		{Name: Colon, Value: '：', InvalidChars: []rune(":")},
		{Name: Semicolon, Value: '；', InvalidChars: []rune(";")},
		{Name: LeftParenthesis, Value: '（', InvalidChars: []rune("(")},
		{Name: RightParenthesis, Value: '）', InvalidChars: []rune(")")},
		{Name: LeftSingleQuotationMark, Value: '「'},
		{Name: RightSingleQuotationMark, Value: '」'},
		{Name: LeftDoubleQuotationMark, Value: '『'},
		{Name: RightDoubleQuotationMark, Value: '』'},
	}
}

func japaneseHankaku() []Symbol {
	return []Symbol{
		{Name: FullStop, Value: '．', InvalidChars: []rune(".。")},
		{Name: QuestionMark, Value: '?', InvalidChars: []rune("？")},
		{Name: ExclamationMark, Value: '!', InvalidChars: []rune("！")},
		{Name: Comma, Value: '，', InvalidChars: []rune(",、")},
		{Name: Colon, Value: ':', InvalidChars: []rune("：")},
		{Name: Semicolon, Value: ';', InvalidChars: []rune("；")},
		{Name: LeftParenthesis, Value: '(', InvalidChars: []rune("（")},
		{Name: RightParenthesis, Value: ')', InvalidChars: []rune("）")},
		{Name: LeftSingleQuotationMark, Value: '「'},
		{Name: RightSingleQuotationMark, Value: '」'},
		{Name: LeftDoubleQuotationMark, Value: '『'},
		{Name: RightDoubleQuotationMark, Value: '』'},
	}
}

// Language returns the table's language code.
func (t Table) Language() string { return t.lang }

// Variant returns the table's variant ("zenkaku", "hankaku" or empty).
func (t Table) Variant() string { return t.variant }

// Get looks up a symbol by name.
func (t Table) Get(name Name) (Symbol, bool) {
	s, ok := t.symbols[name]
	if !ok {
		return Symbol{}, false
	}
	return s.clone(), true
}

// With returns a copy of the table with s added or replaced.
func (t Table) With(s Symbol) Table {
	out := Table{lang: t.lang, variant: t.variant, symbols: make(map[Name]Symbol, len(t.symbols)+1)}
	for k, v := range t.symbols {
		out.symbols[k] = v
	}
	out.symbols[s.Name] = s.clone()
	return out
}

// Names lists the symbol names in sorted order.
func (t Table) Names() []Name {
	names := make([]Name, 0, len(t.symbols))
	for n := range t.symbols {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// TerminalChars returns the sentence-ending characters.
func (t Table) TerminalChars() []rune {
	return t.values(terminalNames)
}

// QuotationChars returns the right quotation characters that may follow a
// terminal character inside one sentence.
func (t Table) QuotationChars() []rune {
	return t.values(quotationNames)
}

// SpacedTerminals returns the terminal characters that only end a sentence
// when followed by whitespace or end of text.
func (t Table) SpacedTerminals() []rune {
	var out []rune
	for _, n := range terminalNames {
		if s, ok := t.symbols[n]; ok && s.NeedAfterSpace {
			out = append(out, s.Value)
		}
	}
	return out
}

// BrokenLineSeparator is inserted where a paragraph line break is joined:
// nothing for Japanese, one space otherwise.
func (t Table) BrokenLineSeparator() string {
	if t.lang == japanese {
		return ""
	}
	return " "
}

// InvalidChars maps every invalid character variant to the symbol it
// should have been.
func (t Table) InvalidChars() map[rune]Symbol {
	out := make(map[rune]Symbol)
	for _, n := range t.Names() {
		s := t.symbols[n]
		for _, r := range s.InvalidChars {
			if _, taken := out[r]; !taken {
				out[r] = s.clone()
			}
		}
	}
	return out
}

func (t Table) values(names []Name) []rune {
	var out []rune
	seen := make(map[rune]bool)
	for _, n := range names {
		s, ok := t.symbols[n]
		if !ok || s.Value == 0 || seen[s.Value] {
			continue
		}
		seen[s.Value] = true
		out = append(out, s.Value)
	}
	return out
}
