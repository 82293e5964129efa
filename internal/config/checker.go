package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/antchfx/xmlquery"

	"github.com/dgallion1/docproof/internal/errs"
	"github.com/dgallion1/docproof/internal/symbol"
)

// Severity levels accepted on <validator level="...">.
const (
	LevelError = "error"
	LevelWarn  = "warn"
	LevelInfo  = "info"
)

// ValidatorConfig is one <validator> element.
type ValidatorConfig struct {
	Name       string
	Level      string
	Properties map[string]string
}

// Property returns the named property or fallback when it is unset.
func (v ValidatorConfig) Property(name, fallback string) string {
	if p, ok := v.Properties[name]; ok && p != "" {
		return p
	}
	return fallback
}

// IntProperty parses the named property as an integer.
func (v ValidatorConfig) IntProperty(name string, fallback int) (int, error) {
	p := v.Property(name, "")
	if p == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(p)
	if err != nil {
		return 0, errs.WrapConfig(v.Name+"."+name, err)
	}
	return n, nil
}

// SymbolOverride is one <symbol> element. Nil fields keep the default.
type SymbolOverride struct {
	Name            symbol.Name
	Value           rune
	InvalidChars    []rune
	NeedBeforeSpace *bool
	NeedAfterSpace  *bool
}

// Checker is the parsed checker configuration.
type Checker struct {
	Lang       string
	Variant    string
	Validators []ValidatorConfig
	Symbols    []SymbolOverride
}

// DefaultChecker enables the validators that need no settings.
func DefaultChecker(lang, variant string) Checker {
	return Checker{
		Lang:    lang,
		Variant: variant,
		Validators: []ValidatorConfig{
			{Name: "SentenceLength", Level: LevelError, Properties: map[string]string{}},
			{Name: "InvalidSymbol", Level: LevelError, Properties: map[string]string{}},
		},
	}
}

// SymbolTable returns the language's default table with the overrides
// applied in document order.
func (c Checker) SymbolTable() symbol.Table {
	t := symbol.Default(c.Lang, c.Variant)
	for _, o := range c.Symbols {
		s, ok := t.Get(o.Name)
		if !ok {
			s = symbol.Symbol{Name: o.Name}
		}
		if o.Value != 0 {
			s.Value = o.Value
		}
		if o.InvalidChars != nil {
			s.InvalidChars = o.InvalidChars
		}
		if o.NeedBeforeSpace != nil {
			s.NeedBeforeSpace = *o.NeedBeforeSpace
		}
		if o.NeedAfterSpace != nil {
			s.NeedAfterSpace = *o.NeedAfterSpace
		}
		t = t.With(s)
	}
	return t
}

// Validator returns the config of the named validator.
func (c Checker) Validator(name string) (ValidatorConfig, bool) {
	for _, v := range c.Validators {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return ValidatorConfig{}, false
}

// LoadChecker reads a checker config file.
func LoadChecker(path string) (Checker, error) {
	f, err := os.Open(path)
	if err != nil {
		return Checker{}, errs.WrapConfig("checker config", err)
	}
	defer f.Close()
	return ParseChecker(f)
}

// ParseChecker parses a <docproof-conf> document.
func ParseChecker(r io.Reader) (Checker, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return Checker{}, errs.WrapConfig("checker config", fmt.Errorf("parse xml: %w", err))
	}
	root := xmlquery.FindOne(doc, "/docproof-conf")
	if root == nil {
		return Checker{}, errs.Config("checker config", "missing <docproof-conf> root element")
	}

	c := Checker{
		Lang:    root.SelectAttr("lang"),
		Variant: root.SelectAttr("variant"),
	}
	if c.Lang == "" {
		c.Lang = "en"
	}

	nodes, err := xmlquery.QueryAll(root, "validators/validator")
	if err != nil {
		return Checker{}, errs.WrapConfig("validators", err)
	}
	seen := make(map[string]bool)
	for _, n := range nodes {
		v, err := parseValidator(n)
		if err != nil {
			return Checker{}, err
		}
		key := strings.ToLower(v.Name)
		if seen[key] {
			return Checker{}, errs.Config("validators", fmt.Sprintf("validator %q configured twice", v.Name))
		}
		seen[key] = true
		c.Validators = append(c.Validators, v)
	}

	nodes, err = xmlquery.QueryAll(root, "symbols/symbol")
	if err != nil {
		return Checker{}, errs.WrapConfig("symbols", err)
	}
	for _, n := range nodes {
		o, err := parseSymbol(n)
		if err != nil {
			return Checker{}, err
		}
		c.Symbols = append(c.Symbols, o)
	}
	return c, nil
}

func parseValidator(n *xmlquery.Node) (ValidatorConfig, error) {
	v := ValidatorConfig{
		Name:       strings.TrimSpace(n.SelectAttr("name")),
		Level:      strings.ToLower(strings.TrimSpace(n.SelectAttr("level"))),
		Properties: make(map[string]string),
	}
	if v.Name == "" {
		return v, errs.Config("validators", "validator without a name")
	}
	switch v.Level {
	case "":
		v.Level = LevelError
	case LevelError, LevelWarn, LevelInfo:
	default:
		return v, errs.Config(v.Name, fmt.Sprintf("unknown level %q", v.Level))
	}
	for _, p := range n.SelectElements("property") {
		name := strings.TrimSpace(p.SelectAttr("name"))
		if name == "" {
			return v, errs.Config(v.Name, "property without a name")
		}
		v.Properties[name] = p.SelectAttr("value")
	}
	return v, nil
}

func parseSymbol(n *xmlquery.Node) (SymbolOverride, error) {
	o := SymbolOverride{Name: symbol.Name(strings.TrimSpace(n.SelectAttr("name")))}
	if o.Name == "" {
		return o, errs.Config("symbols", "symbol without a name")
	}
	field := "symbols." + string(o.Name)

	if value := n.SelectAttr("value"); value != "" {
		if utf8.RuneCountInString(value) != 1 {
			return o, errs.Config(field, fmt.Sprintf("value %q must be a single character", value))
		}
		o.Value, _ = utf8.DecodeRuneInString(value)
	}
	if chars, ok := attr(n, "invalid-chars"); ok {
		o.InvalidChars = append([]rune{}, []rune(chars)...)
	}
	var err error
	if o.NeedBeforeSpace, err = boolAttr(n, "before-space", field); err != nil {
		return o, err
	}
	if o.NeedAfterSpace, err = boolAttr(n, "after-space", field); err != nil {
		return o, err
	}
	return o, nil
}

// attr distinguishes an absent attribute from an empty one.
func attr(n *xmlquery.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func boolAttr(n *xmlquery.Node, name, field string) (*bool, error) {
	v, ok := attr(n, name)
	if !ok {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, errs.WrapConfig(field+"."+name, err)
	}
	return &b, nil
}
