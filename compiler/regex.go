package compiler

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
	lru "github.com/hashicorp/golang-lru"
	"github.com/spf13/cast"
)

// DefaultRegexCacheSize is the number of compiled regular expressions a
// compiler keeps for re-use.
const DefaultRegexCacheSize = 128

// regexCache holds compiled regular expressions, keyed by their source
// text. It is safe for concurrent use.
type regexCache struct {
	cache *lru.Cache
}

func newRegexCache(size int) *regexCache {
	if size <= 0 {
		size = DefaultRegexCacheSize
	}
	cache, err := lru.New(size)
	assertThat(err == nil, "cannot create regex cache: %v", err)
	return &regexCache{cache: cache}
}

// fullMatch returns a regex matching whole strings only.
func (rc *regexCache) fullMatch(expr string) (*regexp2.Regexp, error) {
	if re, ok := rc.cache.Get(expr); ok {
		return re.(*regexp2.Regexp), nil
	}
	// expr has to be well-formed on its own, or it could break out of the
	// anchoring group
	if _, err := regexp2.Compile(expr, regexp2.None); err != nil {
		return nil, err
	}
	re, err := regexp2.Compile(`\A(?:`+expr+`)\z`, regexp2.None)
	if err != nil {
		return nil, err
	}
	rc.cache.Add(expr, re)
	return re, nil
}

// stringOf returns v as a string if its kind is string.
func stringOf(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// --- Type tests ------------------------------------------------------------

// typeTest returns the test for a RegexType pattern, or false if there is
// no test for typename.
func typeTest(typename string) (func(any) bool, bool) {
	switch typename {
	case "int":
		return isInt, true
	case "float":
		return isFloat, true
	case "bool":
		return isBool, true
	}
	pred, ok := stringPredicates[typename]
	if !ok {
		return nil, false
	}
	return func(v any) bool {
		s, ok := stringOf(v)
		return ok && pred(s)
	}, true
}

// isInt accepts integral numbers and strings holding a signed decimal
// integer. Leading zeros are fine, base prefixes and fractions are not.
func isInt(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := stringOf(v); ok {
		return isDecimalInt(strings.TrimSpace(s))
	}
	_, err := cast.ToInt64E(v)
	return err == nil
}

func isDecimalInt(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return nonEmptyAll(func(r rune) bool { return unicode.Is(unicode.Nd, r) })(s)
}

func isFloat(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := stringOf(v); ok {
		if s = strings.TrimSpace(s); s == "" {
			return false
		}
		v = s
	}
	_, err := cast.ToFloat64E(v)
	return err == nil
}

func isBool(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	if s, ok := stringOf(v); ok {
		return strings.EqualFold(s, "true") || strings.EqualFold(s, "false")
	}
	return false
}

// stringPredicates are the named string classifications usable as type
// names in RegexType patterns.
var stringPredicates = map[string]func(string) bool{
	"alpha":      nonEmptyAll(unicode.IsLetter),
	"alnum":      nonEmptyAll(func(r rune) bool { return unicode.IsLetter(r) || unicode.IsNumber(r) }),
	"digit":      nonEmptyAll(unicode.IsDigit),
	"decimal":    nonEmptyAll(func(r rune) bool { return unicode.Is(unicode.Nd, r) }),
	"numeric":    nonEmptyAll(unicode.IsNumber),
	"space":      nonEmptyAll(unicode.IsSpace),
	"printable":  all(unicode.IsPrint),
	"ascii":      all(func(r rune) bool { return r < unicode.MaxASCII+1 }),
	"lower":      cased(unicode.IsLower, unicode.IsUpper),
	"upper":      cased(unicode.IsUpper, unicode.IsLower),
	"identifier": isIdentifier,
	"title":      isTitle,
}

func all(pred func(rune) bool) func(string) bool {
	return func(s string) bool {
		for _, r := range s {
			if !pred(r) {
				return false
			}
		}
		return true
	}
}

func nonEmptyAll(pred func(rune) bool) func(string) bool {
	p := all(pred)
	return func(s string) bool {
		return s != "" && p(s)
	}
}

// cased is true for strings with at least one cased character, where no
// character is of the opposite case.
func cased(is, opposite func(rune) bool) func(string) bool {
	return func(s string) bool {
		found := false
		for _, r := range s {
			if opposite(r) || unicode.IsTitle(r) {
				return false
			}
			found = found || is(r)
		}
		return found
	}
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return s != ""
}

// isTitle: upper case characters only follow uncased ones, lower case
// characters only cased ones.
func isTitle(s string) bool {
	found, prevCased := false, false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased, found = true, true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			prevCased = true
		default:
			prevCased = false
		}
	}
	return found
}
