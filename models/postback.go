package models

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/samber/mo"
)

/************************************************
/**** MARK: POSTBACK KEYS ****/
/************************************************/
const POSTBACK_KEY_LANG = "lang"
const POSTBACK_KEY_TEXT = "text"
const POSTBACK_KEY_TRUNCATED = "cut"

// PostbackDataMaxLen is the largest postback data LINE accepts on an action,
// counted in characters.
const PostbackDataMaxLen = 300

// Only the separators of the format and the escape characters themselves are
// escaped; everything else, CJK text included, is stored as is.
var postbackEscaper = strings.NewReplacer(
	"%", "%25",
	"&", "%26",
	"=", "%3D",
	"+", "%2B",
)

// PostbackPayload is the decoded form of the data attached to a language option.
// Keys other than lang, text and cut are kept in Extra and otherwise ignored.
// Truncated is set when text had to be shortened to fit the data limit.
type PostbackPayload struct {
	Lang      mo.Option[string]
	Text      mo.Option[string]
	Truncated bool
	Extra     map[string]string
}

// DecodePostback parses `key=value` pairs joined by `&`. Keys and values are
// percent-decoded, so text holding `&` or `=` survives a round trip.
func DecodePostback(data string) (PostbackPayload, error) {
	payload := PostbackPayload{
		Lang:  mo.None[string](),
		Text:  mo.None[string](),
		Extra: map[string]string{},
	}

	for _, pair := range strings.Split(data, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, ok := strings.Cut(pair, "=")
		if !ok {
			return PostbackPayload{}, fmt.Errorf("%w: segment %q has no '='", ErrMalformedPostback, pair)
		}
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return PostbackPayload{}, fmt.Errorf("%w: key %q: %v", ErrMalformedPostback, rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return PostbackPayload{}, fmt.Errorf("%w: value of %q: %v", ErrMalformedPostback, key, err)
		}

		switch key {
		case POSTBACK_KEY_LANG:
			if value == "" {
				payload.Lang = mo.None[string]()
				continue
			}
			payload.Lang = mo.Some(value)
		case POSTBACK_KEY_TEXT:
			if value == "" {
				payload.Text = mo.None[string]()
				continue
			}
			payload.Text = mo.Some(value)
		case POSTBACK_KEY_TRUNCATED:
			payload.Truncated = value == "1"
		default:
			payload.Extra[key] = value
		}
	}

	return payload, nil
}

// Encode renders the payload with keys sorted. Keys and values only have
// `%`, `&`, `=` and `+` escaped.
func (p PostbackPayload) Encode() string {
	values := map[string]string{}
	for k, v := range p.Extra {
		values[k] = v
	}
	if p.Truncated {
		values[POSTBACK_KEY_TRUNCATED] = "1"
	}
	if lang, ok := p.Lang.Get(); ok {
		values[POSTBACK_KEY_LANG] = lang
	}
	if text, ok := p.Text.Get(); ok {
		values[POSTBACK_KEY_TEXT] = text
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(postbackEscaper.Replace(k))
		b.WriteByte('=')
		b.WriteString(postbackEscaper.Replace(values[k]))
	}
	return b.String()
}

// EncodeLanguagePostback builds the data for one menu option. When the payload
// would exceed PostbackDataMaxLen characters the text is shortened on a rune
// boundary and the payload is marked as truncated.
func EncodeLanguagePostback(lang string, text string) string {
	data := PostbackPayload{Lang: mo.Some(lang), Text: mo.Some(text)}.Encode()
	if utf8.RuneCountInString(data) <= PostbackDataMaxLen {
		return data
	}

	encode := func(t string) string {
		return PostbackPayload{Lang: mo.Some(lang), Text: mo.Some(t), Truncated: true}.Encode()
	}

	runes := []rune(text)
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if utf8.RuneCountInString(encode(string(runes[:mid]))) <= PostbackDataMaxLen {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return encode(string(runes[:lo]))
}
