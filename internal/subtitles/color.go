package subtitles

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	fontColorSpan = regexp.MustCompile(`(?i)<font[^>]*color\s*=\s*["']?([^"'\s>]+)["']?[^>]*>(.*?)</font>`)
	hexColor6     = regexp.MustCompile(`^[0-9a-f]{6}$`)
	hexColor3     = regexp.MustCompile(`^[0-9a-f]{3}$`)
)

// ColorClass pairs a canonical color with the cue class generated for it.
type ColorClass struct {
	Color string `json:"color"`
	Class string `json:"class"`
}

// ColorRegistry assigns cue class ids to colors for a single document. The
// same canonical color always maps to the same id and ids are numbered in
// first-seen order. A registry is not safe for concurrent use.
type ColorRegistry struct {
	index   map[string]string
	classes []ColorClass
}

// NewColorRegistry returns an empty registry.
func NewColorRegistry() *ColorRegistry {
	return &ColorRegistry{index: make(map[string]string)}
}

// ClassFor returns the class id for color, registering it when unseen. The
// color must already be canonical.
func (r *ColorRegistry) ClassFor(color string) string {
	if class, ok := r.index[color]; ok {
		return class
	}
	class := colorClassPrefix + strconv.Itoa(len(r.classes)+1)
	r.index[color] = class
	r.classes = append(r.classes, ColorClass{Color: color, Class: class})
	return class
}

// Classes returns the registered classes in first-seen order.
func (r *ColorRegistry) Classes() []ColorClass {
	return append([]ColorClass(nil), r.classes...)
}

// Len reports how many distinct colors have been registered.
func (r *ColorRegistry) Len() int {
	return len(r.classes)
}

// Stylesheet renders one ::cue rule per registered class, one per line.
func (r *ColorRegistry) Stylesheet() string {
	var b strings.Builder
	for _, cls := range r.classes {
		b.WriteString("video::cue(.")
		b.WriteString(cls.Class)
		b.WriteString(") { color: ")
		b.WriteString(cls.Color)
		b.WriteString("; }\n")
	}
	return b.String()
}

// Rewrite replaces every <font color=...>inner</font> span in text with a
// WebVTT cue class wrapper, <c.colorN>inner</c>. Colors are registered left to
// right; substitutions are applied from the last span to the first so earlier
// offsets stay valid.
func (r *ColorRegistry) Rewrite(text string) string {
	matches := fontColorSpan.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	classes := make([]string, len(matches))
	for i, m := range matches {
		classes[i] = r.ClassFor(CanonicalColor(text[m[2]:m[3]]))
	}
	out := text
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		inner := text[m[4]:m[5]]
		out = out[:m[0]] + "<c." + classes[i] + ">" + inner + "</c>" + out[m[1]:]
	}
	return out
}

// CanonicalColor normalizes a <font color> attribute value. Short and bare
// hex forms become #rrggbb; anything else, such as a named color, is only
// lower-cased and trimmed.
func CanonicalColor(value string) string {
	color := strings.ToLower(strings.TrimSpace(value))
	switch {
	case strings.HasPrefix(color, "#"):
		if len(color) == 4 {
			return "#" + doubleHex(color[1:])
		}
		return color
	case hexColor6.MatchString(color):
		return "#" + color
	case hexColor3.MatchString(color):
		return "#" + doubleHex(color)
	default:
		return color
	}
}

func doubleHex(short string) string {
	var b strings.Builder
	b.Grow(len(short) * 2)
	for i := 0; i < len(short); i++ {
		b.WriteByte(short[i])
		b.WriteByte(short[i])
	}
	return b.String()
}
