package common

import (
	"image/color"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/idursun/cypherui/internal/config"
)

var DefaultPalette = NewPalette()

type styleNode struct {
	style    lipgloss.Style
	children map[string]*styleNode
}

// Palette resolves space separated selectors such as "flash error" to a
// style. More specific selectors inherit from their prefixes and suffixes.
type Palette struct {
	root  *styleNode
	cache map[string]lipgloss.Style
}

func NewPalette() *Palette {
	return &Palette{
		root:  &styleNode{children: map[string]*styleNode{}},
		cache: map[string]lipgloss.Style{},
	}
}

func (p *Palette) add(selector string, style lipgloss.Style) {
	current := p.root
	for _, field := range strings.Fields(selector) {
		child, ok := current.children[field]
		if !ok {
			child = &styleNode{children: map[string]*styleNode{}}
			current.children[field] = child
		}
		current = child
	}
	current.style = style
}

func (p *Palette) lookup(fields []string) lipgloss.Style {
	current := p.root
	for _, field := range fields {
		child, ok := current.children[field]
		if !ok {
			return lipgloss.NewStyle()
		}
		current = child
	}
	return current.style
}

func (p *Palette) Update(colors map[string]config.Color) {
	for selector, c := range colors {
		p.add(selector, styleFrom(c))
	}
	clear(p.cache)
}

func (p *Palette) Get(selector string) lipgloss.Style {
	if style, ok := p.cache[selector]; ok {
		return style
	}
	fields := strings.Fields(selector)
	style := lipgloss.NewStyle()
	// "a b c" inherits from "a b c", "a b", "a", then "b c", "b", then "c"
	for start := range fields {
		for end := len(fields); end > start; end-- {
			style = style.Inherit(p.lookup(fields[start:end]))
		}
	}
	p.cache[selector] = style
	return style
}

func (p *Palette) GetBorder(selector string, border lipgloss.Border) lipgloss.Style {
	style := p.Get(selector)
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(style.GetForeground()).
		BorderBackground(style.GetBackground())
}

func styleFrom(c config.Color) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c.Fg != "" {
		style = style.Foreground(parseColor(c.Fg))
	}
	if c.Bg != "" {
		style = style.Background(parseColor(c.Bg))
	}
	if c.Bold != nil {
		style = style.Bold(*c.Bold)
	}
	if c.Italic != nil {
		style = style.Italic(*c.Italic)
	}
	if c.Underline != nil {
		style = style.Underline(*c.Underline)
	}
	if c.Strikethrough != nil {
		style = style.Strikethrough(*c.Strikethrough)
	}
	if c.Reverse != nil {
		style = style.Reverse(*c.Reverse)
	}
	return style
}

var namedColors = map[string]string{
	"black": "0", "red": "1", "green": "2", "yellow": "3",
	"blue": "4", "magenta": "5", "cyan": "6", "white": "7",
	"bright black": "8", "bright red": "9", "bright green": "10", "bright yellow": "11",
	"bright blue": "12", "bright magenta": "13", "bright cyan": "14", "bright white": "15",
}

func parseColor(c string) color.Color {
	if len(c) == 7 && c[0] == '#' {
		return lipgloss.Color(c)
	}
	if code, ok := namedColors[c]; ok {
		return lipgloss.Color(code)
	}
	code := strings.TrimPrefix(c, "ansi-color-")
	if v, err := strconv.Atoi(code); err == nil && v >= 0 && v <= 255 {
		return lipgloss.Color(code)
	}
	return lipgloss.NoColor{}
}
