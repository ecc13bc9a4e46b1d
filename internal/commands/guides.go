package commands

import (
	"embed"
	"path"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

//go:embed guides/*.md
var guidesFS embed.FS

var ErrGuideNotFound = errors.New("guide not found")

// Guide returns the text of a built-in guide.
func Guide(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "intro"
	}
	data, err := guidesFS.ReadFile(path.Join("guides", name+".md"))
	if err != nil {
		return "", errors.WithHintf(errors.Wrapf(ErrGuideNotFound, "%q", name),
			"available guides: %s", strings.Join(Guides(), ", "))
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func Guides() []string {
	entries, _ := guidesFS.ReadDir("guides")
	var names []string
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".md"))
	}
	slices.Sort(names)
	return names
}
