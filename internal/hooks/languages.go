package hooks

import (
	"path/filepath"
	"strings"

	"github.com/iikjl/gofore-hotvibes-sauna-evening/internal/config"
)

// Classifier maps file extensions to languages.
type Classifier struct {
	byExt map[string]config.Language
}

// NewClassifier indexes langs by lower-cased extension. Later languages win
// when two claim the same extension.
func NewClassifier(langs []config.Language) *Classifier {
	c := &Classifier{byExt: make(map[string]config.Language)}
	for _, l := range langs {
		for _, ext := range l.Extensions {
			c.byExt[normalizeExt(ext)] = l
		}
	}
	return c
}

// Classify returns the language for path, or false if its extension is not mapped.
func (c *Classifier) Classify(path string) (config.Language, bool) {
	ext := strings.ToLower(suffix(path))
	if ext == "" {
		return config.Language{}, false
	}
	l, ok := c.byExt[ext]
	return l, ok
}

// suffix is the extension of the final path element. A leading dot starts a
// hidden name, not an extension, so ".py" has none while "..py" has ".py".
func suffix(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return ""
	}
	return base[i:]
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
