package workspace

import (
	"path/filepath"
	"strings"
)

// sourceExtensions maps notebook languages to the file extension used for
// SOURCE format exports, in the order they're reported to the user.
var sourceExtensions = []struct {
	language  Language
	extension string
}{
	{Scala, ".scala"},
	{Python, ".py"},
	{SQL, ".sql"},
	{R, ".r"},
}

// Extension returns the local file extension for a SOURCE export of a
// notebook in the given language, e.g. ".py" for PYTHON. Unknown languages
// map to the empty string.
func (language Language) Extension() string {
	for _, mapping := range sourceExtensions {
		if mapping.language == language {
			return mapping.extension
		}
	}
	return ""
}

// LanguageForPath infers the notebook language from a local file's
// extension. Matching is case-insensitive so that `etl.PY` imports the same
// way as `etl.py`. ok is false for extensions that aren't a notebook
// language.
func LanguageForPath(path string) (language Language, ok bool) {
	extension := strings.ToLower(filepath.Ext(path))
	for _, mapping := range sourceExtensions {
		if mapping.extension == extension {
			return mapping.language, true
		}
	}
	return "", false
}

// Extensions returns the local file extensions that import as notebooks.
func Extensions() []string {
	var extensions []string
	for _, mapping := range sourceExtensions {
		extensions = append(extensions, mapping.extension)
	}
	return extensions
}

// Extension returns the file extension appended to exports in the given
// format. SOURCE exports use the notebook's language extension instead.
func (format ExportFormat) Extension() string {
	switch format {
	case HTML:
		return ".html"
	case Jupyter:
		return ".ipynb"
	case DBC:
		return ".dbc"
	}
	return ""
}
