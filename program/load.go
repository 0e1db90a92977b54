package program

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kuhyx/kinoplan/core/model"
	"github.com/kuhyx/kinoplan/infra/logger"
)

// Load reads a program file, dispatching on the extension: .html pages
// are scraped, .json and .yaml dumps are decoded. day is the planning
// day used for bare clock times; a document carrying its own day wins.
func Load(path string, day time.Time, loc *time.Location) ([]model.Showing, error) {
	if loc == nil {
		loc = time.Local
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("program: read %s: %w", path, err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".html", ".htm":
		return ParseHTML(bytes.NewReader(b), day, loc)
	case ".json":
		var doc Document
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("program: decode %s: %w", path, err)
		}
		return doc.convert(day, loc, logger.New("program"))
	case ".yaml", ".yml":
		var doc Document
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("program: decode %s: %w", path, err)
		}
		return doc.convert(day, loc, logger.New("program"))
	default:
		return nil, fmt.Errorf("program: unsupported format: %s", ext)
	}
}
