package manifest

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// summaryOf returns the trimmed inner text of the top-level <summary>
// element of an XML documentation comment. Lines may keep their "///" prefix.
func summaryOf(doc string) (string, error) {
	if strings.TrimSpace(doc) == "" {
		return "", nil
	}

	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if rest, ok := strings.CutPrefix(trimmed, "///"); ok {
			lines[i] = rest
		}
	}

	dec := xml.NewDecoder(strings.NewReader("<member>" + strings.Join(lines, "\n") + "</member>"))

	var (
		sb      strings.Builder
		depth   int
		summary int
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("parse documentation: %w", err)
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			depth++
			if summary == 0 && depth == 2 && tok.Name.Local == "summary" {
				summary = depth
			}
		case xml.EndElement:
			if summary != 0 && depth == summary {
				return strings.TrimSpace(sb.String()), nil
			}
			depth--
		case xml.CharData:
			if summary != 0 {
				sb.Write(tok)
			}
		}
	}
}
