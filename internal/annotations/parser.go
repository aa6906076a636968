package annotations

import (
	"strings"

	"github.com/toyz/routedoc/internal/models"
)

// Block is the structured content of one documentation comment
type Block struct {
	Description string
	Metadata    models.Metadata
}

// IsEmpty reports whether the block carries neither description nor tags
func (b Block) IsEmpty() bool {
	return b.Description == "" && len(b.Metadata) == 0
}

// Parse turns the text of a comment block (without the comment delimiters)
// into a description and tag metadata.
//
// Lines starting with '@' are tags, every other non-empty line is appended to
// the description. @param and @returns follow their own grammars and lines
// that do not match are dropped. Any other tag stores the remainder of its
// line; repeated tags accumulate in order.
func Parse(text string) Block {
	block := Block{Metadata: models.Metadata{}}
	var description []string

	for _, raw := range strings.Split(text, "\n") {
		line := cleanLine(raw)
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, "@") {
			description = append(description, line)
			continue
		}

		name, rest := splitTag(line)
		switch name {
		case "":
			continue
		case models.ParamTag:
			if param, err := ParseParamLine(line); err == nil {
				block.Metadata.AddParam(param)
			}
		case models.ReturnsTag:
			if ret, err := ParseReturnsLine(line); err == nil {
				block.Metadata.AddReturn(ret)
			}
		default:
			block.Metadata.Add(name, rest)
		}
	}

	block.Description = strings.Join(description, " ")
	return block
}

// cleanLine strips block comment decoration: surrounding whitespace and
// leading asterisks.
func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "*")
	return strings.TrimSpace(line)
}

// splitTag splits "@name rest of line" into its name and trimmed remainder
func splitTag(line string) (name, rest string) {
	body := strings.TrimPrefix(line, "@")
	if i := strings.IndexFunc(body, isSpace); i >= 0 {
		return body[:i], strings.TrimSpace(body[i:])
	}
	return body, ""
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// StripDecoration removes the delimiters of one raw comment: the leading
// slashes of a line comment, or the opening and closing markers of a block
// comment. Leading asterisks on inner lines are left for Parse.
func StripDecoration(raw string) string {
	text := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(text, "//"):
		return strings.TrimLeft(text, "/")
	case strings.HasPrefix(text, "/*"):
		text = strings.TrimPrefix(text, "/*")
		return strings.TrimSuffix(text, "*/")
	default:
		return text
	}
}
