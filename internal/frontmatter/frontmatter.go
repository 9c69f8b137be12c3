package frontmatter

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/shalinks/internal/foundation/errors"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = stderrors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// RepositoryKey names the frontmatter field that overrides the repository
// context a page is rendered against.
const RepositoryKey = "repository"

const delimiter = "---"

// Style records the newline convention of the source document.
type Style struct {
	Newline string
}

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a delimiter line, had is false and body
// is the full input. An empty block yields had=true and empty frontmatter.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, style Style, err error) {
	style = Style{Newline: detectNewline(content)}
	fence := []byte(delimiter + style.Newline)

	if !bytes.HasPrefix(content, fence) {
		return nil, content, false, style, nil
	}
	rest := content[len(fence):]

	if bytes.HasPrefix(rest, fence) {
		return []byte{}, rest[len(fence):], true, style, nil
	}

	closing := append([]byte(style.Newline), fence...)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		return nil, nil, false, style, ErrMissingClosingDelimiter
	}
	return rest[:idx+len(style.Newline)], rest[idx+len(closing):], true, style, nil
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid YAML frontmatter").Build()
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// RepositoryOverride reads `repository: owner/name`. ok is false when the
// field is absent; a present but malformed value is an error.
func RepositoryOverride(fields map[string]any) (owner, name string, ok bool, err error) {
	raw, present := fields[RepositoryKey]
	if !present || raw == nil {
		return "", "", false, nil
	}
	value, isString := raw.(string)
	if !isString {
		return "", "", false, errors.ValidationError(fmt.Sprintf("frontmatter %q must be a string", RepositoryKey)).
			WithContext("value", fmt.Sprint(raw)).
			Build()
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", "", false, nil
	}
	owner, name, found := strings.Cut(value, "/")
	if !found || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", false, errors.ValidationError(fmt.Sprintf("frontmatter %q must be owner/name", RepositoryKey)).
			WithContext("value", value).
			Build()
	}
	return owner, name, true, nil
}

// detectNewline reports the terminator of the first line.
func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// Fingerprint hashes a split document so unchanged content can be detected
// regardless of file timestamps.
func Fingerprint(frontmatter, body []byte) string {
	return mdfp.CalculateFingerprintFromParts(string(frontmatter), string(body))
}
