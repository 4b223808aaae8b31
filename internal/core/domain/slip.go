package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// TitleMaxRunes is the maximum number of runes kept when deriving a
// slip title from its content. Longer first lines are truncated and
// suffixed with an ellipsis.
const TitleMaxRunes = 50

// TimestampLayout is the display timestamp frozen at slip creation.
const TimestampLayout = "Jan 2, 2006 at 15:04"

// Slip represents a single note. The title is always derived from the
// first line of the content and is never stored independently of it.
type Slip struct {
	// ID is the unique identifier for the slip. Immutable.
	ID string

	// Timestamp is a display string derived from the creation time.
	// Frozen at insert; never recomputed.
	Timestamp string

	// Title is the first line of Content, truncated to TitleMaxRunes.
	Title string

	// Content is the full text of the slip.
	Content string

	// CategoryID references the owning category. CategoryTrash means
	// the slip is soft-deleted.
	CategoryID int

	// IsPinned causes the slip to sort first within any view.
	IsPinned bool

	// CreatedAt is when the slip was created. Immutable.
	CreatedAt time.Time

	// UpdatedAt is bumped on every content, category or pin mutation.
	UpdatedAt time.Time
}

// Version is an immutable snapshot of a slip's content prior to an edit.
// Versions are append-only; one is recorded per distinct content
// transition, holding the pre-edit content.
type Version struct {
	// ID is the storage-assigned identifier.
	ID int64

	// SlipID references the slip this snapshot belongs to. Versions are
	// removed together with their slip.
	SlipID string

	// Content is the slip's content before the edit that created this record.
	Content string

	// CreatedAt is when the edit happened.
	CreatedAt time.Time
}

// DeriveTitle returns the display title for the given content: the first
// line, trimmed, truncated to TitleMaxRunes runes with an ellipsis appended
// when longer.
func DeriveTitle(content string) string {
	line := content
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)

	if utf8.RuneCountInString(line) <= TitleMaxRunes {
		return line
	}

	runes := []rune(line)
	return string(runes[:TitleMaxRunes]) + "…"
}

// Body returns the slip content without its title line. Used by the
// markdown export, which prints the title as a heading.
func (s Slip) Body() string {
	if i := strings.IndexByte(s.Content, '\n'); i >= 0 {
		return strings.TrimLeft(s.Content[i+1:], "\n")
	}
	return ""
}
