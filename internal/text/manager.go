package text

import "fmt"

// sourceFile holds the registered content and line index for one file.
type sourceFile struct {
	name    string
	content []byte
	lines   *LineIndex
}

// SourceManager is a registry of source files keyed by filename. It owns
// each file's content and its LineIndex, and is the single place callers
// go to turn byte offsets into Positions and Locations into source text.
// A SourceManager is not safe for concurrent registration; once a file is
// registered, lookups against it are read-only and safe to share.
type SourceManager struct {
	files map[string]*sourceFile
	order []string
}

// NewSourceManager creates an empty source manager.
func NewSourceManager() *SourceManager {
	return &SourceManager{files: make(map[string]*sourceFile)}
}

// Register records content under filename, replacing any prior registration.
// It returns an error if filename is empty.
func (m *SourceManager) Register(filename string, content []byte) error {
	if filename == "" {
		return fmt.Errorf("empty filename")
	}
	if _, exists := m.files[filename]; !exists {
		m.order = append(m.order, filename)
	}
	m.files[filename] = &sourceFile{
		name:    filename,
		content: content,
		lines:   NewLineIndex(content),
	}
	return nil
}

// Filenames returns the registered filenames in registration order.
func (m *SourceManager) Filenames() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Content returns the registered bytes for filename.
func (m *SourceManager) Content(filename string) ([]byte, error) {
	f, err := m.lookup(filename)
	if err != nil {
		return nil, err
	}
	return f.content, nil
}

// PositionAt converts a byte offset within filename to a one-based Position.
func (m *SourceManager) PositionAt(filename string, off ByteOffset) (Position, error) {
	f, err := m.lookup(filename)
	if err != nil {
		return Position{}, err
	}
	return f.lines.PositionFor(off)
}

// LocationAt builds a single-position Location at off within filename.
func (m *SourceManager) LocationAt(filename string, off ByteOffset) (Location, error) {
	pos, err := m.PositionAt(filename, off)
	if err != nil {
		return Location{}, err
	}
	return Location{Filename: filename, Start: pos, End: pos}, nil
}

// LocationFor builds a Location spanning [start, end) within filename.
func (m *SourceManager) LocationFor(filename string, start, end ByteOffset) (Location, error) {
	f, err := m.lookup(filename)
	if err != nil {
		return Location{}, err
	}
	startPos, err := f.lines.PositionFor(start)
	if err != nil {
		return Location{}, fmt.Errorf("start: %w", err)
	}
	endPos, err := f.lines.PositionFor(end)
	if err != nil {
		return Location{}, fmt.Errorf("end: %w", err)
	}
	return Location{Filename: filename, Start: startPos, End: endPos}, nil
}

// Slice returns the source bytes covered by loc. The returned slice
// aliases the manager's stored content and must not be mutated.
func (m *SourceManager) Slice(loc Location) ([]byte, error) {
	f, err := m.lookup(loc.Filename)
	if err != nil {
		return nil, err
	}
	span := loc.Span()
	if err := span.Validate(); err != nil {
		return nil, fmt.Errorf("invalid location span: %w", err)
	}
	if span.End > ByteOffset(len(f.content)) {
		return nil, fmt.Errorf("location span %s exceeds content length %d", span, len(f.content))
	}
	return f.content[span.Start:span.End], nil
}

// LineText returns the raw bytes of the one-based row in filename, excluding
// the trailing line terminator.
func (m *SourceManager) LineText(filename string, row int) ([]byte, error) {
	f, err := m.lookup(filename)
	if err != nil {
		return nil, err
	}
	start, err := f.lines.OffsetFor(row, 1)
	if err != nil {
		return nil, err
	}
	end := start
	for end < ByteOffset(len(f.content)) && f.content[end] != '\n' {
		end++
	}
	if end > start && f.content[end-1] == '\r' {
		end--
	}
	return f.content[start:end], nil
}

func (m *SourceManager) lookup(filename string) (*sourceFile, error) {
	f, ok := m.files[filename]
	if !ok {
		return nil, fmt.Errorf("unregistered source file: %s", filename)
	}
	return f, nil
}
