package srcrange

// LocationOffset maps a fragment's local coordinates into its parent's.
//
// Local line 0 corresponds to parent line Line. Only positions on local
// line 0 have Col added to their column: later lines start at column 0 in
// both coordinate systems. A non-empty Filename replaces the range's File.
type LocationOffset struct {
	Line     int    `json:"line" msgpack:"line"`
	Col      int    `json:"col" msgpack:"col"`
	Filename string `json:"filename,omitempty" msgpack:"filename,omitempty"`
}

// Correct expresses a fragment-local range in the parent's coordinates.
// A nil offset returns r unchanged.
func Correct(r SourceRange, offset *LocationOffset) SourceRange {
	if offset == nil {
		return r
	}

	corrected := SourceRange{
		File:  r.File,
		Start: correctPosition(r.Start, offset),
		End:   correctPosition(r.End, offset),
	}
	if offset.Filename != "" {
		corrected.File = offset.Filename
	}
	return corrected
}

// Uncorrect inverts Correct. When the offset overrides the filename, file is
// restored as the range's File; otherwise File is left as is.
func Uncorrect(r SourceRange, offset *LocationOffset, file string) SourceRange {
	if offset == nil {
		return r
	}

	local := SourceRange{
		File:  r.File,
		Start: uncorrectPosition(r.Start, offset),
		End:   uncorrectPosition(r.End, offset),
	}
	if offset.Filename != "" {
		local.File = file
	}
	return local
}

func correctPosition(pos SourcePosition, offset *LocationOffset) SourcePosition {
	column := pos.Column
	if pos.Line == 0 {
		column += offset.Col
	}
	return SourcePosition{Line: pos.Line + offset.Line, Column: column}
}

func uncorrectPosition(pos SourcePosition, offset *LocationOffset) SourcePosition {
	line := pos.Line - offset.Line
	column := pos.Column
	if line == 0 {
		column -= offset.Col
	}
	return SourcePosition{Line: line, Column: column}
}
