package synclyrics

// ActiveLine returns the index of the first line whose [start, end] range
// contains the playback position, in seconds.
func ActiveLine(doc *LyricsDocument, seconds float64) (int, bool) {
	if doc == nil {
		return -1, false
	}
	for i, line := range doc.Lines {
		if seconds >= line.StartTime && seconds <= line.EndTime {
			return i, true
		}
	}
	return -1, false
}
