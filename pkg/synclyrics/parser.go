package synclyrics

import (
	"github.com/himanishpuri/SyncLyrics/internal/ttml"
	"github.com/himanishpuri/SyncLyrics/pkg/utils"
)

// Element and attribute names of the supported lyrics dialect.
const (
	tagHead        = "head"
	tagBody        = "body"
	tagMetadata    = "metadata"
	tagSongwriters = "songwriters"
	tagSegment     = "div"
	tagLine        = "p"
	tagWord        = "span"

	attrBegin          = "begin"
	attrEnd            = "end"
	attrLeadingSilence = "leadingSilence"

	sectionITunesMetadata = "itunes-metadata"
)

// Parser turns timed-text lyrics markup into a LyricsDocument. It holds no
// state between calls and is safe for concurrent use.
type Parser struct {
	strictSongwriters bool
	newID             func() string
}

// NewParser builds a parser. Only the parser-related options
// (WithStrictSongwriters, WithIDGenerator) have an effect.
func NewParser(opts ...Option) *Parser {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return newParser(cfg)
}

func newParser(cfg *Config) *Parser {
	newID := cfg.IDGenerator
	if newID == nil {
		newID = utils.GenerateUUID
	}
	return &Parser{
		strictSongwriters: cfg.StrictSongwriters,
		newID:             newID,
	}
}

var defaultParser = NewParser()

// Parse parses raw with the default, permissive parser.
func Parse(raw string) (*LyricsDocument, error) {
	return defaultParser.Parse(raw)
}

// Parse parses one lyrics document. Any failure aborts the whole parse and
// is returned as a *ParseError; no partial document is produced.
func (p *Parser) Parse(raw string) (*LyricsDocument, error) {
	root, err := ttml.Parse(raw)
	if err != nil {
		return nil, &ParseError{Kind: KindMalformed, Err: err}
	}

	body := root.Child(tagBody)
	if body == nil {
		return nil, &ParseError{Kind: KindMissingSection, Section: tagBody}
	}
	head := root.Child(tagHead)
	if head == nil {
		return nil, &ParseError{Kind: KindMissingSection, Section: tagHead}
	}
	metadata := head.Child(tagMetadata)
	if metadata == nil {
		return nil, &ParseError{Kind: KindMissingSection, Section: tagMetadata}
	}
	itunes := metadata.FirstChild()
	if itunes == nil {
		return nil, &ParseError{Kind: KindMissingSection, Section: sectionITunesMetadata}
	}

	songwriters, err := p.songwriters(itunes)
	if err != nil {
		return nil, err
	}

	lines, err := p.lines(body)
	if err != nil {
		return nil, err
	}

	leadingSilence := 0.0
	if value, ok := itunes.Attr(attrLeadingSilence); ok {
		leadingSilence, err = parseDecimal(value)
		if err != nil {
			return nil, &ParseError{Kind: KindInvalidNumber, Attribute: attrLeadingSilence, Value: value, Err: err}
		}
	}

	return &LyricsDocument{
		Lines:          lines,
		LeadingSilence: leadingSilence,
		Songwriters:    songwriters,
	}, nil
}

// songwriters reads the credits held by the first child of the iTunes
// metadata node. A missing list is not an error.
func (p *Parser) songwriters(itunes *ttml.Node) ([]string, error) {
	names := []string{}

	list := itunes.FirstChild()
	if list == nil {
		return names, nil
	}
	if p.strictSongwriters && list.Name != tagSongwriters {
		return nil, &ParseError{Kind: KindUnexpectedTag, Tag: list.Name}
	}

	for _, entry := range list.Elements() {
		name, ok := entry.Text()
		if !ok {
			return nil, &ParseError{Kind: KindMissingText, Tag: entry.Name}
		}
		names = append(names, name)
	}
	return names, nil
}

func (p *Parser) lines(body *ttml.Node) ([]LyricLine, error) {
	lines := []LyricLine{}

	for _, segment := range body.Children(tagSegment) {
		for _, node := range segment.Children(tagLine) {
			position := len(lines) + 1

			begin, err := timingAttr(node, attrBegin, position)
			if err != nil {
				return nil, err
			}
			end, err := timingAttr(node, attrEnd, position)
			if err != nil {
				return nil, err
			}

			lines = append(lines, LyricLine{
				ID:        p.newID(),
				Text:      lineText(node),
				StartTime: begin,
				EndTime:   end,
			})
		}
	}
	return lines, nil
}

// lineText prefers the line's own text and otherwise joins its word spans,
// each followed by a single space.
func lineText(node *ttml.Node) string {
	if text, ok := node.Text(); ok {
		return text
	}

	var words []byte
	for _, word := range node.Children(tagWord) {
		if text, ok := word.Text(); ok {
			words = append(words, text...)
			words = append(words, ' ')
		}
	}
	return string(words)
}

func timingAttr(node *ttml.Node, name string, position int) (float64, error) {
	value, ok := node.Attr(name)
	if !ok {
		return 0, &ParseError{Kind: KindMissingAttribute, Attribute: name, Line: position}
	}
	seconds, err := ParseTimestamp(value)
	if err != nil {
		return 0, &ParseError{Kind: KindInvalidTimeFormat, Attribute: name, Value: value, Line: position, Err: err}
	}
	return seconds, nil
}
