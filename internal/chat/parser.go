package chat

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Parser runs the line loop over a chat export: tokenize, detect edits and
// attachments, resolve timestamps, classify, and fold everything into
// statistics.
type Parser struct {
	classifier  *Classifier
	editMarkers []string
	log         *zap.Logger
	now         func() time.Time
}

// Result is everything one parse produces.
type Result struct {
	Messages []Message
	Members  []string
	Stats    *Statistics
}

type Option func(*Parser)

func WithLogger(log *zap.Logger) Option {
	return func(p *Parser) { p.log = log }
}

func WithEditMarkers(markers []string) Option {
	return func(p *Parser) {
		if len(markers) > 0 {
			p.editMarkers = markers
		}
	}
}

// WithClock overrides the fallback-timestamp clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) { p.now = now }
}

func NewParser(lookup Lookup, prober Prober, mime func(string) string, opts ...Option) *Parser {
	p := &Parser{
		classifier:  &Classifier{Lookup: lookup, Prober: prober, MIME: mime},
		editMarkers: DefaultEditMarkers,
		log:         zap.NewNop(),
		now:         time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Parse consumes the export line by line. Lines that do not tokenize and do
// not continue a previous message are dropped with a debug log, never an
// error; a chat export is user data and one odd line must not abort the rest.
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	res := &Result{Stats: NewStatistics()}
	members := make(map[string]struct{})

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := stripInvisible(sc.Text())
		tok, ok := TokenizeLine(line)
		if !ok {
			// continuation lines of multi-line messages land here too and
			// are lost, a known limit of the line-oriented export format
			if line != "" {
				p.log.Debug("dropped line", zap.Int("line", lineNo))
			}
			continue
		}
		msg, size, dur := p.buildMessage(tok)
		res.Messages = append(res.Messages, msg)
		members[msg.Sender] = struct{}{}
		res.Stats.Record(msg, size, dur)
		if msg.Timestamp.Fallback {
			p.log.Warn("timestamp fallback",
				zap.Int("line", lineNo), zap.String("reason", msg.Timestamp.Reason))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read chat: %w", err)
	}

	for m := range members {
		res.Members = append(res.Members, m)
	}
	sort.Strings(res.Members)
	return res, nil
}

// buildMessage interprets one tokenized line and resolves its side facts
// (existence, size, duration) in this single place.
func (p *Parser) buildMessage(tok Token) (Message, int64, float64) {
	content, edited := StripEditMarker(tok.Content, p.editMarkers)
	file, isAttachment := DetectAttachment(content)
	if isAttachment && file != "" {
		content = file
	}
	cls := p.classifier.Classify(content, isAttachment, file)

	msg := Message{
		Timestamp:      ParseTimestamp(tok.Date, tok.Clock, p.now()),
		Sender:         tok.Sender,
		Content:        content,
		ContentType:    cls.Type,
		IsAttachment:   isAttachment,
		AttachmentFile: file,
		ExistsInExport: cls.Exists,
		IsMultiframe:   cls.Multiframe,
		IsEdited:       edited,
	}

	size, dur := int64(-1), -1.0
	if !isAttachment {
		msg.ContentLength = utf8.RuneCountInString(content)
		msg.HasLength = true
		return msg, size, dur
	}
	if cls.Exists {
		if fi, err := os.Stat(cls.Path); err == nil {
			size = fi.Size()
		}
		if cls.Type.IsAudio() || cls.Type.IsVideo() {
			if d, ok := p.classifier.Prober.Duration(cls.Path); ok {
				dur = d
				msg.ContentLength = int(d)
				msg.HasLength = true
			}
		}
	}
	return msg, size, dur
}
