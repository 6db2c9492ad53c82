package search

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/hbeckmann/waex/internal/chat"
	"github.com/hbeckmann/waex/internal/index"
)

type Result struct {
	ExportKey      string
	MsgID          int
	Ts             string
	Sender         string
	Owner          string
	ContentType    string
	Snippet        string
	IsAttachment   bool
	AttachmentFile string
	Rank           float64
}

type Options struct {
	Query  string
	Sender string // "" = all
	Type   string // "" = all, a family ("image", "audio", ...) or a concrete type name
	Since  string // "" = no filter, e.g. "2024-01-01"
	Limit  int
}

// containsCJK returns true if the string contains any CJK Unified Ideograph.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	lower := strings.ToLower(text)
	qLower := strings.ToLower(query)
	idx := strings.Index(lower, qLower)
	if idx < 0 {
		// no match, return head
		if len([]rune(text)) > contextChars*2 {
			return string([]rune(text)[:contextChars*2]) + "..."
		}
		return text
	}
	runes := []rune(text)
	qRunes := []rune(query)
	// find rune position of idx
	runePos := len([]rune(text[:idx]))
	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + len(qRunes) + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	// wrap the matched part with markers
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

// typeNames expands a family keyword to the concrete type names it covers.
// Anything that is not a family keyword is used verbatim, uppercased.
func typeNames(family string) []string {
	all := []chat.ContentType{
		chat.TypeText, chat.TypeLink, chat.TypeSticker,
		chat.TypeImage, chat.TypePNG, chat.TypeJPEG, chat.TypeGIF, chat.TypeWebP,
		chat.TypeVideo, chat.TypeMP4, chat.Type3GP, chat.TypeWebM, chat.TypeMOV, chat.TypeAVI,
		chat.TypeAudio, chat.TypeMP3, chat.TypeMP4Audio, chat.TypeMPEGAudio, chat.TypeOggOpus, chat.TypeAMR,
		chat.TypeDocument, chat.TypePDF, chat.TypeMSWord, chat.TypeMSPowerPoint, chat.TypeMSExcel,
		chat.TypeDOCX, chat.TypePPTX, chat.TypeXLSX,
		chat.TypeContact, chat.TypeUnknown,
	}
	var pick func(chat.ContentType) bool
	switch strings.ToLower(family) {
	case "image":
		pick = chat.ContentType.IsImage
	case "video":
		pick = chat.ContentType.IsVideo
	case "audio", "voice":
		pick = chat.ContentType.IsAudio
	case "document", "doc":
		pick = chat.ContentType.IsDocument
	default:
		return []string{strings.ToUpper(family)}
	}
	var names []string
	for _, t := range all {
		if pick(t) {
			names = append(names, t.String())
		}
	}
	return names
}

func Search(db *index.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	if containsCJK(opts.Query) {
		return searchLike(db, opts)
	}
	return searchFTS(db, opts)
}

func filterConditions(opts Options) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}

	if opts.Sender != "" {
		conditions = append(conditions, "m.sender = ?")
		args = append(args, opts.Sender)
	}
	if opts.Type != "" {
		names := typeNames(opts.Type)
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(names)), ",")
		conditions = append(conditions, "m.content_type IN ("+placeholders+")")
		for _, n := range names {
			args = append(args, n)
		}
	}
	if opts.Since != "" {
		conditions = append(conditions, "m.ts >= ?")
		args = append(args, opts.Since)
	}
	return conditions, args
}

func searchFTS(db *index.DB, opts Options) ([]Result, error) {
	conditions := []string{"messages_fts MATCH ?"}
	args := []interface{}{opts.Query}

	fc, fa := filterConditions(opts)
	conditions = append(conditions, fc...)
	args = append(args, fa...)

	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT
			m.export_key,
			m.msg_id,
			m.ts,
			m.sender,
			e.device_owner,
			m.content_type,
			snippet(messages_fts, 0, '>>>','<<<', '...', 40) as snip,
			m.is_attachment,
			m.attachment_file,
			bm25(messages_fts, 1.0) as rank
		FROM messages_fts
		JOIN messages m ON messages_fts.rowid = m.rowid
		JOIN exports e ON m.export_key = e.export_key
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func searchLike(db *index.DB, opts Options) ([]Result, error) {
	conditions := []string{"m.content LIKE ?"}
	args := []interface{}{"%" + opts.Query + "%"}

	fc, fa := filterConditions(opts)
	conditions = append(conditions, fc...)
	args = append(args, fa...)

	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT
			m.export_key,
			m.msg_id,
			m.ts,
			m.sender,
			e.device_owner,
			m.content_type,
			m.content,
			m.is_attachment,
			m.attachment_file
		FROM messages m
		JOIN exports e ON m.export_key = e.export_key
		WHERE %s
		ORDER BY m.ts DESC
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var fullText string
		if err := rows.Scan(
			&r.ExportKey, &r.MsgID, &r.Ts, &r.Sender, &r.Owner,
			&r.ContentType, &fullText, &r.IsAttachment, &r.AttachmentFile,
		); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(fullText, opts.Query, 30)
		r.Rank = 0
		results = append(results, r)
	}
	return results, rows.Err()
}

// ListAll returns the newest messages across all exports, honoring the
// sender, type, and since filters. Used when browsing without a query.
func ListAll(db *index.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	conditions, args := filterConditions(opts)
	where := "1=1"
	if len(conditions) > 0 {
		where = strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT
			m.export_key,
			m.msg_id,
			m.ts,
			m.sender,
			e.device_owner,
			m.content_type,
			m.content,
			m.is_attachment,
			m.attachment_file
		FROM messages m
		JOIN exports e ON m.export_key = e.export_key
		WHERE %s
		ORDER BY m.ts DESC
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var fullText string
		if err := rows.Scan(
			&r.ExportKey, &r.MsgID, &r.Ts, &r.Sender, &r.Owner,
			&r.ContentType, &fullText, &r.IsAttachment, &r.AttachmentFile,
		); err != nil {
			return nil, err
		}
		if len([]rune(fullText)) > 80 {
			fullText = string([]rune(fullText)[:80]) + "..."
		}
		r.Snippet = fullText
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(
			&r.ExportKey, &r.MsgID, &r.Ts, &r.Sender, &r.Owner,
			&r.ContentType, &r.Snippet, &r.IsAttachment, &r.AttachmentFile,
			&r.Rank,
		); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
