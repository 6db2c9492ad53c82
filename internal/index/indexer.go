package index

import (
	"time"

	"github.com/hbeckmann/waex/internal/chat"
)

const tsFormat = "2006-01-02T15:04:05Z"

// ExportMeta identifies one chat export being indexed.
type ExportMeta struct {
	ExportKey   string
	SourcePath  string
	ChatFile    string
	MD5         string
	DeviceOwner string
	Mtime       time.Time
	Size        int64
}

// NeedsUpdate reports whether the stored rows for an export are stale. A
// changed chat-file checksum always wins; mtime and size catch in-place
// directory edits.
func NeedsUpdate(db *DB, meta ExportMeta) (bool, error) {
	row, err := db.GetExport(meta.ExportKey)
	if err != nil {
		return false, err
	}
	if row == nil {
		return true, nil // new export
	}
	if row.MD5 != meta.MD5 {
		return true, nil
	}
	return row.Mtime != meta.Mtime.Unix() || row.Size != meta.Size, nil
}

// IndexExport replaces the stored rows for one export with the given parse
// result, atomically.
func IndexExport(db *DB, meta ExportMeta, result *chat.Result) error {
	if err := db.DeleteExport(meta.ExportKey); err != nil {
		return err
	}

	tx, err := db.Raw().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	firstTs, lastTs := "", ""
	if n := len(result.Messages); n > 0 {
		firstTs = result.Messages[0].Timestamp.Time.Format(tsFormat)
		lastTs = result.Messages[n-1].Timestamp.Time.Format(tsFormat)
	}

	_, err = tx.Exec(
		`INSERT INTO exports (export_key, source_path, chat_file, md5, device_owner, first_ts, last_ts, message_count, mtime, size)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ExportKey,
		meta.SourcePath,
		meta.ChatFile,
		meta.MD5,
		meta.DeviceOwner,
		firstTs,
		lastTs,
		len(result.Messages),
		meta.Mtime.Unix(),
		meta.Size,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO messages (export_key, msg_id, ts, ts_fallback, sender, content, content_type, content_length, has_length, is_attachment, attachment_file, exists_in_export, is_multiframe, is_edited)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, m := range result.Messages {
		_, err := stmt.Exec(
			meta.ExportKey,
			i,
			m.Timestamp.Time.Format(tsFormat),
			boolToInt(m.Timestamp.Fallback),
			m.Sender,
			m.Content,
			m.ContentType.String(),
			m.ContentLength,
			boolToInt(m.HasLength),
			boolToInt(m.IsAttachment),
			m.AttachmentFile,
			boolToInt(m.ExistsInExport),
			boolToInt(m.IsMultiframe),
			boolToInt(m.IsEdited),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Prune removes exports whose keys are not in seen.
func Prune(db *DB, seen map[string]struct{}) (int, error) {
	exports, err := db.AllExports()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for _, e := range exports {
		if _, ok := seen[e.ExportKey]; !ok {
			if err := db.DeleteExport(e.ExportKey); err != nil {
				return pruned, err
			}
			pruned++
		}
	}
	return pruned, nil
}

// DeviceOwner guesses the export's owner: the most frequent sender, on the
// theory that people type the most in their own chats. Explicit configuration
// overrides this.
func DeviceOwner(result *chat.Result) string {
	senders := result.Stats.Senders()
	if len(senders) == 0 {
		return ""
	}
	return senders[0]
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
