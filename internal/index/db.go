package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA cache_size = -64000;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS exports (
    export_key    TEXT PRIMARY KEY,
    source_path   TEXT NOT NULL,
    chat_file     TEXT NOT NULL,
    md5           TEXT NOT NULL DEFAULT '',
    device_owner  TEXT NOT NULL DEFAULT '',
    first_ts      TEXT NOT NULL DEFAULT '',
    last_ts       TEXT NOT NULL DEFAULT '',
    message_count INTEGER NOT NULL DEFAULT 0,
    mtime         INTEGER NOT NULL DEFAULT 0,
    size          INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS messages (
    export_key       TEXT NOT NULL,
    msg_id           INTEGER NOT NULL,
    ts               TEXT NOT NULL DEFAULT '',
    ts_fallback      INTEGER NOT NULL DEFAULT 0,
    sender           TEXT NOT NULL,
    content          TEXT NOT NULL,
    content_type     TEXT NOT NULL DEFAULT 'TEXT',
    content_length   INTEGER NOT NULL DEFAULT 0,
    has_length       INTEGER NOT NULL DEFAULT 0,
    is_attachment    INTEGER NOT NULL DEFAULT 0,
    attachment_file  TEXT NOT NULL DEFAULT '',
    exists_in_export INTEGER NOT NULL DEFAULT 0,
    is_multiframe    INTEGER NOT NULL DEFAULT 0,
    is_edited        INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (export_key, msg_id)
);

CREATE VIRTUAL TABLE IF NOT EXISTS messages_fts USING fts5(
    content,
    content=messages,
    content_rowid=rowid,
    tokenize='unicode61'
);

-- triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS messages_ai AFTER INSERT ON messages BEGIN
    INSERT INTO messages_fts(rowid, content) VALUES (new.rowid, new.content);
END;

CREATE TRIGGER IF NOT EXISTS messages_ad AFTER DELETE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, content) VALUES('delete', old.rowid, old.content);
END;

CREATE TRIGGER IF NOT EXISTS messages_au AFTER UPDATE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, content) VALUES('delete', old.rowid, old.content);
    INSERT INTO messages_fts(rowid, content) VALUES (new.rowid, new.content);
END;
`

type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	// schema version tracking for forced re-index
	db.Exec("CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT)")
	d := &DB{db: db}
	d.migrateSchemaVersion()

	return d, nil
}

// schemaVersion should be bumped whenever parsing or classification logic
// changes to force a full re-index.
const schemaVersion = "1"

func (d *DB) migrateSchemaVersion() {
	var ver string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	if err != nil || ver != schemaVersion {
		// force re-index by invalidating the stored checksums
		d.db.Exec("UPDATE exports SET md5 = '', mtime = 0, size = 0")
		d.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
	}
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

type ExportRow struct {
	ExportKey    string
	SourcePath   string
	ChatFile     string
	MD5          string
	DeviceOwner  string
	FirstTs      string
	LastTs       string
	MessageCount int
	Mtime        int64
	Size         int64
}

func (d *DB) GetExport(exportKey string) (*ExportRow, error) {
	var e ExportRow
	err := d.db.QueryRow(
		"SELECT export_key, source_path, chat_file, md5, device_owner, first_ts, last_ts, message_count, mtime, size FROM exports WHERE export_key = ?",
		exportKey,
	).Scan(&e.ExportKey, &e.SourcePath, &e.ChatFile, &e.MD5, &e.DeviceOwner,
		&e.FirstTs, &e.LastTs, &e.MessageCount, &e.Mtime, &e.Size)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (d *DB) AllExports() ([]ExportRow, error) {
	rows, err := d.db.Query(
		"SELECT export_key, source_path, chat_file, md5, device_owner, first_ts, last_ts, message_count, mtime, size FROM exports ORDER BY last_ts DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exports []ExportRow
	for rows.Next() {
		var e ExportRow
		if err := rows.Scan(&e.ExportKey, &e.SourcePath, &e.ChatFile, &e.MD5, &e.DeviceOwner,
			&e.FirstTs, &e.LastTs, &e.MessageCount, &e.Mtime, &e.Size); err != nil {
			return nil, err
		}
		exports = append(exports, e)
	}
	return exports, rows.Err()
}

func (d *DB) DeleteExport(exportKey string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM messages WHERE export_key = ?", exportKey); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM exports WHERE export_key = ?", exportKey); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) ExportCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM exports").Scan(&n)
	return n, err
}

func (d *DB) MessageCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n)
	return n, err
}

type MessageRow struct {
	ExportKey      string
	MsgID          int
	Ts             string
	TsFallback     bool
	Sender         string
	Content        string
	ContentType    string
	ContentLength  int
	HasLength      bool
	IsAttachment   bool
	AttachmentFile string
	ExistsInExport bool
	IsMultiframe   bool
	IsEdited       bool
}

const messageCols = "export_key, msg_id, ts, ts_fallback, sender, content, content_type, content_length, has_length, is_attachment, attachment_file, exists_in_export, is_multiframe, is_edited"

func scanMessage(rows *sql.Rows) (MessageRow, error) {
	var m MessageRow
	err := rows.Scan(&m.ExportKey, &m.MsgID, &m.Ts, &m.TsFallback, &m.Sender, &m.Content,
		&m.ContentType, &m.ContentLength, &m.HasLength, &m.IsAttachment, &m.AttachmentFile,
		&m.ExistsInExport, &m.IsMultiframe, &m.IsEdited)
	return m, err
}

func (d *DB) GetMessages(exportKey string) ([]MessageRow, error) {
	rows, err := d.db.Query(
		"SELECT "+messageCols+" FROM messages WHERE export_key = ? ORDER BY msg_id",
		exportKey,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []MessageRow
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// GetMessagesWindow returns a window of messages around a hit message.
// It only loads the necessary rows instead of the whole chat.
// startPos is the number of messages before the returned window.
// totalCount is the total number of messages in the export.
func (d *DB) GetMessagesWindow(exportKey string, hitMsgID, context int) (msgs []MessageRow, hitIdx int, startPos int, totalCount int, err error) {
	// get total count
	err = d.db.QueryRow(
		"SELECT COUNT(*) FROM messages WHERE export_key = ?", exportKey,
	).Scan(&totalCount)
	if err != nil {
		return nil, -1, 0, 0, err
	}

	// find the row_number (0-based position) of the hit message
	hitPos := -1
	if hitMsgID >= 0 {
		err = d.db.QueryRow(`
			SELECT pos FROM (
				SELECT msg_id, ROW_NUMBER() OVER (ORDER BY msg_id) - 1 AS pos
				FROM messages WHERE export_key = ?
			) WHERE msg_id = ?`,
			exportKey, hitMsgID,
		).Scan(&hitPos)
		if err == sql.ErrNoRows {
			hitPos = -1
			err = nil
		} else if err != nil {
			return nil, -1, 0, 0, err
		}
	}

	// compute window bounds
	startPos = 0
	limit := totalCount
	if hitPos >= 0 {
		startPos = hitPos - context
		if startPos < 0 {
			startPos = 0
		}
		endPos := hitPos + context + 1
		if endPos > totalCount {
			endPos = totalCount
		}
		limit = endPos - startPos
	}

	rows, err := d.db.Query(
		"SELECT "+messageCols+" FROM messages WHERE export_key = ? ORDER BY msg_id LIMIT ? OFFSET ?",
		exportKey, limit, startPos,
	)
	if err != nil {
		return nil, -1, 0, 0, err
	}
	defer rows.Close()

	var result []MessageRow
	localHitIdx := -1
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, -1, 0, 0, err
		}
		if m.MsgID == hitMsgID {
			localHitIdx = len(result)
		}
		result = append(result, m)
	}
	return result, localHitIdx, startPos, totalCount, rows.Err()
}
