package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS reminders (
	id             TEXT PRIMARY KEY,
	title          TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	category       TEXT NOT NULL,
	subtype        TEXT NOT NULL DEFAULT '',
	crop_id        TEXT,
	due_date       DATETIME NOT NULL,
	due_time       TEXT NOT NULL DEFAULT '',
	priority       TEXT NOT NULL,
	status         TEXT NOT NULL DEFAULT 'pending',
	recurring      INTEGER NOT NULL DEFAULT 0,
	recurrence     TEXT NOT NULL DEFAULT 'none',
	snoozed_until  DATETIME,
	completed_at   DATETIME,
	created_at     DATETIME NOT NULL,
	channels       TEXT NOT NULL DEFAULT '[]',
	is_read        INTEGER NOT NULL DEFAULT 0,
	notes          TEXT NOT NULL DEFAULT '',
	auto_generated INTEGER NOT NULL DEFAULT 0,
	source         TEXT NOT NULL DEFAULT 'manual'
);

CREATE TABLE IF NOT EXISTS warnings (
	id                  TEXT PRIMARY KEY,
	title               TEXT NOT NULL,
	description         TEXT NOT NULL DEFAULT '',
	category            TEXT NOT NULL,
	severity            TEXT NOT NULL,
	status              TEXT NOT NULL DEFAULT 'active',
	affected_targets    TEXT NOT NULL DEFAULT '[]',
	recommended_actions TEXT NOT NULL DEFAULT '[]',
	generated_at        DATETIME NOT NULL,
	expires_at          DATETIME NOT NULL,
	priority_score      INTEGER NOT NULL DEFAULT 0,
	resolved_at         DATETIME,
	dismissed_at        DATETIME,
	is_read             INTEGER NOT NULL DEFAULT 0,
	auto_generated      INTEGER NOT NULL DEFAULT 0,
	source              TEXT NOT NULL DEFAULT '',
	reported_by         TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS history (
	id               TEXT PRIMARY KEY,
	entity_kind      TEXT NOT NULL,
	entity_id        TEXT NOT NULL,
	action           TEXT NOT NULL,
	title            TEXT NOT NULL,
	actor            TEXT NOT NULL DEFAULT '',
	note             TEXT NOT NULL DEFAULT '',
	completed_at     DATETIME,
	snoozed_at       DATETIME,
	rescheduled_at   DATETIME,
	dismissed_at     DATETIME,
	resolved_at      DATETIME,
	snooze_duration  TEXT NOT NULL DEFAULT '',
	rescheduled_from DATETIME,
	rescheduled_to   DATETIME
);

CREATE TABLE IF NOT EXISTS notification_settings (
	id                  INTEGER PRIMARY KEY CHECK (id = 1),
	inapp               INTEGER NOT NULL DEFAULT 1,
	push                INTEGER NOT NULL DEFAULT 1,
	sms                 INTEGER NOT NULL DEFAULT 1,
	email               INTEGER NOT NULL DEFAULT 1,
	quiet_enabled       INTEGER NOT NULL DEFAULT 0,
	quiet_start         TEXT NOT NULL DEFAULT '22:00',
	quiet_end           TEXT NOT NULL DEFAULT '06:00',
	priority_matrix     TEXT NOT NULL DEFAULT '{}',
	default_snooze_sec  INTEGER NOT NULL DEFAULT 3600
);

CREATE INDEX IF NOT EXISTS idx_reminders_status ON reminders(status);
CREATE INDEX IF NOT EXISTS idx_reminders_due_date ON reminders(due_date);
CREATE INDEX IF NOT EXISTS idx_reminders_crop ON reminders(crop_id);
CREATE INDEX IF NOT EXISTS idx_warnings_status ON warnings(status);
CREATE INDEX IF NOT EXISTS idx_warnings_category ON warnings(category);
CREATE INDEX IF NOT EXISTS idx_history_entity ON history(entity_kind, entity_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
