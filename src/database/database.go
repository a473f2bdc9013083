package database

import (
	"database/sql"
	stdlog "log"

	"github.com/username/tradevault/backend/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	if logger.L != nil {
		logger.L.Info("Checking database migrations", "databasePath", databasePath)
	} else {
		stdlog.Println("Checking database migrations for:", databasePath)
	}
	migrateTradesTable()

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		hash_id TEXT NOT NULL,
		account_number TEXT,
		instrument TEXT NOT NULL,
		side TEXT NOT NULL,
		quantity REAL NOT NULL,
		entry_price TEXT,
		close_price TEXT,
		entry_date TEXT NOT NULL,
		close_date TEXT,
		pnl REAL,
		commission REAL,
		time_in_position INTEGER,
		entry_id TEXT,
		close_id TEXT,
		comment TEXT,
		tags TEXT,
		platform TEXT,
		import_run_id TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_id, hash_id)
	);

	CREATE INDEX IF NOT EXISTS idx_trades_user_instrument
		ON trades(user_id, instrument);

	CREATE TABLE IF NOT EXISTS commission_rates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		instrument TEXT NOT NULL,
		rate REAL NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_id, instrument)
	);
	`

	_, err = DB.Exec(createTableStatement)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}
	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.")
	} else {
		stdlog.Println("Database tables ensured/created.")
	}
}

// migrateTradesTable adds columns introduced after the first release to
// existing databases.
func migrateTradesTable() {
	var tableName string
	err := DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='trades'").Scan(&tableName)
	if err != nil {
		if err == sql.ErrNoRows {
			return // fresh database, table will be created with every column
		}
		if logger.L != nil {
			logger.L.Error("Error checking for 'trades' table", "error", err)
		}
		return
	}

	rows, err := DB.Query("PRAGMA table_info(trades)")
	if err != nil {
		if logger.L != nil {
			logger.L.Error("Error reading trades table info", "error", err)
		}
		return
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dfltValue interface{}
		if scanErr := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); scanErr == nil {
			existing[name] = true
		}
	}

	addColumn := func(name, definition string) {
		if existing[name] {
			return
		}
		if _, execErr := DB.Exec("ALTER TABLE trades ADD COLUMN " + name + " " + definition); execErr != nil {
			if logger.L != nil {
				logger.L.Error("Failed to add column to trades", "column", name, "error", execErr)
			}
		} else if logger.L != nil {
			logger.L.Info("Added column to trades table", "column", name)
		}
	}

	addColumn("comment", "TEXT")
	addColumn("tags", "TEXT")
	addColumn("platform", "TEXT")
	addColumn("import_run_id", "TEXT")
}
