package storage

// sqlite.go — cache local de disclosures legislativas.
//
// Los feeds de House y Senate son volcados completos de varios MB; descargarlos
// en cada scan es caro y el contenido cambia como mucho unas veces al día.
//   - `disclosure_fetches`: una fila por cámara con el momento de la descarga.
//   - `disclosures`: las operaciones de la última descarga de cada cámara.
//     Cada Save reemplaza por completo las filas de esa cámara.
//   - Prune automático al arrancar: descargas con más de 7 días.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/nomnom/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS disclosure_fetches (
    chamber    TEXT PRIMARY KEY,
    fetched_at TEXT    NOT NULL,
    total      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS disclosures (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    chamber         TEXT NOT NULL,
    politician      TEXT NOT NULL,
    party           TEXT,
    state           TEXT,
    ticker          TEXT,
    company         TEXT,
    trade_type      TEXT NOT NULL,
    amount_low      REAL NOT NULL DEFAULT 0,
    amount_high     REAL NOT NULL DEFAULT 0,
    trade_date      TEXT NOT NULL,
    disclosure_date TEXT,
    source_url      TEXT
);

CREATE INDEX IF NOT EXISTS idx_disc_chamber_date ON disclosures(chamber, trade_date DESC);
`

const retentionFetches = 7 * 24 * time.Hour

// SQLiteStorage implementa ports.DisclosureCache usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada,
// aplica el schema y limpia descargas antiguas.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background(), time.Now().UTC())
	return s, nil
}

// SaveDisclosures reemplaza las operaciones cacheadas de la cámara.
func (s *SQLiteStorage) SaveDisclosures(ctx context.Context, chamber domain.Chamber, trades []domain.LegislativeTrade, fetchedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveDisclosures: begin tx: %w", err)
	}
	defer tx.Rollback()

	key := chamber.String()
	if _, err := tx.ExecContext(ctx, `DELETE FROM disclosures WHERE chamber = ?`, key); err != nil {
		return fmt.Errorf("storage.SaveDisclosures: clear %s: %w", key, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO disclosures (
			chamber, politician, party, state, ticker, company, trade_type,
			amount_low, amount_high, trade_date, disclosure_date, source_url
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage.SaveDisclosures: prepare: %w", err)
	}
	defer stmt.Close()

	for _, t := range trades {
		if _, err := stmt.ExecContext(ctx,
			t.Chamber.String(), t.Politician, t.Party, t.State, t.Ticker, t.Company,
			t.TradeType.String(), t.AmountLow, t.AmountHigh,
			formatTime(t.TradeDate), formatTime(t.DisclosureDate), t.SourceURL,
		); err != nil {
			return fmt.Errorf("storage.SaveDisclosures: insert %s: %w", t.Politician, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO disclosure_fetches (chamber, fetched_at, total) VALUES (?, ?, ?)
		ON CONFLICT(chamber) DO UPDATE SET fetched_at = excluded.fetched_at, total = excluded.total`,
		key, formatTime(fetchedAt), len(trades),
	); err != nil {
		return fmt.Errorf("storage.SaveDisclosures: upsert fetch: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveDisclosures: commit: %w", err)
	}
	return nil
}

// LoadDisclosures devuelve las operaciones cacheadas de la cámara,
// ordenadas por trade_date descendente.
func (s *SQLiteStorage) LoadDisclosures(ctx context.Context, chamber domain.Chamber) ([]domain.LegislativeTrade, time.Time, bool, error) {
	key := chamber.String()

	var fetched string
	err := s.db.QueryRowContext(ctx,
		`SELECT fetched_at FROM disclosure_fetches WHERE chamber = ?`, key,
	).Scan(&fetched)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("storage.LoadDisclosures: fetch row: %w", err)
	}
	fetchedAt, _ := time.Parse(time.RFC3339, fetched)

	rows, err := s.db.QueryContext(ctx, `
		SELECT chamber, politician, party, state, ticker, company, trade_type,
		       amount_low, amount_high, trade_date, disclosure_date, source_url
		FROM disclosures
		WHERE chamber = ?
		ORDER BY trade_date DESC, id ASC`, key)
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("storage.LoadDisclosures: query: %w", err)
	}
	defer rows.Close()

	trades := make([]domain.LegislativeTrade, 0)
	for rows.Next() {
		var (
			t                     domain.LegislativeTrade
			chamberStr, tradeType string
			party, state, ticker  sql.NullString
			company, sourceURL    sql.NullString
			tradeDate             string
			disclosureDate        sql.NullString
		)
		if err := rows.Scan(
			&chamberStr, &t.Politician, &party, &state, &ticker, &company, &tradeType,
			&t.AmountLow, &t.AmountHigh, &tradeDate, &disclosureDate, &sourceURL,
		); err != nil {
			return nil, time.Time{}, false, fmt.Errorf("storage.LoadDisclosures: scan: %w", err)
		}
		t.Chamber, _ = domain.ParseChamber(chamberStr)
		t.TradeType = domain.ParseTradeType(tradeType)
		t.Party, t.State, t.Ticker = party.String, state.String, ticker.String
		t.Company, t.SourceURL = company.String, sourceURL.String
		t.TradeDate, _ = time.Parse(time.RFC3339, tradeDate)
		if disclosureDate.Valid && disclosureDate.String != "" {
			t.DisclosureDate, _ = time.Parse(time.RFC3339, disclosureDate.String)
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, false, fmt.Errorf("storage.LoadDisclosures: rows: %w", err)
	}
	return trades, fetchedAt, true, nil
}

// Close cierra la conexión a la base de datos limpiamente.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// pruneOld elimina las descargas más antiguas que retentionFetches.
func (s *SQLiteStorage) pruneOld(ctx context.Context, now time.Time) {
	cutoff := formatTime(now.Add(-retentionFetches))
	rows, err := s.db.QueryContext(ctx, `SELECT chamber FROM disclosure_fetches WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return
	}
	var stale []string
	for rows.Next() {
		var c string
		if rows.Scan(&c) == nil {
			stale = append(stale, c)
		}
	}
	rows.Close()

	for _, c := range stale {
		s.db.ExecContext(ctx, `DELETE FROM disclosures WHERE chamber = ?`, c)
		s.db.ExecContext(ctx, `DELETE FROM disclosure_fetches WHERE chamber = ?`, c)
	}
}

// formatTime serializa en RFC3339 UTC; el cero se guarda como cadena vacía.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
