package atlas

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS sprite (
	id INTEGER PRIMARY KEY NOT NULL,
	image TEXT NOT NULL UNIQUE,
	width INTEGER NOT NULL,
	height INTEGER NOT NULL,
	mode TEXT NOT NULL,
	glyph_order TEXT NOT NULL,
	cell_w INTEGER,
	cell_h INTEGER
);
CREATE TABLE IF NOT EXISTS glyph (
	sprite_id INTEGER NOT NULL,
	idx INTEGER NOT NULL,
	ch TEXT NOT NULL,
	sx INTEGER NOT NULL,
	sy INTEGER NOT NULL,
	w INTEGER NOT NULL,
	h INTEGER NOT NULL,
	PRIMARY KEY (sprite_id, idx),
	FOREIGN KEY(sprite_id) REFERENCES sprite(id) ON DELETE CASCADE
);`

// WriteSQLite stores doc in the database at path, replacing any previous
// rows for the same image.
func WriteSQLite(doc *Document, path string) error {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", path))
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM sprite WHERE image = ?", doc.Meta.Image); err != nil {
		return err
	}

	res, err := tx.Exec(
		"INSERT INTO sprite (image, width, height, mode, glyph_order, cell_w, cell_h) VALUES (?, ?, ?, ?, ?, ?, ?)",
		doc.Meta.Image, doc.Meta.ImageWidth, doc.Meta.ImageHeight, doc.Meta.Mode, doc.Meta.Order,
		nullableInt(doc.Meta.CellW), nullableInt(doc.Meta.CellH),
	)
	if err != nil {
		return err
	}
	spriteID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO glyph (sprite_id, idx, ch, sx, sy, w, h) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range doc.Coords {
		if _, err := stmt.Exec(spriteID, c.Index, c.Char, c.SX, c.SY, c.W, c.H); err != nil {
			return fmt.Errorf("insert glyph %d: %w", c.Index, err)
		}
	}

	return tx.Commit()
}

// ReadSQLite loads the coordinates stored for image. An empty image selects
// the sprite written last.
func ReadSQLite(path, image string) (*Document, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", path))
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var (
		doc          Document
		id           int64
		cellW, cellH sql.NullInt64
	)
	query := "SELECT id, image, width, height, mode, glyph_order, cell_w, cell_h FROM sprite WHERE image = ?"
	args := []any{image}
	if image == "" {
		query = "SELECT id, image, width, height, mode, glyph_order, cell_w, cell_h FROM sprite ORDER BY id DESC LIMIT 1"
		args = nil
	}

	err = db.QueryRow(query, args...).Scan(&id, &doc.Meta.Image, &doc.Meta.ImageWidth, &doc.Meta.ImageHeight, &doc.Meta.Mode, &doc.Meta.Order, &cellW, &cellH)
	if err != nil {
		return nil, err
	}
	doc.Meta.CellW = int(cellW.Int64)
	doc.Meta.CellH = int(cellH.Int64)

	rows, err := db.Query("SELECT idx, ch, sx, sy, w, h FROM glyph WHERE sprite_id = ? ORDER BY idx", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c CoordRecord
		if err := rows.Scan(&c.Index, &c.Char, &c.SX, &c.SY, &c.W, &c.H); err != nil {
			return nil, err
		}
		doc.Coords = append(doc.Coords, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	doc.Meta.CharCount = len(doc.Coords)
	return &doc, nil
}

func nullableInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v > 0}
}
