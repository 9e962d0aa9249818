// Command migrate applies the SQL files in migrations/ to the database named
// by DATABASE_URL, in lexical order, one transaction per file. The schema is
// small enough that plain SQL files beat a migration framework.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/lib/pq"
)

func main() {
	dir := flag.String("dir", "migrations", "directory containing .sql migration files")
	list := flag.Bool("list", false, "list public tables instead of migrating")
	flag.Parse()

	if err := run(*dir, *list); err != nil {
		log.Fatal(err)
	}
}

func run(dir string, listOnly bool) error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	if listOnly {
		return listTables(db)
	}
	return applyAll(db, dir)
}

func listTables(db *sql.DB) error {
	rows, err := db.Query(
		"SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		fmt.Println(name)
	}
	return rows.Err()
}

// applyAll runs every .sql file in lexical order, stopping at the first
// failure so a broken migration never leaves later ones half-applied.
func applyAll(db *sql.DB, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read migrations dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, f := range files {
		if err := applyOne(db, filepath.Join(dir, f)); err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		log.Printf("applied %s", f)
	}
	log.Printf("done: %d migrations", len(files))
	return nil
}

func applyOne(db *sql.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(string(data)); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
