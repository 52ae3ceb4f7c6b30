// Seed adds 1,000 todos to the database. Run from project root: go run ./scripts/seed
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"todo-api/internal/config"
	"todo-api/internal/database"
)

func main() {
	loadEnvFile(".env")

	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Config failed:", err)
		os.Exit(1)
	}
	db, err := database.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "DB connection failed:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		fmt.Fprintln(os.Stderr, "Schema failed:", err)
		os.Exit(1)
	}

	const total = 1_000
	const batchSize = 100
	start := time.Now()

	for batch := 0; batch < total/batchSize; batch++ {
		args := make([]interface{}, 0, batchSize*3)
		placeholders := make([]string, 0, batchSize)
		for i := 0; i < batchSize; i++ {
			n := batch*batchSize + i + 1
			placeholders = append(placeholders, fmt.Sprintf("($%d,$%d,$%d)",
				3*i+1, 3*i+2, 3*i+3))
			args = append(args,
				fmt.Sprintf("Todo %d", n),
				fmt.Sprintf("Description for todo %d", n),
				false,
			)
		}
		q := `INSERT INTO todo (title, description, is_completed) VALUES ` +
			strings.Join(placeholders, ",")
		if _, err := db.ExecContext(ctx, q, args...); err != nil {
			fmt.Fprintln(os.Stderr, "Insert failed:", err)
			os.Exit(1)
		}
		fmt.Printf("\rInserted %d / %d", (batch+1)*batchSize, total)
	}

	fmt.Printf("\nDone: %d todos in %v\n", total, time.Since(start))
}

func loadEnvFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		if strings.HasPrefix(val, `"`) && strings.HasSuffix(val, `"`) {
			val = strings.Trim(val, `"`)
		} else if strings.HasPrefix(val, "'") && strings.HasSuffix(val, "'") {
			val = strings.Trim(val, "'")
		}
		if key != "" && os.Getenv(key) == "" {
			_ = os.Setenv(key, val)
		}
	}
}
