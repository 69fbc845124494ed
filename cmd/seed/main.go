// Command seed converts the staff register Excel workbook into a SQL seed
// file. Reads the BusinessAreas and Users sheets.
// Usage: go run ./cmd/seed [register.xlsx]
// Output: db/seeds/register.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
)

type areaEntry struct {
	name        string
	leaderEmail string
}

type userEntry struct {
	email       string
	firstName   string
	lastName    string
	areaName    string
	isSuperuser bool
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	xlsxPath := "register.xlsx"
	if len(os.Args) > 1 {
		xlsxPath = os.Args[1]
	}
	outPath := "db/seeds/register.sql"

	initialPassword := os.Getenv("DOCFLOW_SEED_PASSWORD")
	if initialPassword == "" {
		return fmt.Errorf("DOCFLOW_SEED_PASSWORD must be set")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(initialPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash initial password: %w", err)
	}

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	areas, err := parseAreaSheet(f)
	if err != nil {
		return fmt.Errorf("parse BusinessAreas sheet: %w", err)
	}
	log.Printf("BusinessAreas sheet: %d entries", len(areas))

	users, err := parseUserSheet(f)
	if err != nil {
		return fmt.Errorf("parse Users sheet: %w", err)
	}
	log.Printf("Users sheet: %d entries", len(users))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	if err := writeSeed(out, areas, users, string(hash)); err != nil {
		return fmt.Errorf("write seed: %w", err)
	}

	log.Printf("Generated %d areas and %d users in %s", len(areas), len(users), outPath)
	return nil
}

// parseAreaSheet reads the BusinessAreas sheet.
// Columns: A(0)=name, B(1)=leader email. Data starts at row index 1.
func parseAreaSheet(f *excelize.File) ([]areaEntry, error) {
	rows, err := f.GetRows("BusinessAreas")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []areaEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		name := strings.TrimSpace(cellVal(row, 0))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		entries = append(entries, areaEntry{
			name:        name,
			leaderEmail: strings.ToLower(strings.TrimSpace(cellVal(row, 1))),
		})
	}
	return entries, nil
}

// parseUserSheet reads the Users sheet.
// Columns: A(0)=email, B(1)=first name, C(2)=last name, D(3)=business area,
// E(4)=superuser flag ("yes"/"y"/"true"). Data starts at row index 1.
func parseUserSheet(f *excelize.File) ([]userEntry, error) {
	rows, err := f.GetRows("Users")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []userEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		email := strings.ToLower(strings.TrimSpace(cellVal(row, 0)))
		if email == "" || !strings.Contains(email, "@") || seen[email] {
			continue
		}
		seen[email] = true

		super := strings.ToLower(strings.TrimSpace(cellVal(row, 4)))
		entries = append(entries, userEntry{
			email:       email,
			firstName:   strings.TrimSpace(cellVal(row, 1)),
			lastName:    strings.TrimSpace(cellVal(row, 2)),
			areaName:    strings.TrimSpace(cellVal(row, 3)),
			isSuperuser: super == "yes" || super == "y" || super == "true",
		})
	}
	return entries, nil
}

func writeSeed(out *os.File, areas []areaEntry, users []userEntry, passwordHash string) error {
	var b strings.Builder
	b.WriteString("-- Staff register seed data generated from Excel.\n")
	fmt.Fprintf(&b, "-- %d business areas, %d users.\n", len(areas), len(users))
	b.WriteString("-- Run: make seed\n")
	b.WriteString("BEGIN;\n\n")

	for i := range areas {
		a := &areas[i]
		fmt.Fprintf(&b, "INSERT INTO business_areas (name) VALUES ('%s')\n", escapeSQL(a.name))
		b.WriteString("ON CONFLICT (name) DO NOTHING;\n")
	}
	b.WriteString("\n")

	for i := range users {
		u := &users[i]
		areaVal := "NULL"
		if u.areaName != "" {
			areaVal = fmt.Sprintf("(SELECT id FROM business_areas WHERE name = '%s')", escapeSQL(u.areaName))
		}
		fmt.Fprintf(&b,
			"INSERT INTO users (email, password_hash, first_name, last_name, is_superuser, business_area_id)\n"+
				"VALUES ('%s', '%s', '%s', '%s', %v, %s)\n"+
				"ON CONFLICT (LOWER(email)) DO NOTHING;\n",
			escapeSQL(u.email), escapeSQL(passwordHash),
			escapeSQL(u.firstName), escapeSQL(u.lastName),
			u.isSuperuser, areaVal)
	}
	b.WriteString("\n")

	// Area leaders reference users, so they resolve last.
	for i := range areas {
		a := &areas[i]
		if a.leaderEmail == "" {
			continue
		}
		fmt.Fprintf(&b,
			"UPDATE business_areas SET leader_id = (SELECT id FROM users WHERE LOWER(email) = '%s')\n"+
				"WHERE name = '%s';\n",
			escapeSQL(a.leaderEmail), escapeSQL(a.name))
	}

	b.WriteString("\nCOMMIT;\n")

	_, err := out.WriteString(b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
