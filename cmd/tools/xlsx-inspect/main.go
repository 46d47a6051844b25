// Package main dumps the schema of a well log workbook: its sheets, their
// headers, and a few sample rows. Useful when mapping a new export's columns
// before wiring it into the analyzer.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/xuri/excelize/v2"
)

func main() {
	var (
		file       = flag.String("file", "", "Workbook path (required)")
		sampleRows = flag.Int("rows", 3, "Sample rows to print per sheet")
	)
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	book, err := excelize.OpenFile(*file)
	if err != nil {
		log.Fatalf("Failed to open workbook: %v", err)
	}
	defer book.Close()

	for _, sheet := range book.GetSheetList() {
		if err := inspectSheet(book, sheet, *sampleRows); err != nil {
			log.Fatalf("Failed to inspect sheet %s: %v", sheet, err)
		}
	}
}

func inspectSheet(book *excelize.File, sheet string, sampleRows int) error {
	rows, err := book.Rows(sheet)
	if err != nil {
		return err
	}
	defer rows.Close()

	fmt.Printf("Sheet: %s\n", sheet)

	printed := 0
	total := 0
	for rows.Next() {
		row, err := rows.Columns()
		if err != nil {
			return err
		}
		total++

		switch {
		case total == 1:
			fmt.Printf("  columns (%d): %v\n", len(row), row)
		case printed < sampleRows:
			fmt.Printf("  row %d: %v\n", total-1, row)
			printed++
		}
	}
	if err := rows.Error(); err != nil {
		return err
	}

	if total == 0 {
		fmt.Printf("  (empty sheet)\n")
		return nil
	}
	fmt.Printf("  data rows: %d\n", total-1)
	return nil
}
