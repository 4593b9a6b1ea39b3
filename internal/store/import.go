package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"barkeep/internal/inventory"
	"barkeep/internal/logging"
)

// csvHeader is the required first row of an import file. rank and the
// trailing columns may be left empty per row.
var csvHeader = []string{"kind", "label", "rank", "quantity", "unit", "notes", "parent"}

// ImportCSV ingests one CSV file, upserting by (kind, label): a row whose
// label already exists for its kind updates that item in place, anything else
// gets a fresh id. Returns the number of rows imported.
func ImportCSV(s *Store, path string) (int, error) {
	timer := logging.StartTimer(logging.CategoryStore, "ImportCSV")
	defer timer.Stop()

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(csvHeader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read header of %s: %w", filepath.Base(path), err)
	}
	for i, want := range csvHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return 0, fmt.Errorf("%s: header column %d is %q, want %q", filepath.Base(path), i, header[i], want)
		}
	}

	imported := 0
	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("%s line %d: %w", filepath.Base(path), line, err)
		}
		it, err := itemFromRow(row)
		if err != nil {
			return imported, fmt.Errorf("%s line %d: %w", filepath.Base(path), line, err)
		}

		// Keep existing ids stable across repeated imports of the same file.
		if existing, err := s.GetByLabel(it.Kind, it.Label); err == nil {
			it.ID = existing.ID
		} else if !errors.Is(err, ErrNotFound) {
			return imported, err
		}
		if it.ID == "" {
			it.ID = uuid.NewString()
		}

		if err := s.Save(it); err != nil {
			return imported, err
		}
		imported++
	}

	logging.Get(logging.CategoryStore).Info("Imported %d rows from %s", imported, filepath.Base(path))
	return imported, nil
}

// ImportDir imports every *.csv file in dir concurrently. Returns the total
// row count; the first failing file aborts the rest.
func ImportDir(s *Store, dir string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return 0, fmt.Errorf("failed to scan import directory: %w", err)
	}

	var g errgroup.Group
	counts := make([]int, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			n, err := ImportCSV(s, path)
			counts[i] = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	return total, nil
}

func itemFromRow(row []string) (Item, error) {
	kind := strings.TrimSpace(strings.ToLower(row[0]))
	if !ValidKind(kind) {
		return Item{}, fmt.Errorf("unknown kind %q", row[0])
	}
	label := strings.TrimSpace(row[1])
	if label == "" {
		return Item{}, errors.New("empty label")
	}

	it := Item{
		Kind:     kind,
		Label:    label,
		Unit:     strings.TrimSpace(row[4]),
		Notes:    row[5],
		ParentID: strings.TrimSpace(row[6]),
	}
	if v := strings.TrimSpace(row[2]); v != "" {
		rank, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Item{}, fmt.Errorf("bad rank %q: %w", v, err)
		}
		it.Rank = inventory.RankOf(rank)
	}
	if v := strings.TrimSpace(row[3]); v != "" {
		qty, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Item{}, fmt.Errorf("bad quantity %q: %w", v, err)
		}
		it.Quantity = qty
	}
	return it, nil
}
