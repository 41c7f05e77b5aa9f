package products

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/tuananhdo/shopora-backend/pkg/db/models"
	pkgerrors "github.com/tuananhdo/shopora-backend/pkg/errors"
)

// defaultCostRatio is applied when the cost column is absent or empty.
var defaultCostRatio = decimal.NewFromFloat(0.7)

// importRow is one parsed CSV line of a product spreadsheet.
type importRow struct {
	Name        string
	Category    string
	Price       int64
	Qty         int
	Cost        int64
	Description string
	Content     string
	Thumbnail   string
}

// ImportResult summarizes a spreadsheet import.
type ImportResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// Import reads a product CSV and creates a product, an inventory row, and an
// optional gallery image per line, all inside one transaction. The header row
// is always skipped; rows with fewer than three cells are ignored. Parse
// errors across rows are accumulated and surfaced as a single validation
// error before anything is written.
func (s *Service) Import(ctx context.Context, r io.Reader, createdBy *uuid.UUID) (*ImportResult, error) {
	rows, skipped, err := parseImportRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "spreadsheet has no importable rows")
	}

	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, row := range rows {
			category, err := s.categories.FirstOrCreateByName(ctx, tx, row.Category)
			if err != nil {
				return fmt.Errorf("category %q: %w", row.Category, err)
			}

			id := uuid.New()
			product := &models.Product{
				ID:         id,
				CategoryID: category.ID,
				Name:       row.Name,
				Slug:       makeSlug(row.Name, id),
				PriceBuy:   row.Price,
				Status:     1,
				CreatedBy:  createdBy,
			}
			if row.Description != "" {
				product.Description = &row.Description
			}
			if row.Content != "" {
				product.Content = &row.Content
			}
			if row.Thumbnail != "" {
				product.Thumbnail = &row.Thumbnail
			}
			if err := repo.Create(ctx, product); err != nil {
				return fmt.Errorf("product %q: %w", row.Name, err)
			}

			record := &models.InventoryRecord{
				ID:        uuid.New(),
				ProductID: id,
				Qty:       row.Qty,
				PriceRoot: row.Cost,
				Status:    1,
				CreatedBy: createdBy,
			}
			if err := repo.CreateInventory(ctx, record); err != nil {
				return fmt.Errorf("inventory for %q: %w", row.Name, err)
			}

			if row.Thumbnail != "" {
				image := &models.ProductImage{
					ID:        uuid.New(),
					ProductID: id,
					Image:     row.Thumbnail,
					Alt:       row.Name,
				}
				if err := repo.CreateImage(ctx, image); err != nil {
					return fmt.Errorf("gallery for %q: %w", row.Name, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "importing products")
	}

	return &ImportResult{Created: len(rows), Skipped: skipped}, nil
}

func parseImportRows(r io.Reader) ([]importRow, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var rows []importRow
	var rowErrs error
	skipped := 0
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading csv")
		}
		line++
		if line == 1 {
			continue
		}
		if len(record) < 3 {
			skipped++
			continue
		}

		row, err := parseImportRow(record)
		if err != nil {
			rowErrs = multierr.Append(rowErrs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		rows = append(rows, row)
	}

	if rowErrs != nil {
		details := make(map[string]string)
		for i, err := range multierr.Errors(rowErrs) {
			details[fmt.Sprintf("row_%d", i)] = err.Error()
		}
		return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "spreadsheet has invalid rows").
			WithDetails(details)
	}
	return rows, skipped, nil
}

func parseImportRow(record []string) (importRow, error) {
	cell := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	row := importRow{
		Name:        cell(0),
		Category:    cell(1),
		Description: cell(5),
		Content:     cell(6),
		Thumbnail:   cell(7),
	}
	if row.Name == "" {
		return importRow{}, fmt.Errorf("name is required")
	}
	if row.Category == "" {
		return importRow{}, fmt.Errorf("category is required")
	}

	price, err := strconv.ParseInt(cell(2), 10, 64)
	if err != nil || price < 0 {
		return importRow{}, fmt.Errorf("invalid price %q", cell(2))
	}
	row.Price = price

	if raw := cell(3); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil || qty < 0 {
			return importRow{}, fmt.Errorf("invalid qty %q", raw)
		}
		row.Qty = qty
	}

	if raw := cell(4); raw != "" {
		cost, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || cost < 0 {
			return importRow{}, fmt.Errorf("invalid cost %q", raw)
		}
		row.Cost = cost
	} else {
		row.Cost = decimal.NewFromInt(price).Mul(defaultCostRatio).Floor().IntPart()
	}

	return row, nil
}
