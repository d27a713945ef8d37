package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"storefront/internal/domain"
)

// ProductWriter stores catalog rows. Deactivate hides a product by slug.
type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
	Deactivate(ctx context.Context, slug string) error
}

// Result summarises one import run.
type Result struct {
	Imported    int
	Deactivated int
}

// CSVImporter reads catalog CSV exports into the Postgres catalog cache. List cells
// (images, categories, sizes, fits, colors) are separated by ';'. A row with no slug but
// an image continues the previous product's image list.
type CSVImporter struct {
	reader   *csv.Reader
	products ProductWriter
	logger   *zap.Logger
}

func NewCSVImporter(r io.Reader, repo ProductWriter, logger *zap.Logger) *CSVImporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:   csvr,
		products: repo,
		logger:   logger,
	}
}

type csvRow struct {
	line    int
	active  bool
	product domain.Product
}

// Run parses the CSV and upserts active products, deactivating rows marked inactive.
func (i *CSVImporter) Run(ctx context.Context) (Result, error) {
	var res Result
	headers, err := i.reader.Read()
	if err != nil {
		return res, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["slug"]; !ok {
		return res, errors.New("csv header must include slug")
	}

	var current *csvRow
	flush := func() error {
		if current == nil {
			return nil
		}
		if err := i.save(ctx, current, &res); err != nil {
			return err
		}
		current = nil
		return nil
	}

	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read row: %w", err)
		}
		line++

		row, err := parseRow(record, index, line)
		if err != nil {
			return res, err
		}
		if row == nil {
			continue
		}

		if row.product.Slug != "" {
			if err := flush(); err != nil {
				return res, err
			}
			current = row
			continue
		}

		if current != nil {
			current.product.Images = append(current.product.Images, row.product.Images...)
		} else {
			i.logger.Warn("image row without product skipped", zap.Int("line", line))
		}
	}

	if err := flush(); err != nil {
		return res, err
	}
	return res, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow, res *Result) error {
	p := row.product
	if !row.active {
		if err := i.products.Deactivate(ctx, p.Slug); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("deactivate product %q: %w", p.Slug, err)
		}
		res.Deactivated++
		return nil
	}
	if p.Title == "" || p.Price <= 0 {
		return fmt.Errorf("line %d: product %q needs a title and a positive price", row.line, p.Slug)
	}
	if p.ID == "" {
		p.ID = p.Slug
	}
	if _, err := i.products.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert product %q: %w", p.Slug, err)
	}
	res.Imported++
	i.logger.Debug("product imported", zap.String("slug", p.Slug), zap.Int64("price", p.Price))
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int, line int) (*csvRow, error) {
	slug := pick(record, index, "slug")
	images := list(pick(record, index, "images"))
	if slug == "" && len(images) == 0 {
		return nil, nil
	}

	price, err := units(pick(record, index, "price"))
	if err != nil {
		return nil, fmt.Errorf("line %d: price: %w", line, err)
	}
	original, err := units(pick(record, index, "originalPrice"))
	if err != nil {
		return nil, fmt.Errorf("line %d: originalPrice: %w", line, err)
	}

	return &csvRow{
		line:    line,
		active:  flag(pick(record, index, "active"), true),
		product: domain.Product{
			ID:            pick(record, index, "id"),
			Slug:          slug,
			Title:         pick(record, index, "title"),
			Price:         price,
			OriginalPrice: original,
			Images:        images,
			Categories:    list(pick(record, index, "categories")),
			Badge:         strings.ToUpper(pick(record, index, "badge")),
			Sizes:         list(pick(record, index, "sizes")),
			Fits:          list(pick(record, index, "fits")),
			Colors:        list(pick(record, index, "colors")),
			InStock:       flag(pick(record, index, "inStock"), true),
		},
	}, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func list(cell string) []string {
	var out []string
	for _, part := range strings.Split(cell, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// units parses a decimal amount into whole units, rounding half up.
func units(cell string) (int64, error) {
	if cell == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("negative amount %q", cell)
	}
	return int64(math.Floor(f + 0.5)), nil
}

func flag(cell string, def bool) bool {
	if cell == "" {
		return def
	}
	b, err := strconv.ParseBool(cell)
	if err != nil {
		return def
	}
	return b
}
