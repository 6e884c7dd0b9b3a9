package extract

import (
	"context"
	"fmt"
	"os"

	"github.com/petitlyon/cartomat/internal/table"
)

// CSV extracts a raw table from a CSV file whose first row is the header.
type CSV struct{}

func (CSV) Extract(_ context.Context, path string) (table.Raw, error) {
	file, err := os.Open(path)
	if err != nil {
		return table.Raw{}, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return table.ReadCSV(file)
}
