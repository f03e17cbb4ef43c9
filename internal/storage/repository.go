// ABOUTME: Repository interface for vitals data storage.
// ABOUTME: Defines contract for readings and analyzed reports.
package storage

import (
	"errors"

	"github.com/harperreed/vitals/internal/models"
	"github.com/harperreed/vitals/internal/vitals"
)

// ErrNotFound is returned when an ID or prefix matches nothing.
var ErrNotFound = errors.New("not found")

// Repository defines the storage interface for vitals data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Reading operations
	CreateReading(r *models.Reading) error
	GetReading(idOrPrefix string) (*models.Reading, error)
	ListReadings(kind *vitals.Kind, limit int) ([]*models.Reading, error)
	DeleteReading(idOrPrefix string) error
	GetLatestReading(kind vitals.Kind) (*models.Reading, error)

	// Report operations
	SaveReport(r *models.Report) error
	GetReport(idOrPrefix string) (*models.Report, error)
	ListReports(limit int) ([]*models.Report, error)
	DeleteReport(idOrPrefix string) error
	PruneReports(keep int) (int, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
