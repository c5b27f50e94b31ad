package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
)

const Version = "1.0.0"

// NewHealthHandler reports the catalog store. The check reuses the pool that
// serves catalog queries instead of dialing a second connection.
func NewHealthHandler(serviceName string, db *sql.DB) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    serviceName,
			Version: Version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "catalog-store",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: func(ctx context.Context) error {
					if db == nil {
						return fmt.Errorf("catalog store is not initialized")
					}
					if err := db.PingContext(ctx); err != nil {
						return fmt.Errorf("failed to reach catalog store: %w", err)
					}
					return nil
				},
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
