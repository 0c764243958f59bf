package testhelpers

import (
	"context"
	"fmt"
)

const fixturesSQL = `
INSERT INTO countries (id, name, iso_code) VALUES
	('6f1c1d4e-3c1a-4c52-9a4a-0d2b1f8e0001', 'United States', 'US'),
	('6f1c1d4e-3c1a-4c52-9a4a-0d2b1f8e0002', 'Canada', 'CA'),
	('6f1c1d4e-3c1a-4c52-9a4a-0d2b1f8e0003', 'Mexico', 'MX');

INSERT INTO states (id, name, state_code, capital, population) VALUES
	('6f1c1d4e-3c1a-4c52-9a4a-0d2b1f8e0101', 'New York', 'NY', 'Albany', 19450000),
	('6f1c1d4e-3c1a-4c52-9a4a-0d2b1f8e0102', 'Louisiana', 'LA', 'Baton Rouge', 4590000),
	('6f1c1d4e-3c1a-4c52-9a4a-0d2b1f8e0103', 'Massachusetts', 'MA', 'Boston', 7000000);

INSERT INTO cities (id, name, state_code) VALUES
	('6f1c1d4e-3c1a-4c52-9a4a-0d2b1f8e0201', 'New York', 'NY'),
	('6f1c1d4e-3c1a-4c52-9a4a-0d2b1f8e0202', 'New Orleans', 'LA'),
	('6f1c1d4e-3c1a-4c52-9a4a-0d2b1f8e0203', 'Boston', 'MA'),
	('6f1c1d4e-3c1a-4c52-9a4a-0d2b1f8e0204', 'Albany', 'NY');
`

// LoadFixtures загружает базовый набор стран, штатов и городов
func (tdb *TestDB) LoadFixtures(ctx context.Context) error {
	if _, err := tdb.DB.ExecContext(ctx, fixturesSQL); err != nil {
		return fmt.Errorf("load fixtures: %w", err)
	}
	return nil
}
