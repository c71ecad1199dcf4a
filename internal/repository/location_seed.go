package repository

import "context"

func (r LocationRepository) SeedDefaults(ctx context.Context) error {
	// The eleven barangays served by the waterworks.
	barangays := []string{
		"LOTAO",
		"CENTRAL",
		"PALAWAN",
		"CADUCAN",
		"MORYO-MORYO",
		"HIGHWAY",
		"BUSAY",
		"DUWANGAN",
		"SAN ROQUE",
		"SAN ISIDRO",
		"CALIAN",
	}

	for _, name := range barangays {
		_, err := r.DB.Pool.Exec(ctx, `
			INSERT INTO locations (name, created_at)
			VALUES ($1, now())
			ON CONFLICT (name) DO NOTHING
		`, name)
		if err != nil {
			return err
		}
	}
	return nil
}
