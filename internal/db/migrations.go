package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'job_status') THEN
			CREATE TYPE job_status AS ENUM ('available', 'assigned', 'in_progress', 'completed', 'cancelled', 'on_hold');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'job_priority') THEN
			CREATE TYPE job_priority AS ENUM ('low', 'medium', 'high', 'urgent');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'assignment_status') THEN
			CREATE TYPE assignment_status AS ENUM ('assigned', 'arrived', 'in_progress', 'waiting_on_parts', 'completed', 'rescheduled', 'cancelled');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'photo_type') THEN
			CREATE TYPE photo_type AS ENUM ('before', 'during', 'after', 'part', 'general');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS vendors (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone_number VARCHAR(64) NOT NULL,
		street VARCHAR(255),
		city VARCHAR(128),
		state VARCHAR(64),
		zip VARCHAR(32),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		specialties TEXT,
		notes TEXT,
		total_jobs BIGINT NOT NULL DEFAULT 0,
		completed_jobs BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_vendors_email ON vendors (LOWER(email));`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		so_number VARCHAR(64) NOT NULL,
		customer_name VARCHAR(128) NOT NULL,
		customer_last_name VARCHAR(128) NOT NULL,
		customer_address VARCHAR(255) NOT NULL,
		customer_city VARCHAR(128) NOT NULL,
		customer_state VARCHAR(64) NOT NULL,
		customer_zip VARCHAR(32) NOT NULL,
		customer_phone VARCHAR(64) NOT NULL,
		customer_email VARCHAR(255),
		appliance_type VARCHAR(128) NOT NULL,
		appliance_brand VARCHAR(128),
		model_number VARCHAR(128),
		serial_number VARCHAR(128),
		service_description TEXT NOT NULL,
		scheduled_date TIMESTAMPTZ NOT NULL,
		scheduled_time_window VARCHAR(64) NOT NULL,
		priority job_priority NOT NULL DEFAULT 'medium',
		status job_status NOT NULL DEFAULT 'available',
		notes TEXT,
		internal_notes TEXT,
		created_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_jobs_so_number ON jobs (so_number);`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_status_scheduled ON jobs (status, scheduled_date);`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_city ON jobs (customer_city);`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_appliance_type ON jobs (appliance_type);`,
	`CREATE TABLE IF NOT EXISTS assignments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		vendor_id UUID NOT NULL REFERENCES vendors(id),
		status assignment_status NOT NULL DEFAULT 'assigned',
		assigned_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		scheduled_arrival TIMESTAMPTZ,
		actual_arrival TIMESTAMPTZ,
		work_started TIMESTAMPTZ,
		completed_at TIMESTAMPTZ,
		notes TEXT,
		vendor_notes TEXT,
		completion_notes TEXT,
		customer_signature TEXT,
		labor_hours NUMERIC(8,2) NOT NULL DEFAULT 0,
		total_parts_cost NUMERIC(12,2) NOT NULL DEFAULT 0,
		total_labor_cost NUMERIC(12,2) NOT NULL DEFAULT 0,
		total_cost NUMERIC(12,2) NOT NULL DEFAULT 0,
		reschedule_original_date TIMESTAMPTZ,
		reschedule_new_date TIMESTAMPTZ,
		reschedule_reason TEXT,
		reschedule_requested_at TIMESTAMPTZ,
		invoice_number VARCHAR(64),
		invoice_generated_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_vendor_status ON assignments (vendor_id, status);`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_job_id ON assignments (job_id);`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_scheduled_arrival ON assignments (scheduled_arrival);`,
	`CREATE TABLE IF NOT EXISTS parts (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		assignment_id UUID NOT NULL REFERENCES assignments(id) ON DELETE CASCADE,
		part_number VARCHAR(128) NOT NULL,
		part_name VARCHAR(255) NOT NULL,
		quantity INT NOT NULL CHECK (quantity >= 1),
		unit_cost NUMERIC(12,2) NOT NULL CHECK (unit_cost >= 0),
		line_total NUMERIC(12,2) NOT NULL,
		notes TEXT,
		added_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_parts_assignment_id ON parts (assignment_id);`,
	`CREATE TABLE IF NOT EXISTS photos (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		assignment_id UUID NOT NULL REFERENCES assignments(id) ON DELETE CASCADE,
		part_id UUID REFERENCES parts(id) ON DELETE CASCADE,
		filename VARCHAR(255) NOT NULL,
		original_name VARCHAR(255),
		url TEXT NOT NULL,
		storage_key TEXT,
		mime_type VARCHAR(128),
		size BIGINT,
		description TEXT,
		photo_type photo_type NOT NULL DEFAULT 'general',
		uploaded_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_photos_assignment_id ON photos (assignment_id);`,
	`CREATE INDEX IF NOT EXISTS idx_photos_part_id ON photos (part_id) WHERE part_id IS NOT NULL;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
