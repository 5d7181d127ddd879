package model

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDispatcher Role = "dispatcher"
	RoleVendorUser Role = "registered_user"
)

const (
	PermViewAssignedJobs = "view_assigned_jobs"
	PermUpdateJobStatus  = "update_job_status"
	PermUploadParts      = "upload_parts"
	PermManageAllJobs    = "manage_all_jobs"
	PermManageVendors    = "manage_vendors"
)

// Principal is the caller identity resolved once per request from the
// access token. It is passed into services by value and never mutated.
type Principal struct {
	UserID      uuid.UUID
	Role        Role
	VendorID    *uuid.UUID
	Permissions []string
}

func (p Principal) Has(permission string) bool {
	for _, granted := range p.Permissions {
		if granted == permission {
			return true
		}
	}
	return false
}

// VendorScoped reports whether the caller only sees records belonging to
// their own vendor.
func (p Principal) VendorScoped() bool {
	return p.Role == RoleVendorUser && p.VendorID != nil
}

// OwnsVendor reports whether a vendor-scoped caller is bound to vendorID.
// Non-scoped callers own everything.
func (p Principal) OwnsVendor(vendorID uuid.UUID) bool {
	if !p.VendorScoped() {
		return true
	}
	return *p.VendorID == vendorID
}
