// Package domain defines the persisted model for the agency-management
// backend. Every table except agency and the super_admin users carries an
// agency_id; tenant isolation is enforced one layer up, in the tenant
// repos and services, never by callers.
package domain
