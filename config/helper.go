// get data out of config //
package config

import (
	glb "github.ibmgcloud.net/dth/pmo_saver/global_structs"
)

// the filter the add-on historically shipped with, used when neither the user
// nor the service config define one
const fallbackJQL = `project = CXPRODELIVERY AND issuetype in (Project, "Project (Standard Solution)") AND status in (HYPERCARE, "Order received", "Test system available", "Project go-live/productive start", "System Design Assigned", "Implementation Assigned", "Implementation Order Assigned", "Test System Available (Implementation Order)", "Handover Check Needed", "HYPERCARE (WITH CHECK)", "LIVE SYSTEM AVAILABLE", "System Design Order Received", "System Design Started", "Requirements Clarified", "Implementation Started") AND "Technical Project Manager" in (currentUser())`

const fallbackProjectKey = "CXPRODELIVERY"

func DefaultJQL(cfg *glb.Config) string {
	if cfg.DefaultJQL != "" {
		return cfg.DefaultJQL
	}
	return fallbackJQL
}

func ProjectKey(cfg *glb.Config) string {
	if cfg.DefaultProjectKey != "" {
		return cfg.DefaultProjectKey
	}
	return fallbackProjectKey
}
