package config

import (
	"strings"
	"testing"

	glb "github.ibmgcloud.net/dth/pmo_saver/global_structs"
)

func TestDefaultJQL(t *testing.T) {
	if got := DefaultJQL(&glb.Config{DefaultJQL: "project = X"}); got != "project = X" {
		t.Errorf("configured jql not used, got %q", got)
	}
	if got := DefaultJQL(&glb.Config{}); !strings.Contains(got, "project = CXPRODELIVERY") {
		t.Errorf("fallback jql missing, got %q", got)
	}
}

func TestProjectKey(t *testing.T) {
	if got := ProjectKey(&glb.Config{DefaultProjectKey: "ABC"}); got != "ABC" {
		t.Errorf("configured project key not used, got %q", got)
	}
	if got := ProjectKey(&glb.Config{}); got != "CXPRODELIVERY" {
		t.Errorf("fallback project key wrong, got %q", got)
	}
}
