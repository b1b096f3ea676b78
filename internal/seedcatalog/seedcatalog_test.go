package seedcatalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

func TestLoadBuiltInSeedSet(t *testing.T) {
	cat, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.Len() == 0 {
		t.Fatal("expected a non-empty built-in catalog")
	}
	if len(cat.All()) != cat.Len() {
		t.Errorf("All() returned %d vendors, Len() reports %d", len(cat.All()), cat.Len())
	}
}

func TestLoadBuiltInIndexesByCategory(t *testing.T) {
	cat, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	erp := cat.ByCategory("ERP")
	if len(erp) == 0 {
		t.Fatal("expected at least one erp vendor in the built-in catalog")
	}
	for _, v := range erp {
		if v.Category != "erp" {
			t.Errorf("ByCategory(ERP) returned vendor with category %q", v.Category)
		}
	}
}

func TestLoadBuiltInGet(t *testing.T) {
	cat, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := cat.Get("vnd-ledgerworks-erp")
	if !ok {
		t.Fatal("expected vnd-ledgerworks-erp to be present")
	}
	if v.VendorID != "vnd-ledgerworks-erp" {
		t.Errorf("Get returned vendor_id %q", v.VendorID)
	}
	if _, ok := cat.Get("does-not-exist"); ok {
		t.Error("expected missing vendor to be absent")
	}
}

func TestLoadFromCustomPath(t *testing.T) {
	dir := t.TempDir()
	profiles := []*model.VendorProfile{
		{
			VendorID: "custom-1",
			Name:     "Custom Vendor",
			Category: "crm",
			PriceTiers: map[int]float64{1: 100},
			Guardrails: model.GuardrailPolicy{PriceFloor: 50},
		},
	}
	raw, err := json.Marshal(profiles)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	path := filepath.Join(dir, "vendors.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cat.Len())
	}
	if _, ok := cat.Get("custom-1"); !ok {
		t.Error("expected custom-1 to be loaded from the custom path")
	}
}

func TestLoadRejectsMissingVendorID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`[{"name":"no id"}]`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a vendor record missing vendor_id")
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`not json`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a decode error for malformed JSON")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/vendors.json"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
