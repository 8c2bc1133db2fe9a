package sites

import (
	"encoding/json"
	"testing"
)

func TestDecodeVectorConfigDefaults(t *testing.T) {
	raw := json.RawMessage(`{"type": "vector", "file": "dataset.shp"}`)

	v, err := decodeVectorConfig(raw)
	if err != nil {
		t.Fatalf("decodeVectorConfig() error = %v", err)
	}

	cfg := v.(vectorConfig)
	if cfg.File != "dataset.shp" {
		t.Fatalf("File = %q, want %q", cfg.File, "dataset.shp")
	}
	if cfg.SiteIDKey != "ID" {
		t.Fatalf("SiteIDKey = %q, want default %q", cfg.SiteIDKey, "ID")
	}
}

func TestDecodeVectorConfigExplicitIDKey(t *testing.T) {
	raw := json.RawMessage(`{"file": "dataset.shp", "site_id_key": "CELL5M"}`)

	v, err := decodeVectorConfig(raw)
	if err != nil {
		t.Fatalf("decodeVectorConfig() error = %v", err)
	}

	if cfg := v.(vectorConfig); cfg.SiteIDKey != "CELL5M" {
		t.Fatalf("SiteIDKey = %q, want %q", cfg.SiteIDKey, "CELL5M")
	}
}

func TestDecodeVectorConfigMissingFile(t *testing.T) {
	if _, err := decodeVectorConfig(json.RawMessage(`{}`)); err == nil {
		t.Fatalf("expected decodeVectorConfig() to require \"file\"")
	}
}

func TestDecodeRasterConfigDefaults(t *testing.T) {
	raw := json.RawMessage(`{"type": "raster", "file": "soils.tif"}`)

	v, err := decodeRasterConfig(raw)
	if err != nil {
		t.Fatalf("decodeRasterConfig() error = %v", err)
	}

	cfg := v.(rasterConfig)
	if cfg.File != "soils.tif" {
		t.Fatalf("File = %q, want %q", cfg.File, "soils.tif")
	}
	if cfg.LayerIndex != 0 {
		t.Fatalf("LayerIndex = %d, want default 0", cfg.LayerIndex)
	}
}

func TestDecodeRasterConfigExplicitBand(t *testing.T) {
	raw := json.RawMessage(`{"file": "soils.tif", "layer_index": 2}`)

	v, err := decodeRasterConfig(raw)
	if err != nil {
		t.Fatalf("decodeRasterConfig() error = %v", err)
	}

	if cfg := v.(rasterConfig); cfg.LayerIndex != 2 {
		t.Fatalf("LayerIndex = %d, want 2", cfg.LayerIndex)
	}
}

func TestDecodeRasterConfigMissingFile(t *testing.T) {
	if _, err := decodeRasterConfig(json.RawMessage(`{}`)); err == nil {
		t.Fatalf("expected decodeRasterConfig() to require \"file\"")
	}
}

func TestCreateVectorGeneratorRejectsWrongConfigType(t *testing.T) {
	if _, err := createVectorGenerator(42); err == nil {
		t.Fatalf("expected createVectorGenerator() to reject a foreign config type")
	}
}

func TestCreateRasterGeneratorRejectsWrongConfigType(t *testing.T) {
	if _, err := createRasterGenerator("nope"); err == nil {
		t.Fatalf("expected createRasterGenerator() to reject a foreign config type")
	}
}

func TestRasterPixelCenter(t *testing.T) {
	g := &rasterGenerator{
		// Origin (10, 20), 0.1-degree pixels, north-up.
		geoTransform: [6]float64{10, 0.1, 0, 20, 0, -0.1},
	}

	lon, lat := g.pixelCenter(0, 0)
	if got, want := lon.AsFloat64(), 10.05; got != want {
		t.Fatalf("pixelCenter(0,0) lon = %v, want %v", got, want)
	}
	if got, want := lat.AsFloat64(), 19.95; got != want {
		t.Fatalf("pixelCenter(0,0) lat = %v, want %v", got, want)
	}

	lon, lat = g.pixelCenter(3, 2)
	if got, want := lon.AsFloat64(), 10.35; got != want {
		t.Fatalf("pixelCenter(3,2) lon = %v, want %v", got, want)
	}
	if got, want := lat.AsFloat64(), 19.75; got != want {
		t.Fatalf("pixelCenter(3,2) lat = %v, want %v", got, want)
	}
}
