//go:build integration

package openmeteo

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func TestClient_Fetch_Integration(t *testing.T) {
	// Test coordinates: Harare
	lat := -17.8292
	lon := 31.0522
	elevation := 1490.0 // meters

	client := NewClient(slog.Default())

	t.Logf("Making API call to Open-Meteo Forecast API...")
	t.Logf("Coordinates: lat=%f, lon=%f, elevation=%f meters", lat, lon, elevation)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, err := client.Fetch(ctx, lat, lon, elevation, "Africa/Harare")
	if err != nil {
		t.Fatalf("Failed to fetch forecast: %v", err)
	}

	rawJSON, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal snapshot: %v", err)
	}
	t.Logf("Mapped snapshot:\n%s", string(rawJSON))

	if err := snap.Validate(); err != nil {
		t.Fatalf("Snapshot failed validation: %v", err)
	}

	t.Logf("Snapshot metadata:")
	t.Logf("  Timezone: %s", snap.Timezone)
	t.Logf("  Hourly points: %d", snap.Hourly.Len())
	t.Logf("  Daily points: %d", snap.Daily.Len())
	t.Logf("  Current: %.1f°C, %s", snap.Current.TemperatureC, snap.Current.Description)

	if snap.Hourly.Len() == 0 {
		t.Fatal("No hourly data")
	}
	if snap.Daily.Len() == 0 {
		t.Fatal("No daily data")
	}

	t.Log("✓ API call successful, snapshot valid")
}
