package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVehicle(t *testing.T) {
	for _, v := range Vehicles {
		got, err := ParseVehicle(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	got, err := ParseVehicle("  Tractor ")
	require.NoError(t, err)
	assert.Equal(t, VehicleTractor, got)
}

func TestParseVehicleUnknown(t *testing.T) {
	_, err := ParseVehicle("spaceship")
	if !errors.Is(err, ErrUnknownVehicle) {
		t.Fatalf("expected ErrUnknownVehicle got %v", err)
	}
	assert.Equal(t, "unknown", VehicleUnknown.String())
}

func TestVehicleJSON(t *testing.T) {
	var out struct {
		Vehicle Vehicle `json:"vehicle"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"vehicle":"diplomat"}`), &out))
	assert.Equal(t, VehicleDiplomat, out.Vehicle)

	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"vehicle":"diplomat"}`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`{"vehicle":"boat"}`), &out))
}
