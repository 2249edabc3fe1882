package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownVehicle is returned when a vehicle category cannot be parsed.
var ErrUnknownVehicle = errors.New("unknown vehicle category")

// Vehicle identifies the category of a vehicle crossing a toll point.
type Vehicle uint8

const (
	VehicleUnknown Vehicle = iota
	VehicleCar
	VehicleMotorbike
	VehicleTractor
	VehicleEmergency
	VehicleDiplomat
	VehicleForeign
	VehicleMilitary
)

// Vehicles lists every known category in declaration order.
var Vehicles = []Vehicle{
	VehicleCar,
	VehicleMotorbike,
	VehicleTractor,
	VehicleEmergency,
	VehicleDiplomat,
	VehicleForeign,
	VehicleMilitary,
}

// String returns the lower case name of the category.
func (v Vehicle) String() string {
	switch v {
	case VehicleCar:
		return "car"
	case VehicleMotorbike:
		return "motorbike"
	case VehicleTractor:
		return "tractor"
	case VehicleEmergency:
		return "emergency"
	case VehicleDiplomat:
		return "diplomat"
	case VehicleForeign:
		return "foreign"
	case VehicleMilitary:
		return "military"
	default:
		return "unknown"
	}
}

// ParseVehicle converts a case-insensitive category name into a Vehicle.
func ParseVehicle(s string) (Vehicle, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, v := range Vehicles {
		if v.String() == name {
			return v, nil
		}
	}
	return VehicleUnknown, fmt.Errorf("%w: %q", ErrUnknownVehicle, s)
}

// MarshalText implements encoding.TextMarshaler.
func (v Vehicle) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Vehicle) UnmarshalText(b []byte) error {
	parsed, err := ParseVehicle(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
