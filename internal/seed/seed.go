package seed

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/haulware/carriergate/internal/loadboard/domain"
)

type boardDocument struct {
	Loads []domain.Load `json:"loads"`
}

// EnsureLoadsFile writes a starter board to path unless a file already
// exists there. An existing board is never touched.
func EnsureLoadsFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("seed loads file path is required")
	}

	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(boardDocument{Loads: StarterLoads()}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// StarterLoads returns the sample lanes used to bootstrap a fresh board.
func StarterLoads() []domain.Load {
	return []domain.Load{
		{
			LoadID:           "L1001",
			Origin:           "Chicago, IL",
			Destination:      "Dallas, TX",
			PickupDatetime:   "2025-09-02T08:00:00",
			DeliveryDatetime: "2025-09-03T17:00:00",
			EquipmentType:    "Dry Van",
			LoadboardRate:    1850,
			Notes:            strPtr("No-touch freight, drop and hook on both ends"),
			Weight:           floatPtr(42000),
			CommodityType:    strPtr("Packaged food"),
			NumOfPieces:      intPtr(26),
			Miles:            floatPtr(925),
			Dimensions:       strPtr("53ft trailer"),
		},
		{
			LoadID:           "L1002",
			Origin:           "Atlanta, GA",
			Destination:      "Miami, FL",
			PickupDatetime:   "2025-09-02T06:30:00",
			DeliveryDatetime: "2025-09-02T22:00:00",
			EquipmentType:    "Reefer",
			LoadboardRate:    2100,
			Notes:            strPtr("Keep at 34F, FCFS pickup"),
			Weight:           floatPtr(38500),
			CommodityType:    strPtr("Produce"),
			NumOfPieces:      intPtr(22),
			Miles:            floatPtr(662),
			Dimensions:       strPtr("53ft reefer"),
		},
		{
			LoadID:           "L1003",
			Origin:           "Los Angeles, CA",
			Destination:      "Phoenix, AZ",
			PickupDatetime:   "2025-09-03T09:00:00",
			DeliveryDatetime: "2025-09-03T21:00:00",
			EquipmentType:    "Dry Van",
			LoadboardRate:    950,
			Weight:           floatPtr(30000),
			CommodityType:    strPtr("Consumer electronics"),
			NumOfPieces:      intPtr(18),
			Miles:            floatPtr(372),
		},
		{
			LoadID:           "L1004",
			Origin:           "Newark, NJ",
			Destination:      "Boston, MA",
			PickupDatetime:   "2025-09-03T07:00:00",
			DeliveryDatetime: "2025-09-03T15:30:00",
			EquipmentType:    "Box Truck",
			LoadboardRate:    720,
			Notes:            strPtr("Liftgate required at delivery"),
			Weight:           floatPtr(9800),
			NumOfPieces:      intPtr(12),
			Miles:            floatPtr(225),
			Dimensions:       strPtr("26ft box"),
		},
		{
			LoadID:           "L1005",
			Origin:           "Houston, TX",
			Destination:      "New Orleans, LA",
			PickupDatetime:   "2025-09-04T10:00:00",
			DeliveryDatetime: "2025-09-04T20:00:00",
			EquipmentType:    "Flatbed",
			LoadboardRate:    1150,
			Notes:            strPtr("Tarps required"),
			Weight:           floatPtr(44500),
			CommodityType:    strPtr("Steel coils"),
			NumOfPieces:      intPtr(4),
			Miles:            floatPtr(350),
			Dimensions:       strPtr("48ft flatbed"),
		},
	}
}

func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
