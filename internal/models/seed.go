package models

// SeedFleet returns the built-in fleet used when no saved fleet can be loaded.
func SeedFleet() []FleetItem {
	return []FleetItem{
		{
			ID:            "v1",
			Type:          FleetTypeVehicle,
			Make:          "Toyota",
			Model:         "Hilux",
			Year:          2022,
			PlateOrSerial: "DXB-10293",
			CurrentMeter:  45000,
			Status:        StatusActive,
			Category:      "Pickup Truck",
			Location:      "Main HQ",
			AssignedTo:    "John Doe",
			TechnicalDetails: &TechnicalDetails{
				VIN:      "JTE12345678",
				FuelType: "Diesel",
			},
		},
		{
			ID:            "e1",
			Type:          FleetTypeEquipment,
			Make:          "CAT",
			Model:         "320 GC",
			Year:          2020,
			PlateOrSerial: "CAT-EX-99",
			CurrentMeter:  3200,
			Status:        StatusWorkshop,
			Category:      "Excavator",
			Location:      "North Site",
			AssignedTo:    "Site A Team",
		},
		{
			ID:            "v2",
			Type:          FleetTypeVehicle,
			Make:          "Ford",
			Model:         "F-150",
			Year:          2023,
			PlateOrSerial: "ABD-5544",
			CurrentMeter:  12000,
			Status:        StatusActive,
			Category:      "Pickup Truck",
			Location:      "South Depot",
			AssignedTo:    "Jane Smith",
		},
	}
}

// SeedRecords returns the built-in maintenance log matching SeedFleet.
func SeedRecords() []MaintenanceRecord {
	nextDue := 50000.0
	return []MaintenanceRecord{
		{
			ID:           "r1",
			FleetItemID:  "v1",
			Date:         MustParseDate("2023-10-15"),
			MeterReading: 40000,
			Type:         MaintenanceService,
			Description:  "Regular 40k Service",
			Parts:        "Oil Filter, Air Filter, 5W-30 Oil",
			LaborCost:    150,
			PartsCost:    200,
			TotalCost:    350,
			NextDueMeter: &nextDue,
			Technician:   "Mike",
		},
		{
			ID:           "r2",
			FleetItemID:  "e1",
			Date:         MustParseDate("2023-10-20"),
			MeterReading: 3150,
			Type:         MaintenanceRepair,
			Description:  "Hydraulic leak fix",
			Parts:        "Hose Assembly, O-rings",
			LaborCost:    400,
			PartsCost:    150,
			TotalCost:    550,
			Technician:   "Sarah",
		},
	}
}
