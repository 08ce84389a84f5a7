package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDataset is returned when a dataset name does not match any known type.
var ErrUnknownDataset = errors.New("unknown dataset")

// DatasetType identifies one of the four indicator datasets.
type DatasetType string

const (
	Water    DatasetType = "water"
	Nutrient DatasetType = "nutrient"
	Energy   DatasetType = "energy"
	Land     DatasetType = "land"
)

// DatasetTypes lists every dataset in dashboard order.
var DatasetTypes = []DatasetType{Water, Nutrient, Energy, Land}

// DatasetInfo is the static presentation metadata for a dataset.
type DatasetInfo struct {
	Type        DatasetType `json:"type"`
	Name        string      `json:"name"`
	Unit        string      `json:"unit"`
	Description string      `json:"description"`
	File        string      `json:"-"`
	Suffix      string      `json:"-"`
}

var datasetInfo = map[DatasetType]DatasetInfo{
	Water: {
		Type:        Water,
		Name:        "Water Use",
		Unit:        "Million m³",
		Description: "Total freshwater abstraction by agriculture",
		File:        "water_data.json",
		Suffix:      "M",
	},
	Nutrient: {
		Type:        Nutrient,
		Name:        "Nutrient Balance",
		Unit:        "kg/ha",
		Description: "Gross nitrogen balance per hectare of agricultural land",
		File:        "nutrients_data.json",
	},
	Energy: {
		Type:        Energy,
		Name:        "Energy Use",
		Unit:        "Thousand TOE",
		Description: "Total direct on-farm energy consumption",
		File:        "energy_data.json",
		Suffix:      "K",
	},
	Land: {
		Type:        Land,
		Name:        "Land Area",
		Unit:        "Thousand ha",
		Description: "Total agricultural land area",
		File:        "land_data.json",
		Suffix:      "K",
	},
}

// Info returns the metadata for the dataset. Unknown types yield a zero value.
func (d DatasetType) Info() DatasetInfo {
	return datasetInfo[d]
}

// Valid reports whether d is one of the four known datasets.
func (d DatasetType) Valid() bool {
	_, ok := datasetInfo[d]
	return ok
}

func (d DatasetType) String() string { return string(d) }

// ParseDatasetType maps a user-supplied name to a DatasetType. Matching is
// case-insensitive and accepts "agricultural" and "nutrients" as aliases.
func ParseDatasetType(s string) (DatasetType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "water":
		return Water, nil
	case "nutrient", "nutrients":
		return Nutrient, nil
	case "energy":
		return Energy, nil
	case "land", "agricultural":
		return Land, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDataset, s)
	}
}

// ScatterPartner returns the dataset plotted on the y axis when d is on the x axis.
func (d DatasetType) ScatterPartner() DatasetType {
	switch d {
	case Water:
		return Land
	case Nutrient:
		return Water
	case Energy:
		return Nutrient
	default:
		return Energy
	}
}
