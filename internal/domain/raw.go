package domain

import "strings"

// Field names as they appear in the source exports.
const (
	fieldAreaCode       = "REF_AREA_CODE"
	fieldAreaName       = "REF_AREA_NAME"
	fieldLegacyAreaName = "REF_CODE_ NAME"
	fieldPeriod         = "TIME_PERIOD"
	fieldStatusCode     = "OBS_STATUS_CODE"
	fieldStatusName     = "OBS_STATUS_NAME"
	fieldWaterTypeCode  = "WATER_TYPE_CODE"
	fieldWaterTypeName  = "WATER_TYPE_NAME"
	fieldWaterValue     = "OBS_VALUE_MIL_M3"
	fieldNutrients      = "NUTRIENTS"
	fieldNutrientValue  = "OBS_VALUE_UNIT_KG"
	fieldMeasureCode    = "MEASURE_CODE"
	fieldEnergyValue    = "OBS_VALUE_THOUSANDS"
	fieldLandValue      = "OBS_VALUE_THOUSAND_HA"
	fieldLegacyLand     = "OBS_VALUE_THOUSAND_H2"
)

// Discriminant codes selecting the rows the dashboard keeps.
const (
	WaterTotalCode       = "_T"
	LegacyWaterTotalCode = "*T"
	NitrogenKind         = "NITROGEN"
	TotalEnergyCode      = "TOTNRJ"
)

// Observation is one raw row of any dataset variant.
type Observation interface {
	// Header returns the shared SDMX reference columns.
	Header() RawHeader
	// Included reports whether the row passes the dataset's discriminant.
	Included() bool
	// Observed returns the dataset-specific value column.
	Observed() RawValue
}

// RawHeader holds the columns shared by every dataset.
type RawHeader struct {
	AreaCode   string   `json:"REF_AREA_CODE"`
	AreaName   string   `json:"REF_AREA_NAME"`
	Period     RawValue `json:"TIME_PERIOD"`
	StatusCode string   `json:"OBS_STATUS_CODE"`
	StatusName string   `json:"OBS_STATUS_NAME"`
}

// Fields is a CSV row keyed by header name.
type Fields map[string]string

func (f Fields) get(name string) string {
	return strings.TrimSpace(f[name])
}

func (f Fields) value(name string) RawValue {
	s, ok := f[name]
	if !ok {
		return RawValue{}
	}
	return TextValue(s)
}

func headerFromFields(f Fields) RawHeader {
	return RawHeader{
		AreaCode:   f.get(fieldAreaCode),
		AreaName:   f.get(fieldAreaName),
		Period:     f.value(fieldPeriod),
		StatusCode: f.get(fieldStatusCode),
		StatusName: f.get(fieldStatusName),
	}
}

// WaterRecord is a row of the water abstraction export.
type WaterRecord struct {
	RawHeader
	WaterTypeCode string   `json:"WATER_TYPE_CODE"`
	WaterTypeName string   `json:"WATER_TYPE_NAME"`
	Value         RawValue `json:"OBS_VALUE_MIL_M3"`
}

func (r WaterRecord) Header() RawHeader  { return r.RawHeader }
func (r WaterRecord) Observed() RawValue { return r.Value }

// Included keeps total-water rows under either total code.
func (r WaterRecord) Included() bool {
	return r.WaterTypeCode == WaterTotalCode || r.WaterTypeCode == LegacyWaterTotalCode
}

func waterFromFields(f Fields) WaterRecord {
	return WaterRecord{
		RawHeader:     headerFromFields(f),
		WaterTypeCode: f.get(fieldWaterTypeCode),
		WaterTypeName: f.get(fieldWaterTypeName),
		Value:         f.value(fieldWaterValue),
	}
}

// NutrientRecord is a row of the nutrient balance export.
type NutrientRecord struct {
	RawHeader
	Nutrients string   `json:"NUTRIENTS"`
	Value     RawValue `json:"OBS_VALUE_UNIT_KG"`
}

func (r NutrientRecord) Header() RawHeader  { return r.RawHeader }
func (r NutrientRecord) Observed() RawValue { return r.Value }

// Included keeps nitrogen rows.
func (r NutrientRecord) Included() bool { return r.Nutrients == NitrogenKind }

func nutrientFromFields(f Fields) NutrientRecord {
	return NutrientRecord{
		RawHeader: headerFromFields(f),
		Nutrients: f.get(fieldNutrients),
		Value:     f.value(fieldNutrientValue),
	}
}

// EnergyRecord is a row of the on-farm energy export.
type EnergyRecord struct {
	RawHeader
	MeasureCode string   `json:"MEASURE_CODE"`
	Value       RawValue `json:"OBS_VALUE_THOUSANDS"`
}

func (r EnergyRecord) Header() RawHeader  { return r.RawHeader }
func (r EnergyRecord) Observed() RawValue { return r.Value }

// Included keeps total-energy rows.
func (r EnergyRecord) Included() bool { return r.MeasureCode == TotalEnergyCode }

func energyFromFields(f Fields) EnergyRecord {
	return EnergyRecord{
		RawHeader:   headerFromFields(f),
		MeasureCode: f.get(fieldMeasureCode),
		Value:       f.value(fieldEnergyValue),
	}
}

// LandRecord is a row of the agricultural land export. It has no discriminant
// but carries both spellings of the value and name headers.
type LandRecord struct {
	RawHeader
	LegacyAreaName string   `json:"REF_CODE_ NAME"`
	Value          RawValue `json:"OBS_VALUE_THOUSAND_HA"`
	LegacyValue    RawValue `json:"OBS_VALUE_THOUSAND_H2"`
}

// Header takes the legacy name column whenever it is filled, as the land
// exports that carry it hold the display name there.
func (r LandRecord) Header() RawHeader {
	h := r.RawHeader
	if name := strings.TrimSpace(r.LegacyAreaName); name != "" {
		h.AreaName = name
	}
	return h
}

// Observed prefers the corrected value column unless it is blank, so a CSV
// header carrying both spellings still reads rows filled under the legacy one.
func (r LandRecord) Observed() RawValue {
	if !r.Value.Blank() {
		return r.Value
	}
	return r.LegacyValue
}

func (r LandRecord) Included() bool { return true }

func landFromFields(f Fields) LandRecord {
	return LandRecord{
		RawHeader:      headerFromFields(f),
		LegacyAreaName: f.get(fieldLegacyAreaName),
		Value:          f.value(fieldLandValue),
		LegacyValue:    f.value(fieldLegacyLand),
	}
}
