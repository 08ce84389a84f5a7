package domain

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sortRecords = cmpopts.SortSlices(func(a, b Record) bool {
	if a.CountryCode != b.CountryCode {
		return a.CountryCode < b.CountryCode
	}
	return a.Year < b.Year
})

func TestDecodeJSON_Water(t *testing.T) {
	data := []byte(`[
		{"REF_AREA_CODE":"USA","REF_AREA_NAME":"United States","TIME_PERIOD":2015,"WATER_TYPE_CODE":"_T","OBS_VALUE_MIL_M3":"1,200.5"},
		{"REF_AREA_CODE":"CAN","REF_AREA_NAME":"Canada","TIME_PERIOD":"2015","WATER_TYPE_CODE":"*T","OBS_VALUE_MIL_M3":300},
		{"REF_AREA_CODE":"USA","REF_AREA_NAME":"United States","TIME_PERIOD":2015,"WATER_TYPE_CODE":"GW","OBS_VALUE_MIL_M3":"900"},
		{"REF_AREA_CODE":"MEX","REF_AREA_NAME":"Mexico","TIME_PERIOD":2016,"WATER_TYPE_CODE":"_T","OBS_VALUE_MIL_M3":""}
	]`)

	records, n, err := DecodeJSON(Water, data)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	want := []Record{
		{Country: "United States", CountryCode: "USA", Year: 2015, Value: 1200.5},
		{Country: "Canada", CountryCode: "CAN", Year: 2015, Value: 300},
		{Country: "Mexico", CountryCode: "MEX", Year: 2016, Value: math.NaN()},
	}
	if diff := cmp.Diff(want, records, sortRecords, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_WaterExcludesNonTotal(t *testing.T) {
	raws := []WaterRecord{
		{RawHeader: RawHeader{AreaCode: "USA", Period: NumberValue(2015)}, WaterTypeCode: "_T", Value: NumberValue(1)},
		{RawHeader: RawHeader{AreaCode: "USA", Period: NumberValue(2015)}, WaterTypeCode: "SW", Value: NumberValue(2)},
		{RawHeader: RawHeader{AreaCode: "USA", Period: NumberValue(2015)}, WaterTypeCode: "", Value: NumberValue(3)},
		{RawHeader: RawHeader{AreaCode: "USA", Period: NumberValue(2016)}, WaterTypeCode: "*T", Value: NumberValue(4)},
	}

	records := Normalize(raws)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Contains(t, []float64{1, 4}, r.Value)
	}
}

func TestNormalize_Discriminants(t *testing.T) {
	nutrients := Normalize([]NutrientRecord{
		{RawHeader: RawHeader{AreaCode: "FRA", Period: NumberValue(2010)}, Nutrients: NitrogenKind, Value: NumberValue(50)},
		{RawHeader: RawHeader{AreaCode: "FRA", Period: NumberValue(2010)}, Nutrients: "PHOSPHORUS", Value: NumberValue(5)},
	})
	require.Len(t, nutrients, 1)
	assert.Equal(t, 50.0, nutrients[0].Value)

	energy := Normalize([]EnergyRecord{
		{RawHeader: RawHeader{AreaCode: "DEU", Period: NumberValue(2010)}, MeasureCode: TotalEnergyCode, Value: NumberValue(800)},
		{RawHeader: RawHeader{AreaCode: "DEU", Period: NumberValue(2010)}, MeasureCode: "ELEC", Value: NumberValue(80)},
	})
	require.Len(t, energy, 1)
	assert.Equal(t, 800.0, energy[0].Value)
}

func TestDecodeJSON_LandHeaderPrecedence(t *testing.T) {
	data := []byte(`[
		{"REF_AREA_CODE":"AUS","REF_CODE_ NAME":"Australia","TIME_PERIOD":2018,"OBS_VALUE_THOUSAND_H2":"355,000"},
		{"REF_AREA_CODE":"NZL","REF_AREA_NAME":"NZ","REF_CODE_ NAME":"New Zealand","TIME_PERIOD":2018,"OBS_VALUE_THOUSAND_HA":10000,"OBS_VALUE_THOUSAND_H2":1},
		{"REF_AREA_CODE":"CHL","REF_AREA_NAME":"Chile","REF_CODE_ NAME":" ","TIME_PERIOD":2018,"OBS_VALUE_THOUSAND_HA":"  ","OBS_VALUE_THOUSAND_H2":"15,800"}
	]`)

	records, _, err := DecodeJSON(Land, data)
	require.NoError(t, err)

	want := []Record{
		{Country: "Australia", CountryCode: "AUS", Year: 2018, Value: 355000},
		{Country: "New Zealand", CountryCode: "NZL", Year: 2018, Value: 10000},
		{Country: "Chile", CountryCode: "CHL", Year: 2018, Value: 15800},
	}
	assert.Empty(t, cmp.Diff(want, records, sortRecords))
}

func TestFromFields_LandBlankCorrectedColumn(t *testing.T) {
	rows := []Fields{
		{"REF_AREA_CODE": "AUS", "REF_CODE_ NAME": "Australia", "TIME_PERIOD": "2018", "OBS_VALUE_THOUSAND_HA": "", "OBS_VALUE_THOUSAND_H2": "355,000"},
		{"REF_AREA_CODE": "NZL", "REF_AREA_NAME": "New Zealand", "TIME_PERIOD": "2018", "OBS_VALUE_THOUSAND_HA": "10,000", "OBS_VALUE_THOUSAND_H2": ""},
		{"REF_AREA_CODE": "CHL", "REF_AREA_NAME": "Chile", "TIME_PERIOD": "2018", "OBS_VALUE_THOUSAND_HA": "", "OBS_VALUE_THOUSAND_H2": ""},
	}

	records, err := FromFields(Land, rows)
	require.NoError(t, err)
	require.Len(t, records, 3)

	byCode := make(map[string]Record)
	for _, r := range records {
		byCode[r.CountryCode] = r
	}
	assert.Equal(t, 355000.0, byCode["AUS"].Value)
	assert.Equal(t, "Australia", byCode["AUS"].Country)
	assert.Equal(t, 10000.0, byCode["NZL"].Value)
	assert.False(t, byCode["CHL"].Valid(), "both columns blank")
}

func TestNormalize_DropsBadYears(t *testing.T) {
	records := Normalize([]LandRecord{
		{RawHeader: RawHeader{AreaCode: "AUS", Period: TextValue("")}, Value: NumberValue(1)},
		{RawHeader: RawHeader{AreaCode: "AUS", Period: TextValue("20x0")}, Value: NumberValue(2)},
		{RawHeader: RawHeader{AreaCode: "AUS", Period: TextValue("2020")}, Value: NumberValue(3)},
	})
	require.Len(t, records, 1)
	assert.Equal(t, 2020, records[0].Year)
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	raws := []WaterRecord{
		{RawHeader: RawHeader{AreaCode: " USA ", AreaName: " United States ", Period: NumberValue(2015)}, WaterTypeCode: "_T", Value: TextValue("1,000")},
	}
	before := raws[0]

	records := Normalize(raws)
	require.Len(t, records, 1)
	assert.Equal(t, "USA", records[0].CountryCode)
	assert.Equal(t, before, raws[0])
}

func TestNormalize_OutputNeverLonger(t *testing.T) {
	raws := make([]EnergyRecord, 50)
	for i := range raws {
		code := TotalEnergyCode
		if i%3 == 0 {
			code = "OTHER"
		}
		raws[i] = EnergyRecord{RawHeader: RawHeader{AreaCode: "ITA", Period: NumberValue(float64(2000 + i))}, MeasureCode: code, Value: NumberValue(float64(i))}
	}
	assert.LessOrEqual(t, len(Normalize(raws)), len(raws))
}

func TestFromFields(t *testing.T) {
	rows := []Fields{
		{"REF_AREA_CODE": "USA", "REF_AREA_NAME": "United States", "TIME_PERIOD": "2015", "NUTRIENTS": "NITROGEN", "OBS_VALUE_UNIT_KG": "1,234"},
		{"REF_AREA_CODE": "USA", "REF_AREA_NAME": "United States", "TIME_PERIOD": "2015", "NUTRIENTS": "PHOSPHORUS", "OBS_VALUE_UNIT_KG": "12"},
	}

	records, err := FromFields(Nutrient, rows)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1234.0, records[0].Value)
	assert.Equal(t, 2015, records[0].Year)
}

func TestDecodeJSON_Errors(t *testing.T) {
	_, _, err := DecodeJSON(DatasetType("soil"), []byte(`[]`))
	require.ErrorIs(t, err, ErrUnknownDataset)

	_, _, err = DecodeJSON(Water, []byte(`{"not":"an array"}`))
	require.Error(t, err)

	_, err = FromFields(DatasetType("soil"), nil)
	require.ErrorIs(t, err, ErrUnknownDataset)
}

func TestAuditJSON_Water(t *testing.T) {
	data := []byte(`[
		{"REF_AREA_CODE":"USA","TIME_PERIOD":2015,"WATER_TYPE_CODE":"_T","OBS_VALUE_MIL_M3":"1,200"},
		{"REF_AREA_CODE":"USA","TIME_PERIOD":2015,"WATER_TYPE_CODE":"GW","OBS_VALUE_MIL_M3":"900"},
		{"REF_AREA_CODE":" MEX ","TIME_PERIOD":"20x6","WATER_TYPE_CODE":"_T","OBS_VALUE_MIL_M3":"5"},
		{"REF_AREA_CODE":"CAN","TIME_PERIOD":2016,"WATER_TYPE_CODE":"_T","OBS_VALUE_MIL_M3":""}
	]`)

	audit, err := AuditJSON(Water, data)
	require.NoError(t, err)

	want := Audit{
		Rows:     4,
		Excluded: 1,
		BadYears: []DroppedRow{{Index: 3, AreaCode: "MEX", Period: "20x6"}},
		Records:  2,
	}
	if diff := cmp.Diff(want, audit); diff != "" {
		t.Errorf("audit mismatch (-want +got):\n%s", diff)
	}

	records, _, err := DecodeJSON(Water, data)
	require.NoError(t, err)
	assert.Len(t, records, audit.Records)
}

func TestAuditFields_LandBlankPeriod(t *testing.T) {
	rows := []Fields{
		{"REF_AREA_CODE": "CAN", "TIME_PERIOD": "", "OBS_VALUE_THOUSAND_HA": "10"},
		{"REF_AREA_CODE": "CAN", "TIME_PERIOD": "2019", "OBS_VALUE_THOUSAND_HA": "11"},
	}

	audit, err := AuditFields(Land, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, audit.Rows)
	assert.Zero(t, audit.Excluded)
	assert.Equal(t, 1, audit.Records)
	require.Len(t, audit.BadYears, 1)
	assert.Equal(t, DroppedRow{Index: 1, AreaCode: "CAN", Period: ""}, audit.BadYears[0])
}

func TestAudit_UnknownDataset(t *testing.T) {
	_, err := AuditJSON(DatasetType("soil"), []byte(`[]`))
	require.ErrorIs(t, err, ErrUnknownDataset)

	_, err = AuditFields(DatasetType("soil"), nil)
	require.ErrorIs(t, err, ErrUnknownDataset)

	_, err = AuditJSON(Energy, []byte(`"rows"`))
	require.Error(t, err)
}

func TestRecord_JSON(t *testing.T) {
	out, err := Record{Country: "Chile", CountryCode: "CHL", Year: 2012, Value: math.NaN()}.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"country":"Chile","country_code":"CHL","year":2012,"value":null}`, string(out))

	var back Record
	require.NoError(t, back.UnmarshalJSON(out))
	assert.True(t, math.IsNaN(back.Value))
}
