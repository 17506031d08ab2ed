package dataset

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHeader = "year,branch,total_students,placed_students,unplaced_students," +
	"placement_percentage,highest_package_LPA,median_package_LPA,lowest_package_LPA,avg_package_LPA," +
	"top_company_1,top_company_1_students,top_company_2,top_company_2_students,top_company_3,top_company_3_students," +
	"top_job_role_1,top_job_role_2,top_job_role_3,internship_conversion_rate_percent"

func TestLoadReader(t *testing.T) {
	csv := sampleHeader + "\n" +
		"2023,IT,110,90,20,81.8,22.0,7.0,4.0,8.1,Infosys,15,Wipro,10,TCS,5,Software Engineer,QA Engineer,Consultant,50.0\n" +
		"2022,CS,120,96,24,80.0,24.0,7.2,4.2,8.4,TCS,18,Amazon,8,,,Software Engineer,Data Analyst,,55.0\n"

	ds, err := LoadReader(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, ds, 2)

	// Rows are sorted by (year asc, branch asc) regardless of input order.
	assert.Equal(t, 2022, ds[0].Year)
	assert.Equal(t, "CS", ds[0].Branch)
	assert.Equal(t, 2023, ds[1].Year)

	assert.Equal(t, 120, ds[0].TotalStudents)
	assert.InDelta(t, 8.4, ds[0].AvgPackage, 1e-9)

	// Two valid company slots on the CS row, empty third slot skipped.
	assert.True(t, ds[0].Companies[0].Valid)
	assert.Equal(t, "TCS", ds[0].Companies[0].Company)
	assert.Equal(t, 18, ds[0].Companies[0].Students)
	assert.True(t, ds[0].Companies[1].Valid)
	assert.False(t, ds[0].Companies[2].Valid)

	assert.Equal(t, "Data Analyst", ds[0].Roles[1])
	assert.Equal(t, "", ds[0].Roles[2])
}

func TestLoadReaderCoercesMissingValues(t *testing.T) {
	csv := sampleHeader + "\n" +
		"2022,CS,abc,96,24,n/a,24.0,,4.2,,TCS,not-a-number,,,,,Software Engineer,,,55.0\n"

	ds, err := LoadReader(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, ds, 1)

	r := ds[0]
	// Unparseable counts coerce to zero, floats to NaN.
	assert.Equal(t, 0, r.TotalStudents)
	assert.Equal(t, 96, r.PlacedStudents)
	assert.True(t, math.IsNaN(r.PlacementPct))
	assert.True(t, math.IsNaN(r.MedianPackage))
	assert.True(t, math.IsNaN(r.AvgPackage))
	assert.InDelta(t, 24.0, r.HighestPackage, 1e-9)

	// A company whose student count does not parse is not a valid slot.
	assert.False(t, r.Companies[0].Valid)
}

func TestLoadReaderMissingColumnFails(t *testing.T) {
	csv := "year,branch,total_students\n2022,CS,120\n"

	_, err := LoadReader(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
	assert.Contains(t, err.Error(), "placed_students")
}

func TestLoadReaderInvalidYearFails(t *testing.T) {
	csv := sampleHeader + "\n" +
		"notayear,CS,120,96,24,80.0,24.0,7.2,4.2,8.4,,,,,,,,,,55.0\n"

	_, err := LoadReader(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid year")
}
