package charts

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medcli/internal/cleaning"
	"medcli/internal/config"
	"medcli/internal/dataset"
	"medcli/internal/metrics"
)

func newTestTable(columns []string, rows [][]string) *dataset.Table {
	table := dataset.NewTable(columns)
	for _, row := range rows {
		table.AppendRow(row)
	}
	return table
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}

func TestRenderer_RenderAll(t *testing.T) {
	paths, err := config.GetPaths(t.TempDir())
	require.NoError(t, err)

	table := newTestTable(
		[]string{
			dataset.ColName,
			dataset.ColGender,
			dataset.ColBloodType,
			dataset.ColMedicalCondition,
			dataset.ColInsuranceProvider,
			dataset.ColBillingAmount,
			dataset.ColDateOfAdmission,
			dataset.ColAdmissionMonth,
			dataset.ColAgeGroup,
		},
		[][]string{
			{"Alice", "Female", "A+", "Diabetes", "Acme", "100", "2023-01-10", "2023-01", cleaning.AgeGroupAdult},
			{"Bob", "Male", "O-", "Asthma", "Umbra", "300", "2023-02-01", "2023-02", cleaning.AgeGroupSenior},
			{"Cara", "Female", "A+", "Diabetes", "Acme", "200", "2023-02-11", "2023-02", cleaning.AgeGroupChild},
		},
	)

	agg := metrics.NewAggregator(nil, nil)
	renderer := NewRenderer(nil, paths, agg)
	require.NoError(t, renderer.RenderAll(context.Background(), table))

	for _, filename := range []string{
		AdmissionsOverTimeFile,
		TopConditionsFile,
		GenderDistributionFile,
		AgeGroupDistributionFile,
		AvgBillingConditionFile,
		InsuranceShareFile,
		BloodTypeFile,
		AvgBillingBloodTypeFile,
	} {
		assertPNG(t, paths.GetFigurePath(filename))
	}
}

func TestRenderer_RenderAll_SkipsAbsentColumns(t *testing.T) {
	paths, err := config.GetPaths(t.TempDir())
	require.NoError(t, err)

	// No Blood Type column: no blood type figures, no failure
	table := newTestTable(
		[]string{dataset.ColName, dataset.ColGender},
		[][]string{
			{"Alice", "Female"},
			{"Bob", "Male"},
		},
	)

	agg := metrics.NewAggregator(nil, nil)
	renderer := NewRenderer(nil, paths, agg)
	require.NoError(t, renderer.RenderAll(context.Background(), table))

	assertPNG(t, paths.GetFigurePath(GenderDistributionFile))
	assert.NoFileExists(t, paths.GetFigurePath(BloodTypeFile))
	assert.NoFileExists(t, paths.GetFigurePath(AvgBillingBloodTypeFile))
	assert.NoFileExists(t, paths.GetFigurePath(AdmissionsOverTimeFile))
	assert.NoFileExists(t, paths.GetFigurePath(TopConditionsFile))
}

func TestRenderer_SingleMonthStillRenders(t *testing.T) {
	paths, err := config.GetPaths(t.TempDir())
	require.NoError(t, err)

	table := newTestTable(
		[]string{dataset.ColDateOfAdmission, dataset.ColAdmissionMonth},
		[][]string{{"2023-01-10", "2023-01"}},
	)

	renderer := NewRenderer(nil, paths, metrics.NewAggregator(nil, nil))
	require.NoError(t, renderer.RenderAll(context.Background(), table))
	assertPNG(t, paths.GetFigurePath(AdmissionsOverTimeFile))
}

func TestBucketOrdered(t *testing.T) {
	counts := []metrics.CountRow{
		{Key: cleaning.AgeGroupSenior, Patients: 9},
		{Key: cleaning.AgeGroupChild, Patients: 4},
		{Key: cleaning.AgeGroupAdult, Patients: 7},
	}

	ordered := bucketOrdered(counts)
	require.Len(t, ordered, 3)
	assert.Equal(t, cleaning.AgeGroupChild, ordered[0].Key)
	assert.Equal(t, cleaning.AgeGroupAdult, ordered[1].Key)
	assert.Equal(t, cleaning.AgeGroupSenior, ordered[2].Key)
}
