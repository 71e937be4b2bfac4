package features

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/salary-predictor/internal/types"
)

var trainingColumns = []string{
	"Age", "Job_Title", "Education_Level", "Performance_Score", "Work_Hours_Per_Week",
	"Projects_Handled", "Overtime_Hours", "Sick_Days", "Team_Size", "Promotions",
}

func mustSchema(t *testing.T, names ...string) *Schema {
	t.Helper()
	s, err := NewSchema(names)
	require.NoError(t, err)
	return s
}

func TestAssemble_TrainingColumns(t *testing.T) {
	rec := types.ExampleEmployee()
	vec := Assemble(&rec, mustSchema(t, trainingColumns...))

	assert.Equal(t, Vector{35, 3, 1, 4, 40, 10, 20, 5, 10, 2}, vec)
}

func TestAssemble_ZeroFillsMissingNames(t *testing.T) {
	rec := types.ExampleEmployee()
	vec := Assemble(&rec, mustSchema(t, "Age", "Bonus"))

	assert.Equal(t, Vector{35, 0}, vec)
}

func TestAssemble_FollowsSchemaOrder(t *testing.T) {
	rec := types.ExampleEmployee()
	vec := Assemble(&rec, mustSchema(t, "Promotions", "Bonus", "Age", "Job_Title_Manager", "Education_Level_PhD"))

	assert.Equal(t, Vector{2, 0, 35, 1, 0}, vec)
}

func TestAssemble_ZeroFillChangesPrediction(t *testing.T) {
	// A model trained on a superset of fields sees zeros for the unknown column,
	// so its output differs from what it would produce had the field been known.
	rec := types.ExampleEmployee()
	schema := mustSchema(t, "Age", "Years_At_Company")
	coefficients := []float64{100, 250}

	vec := Assemble(&rec, schema)
	got := coefficients[0]*vec[0] + coefficients[1]*vec[1]

	assert.Equal(t, 3500.0, got)
	assert.NotEqual(t, 3500.0+250*4, got)
}

func TestAssemble_LengthMatchesSchemaForValidRecords(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	schemas := []*Schema{
		mustSchema(t, trainingColumns...),
		mustSchema(t, "Age"),
		mustSchema(t, "Bonus", "Stock", "Age", "Job_Title_Analyst"),
	}

	for i := 0; i < 500; i++ {
		rec := types.EmployeeRecord{
			Age:              18 + rng.Intn(53),
			JobTitle:         types.JobTitles[rng.Intn(len(types.JobTitles))],
			EducationLevel:   types.EducationLevels[rng.Intn(len(types.EducationLevels))],
			PerformanceScore: 1 + rng.Intn(5),
			WorkHoursPerWeek: 10 + rng.Float64()*70,
			ProjectsHandled:  rng.Intn(51),
			OvertimeHours:    rng.Float64() * 200,
			SickDays:         rng.Intn(51),
			TeamSize:         1 + rng.Intn(50),
			Promotions:       rng.Intn(21),
		}
		require.NoError(t, rec.Validate())

		for _, s := range schemas {
			assert.Len(t, Assemble(&rec, s), s.Len())
		}
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	rec := types.ExampleEmployee()
	schema := mustSchema(t, append([]string{"Bonus"}, trainingColumns...)...)

	first := Assemble(&rec, schema)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Assemble(&rec, schema))
	}
}

func TestDrift(t *testing.T) {
	rec := types.ExampleEmployee()

	t.Run("missing and dropped", func(t *testing.T) {
		report := Drift(&rec, mustSchema(t, "Age", "Bonus", "Stock"))
		assert.Equal(t, []string{"Bonus", "Stock"}, report.ZeroFilled)
		assert.Contains(t, report.Dropped, "Promotions")
		assert.NotContains(t, report.Dropped, "Age")
		assert.False(t, report.Empty())
	})

	t.Run("training columns", func(t *testing.T) {
		report := Drift(&rec, mustSchema(t, trainingColumns...))
		assert.Empty(t, report.ZeroFilled)
		assert.True(t, report.Empty())
		// one-hot columns are available but unused
		assert.Contains(t, report.Dropped, "Job_Title_Manager")
	})
}

func TestNewSchema(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		wantErr string
	}{
		{"valid", []string{"Age", "Bonus"}, ""},
		{"empty", nil, "empty"},
		{"blank name", []string{"Age", " "}, "blank"},
		{"duplicate", []string{"Age", "Age"}, "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSchema(tt.names)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.names, s.Names())
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSchema_NamesIsACopy(t *testing.T) {
	s := mustSchema(t, "Age", "Bonus")
	names := s.Names()
	names[0] = "Changed"
	assert.Equal(t, []string{"Age", "Bonus"}, s.Names())
}

func TestLoadSchema(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("json", func(t *testing.T) {
		s, err := LoadSchema(write("feature_names.json", `["Age", "Team_Size"]`))
		require.NoError(t, err)
		assert.Equal(t, []string{"Age", "Team_Size"}, s.Names())
	})

	t.Run("yaml", func(t *testing.T) {
		s, err := LoadSchema(write("feature_names.yaml", "- Age\n- Job_Title_Manager\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Age", "Job_Title_Manager"}, s.Names())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSchema(filepath.Join(dir, "absent.json"))
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Contains(t, err.Error(), "cannot read file")
	})

	t.Run("corrupt file", func(t *testing.T) {
		_, err := LoadSchema(write("corrupt.json", `{"Age": 1}`))
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, "cannot parse feature list", loadErr.Message)
	})

	t.Run("empty list", func(t *testing.T) {
		_, err := LoadSchema(write("empty.json", `[]`))
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, "invalid feature list", loadErr.Message)
	})
}
