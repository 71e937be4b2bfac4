//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *EmployeeRecord)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "example record",
			mutate:  func(_ *EmployeeRecord) {},
			wantErr: false,
		},
		{
			name:    "education level with space",
			mutate:  func(r *EmployeeRecord) { r.EducationLevel = "High School" },
			wantErr: false,
		},
		{
			name:    "lower bounds",
			mutate:  func(r *EmployeeRecord) { r.Age, r.ProjectsHandled, r.OvertimeHours, r.Promotions = 18, 0, 0, 0 },
			wantErr: false,
		},
		{
			name:    "upper bounds",
			mutate:  func(r *EmployeeRecord) { r.Age, r.WorkHoursPerWeek, r.OvertimeHours, r.TeamSize = 70, 80, 200, 50 },
			wantErr: false,
		},
		{
			name:    "age too low",
			mutate:  func(r *EmployeeRecord) { r.Age = 17 },
			wantErr: true,
			errMsg:  "Age",
		},
		{
			name:    "age too high",
			mutate:  func(r *EmployeeRecord) { r.Age = 71 },
			wantErr: true,
			errMsg:  "Age",
		},
		{
			name:    "unknown job title",
			mutate:  func(r *EmployeeRecord) { r.JobTitle = "CEO" },
			wantErr: true,
			errMsg:  "oneof",
		},
		{
			name:    "education level is case sensitive",
			mutate:  func(r *EmployeeRecord) { r.EducationLevel = "phd" },
			wantErr: true,
			errMsg:  "EducationLevel",
		},
		{
			name:    "missing job title",
			mutate:  func(r *EmployeeRecord) { r.JobTitle = "" },
			wantErr: true,
			errMsg:  "required",
		},
		{
			name:    "team size zero",
			mutate:  func(r *EmployeeRecord) { r.TeamSize = 0 },
			wantErr: true,
			errMsg:  "TeamSize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ExampleEmployee()
			tt.mutate(&rec)
			err := rec.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEmployeeRecord_Fields(t *testing.T) {
	rec := ExampleEmployee()
	fields := rec.Fields()

	assert.Equal(t, 35.0, fields[FieldAge])
	assert.Equal(t, 40.0, fields[FieldWorkHoursPerWeek])
	assert.Equal(t, 2.0, fields[FieldPromotions])

	// Manager is the fourth title, Bachelor the second level.
	assert.Equal(t, 3.0, fields[FieldJobTitle])
	assert.Equal(t, 1.0, fields[FieldEducationLevel])

	assert.Equal(t, 1.0, fields["Job_Title_Manager"])
	assert.Equal(t, 0.0, fields["Job_Title_Developer"])
	assert.Equal(t, 1.0, fields["Education_Level_Bachelor"])
	assert.Equal(t, 0.0, fields["Education_Level_High School"])

	assert.Len(t, fields, 8+2+len(JobTitles)+len(EducationLevels))
}

func TestEmployeeRecord_FieldsOrdinalCodes(t *testing.T) {
	// Trained artifacts depend on these exact codes.
	wantTitles := map[string]float64{
		"Specialist": 0, "Developer": 1, "Analyst": 2, "Manager": 3,
		"Technician": 4, "Engineer": 5, "Consultant": 6,
	}
	wantLevels := map[string]float64{"High School": 0, "Bachelor": 1, "Master": 2, "PhD": 3}
	require.Len(t, JobTitles, len(wantTitles))
	require.Len(t, EducationLevels, len(wantLevels))

	for title, code := range wantTitles {
		rec := ExampleEmployee()
		rec.JobTitle = title
		assert.Equal(t, code, rec.Fields()[FieldJobTitle], title)
	}
	for level, code := range wantLevels {
		rec := ExampleEmployee()
		rec.EducationLevel = level
		assert.Equal(t, code, rec.Fields()[FieldEducationLevel], level)
	}
}

func TestEmployeeRecord_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(ExampleEmployee())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, name := range []string{
		FieldAge, FieldJobTitle, FieldEducationLevel, FieldPerformanceScore, FieldWorkHoursPerWeek,
		FieldProjectsHandled, FieldOvertimeHours, FieldSickDays, FieldTeamSize, FieldPromotions,
	} {
		assert.Contains(t, raw, name)
	}
}

func TestPredictionResult_JSON(t *testing.T) {
	t.Run("with interval", func(t *testing.T) {
		res := PredictionResult{
			Salary:             5000,
			ConfidenceInterval: &ConfidenceInterval{Lower: 4679.9, Upper: 5320.1},
			ModelUsed:          "RandomForestRegressor",
			InputSummary:       ExampleEmployee(),
		}
		data, err := json.Marshal(res)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"confidence_interval":[4679.9,5320.1]`)

		var decoded PredictionResult
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, res, decoded)
	})

	t.Run("without interval", func(t *testing.T) {
		data, err := json.Marshal(PredictionResult{Salary: 5000, ModelUsed: "LinearRegression"})
		require.NoError(t, err)
		assert.Contains(t, string(data), `"confidence_interval":null`)
	})

	t.Run("interval with wrong arity", func(t *testing.T) {
		var ci ConfidenceInterval
		assert.Error(t, json.Unmarshal([]byte(`[1,2,3]`), &ci))
	})
}
