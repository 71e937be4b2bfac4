// Package types provides type definitions for structured data used throughout the salary predictor.
package types

import (
	"github.com/go-playground/validator/v10"
)

// Field names as they appear on the wire and in the feature schema the model was trained on.
const (
	FieldAge              = "Age"
	FieldJobTitle         = "Job_Title"
	FieldEducationLevel   = "Education_Level"
	FieldPerformanceScore = "Performance_Score"
	FieldWorkHoursPerWeek = "Work_Hours_Per_Week"
	FieldProjectsHandled  = "Projects_Handled"
	FieldOvertimeHours    = "Overtime_Hours"
	FieldSickDays         = "Sick_Days"
	FieldTeamSize         = "Team_Size"
	FieldPromotions       = "Promotions"
)

// JobTitles lists the accepted job titles in encoding order.
var JobTitles = []string{
	"Specialist", "Developer", "Analyst", "Manager", "Technician", "Engineer", "Consultant",
}

// EducationLevels lists the accepted education levels in encoding order (lowest first).
var EducationLevels = []string{"High School", "Bachelor", "Master", "PhD"}

// EmployeeRecord describes an employee's work pattern. Values reaching the feature
// assembler have passed Validate (directly or through the schemas package).
type EmployeeRecord struct {
	Age              int     `json:"Age" validate:"gte=18,lte=70"`
	JobTitle         string  `json:"Job_Title" validate:"required,oneof=Specialist Developer Analyst Manager Technician Engineer Consultant"`
	EducationLevel   string  `json:"Education_Level" validate:"required,oneof='High School' Bachelor Master PhD"`
	PerformanceScore int     `json:"Performance_Score" validate:"gte=1,lte=5"`
	WorkHoursPerWeek float64 `json:"Work_Hours_Per_Week" validate:"gte=10,lte=80"`
	ProjectsHandled  int     `json:"Projects_Handled" validate:"gte=0,lte=50"`
	OvertimeHours    float64 `json:"Overtime_Hours" validate:"gte=0,lte=200"`
	SickDays         int     `json:"Sick_Days" validate:"gte=0,lte=50"`
	TeamSize         int     `json:"Team_Size" validate:"gte=1,lte=50"`
	Promotions       int     `json:"Promotions" validate:"gte=0,lte=20"`
}

// ExampleEmployee returns the documented sample payload.
func ExampleEmployee() EmployeeRecord {
	return EmployeeRecord{
		Age:              35,
		JobTitle:         "Manager",
		EducationLevel:   "Bachelor",
		PerformanceScore: 4,
		WorkHoursPerWeek: 40,
		ProjectsHandled:  10,
		OvertimeHours:    20,
		SickDays:         5,
		TeamSize:         10,
		Promotions:       2,
	}
}

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// Validate validates the EmployeeRecord using the validator.
func (r *EmployeeRecord) Validate() error {
	return validate.Struct(r)
}

type numericAccessor struct {
	name string
	get  func(*EmployeeRecord) float64
}

var numericAccessors = []numericAccessor{
	{FieldAge, func(r *EmployeeRecord) float64 { return float64(r.Age) }},
	{FieldPerformanceScore, func(r *EmployeeRecord) float64 { return float64(r.PerformanceScore) }},
	{FieldWorkHoursPerWeek, func(r *EmployeeRecord) float64 { return r.WorkHoursPerWeek }},
	{FieldProjectsHandled, func(r *EmployeeRecord) float64 { return float64(r.ProjectsHandled) }},
	{FieldOvertimeHours, func(r *EmployeeRecord) float64 { return r.OvertimeHours }},
	{FieldSickDays, func(r *EmployeeRecord) float64 { return float64(r.SickDays) }},
	{FieldTeamSize, func(r *EmployeeRecord) float64 { return float64(r.TeamSize) }},
	{FieldPromotions, func(r *EmployeeRecord) float64 { return float64(r.Promotions) }},
}

// Fields returns the record as a mapping from feature name to numeric value.
//
// Numeric attributes appear under their wire names. The two categorical attributes
// appear twice: as an ordinal code (their position in JobTitles / EducationLevels)
// under the plain field name, and as one-hot indicators named "<field>_<value>".
//
// Ordinal codes are slice positions, so reordering or inserting into JobTitles or
// EducationLevels changes the vector a model trained on ordinal columns receives.
// Append new values at the end.
func (r *EmployeeRecord) Fields() map[string]float64 {
	fields := make(map[string]float64, len(numericAccessors)+2+len(JobTitles)+len(EducationLevels))
	for _, acc := range numericAccessors {
		fields[acc.name] = acc.get(r)
	}
	addCategorical(fields, FieldJobTitle, JobTitles, r.JobTitle)
	addCategorical(fields, FieldEducationLevel, EducationLevels, r.EducationLevel)
	return fields
}

func addCategorical(fields map[string]float64, name string, values []string, value string) {
	for i, v := range values {
		indicator := 0.0
		if v == value {
			indicator = 1
			fields[name] = float64(i)
		}
		fields[name+"_"+v] = indicator
	}
}
