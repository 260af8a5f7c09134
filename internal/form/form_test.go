package form

import (
	"errors"
	"testing"
)

func TestSinglePlot_Input(t *testing.T) {
	input, err := SinglePlot{Date: "2024-03-01", Time: "12:30:00", FileName: " storm "}.Input()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if input.Timestamp != "2024-03-01T12:30:00" {
		t.Errorf("Unexpected timestamp %s", input.Timestamp)
	}
	if input.FileName != "storm" {
		t.Errorf("Expected trimmed file name, got %q", input.FileName)
	}
}

func TestSinglePlot_RequiredFields(t *testing.T) {
	_, err := SinglePlot{Date: "  ", FileName: "x"}.Input()

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected ValidationErrors, got %v", err)
	}
	if !verrs.Has("date") || !verrs.Has("time") {
		t.Errorf("Expected date and time errors, got %v", verrs)
	}
	if verrs.Has("fileName") {
		t.Error("File name is optional")
	}
}

func TestArchiveAnimation_Input(t *testing.T) {
	input, err := ArchiveAnimation{
		StartDate:       "2024-03-01",
		StartTime:       "00:00:00",
		EndTime:         "06:00:00",
		IntervalSeconds: 300,
		FileName:        "night",
	}.Input()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if input.StartTime != "2024-03-01T00:00:00" || input.EndTime != "2024-03-01T06:00:00" {
		t.Errorf("Unexpected range %s - %s", input.StartTime, input.EndTime)
	}
	if input.IntervalSeconds != 300 {
		t.Errorf("Expected interval 300, got %d", input.IntervalSeconds)
	}
}

func TestArchiveAnimation_NoSemanticChecks(t *testing.T) {
	// End before start is accepted; only presence is validated
	_, err := ArchiveAnimation{
		StartDate:       "2024-03-01",
		StartTime:       "10:00:00",
		EndTime:         "09:00:00",
		IntervalSeconds: 1,
	}.Input()
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestArchiveAnimation_RequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		form  ArchiveAnimation
		field string
	}{
		{"start date", ArchiveAnimation{StartTime: "a", EndTime: "b", IntervalSeconds: 1}, "startDate"},
		{"start time", ArchiveAnimation{StartDate: "a", EndTime: "b", IntervalSeconds: 1}, "startTime"},
		{"end time", ArchiveAnimation{StartDate: "a", StartTime: "b", IntervalSeconds: 1}, "endTime"},
		{"interval", ArchiveAnimation{StartDate: "a", StartTime: "b", EndTime: "c"}, "intervalSeconds"},
		{"negative interval", ArchiveAnimation{StartDate: "a", StartTime: "b", EndTime: "c", IntervalSeconds: -5}, "intervalSeconds"},
	}

	for _, test := range tests {
		_, err := test.form.Input()
		var verrs ValidationErrors
		if !errors.As(err, &verrs) {
			t.Errorf("%s: expected ValidationErrors, got %v", test.name, err)
			continue
		}
		if !verrs.Has(test.field) {
			t.Errorf("%s: expected error on %s, got %v", test.name, test.field, verrs)
		}
	}
}

func TestCoordinates_Validate(t *testing.T) {
	if err := (Coordinates{ObsFile: "a.17o", NavFile: "a.17n"}).Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	err := Coordinates{ObsFile: "a.17o"}.Validate()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) || !verrs.Has("navFile") || verrs.Has("obsFile") {
		t.Errorf("Expected only navFile error, got %v", err)
	}

	// Extensions are a picker filter only, not validated
	if err := (Coordinates{ObsFile: "a.txt", NavFile: "b.bin"}).Validate(); err != nil {
		t.Errorf("Expected no error for other extensions, got %v", err)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	err := ValidationErrors{{Field: "date", Tag: "required"}, {Field: "intervalSeconds", Tag: "min", Param: "1"}}
	expected := "invalid form: date: required, intervalSeconds: min=1"
	if err.Error() != expected {
		t.Errorf("Error() = %q, expected %q", err.Error(), expected)
	}
}
