package conf

import (
	"strings"
	"testing"
)

// validSettings returns a settings struct that passes validation, for tests
// to break one field at a time.
func validSettings() *Settings {
	s := &Settings{}
	s.Main.Name = "BBS-Go"
	s.Input = InputConfig{
		Dir:             "data/",
		Pattern:         DefaultRoutePattern,
		AbundanceColumn: DefaultAbundanceColumn,
		SpeciesList:     SpeciesListCSV,
		SumStops:        true,
	}
	s.Filter = FilterConfig{
		FirstYear:    1997,
		Protocol:     101,
		ExcludeYears: []int{2020},
	}
	s.Ranking = RankingConfig{
		Threshold: 0.9,
		TopN:      0,
	}
	s.Output.Dir = "output/"
	s.Output.File.Enabled = true
	s.Output.File.Type = "table"
	return s
}

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
		errPart string // substring expected in the error message
	}{
		{
			name:    "default-shaped settings pass",
			mutate:  func(s *Settings) {},
			wantErr: false,
		},
		{
			name:    "threshold above one fails",
			mutate:  func(s *Settings) { s.Ranking.Threshold = 1.5 },
			wantErr: true,
			errPart: "Threshold",
		},
		{
			name:    "threshold below zero fails",
			mutate:  func(s *Settings) { s.Ranking.Threshold = -0.1 },
			wantErr: true,
			errPart: "Threshold",
		},
		{
			name:    "threshold exactly one passes",
			mutate:  func(s *Settings) { s.Ranking.Threshold = 1.0 },
			wantErr: false,
		},
		{
			name:    "negative top-n fails",
			mutate:  func(s *Settings) { s.Ranking.TopN = -5 },
			wantErr: true,
			errPart: "TopN",
		},
		{
			name:    "zero protocol fails",
			mutate:  func(s *Settings) { s.Filter.Protocol = 0 },
			wantErr: true,
			errPart: "Protocol",
		},
		{
			name:    "zero first year fails",
			mutate:  func(s *Settings) { s.Filter.FirstYear = 0 },
			wantErr: true,
			errPart: "FirstYear",
		},
		{
			name:    "empty input dir fails",
			mutate:  func(s *Settings) { s.Input.Dir = "" },
			wantErr: true,
			errPart: "Dir",
		},
		{
			name:    "blank abundance column fails",
			mutate:  func(s *Settings) { s.Input.AbundanceColumn = "   " },
			wantErr: true,
			errPart: "abundance column",
		},
		{
			name:    "unsupported output type fails",
			mutate:  func(s *Settings) { s.Output.File.Type = "parquet" },
			wantErr: true,
			errPart: "Type",
		},
		{
			name:    "empty output type passes",
			mutate:  func(s *Settings) { s.Output.File.Type = "" },
			wantErr: false,
		},
		{
			name:    "csv output type passes",
			mutate:  func(s *Settings) { s.Output.File.Type = "csv" },
			wantErr: false,
		},
		{
			name:    "negative exclude year fails",
			mutate:  func(s *Settings) { s.Filter.ExcludeYears = []int{-2020} },
			wantErr: true,
			errPart: "not a valid year",
		},
		{
			name:    "zero extra exclusion fails",
			mutate:  func(s *Settings) { s.Filter.ExtraExclusions = []int{0} },
			wantErr: true,
			errPart: "AOU code",
		},
		{
			name:    "extra exclusions pass",
			mutate:  func(s *Settings) { s.Filter.ExtraExclusions = []int{4660, 4661} },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := validSettings()
			tt.mutate(settings)

			err := ValidateSettings(settings)

			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSettings() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr && tt.errPart != "" && !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("ValidateSettings() error = %v, want message containing %q", err, tt.errPart)
			}
		})
	}
}

func TestValidationErrorAggregatesAllFailures(t *testing.T) {
	settings := validSettings()
	settings.Ranking.Threshold = 2.0
	settings.Filter.Protocol = 0
	settings.Input.AbundanceColumn = " "

	err := ValidateSettings(settings)
	if err == nil {
		t.Fatal("ValidateSettings() expected error for multiply broken settings")
	}

	ve, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	// One entry per failing check, not just the first
	if len(ve.Errors) < 3 {
		t.Errorf("expected at least 3 collected errors, got %d: %v", len(ve.Errors), ve.Errors)
	}
}
