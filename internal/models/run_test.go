package models

import "testing"

func validRun() *GenerationRun {
	return &GenerationRun{
		Params: RunParams{
			Customers:        100,
			DuplicationRate:  0.2,
			ContactMatchRate: 0.8,
			NameTypoRate:     0.5,
			TypoProbability:  0.2,
			CountryFillRate:  0.95,
			DOBFillRate:      0.5,
			EmailFillRate:    0.8,
			PhoneFillRate:    0.75,
		},
	}
}

func TestGenerationRunValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GenerationRun)
		wantErr bool
	}{
		{"valid", func(r *GenerationRun) {}, false},
		{"zero customers", func(r *GenerationRun) { r.Params.Customers = 0 }, true},
		// More duplicates than base customers is a legal request; the run
		// just ends short when the sources run out.
		{"duplication rate above one", func(r *GenerationRun) { r.Params.DuplicationRate = 4.0 }, false},
		{"duplication rate at cap", func(r *GenerationRun) { r.Params.DuplicationRate = 100 }, false},
		{"duplication rate over cap", func(r *GenerationRun) { r.Params.DuplicationRate = 101 }, true},
		{"negative duplication rate", func(r *GenerationRun) { r.Params.DuplicationRate = -0.1 }, true},
		{"contact match rate above one", func(r *GenerationRun) { r.Params.ContactMatchRate = 1.5 }, true},
		{"fill rate above one", func(r *GenerationRun) { r.Params.EmailFillRate = 1.01 }, true},
		{"unknown status", func(r *GenerationRun) { r.Status = "paused" }, true},
		{"shortfall status", func(r *GenerationRun) { r.Status = RunStatusShortfall }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := validRun()
			tt.mutate(run)
			err := run.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRunFilterNormalize(t *testing.T) {
	f := RunFilter{}
	f.Normalize()
	if f.Page != 1 || f.PageSize != defaultPageSize {
		t.Errorf("expected defaults, got page=%d size=%d", f.Page, f.PageSize)
	}

	f = RunFilter{Page: 3, PageSize: 500}
	f.Normalize()
	if f.PageSize != maxPageSize {
		t.Errorf("expected page size clamped to %d, got %d", maxPageSize, f.PageSize)
	}
	if f.Offset() != (3-1)*maxPageSize {
		t.Errorf("unexpected offset %d", f.Offset())
	}
}

func TestNewPaginationResult(t *testing.T) {
	p := NewPaginationResult(1, 20, 41)
	if p.TotalPages != 3 {
		t.Errorf("expected 3 pages for 41 items, got %d", p.TotalPages)
	}
	p = NewPaginationResult(1, 20, 0)
	if p.TotalPages != 0 {
		t.Errorf("expected 0 pages for empty result, got %d", p.TotalPages)
	}
}
