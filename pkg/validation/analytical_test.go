package validation

import (
	"strings"
	"testing"

	"github.com/LeulDagnachew-hub/Hex-sim/pkg/geo"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/plan"
	"github.com/LeulDagnachew-hub/Hex-sim/pkg/region"
)

func rect(w, h float64) geo.Polygon {
	return geo.NewPolygon(geo.Pt(0, 0), geo.Pt(w, 0), geo.Pt(w, h), geo.Pt(0, h))
}

func TestValidateAnalyticalValid(t *testing.T) {
	r := ValidateAnalytical(validSpec(), rect(200, 150))
	if !r.Valid {
		t.Errorf("expected valid report, got %v", r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", r.Warnings)
	}
	if len(r.Info) != 1 {
		t.Errorf("expected 1 info, got %v", r.Info)
	}
}

func TestValidateAnalyticalTooManyCandidates(t *testing.T) {
	s := validSpec()
	s.Cell.Radius = 0.01
	s.Cell.MaxCandidates = 1000
	r := ValidateAnalytical(s, rect(200, 150))
	if r.Valid {
		t.Fatal("expected invalid report")
	}
	assertHasError(t, r, "cell.radius")
	if len(r.Errors[0].Suggestions) == 0 {
		t.Error("expected suggestions")
	}
}

func TestValidateAnalyticalSmallRadius(t *testing.T) {
	s := validSpec()
	s.Cell.Radius = 0.3
	r := ValidateAnalytical(s, rect(200, 150))
	if !r.Valid {
		t.Fatalf("small radius under the limit should stay valid: %v", r.Errors)
	}
	if len(r.Warnings) != 1 || !strings.Contains(r.Warnings[0].Message, "very small radius") {
		t.Errorf("expected small-radius warning, got %v", r.Warnings)
	}
}

func TestValidateAnalyticalGuardDisabled(t *testing.T) {
	s := validSpec()
	s.Cell.Radius = 0.01
	s.Cell.MaxCandidates = -1
	r := ValidateAnalytical(s, rect(200, 150))
	if !r.Valid {
		t.Errorf("disabled guard should not produce errors: %v", r.Errors)
	}
	if len(r.Warnings) != 2 {
		t.Errorf("expected guard and small-radius warnings, got %v", r.Warnings)
	}
}

func TestValidateAnalyticalHugeRadius(t *testing.T) {
	s := validSpec()
	s.Cell.Radius = 1000
	r := ValidateAnalytical(s, rect(200, 150))
	if len(r.Info) != 2 {
		t.Errorf("expected extent and estimate info, got %v", r.Info)
	}
}

func TestValidateAnalyticalZeroArea(t *testing.T) {
	flat := geo.NewPolygon(geo.Pt(0, 0), geo.Pt(5, 0), geo.Pt(10, 0))
	r := ValidateAnalytical(validSpec(), flat)
	if !r.Valid {
		t.Errorf("zero-area region is not an error: %v", r.Errors)
	}
	found := false
	for _, w := range r.Warnings {
		if strings.Contains(w.Message, "zero area") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected zero-area warning, got %v", r.Warnings)
	}
}

func TestValidateResult(t *testing.T) {
	res, err := plan.Default().Run(region.Rectangle{W: 200, H: 150}, 20)
	if err != nil {
		t.Fatal(err)
	}
	r := ValidateResult(res)
	if !r.Valid || len(r.Warnings) != 0 {
		t.Errorf("expected clean report, got %s: %v", r.Summary, r.Warnings)
	}
	if len(r.Info) == 0 {
		t.Error("expected placement info")
	}
}

func TestValidateResultLowCoverage(t *testing.T) {
	res, err := plan.Default().Run(region.Rectangle{W: 200, H: 150}, 20)
	if err != nil {
		t.Fatal(err)
	}
	res.Metrics.CoverageRatio = 0.5
	r := ValidateResult(res)
	if len(r.Warnings) != 1 {
		t.Errorf("expected low-coverage warning, got %v", r.Warnings)
	}
}
