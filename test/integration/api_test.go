package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/eugenenazirov/pouch-estimator/internal/api"
	"github.com/eugenenazirov/pouch-estimator/internal/estimator"
	"github.com/eugenenazirov/pouch-estimator/internal/intake"
	"github.com/eugenenazirov/pouch-estimator/internal/storage"
	"github.com/eugenenazirov/pouch-estimator/internal/wizard"
)

func newRouter(t *testing.T) (http.Handler, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.InfoLevel)
	store := storage.NewMemoryStorage()
	handler := api.NewHandler(estimator.New(), store,
		api.WithSubmitter(intake.NewLogSubmitter(zap.New(core))),
	)
	logger := zaptest.NewLogger(t)
	return api.NewRouter(handler, logger, api.WithRateLimit(1000, 1000)), logs
}

func performRequest(t *testing.T, handler http.Handler, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	reader := bytes.NewReader(nil)
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

type wizardEnvelope struct {
	ID      string          `json:"id"`
	Applied bool            `json:"applied"`
	Wizard  wizard.View     `json:"wizard"`
	Handoff *wizard.Handoff `json:"handoff"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return out
}

var (
	glassSpecs = map[string]any{
		"dimensions": map[string]float64{"length": 80, "width": 80, "height": 200},
		"weight":     300,
		"material":   "soda-lime glass",
	}
	glassUsage = map[string]any{
		"unitsPerMonth":               5000,
		"shippingDistanceKm":          1200,
		"shippingFrequency":           "weekly",
		"currentPackagingCostPerUnit": 0.95,
	}
)

func runWizard(t *testing.T, handler http.Handler, notSure map[string]bool) wizardEnvelope {
	t.Helper()

	rec := performRequest(t, handler, http.MethodPost, "/api/wizards", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating wizard, got %d", rec.Code)
	}
	base := "/api/wizards/" + decode[wizardEnvelope](t, rec).ID

	steps := []struct {
		method  string
		path    string
		payload any
	}{
		{http.MethodPut, "/category", map[string]string{"category": "glass"}},
		{http.MethodPost, "/advance", nil},
		{http.MethodPut, "/specs", glassSpecs},
		{http.MethodPut, "/not-sure", notSure},
		{http.MethodPost, "/advance", nil},
		{http.MethodPut, "/usage", glassUsage},
		{http.MethodPost, "/advance", nil},
	}
	var last wizardEnvelope
	for _, s := range steps {
		rec := performRequest(t, handler, s.method, base+s.path, s.payload)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s %s: expected 200, got %d", s.method, s.path, rec.Code)
		}
		last = decode[wizardEnvelope](t, rec)
		if !last.Applied {
			t.Fatalf("%s %s: expected operation to apply", s.method, s.path)
		}
	}
	last.ID = base
	return last
}

func TestWizardMatchesOneShotEstimate(t *testing.T) {
	handler, _ := newRouter(t)

	tests := []struct {
		name    string
		notSure map[string]bool
	}{
		{name: "AllKnown", notSure: map[string]bool{}},
		{name: "WeightUnknown", notSure: map[string]bool{"weight": true}},
		{name: "ShippingAndVolumeUnknown", notSure: map[string]bool{"shipping": true, "volume": true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := runWizard(t, handler, tc.notSure)
			if result.Wizard.Step != wizard.StepResults || result.Wizard.Results == nil {
				t.Fatalf("expected results step, got %+v", result.Wizard)
			}

			specs := map[string]any{"category": "glass"}
			for k, v := range glassSpecs {
				specs[k] = v
			}
			rec := performRequest(t, handler, http.MethodPost, "/api/estimate", map[string]any{
				"specs":   specs,
				"usage":   glassUsage,
				"notSure": tc.notSure,
			})
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200 from estimate, got %d", rec.Code)
			}
			direct := decode[struct {
				Results estimator.Results `json:"results"`
			}](t, rec)

			got := result.Wizard.Results.CostSavings
			want := direct.Results.CostSavings
			if !got.TotalAnnualSavings.Equal(want.TotalAnnualSavings) ||
				!got.MaterialSavings.Equal(want.MaterialSavings) ||
				!got.ShippingSavings.Equal(want.ShippingSavings) ||
				!got.StorageSavings.Equal(want.StorageSavings) {
				t.Fatalf("wizard savings %+v differ from one-shot %+v", got, want)
			}
			if result.Wizard.Results.EnvironmentalImpact != direct.Results.EnvironmentalImpact {
				t.Fatalf("wizard impact %+v differs from one-shot %+v",
					result.Wizard.Results.EnvironmentalImpact, direct.Results.EnvironmentalImpact)
			}
		})
	}
}

func TestWizardSubmitIsLogged(t *testing.T) {
	handler, logs := newRouter(t)

	result := runWizard(t, handler, map[string]bool{})
	rec := performRequest(t, handler, http.MethodPost, result.ID+"/submit", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from submit, got %d", rec.Code)
	}
	submitted := decode[wizardEnvelope](t, rec)
	if submitted.Handoff == nil {
		t.Fatalf("expected handoff in submit response")
	}

	entries := logs.FilterMessage("estimate submitted").All()
	if len(entries) != 1 {
		t.Fatalf("expected one submission log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["category"] != "glass" {
		t.Fatalf("expected glass category, got %v", fields["category"])
	}
	if fields["total_annual_savings"] != submitted.Handoff.TotalAnnualSavings.String() {
		t.Fatalf("logged total %v differs from handoff %s", fields["total_annual_savings"], submitted.Handoff.TotalAnnualSavings)
	}

	if rec := performRequest(t, handler, http.MethodPost, result.ID+"/submit", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected second submit to find no session, got %d", rec.Code)
	}
}

func TestConcurrentSessionsAreIsolated(t *testing.T) {
	handler, _ := newRouter(t)

	const sessions = 16
	var wg sync.WaitGroup
	errs := make(chan error, sessions)

	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(units int) {
			defer wg.Done()

			rec := performRequest(t, handler, http.MethodPost, "/api/wizards", nil)
			if rec.Code != http.StatusCreated {
				errs <- fmt.Errorf("create: status %d", rec.Code)
				return
			}
			var created wizardEnvelope
			if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
				errs <- err
				return
			}
			base := "/api/wizards/" + created.ID

			performRequest(t, handler, http.MethodPost, base+"/advance", nil)
			performRequest(t, handler, http.MethodPost, base+"/advance", nil)
			performRequest(t, handler, http.MethodPut, base+"/usage", map[string]any{"unitsPerMonth": units})
			rec = performRequest(t, handler, http.MethodPost, base+"/advance", nil)

			var done wizardEnvelope
			if err := json.NewDecoder(rec.Body).Decode(&done); err != nil {
				errs <- err
				return
			}
			if done.Wizard.Usage.UnitsPerMonth != units || done.Wizard.Results == nil {
				errs <- fmt.Errorf("session %s: expected %d units with results, got %+v", created.ID, units, done.Wizard.Usage)
			}
		}(1000 + i)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
