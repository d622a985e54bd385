// Command generate_sample_data writes a synthetic requirement and test
// report pair for demos and manual testing of the pipeline. The tables are
// seeded so repeated runs with the same seed produce identical files.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/caliperhq/go-caliper/internal/application"
	"github.com/caliperhq/go-caliper/internal/domain"
)

type template struct {
	metric     string
	comparator domain.Comparator
	unit       string
	component  string
	textFormat string
}

var templates = []template{
	{"shear_strength", domain.CompGreaterEqual, "kN", "door", "%s shear strength must be at least %g kN"},
	{"shear_strength", domain.CompGreaterEqual, "kN", "door_frame", "%s shear strength must be at least %g kN"},
	{"rigidity", domain.CompGreaterEqual, "N", "b_pillar", "%s rigidity minimum %g N"},
	{"rigidity", domain.CompGreaterEqual, "N", "hood", "%s rigidity minimum %g N"},
	{"gap", domain.CompLessEqual, "mm", "panel", "%s gap shall not exceed %g mm"},
	{"gap", domain.CompLessEqual, "mm", "roof", "%s gap shall not exceed %g mm"},
}

func main() {
	var (
		size   = flag.Int("size", 20, "number of requirement rows to generate")
		outDir = flag.String("out", "testdata/sample", "output directory")
		seed   = flag.Int64("seed", time.Now().UnixNano(), "random seed")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	requirements := make([]application.RequirementRecord, 0, *size)
	tests := make([]application.TestRecord, 0, *size)

	for i := 0; i < *size; i++ {
		tpl := templates[rng.Intn(len(templates))]
		target := roundTo(2+rng.Float64()*8, 1)

		reqID := fmt.Sprintf("R-%03d", i+1)
		rec := application.RequirementRecord{
			ReqID:    reqID,
			FreeText: fmt.Sprintf(tpl.textFormat, tpl.component, target),
		}

		// Half the rows ship pre-structured, half leave extraction work.
		if i%2 == 0 {
			rec.Requirement = domain.Requirement{
				Metric:     tpl.metric,
				Comparator: tpl.comparator,
				Value:      &target,
				Unit:       tpl.unit,
				Component:  tpl.component,
			}
		}
		requirements = append(requirements, rec)

		// Measurements scatter around the target so both outcomes occur,
		// occasionally in a smaller unit to exercise normalization.
		measured := roundTo(target*(0.7+rng.Float64()*0.6), 2)
		unit := tpl.unit
		if unit == "kN" && rng.Intn(3) == 0 {
			measured *= 1000
			unit = "N"
		}
		tests = append(tests, application.TestRecord{
			TestID: fmt.Sprintf("T-%03d", i+1),
			ReqID:  reqID,
			TestMeasurement: domain.TestMeasurement{
				MeasuredValue: measured,
				Unit:          unit,
				Component:     tpl.component,
			},
		})
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}

	reqPath := filepath.Join(*outDir, "requirements.csv")
	if err := writeRequirements(reqPath, requirements); err != nil {
		log.Fatalf("write requirements: %v", err)
	}
	testPath := filepath.Join(*outDir, "tests.csv")
	if err := writeTests(testPath, tests); err != nil {
		log.Fatalf("write tests: %v", err)
	}

	fmt.Printf("Generated sample data:\n")
	fmt.Printf("- %s (%d rows)\n", reqPath, len(requirements))
	fmt.Printf("- %s (%d rows)\n", testPath, len(tests))
	fmt.Printf("- seed: %d\n", *seed)
}

func writeRequirements(path string, records []application.RequirementRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return application.WriteRequirements(f, records)
}

func writeTests(path string, records []application.TestRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"test_id", "req_id", "measured_value", "unit", "component"}); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.TestID,
			rec.ReqID,
			strconv.FormatFloat(rec.MeasuredValue, 'g', -1, 64),
			rec.Unit,
			rec.Component,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func roundTo(v float64, places int) float64 {
	scale := 1.0
	for i := 0; i < places; i++ {
		scale *= 10
	}
	return float64(int(v*scale+0.5)) / scale
}
