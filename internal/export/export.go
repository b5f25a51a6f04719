// Package export writes collision results to JSON for downstream tooling.
package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/crashsim/internal/physics"
)

type Scenario struct {
	Mass1       float64 `json:"mass1"`
	Velocity1   float64 `json:"velocity1"`
	Mass2       float64 `json:"mass2"`
	Velocity2   float64 `json:"velocity2"`
	Restitution float64 `json:"restitution"`
}

type Report struct {
	Scenario Scenario        `json:"scenario"`
	Result   *physics.Result `json:"result"`
}

func WriteJSON(path string, sc Scenario, result *physics.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return encode(file, sc, result)
}

func WriteJSONTo(w io.Writer, sc Scenario, result *physics.Result) error {
	return encode(w, sc, result)
}

func encode(w io.Writer, sc Scenario, result *physics.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Report{Scenario: sc, Result: result})
}
