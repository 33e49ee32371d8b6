package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/rigid2d/internal/sim"
)

type ExportData struct {
	Scene    string             `json:"scene"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Times    []float64          `json:"times"`
	Frames   [][]sim.BodyState  `json:"frames"`
	Metrics  map[string]float64 `json:"metrics"`
}

func ExportJSON(w io.Writer, scene string, dt, duration float64, result *sim.Result) error {
	data := ExportData{
		Scene:    scene,
		Dt:       dt,
		Duration: duration,
		Steps:    result.Steps,
		Times:    result.Times,
		Frames:   result.Frames,
		Metrics:  result.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSONFile(path, scene string, dt, duration float64, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, scene, dt, duration, result)
}

func ExportCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if len(result.Frames) == 0 {
		return nil
	}

	header := []string{"time"}
	for i := range result.Frames[0] {
		header = append(header,
			fmt.Sprintf("b%d_x", i),
			fmt.Sprintf("b%d_y", i),
			fmt.Sprintf("b%d_angle", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, frame := range result.Frames {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, bs := range frame {
			row = append(row,
				strconv.FormatFloat(bs.X, 'f', 6, 64),
				strconv.FormatFloat(bs.Y, 'f', 6, 64),
				strconv.FormatFloat(bs.Angle, 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return cw.Error()
}
