package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/motionlab/internal/sim"
)

var csvHeader = []string{"tick", "time", "position", "rotation", "velocity", "x", "y", "phase"}

// WriteCSV writes one row per sample, header first.
func WriteCSV(w io.Writer, trace *sim.Trace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	row := make([]string, len(csvHeader))
	for _, s := range trace.Samples {
		row[0] = strconv.Itoa(s.Tick)
		row[1] = formatFloat(s.Time)
		row[2] = formatFloat(s.Pose.Position)
		row[3] = formatFloat(s.Pose.Rotation)
		row[4] = formatFloat(s.Pose.Velocity)
		row[5] = formatFloat(s.Pose.X)
		row[6] = formatFloat(s.Pose.Y)
		row[7] = s.Phase.String()
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the whole trace as indented JSON.
func WriteJSON(w io.Writer, trace *sim.Trace) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(trace)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}
