// Package datasettest writes dataset directories for tests.
package datasettest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Fixture holds the raw contents of each dataset file.
// A file whose content is Omit is not written.
type Fixture struct {
	DayCycle string
	Weather  string
	Minimums string
	Students string
	Teachers string
	Lessons  string
	Fleet    string
	Repairs  string
}

// Omit marks a file that should be left out of the directory.
const Omit = "\x00omit"

// Header rows for the CSV files.
const (
	MinimumsHeader = "AREA,TIME,FILED,VISIBILITY,CEILING\n"
	PeopleHeader   = "ID,LAST,FIRST\n"
	LessonsHeader  = "STUDENT,AIRPLANE,INSTRUCTOR,TAKEOFF,LANDING,FILED,AREA\n"
	FleetHeader    = "TAILNO,TYPE\n"
	RepairsHeader  = "TAILNO,IN,OUT,DESCRIPTION\n"
)

// ScenarioA is one VFR lesson at KAUS taking off exactly at sunrise, with
// 2 mi visibility observed at 05:55 against a 3 mi day VFR minimum.
func ScenarioA() Fixture {
	return Fixture{
		DayCycle: `[{"area": "KAUS", "date": "2017-01-05", "sunrise": "06:00", "sunset": "17:45"}]`,
		Weather:  `[{"area": "KAUS", "timestamp": "2017-01-05T05:55:00-06:00", "visibility": 2, "ceiling": 3000}]`,
		Minimums: MinimumsHeader +
			"KAUS,DAY,VFR,3,1000\n" +
			"KAUS,NIGHT,VFR,5,2000\n",
		Students: PeopleHeader + "S01,Nguyen,Ava\nS02,Patel,Raj\n",
		Teachers: PeopleHeader + "T01,Okafor,Ben\n",
		Lessons: LessonsHeader +
			"S01,N123AB,T01,2017-01-05T06:00:00-06:00,2017-01-05T07:30:00-06:00,VFR,KAUS\n",
		Fleet:   FleetHeader + "N123AB,C172\nN456CD,PA28\n",
		Repairs: RepairsHeader,
	}
}

// Write creates the fixture files in a fresh temp directory and returns it.
func (f Fixture) Write(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	f.WriteTo(t, dir)
	return dir
}

// WriteTo creates the fixture files in dir.
func (f Fixture) WriteTo(t testing.TB, dir string) {
	t.Helper()
	files := map[string]string{
		"daycycle.json": f.DayCycle,
		"weather.json":  f.Weather,
		"minimums.csv":  f.Minimums,
		"students.csv":  f.Students,
		"teachers.csv":  f.Teachers,
		"lessons.csv":   f.Lessons,
		"fleet.csv":     f.Fleet,
		"repairs.csv":   f.Repairs,
	}
	for name, content := range files {
		if content == Omit {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}
