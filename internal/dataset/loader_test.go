package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightschool/auditor/internal/dataset/datasettest"
	"github.com/flightschool/auditor/internal/errors"
)

// loadFixture writes f to a temp dir and loads it, failing the test on error.
func loadFixture(t *testing.T, f datasettest.Fixture) *Set {
	t.Helper()
	s, err := Load(f.Write(t))
	require.NoError(t, err)
	return s
}

// loadErr writes f to a temp dir and returns the load error.
func loadErr(t *testing.T, f datasettest.Fixture) error {
	t.Helper()
	s, err := Load(f.Write(t))
	require.Error(t, err)
	assert.Nil(t, s, "a failed load must not return partial data")
	return err
}

func TestLoad_ScenarioA_ParsesAllTables(t *testing.T) {
	// Given: a complete dataset directory
	s := loadFixture(t, datasettest.ScenarioA())

	// Then: every table is populated
	assert.Len(t, s.DayCycles, 1)
	assert.Len(t, s.Weather, 1)
	assert.Len(t, s.Minimums, 2)
	assert.Len(t, s.Students, 2)
	assert.Len(t, s.Teachers, 1)
	assert.Len(t, s.Lessons, 1)
	assert.Len(t, s.Fleet, 2)
	assert.Empty(t, s.Repairs)

	// And: the lesson is typed
	cst := time.FixedZone("", -6*3600)
	l := s.Lessons[0]
	assert.Equal(t, "S01", l.StudentID)
	assert.Equal(t, "N123AB", l.AirplaneID)
	assert.Equal(t, "T01", l.InstructorID)
	assert.True(t, l.Takeoff.Equal(time.Date(2017, 1, 5, 6, 0, 0, 0, cst)))
	assert.True(t, l.Landing.Equal(time.Date(2017, 1, 5, 7, 30, 0, 0, cst)))
	assert.Equal(t, "VFR", l.Filed)
	assert.Equal(t, "KAUS", l.Area)
	assert.Equal(t, 2, l.Line)

	// And: minimums carry optional ceilings
	require.NotNil(t, s.Minimums[0].MinCeiling)
	assert.Equal(t, 1000, *s.Minimums[0].MinCeiling)
	assert.Equal(t, Visibility(3), s.Minimums[0].MinVisibility)
	assert.Equal(t, CycleDay, s.Minimums[0].Cycle)
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))

	require.Error(t, err)
	assert.True(t, errors.IsDataset(err))
	assert.Equal(t, errors.ErrCodeDatasetMissing, errors.GetCode(err))
}

func TestLoad_PathIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestLoad_EveryFileIsRequired(t *testing.T) {
	omit := map[string]func(*datasettest.Fixture){
		FileDayCycle: func(f *datasettest.Fixture) { f.DayCycle = datasettest.Omit },
		FileWeather:  func(f *datasettest.Fixture) { f.Weather = datasettest.Omit },
		FileMinimums: func(f *datasettest.Fixture) { f.Minimums = datasettest.Omit },
		FileStudents: func(f *datasettest.Fixture) { f.Students = datasettest.Omit },
		FileTeachers: func(f *datasettest.Fixture) { f.Teachers = datasettest.Omit },
		FileLessons:  func(f *datasettest.Fixture) { f.Lessons = datasettest.Omit },
		FileFleet:    func(f *datasettest.Fixture) { f.Fleet = datasettest.Omit },
		FileRepairs:  func(f *datasettest.Fixture) { f.Repairs = datasettest.Omit },
	}
	require.Len(t, omit, len(Files))

	for _, file := range Files {
		t.Run(file, func(t *testing.T) {
			// Given: a dataset missing one file
			f := datasettest.ScenarioA()
			omit[file](&f)

			// When: loading
			err := loadErr(t, f)

			// Then: the error names the missing file
			assert.Equal(t, errors.ErrCodeDatasetMissing, errors.GetCode(err))
			assert.Contains(t, err.Error(), file)
		})
	}
}

func TestLoad_MalformedInput(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*datasettest.Fixture)
		wantCode string
		wantMsg  []string
	}{
		{
			name: "lesson row too short",
			mutate: func(f *datasettest.Fixture) {
				f.Lessons = datasettest.LessonsHeader + "S01,N123AB,T01,2017-01-05T06:00:00-06:00\n"
			},
			wantCode: errors.ErrCodeDatasetMalformed,
			wantMsg:  []string{FileLessons, "line 2", "expected 7 fields, got 4"},
		},
		{
			name: "minimums header missing column",
			mutate: func(f *datasettest.Fixture) {
				f.Minimums = "AREA,TIME,FILED,VISIBILITY\nKAUS,DAY,VFR,3\n"
			},
			wantCode: errors.ErrCodeDatasetMalformed,
			wantMsg:  []string{FileMinimums, "CEILING"},
		},
		{
			name: "empty csv",
			mutate: func(f *datasettest.Fixture) {
				f.Fleet = ""
			},
			wantCode: errors.ErrCodeDatasetMalformed,
			wantMsg:  []string{FileFleet, "missing header row"},
		},
		{
			name: "unparsable takeoff",
			mutate: func(f *datasettest.Fixture) {
				f.Lessons = datasettest.LessonsHeader +
					"S01,N123AB,T01,yesterday,2017-01-05T07:30:00-06:00,VFR,KAUS\n"
			},
			wantCode: errors.ErrCodeDatasetMalformed,
			wantMsg:  []string{FileLessons, "line 2", "TAKEOFF"},
		},
		{
			name: "landing before takeoff",
			mutate: func(f *datasettest.Fixture) {
				f.Lessons = datasettest.LessonsHeader +
					"S01,N123AB,T01,2017-01-05T06:00:00-06:00,2017-01-05T05:00:00-06:00,VFR,KAUS\n"
			},
			wantCode: errors.ErrCodeDatasetMalformed,
			wantMsg:  []string{"LANDING is before TAKEOFF"},
		},
		{
			name: "unparsable visibility minimum",
			mutate: func(f *datasettest.Fixture) {
				f.Minimums = datasettest.MinimumsHeader + "KAUS,DAY,VFR,three,1000\n"
			},
			wantCode: errors.ErrCodeDatasetMalformed,
			wantMsg:  []string{FileMinimums, "VISIBILITY"},
		},
		{
			name: "NaN visibility minimum",
			mutate: func(f *datasettest.Fixture) {
				f.Minimums = datasettest.MinimumsHeader + "KAUS,DAY,VFR,NaN,1000\n"
			},
			wantCode: errors.ErrCodeDatasetMalformed,
			wantMsg:  []string{FileMinimums, "line 2", "VISIBILITY"},
		},
		{
			name: "infinite visibility minimum",
			mutate: func(f *datasettest.Fixture) {
				f.Minimums = datasettest.MinimumsHeader + "KAUS,DAY,VFR,+Inf,1000\n"
			},
			wantCode: errors.ErrCodeDatasetMalformed,
			wantMsg:  []string{FileMinimums, "VISIBILITY"},
		},
		{
			name: "unknown cycle",
			mutate: func(f *datasettest.Fixture) {
				f.Minimums = datasettest.MinimumsHeader + "KAUS,DUSK,VFR,3,1000\n"
			},
			wantCode: errors.ErrCodeDatasetMalformed,
			wantMsg:  []string{"TIME", "DUSK"},
		},
		{
			name: "negative ceiling minimum",
			mutate: func(f *datasettest.Fixture) {
				f.Minimums = datasettest.MinimumsHeader + "KAUS,DAY,VFR,3,-5\n"
			},
			wantCode: errors.ErrCodeDatasetMalformed,
			wantMsg:  []string{"CEILING"},
		},
		{
			name: "weather is not json",
			mutate: func(f *datasettest.Fixture) {
				f.Weather = "{not json"
			},
			wantCode: errors.ErrCodeDatasetMalformed,
			wantMsg:  []string{FileWeather},
		},
		{
			name: "weather unknown field",
			mutate: func(f *datasettest.Fixture) {
				f.Weather = `[{"area": "KAUS", "timestamp": "2017-01-05T05:55:00-06:00", "visibility": 2, "humidity": 80}]`
			},
			wantCode: errors.ErrCodeDatasetMalformed,
			wantMsg:  []string{FileWeather, "humidity"},
		},
		{
			name: "weather missing visibility",
			mutate: func(f *datasettest.Fixture) {
				f.Weather = `[{"area": "KAUS", "timestamp": "2017-01-05T05:55:00-06:00"}]`
			},
			wantCode: errors.ErrCodeDatasetMalformed,
			wantMsg:  []string{FileWeather, "entry 1", "missing visibility"},
		},
		{
			name: "weather NaN visibility string",
			mutate: func(f *datasettest.Fixture) {
				f.Weather = `[{"area": "KAUS", "timestamp": "2017-01-05T05:55:00-06:00", "visibility": "nan"}]`
			},
			wantCode: errors.ErrCodeDatasetMalformed,
			wantMsg:  []string{FileWeather, "invalid visibility"},
		},
		{
			name: "weather negative visibility",
			mutate: func(f *datasettest.Fixture) {
				f.Weather = `[{"area": "KAUS", "timestamp": "2017-01-05T05:55:00-06:00", "visibility": -2}]`
			},
			wantCode: errors.ErrCodeDatasetMalformed,
			wantMsg:  []string{FileWeather, "negative"},
		},
		{
			name: "weather negative ceiling",
			mutate: func(f *datasettest.Fixture) {
				f.Weather = `[{"area": "KAUS", "timestamp": "2017-01-05T05:55:00-06:00", "visibility": 2, "ceiling": -100}]`
			},
			wantCode: errors.ErrCodeDatasetMalformed,
			wantMsg:  []string{FileWeather, "entry 1", "negative ceiling"},
		},
		{
			name: "weather bad timestamp",
			mutate: func(f *datasettest.Fixture) {
				f.Weather = `[{"area": "KAUS", "timestamp": "05:55", "visibility": 2}]`
			},
			wantCode: errors.ErrCodeDatasetMalformed,
			wantMsg:  []string{FileWeather, "invalid timestamp"},
		},
		{
			name: "daycycle bad sunrise",
			mutate: func(f *datasettest.Fixture) {
				f.DayCycle = `[{"area": "KAUS", "date": "2017-01-05", "sunrise": "6am", "sunset": "17:45"}]`
			},
			wantCode: errors.ErrCodeDatasetMalformed,
			wantMsg:  []string{FileDayCycle, "sunrise"},
		},
		{
			name: "daycycle sunset before sunrise",
			mutate: func(f *datasettest.Fixture) {
				f.DayCycle = `[{"area": "KAUS", "date": "2017-01-05", "sunrise": "18:00", "sunset": "06:00"}]`
			},
			wantCode: errors.ErrCodeDatasetMalformed,
			wantMsg:  []string{FileDayCycle, "before sunrise"},
		},
		{
			name: "duplicate day cycle",
			mutate: func(f *datasettest.Fixture) {
				f.DayCycle = `[
					{"area": "KAUS", "date": "2017-01-05", "sunrise": "06:00", "sunset": "17:45"},
					{"area": "KAUS", "date": "2017-01-05", "sunrise": "06:01", "sunset": "17:46"}]`
			},
			wantCode: errors.ErrCodeDatasetReference,
			wantMsg:  []string{FileDayCycle, "duplicate"},
		},
		{
			name: "ambiguous minimums rule",
			mutate: func(f *datasettest.Fixture) {
				f.Minimums = datasettest.MinimumsHeader + "KAUS,DAY,VFR,3,1000\nKAUS,day,vfr,5,1000\n"
			},
			wantCode: errors.ErrCodeDatasetReference,
			wantMsg:  []string{FileMinimums, "duplicate rule for KAUS DAY VFR"},
		},
		{
			name: "duplicate student id",
			mutate: func(f *datasettest.Fixture) {
				f.Students = datasettest.PeopleHeader + "S01,Nguyen,Ava\nS01,Other,Person\n"
			},
			wantCode: errors.ErrCodeDatasetReference,
			wantMsg:  []string{FileStudents, "duplicate id S01"},
		},
		{
			name: "unknown student",
			mutate: func(f *datasettest.Fixture) {
				f.Lessons = datasettest.LessonsHeader +
					"S99,N123AB,T01,2017-01-05T06:00:00-06:00,2017-01-05T07:30:00-06:00,VFR,KAUS\n"
			},
			wantCode: errors.ErrCodeDatasetReference,
			wantMsg:  []string{FileLessons, "unknown student S99"},
		},
		{
			name: "unknown instructor",
			mutate: func(f *datasettest.Fixture) {
				f.Lessons = datasettest.LessonsHeader +
					"S01,N123AB,T99,2017-01-05T06:00:00-06:00,2017-01-05T07:30:00-06:00,VFR,KAUS\n"
			},
			wantCode: errors.ErrCodeDatasetReference,
			wantMsg:  []string{"unknown instructor T99"},
		},
		{
			name: "unknown airplane",
			mutate: func(f *datasettest.Fixture) {
				f.Lessons = datasettest.LessonsHeader +
					"S01,N999ZZ,T01,2017-01-05T06:00:00-06:00,2017-01-05T07:30:00-06:00,VFR,KAUS\n"
			},
			wantCode: errors.ErrCodeDatasetReference,
			wantMsg:  []string{"unknown airplane N999ZZ"},
		},
		{
			name: "repair for unknown airplane",
			mutate: func(f *datasettest.Fixture) {
				f.Repairs = datasettest.RepairsHeader +
					"N999ZZ,2017-01-01T00:00:00-06:00,2017-01-02T00:00:00-06:00,Annual\n"
			},
			wantCode: errors.ErrCodeDatasetReference,
			wantMsg:  []string{FileRepairs, "unknown airplane N999ZZ"},
		},
		{
			name: "duplicate lesson identity",
			mutate: func(f *datasettest.Fixture) {
				row := "S01,N123AB,T01,2017-01-05T06:00:00-06:00,2017-01-05T07:30:00-06:00,VFR,KAUS\n"
				f.Lessons = datasettest.LessonsHeader + row + row
			},
			wantCode: errors.ErrCodeDatasetReference,
			wantMsg:  []string{"line 3", "duplicates the lesson on line 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := datasettest.ScenarioA()
			tt.mutate(&f)

			err := loadErr(t, f)

			assert.True(t, errors.IsFatal(err), "dataset errors abort the run")
			assert.Equal(t, tt.wantCode, errors.GetCode(err))
			for _, msg := range tt.wantMsg {
				assert.Contains(t, err.Error(), msg)
			}
		})
	}
}

func TestLoad_SoloLessonHasNoInstructor(t *testing.T) {
	// Given: a lesson with an empty INSTRUCTOR cell
	f := datasettest.ScenarioA()
	f.Lessons = datasettest.LessonsHeader +
		"S02,N456CD,,2017-01-05T09:00:00-06:00,2017-01-05T10:00:00-06:00,vfr,KAUS\n"

	// When: loading
	s := loadFixture(t, f)

	// Then: the lesson is solo and the filed rule is normalised
	require.Len(t, s.Lessons, 1)
	assert.True(t, s.Lessons[0].Solo())
	assert.Equal(t, "VFR", s.Lessons[0].Filed)

	student, instructor, err := s.Names(s.Lessons[0])
	require.NoError(t, err)
	assert.Equal(t, "Raj Patel", student)
	assert.Empty(t, instructor)
}

func TestLoad_HeaderIsCaseInsensitiveAndExtraColumnsIgnored(t *testing.T) {
	// Given: a fleet file with lower-case headers, a BOM and extra columns
	f := datasettest.ScenarioA()
	f.Fleet = "\ufefftailno, type ,ANNUAL\nN123AB,C172,2016-12-01\nN456CD,PA28,2016-11-15\n"
	f.Students = "ID,LAST,FIRST,JOINED\nS01,Nguyen,Ava,2016-01-01\nS02,Patel,Raj,2016-03-01\n"

	// When: loading
	s := loadFixture(t, f)

	// Then: required columns are found by name
	require.Len(t, s.Fleet, 2)
	assert.Equal(t, Airplane{TailNo: "N123AB", Type: "C172"}, s.Fleet[0])
	assert.Equal(t, "Ava Nguyen", s.Students[0].Name())
}

func TestLoad_BlankLinesAreSkipped(t *testing.T) {
	f := datasettest.ScenarioA()
	f.Teachers = datasettest.PeopleHeader + "\nT01,Okafor,Ben\n\n"

	s := loadFixture(t, f)

	assert.Len(t, s.Teachers, 1)
}

func TestLoad_TimestampWithoutOffsetIsUTC(t *testing.T) {
	f := datasettest.ScenarioA()
	f.Weather = `[{"area": "KAUS", "timestamp": "2017-01-05T11:55:00", "visibility": "10+", "ceiling": null}]`

	s := loadFixture(t, f)

	require.Len(t, s.Weather, 1)
	obs := s.Weather[0]
	assert.True(t, obs.Timestamp.Equal(time.Date(2017, 1, 5, 11, 55, 0, 0, time.UTC)))
	assert.Equal(t, Visibility(10), obs.Visibility)
	assert.Nil(t, obs.Ceiling)
}
