// Package dataset loads a flight school's reference datasets into typed,
// read-only tables and answers the lookups the audit needs: day/night
// classification, applicable minimums, weather in force at a time, and
// person/airplane resolution.
//
// Loading is all-or-nothing. Any missing or malformed file, or any lesson
// referencing an unknown person or airplane, fails the whole load with a
// dataset error so no category of violation is silently skipped.
package dataset

import (
	"fmt"
	"os"
	"sort"

	"github.com/flightschool/auditor/internal/errors"
)

// Dataset file names.
const (
	FileDayCycle = "daycycle.json"
	FileWeather  = "weather.json"
	FileMinimums = "minimums.csv"
	FileStudents = "students.csv"
	FileTeachers = "teachers.csv"
	FileLessons  = "lessons.csv"
	FileFleet    = "fleet.csv"
	FileRepairs  = "repairs.csv"
)

// Files lists every file a dataset directory must contain, in load order.
var Files = []string{
	FileDayCycle,
	FileWeather,
	FileMinimums,
	FileStudents,
	FileTeachers,
	FileLessons,
	FileFleet,
	FileRepairs,
}

type cycleKey struct {
	area string
	date string
}

type ruleKey struct {
	area  string
	cycle Cycle
	filed string
}

// Set holds every table of one dataset directory for the duration of a run.
// The exported slices keep file order and must not be modified.
type Set struct {
	Dir       string
	DayCycles []DayCycleEntry
	Weather   []WeatherObservation
	Minimums  []MinimumsRule
	Students  []Person
	Teachers  []Person
	Lessons   []Lesson
	Fleet     []Airplane
	Repairs   []Repair

	cycles        map[cycleKey]DayCycleEntry
	rules         map[ruleKey]MinimumsRule
	weatherByArea map[string][]WeatherObservation
	students      map[string]Person
	teachers      map[string]Person
	airplanes     map[string]Airplane
	repairsByTail map[string][]Repair
}

// Load reads all dataset files from dir and builds the lookup indexes.
func Load(dir string) (*Set, error) {
	if err := checkDir(dir); err != nil {
		return nil, err
	}

	s := &Set{Dir: dir}
	var err error

	if s.DayCycles, err = loadDayCycles(dir); err != nil {
		return nil, err
	}
	if s.Weather, err = loadWeather(dir); err != nil {
		return nil, err
	}
	if s.Minimums, err = loadMinimums(dir); err != nil {
		return nil, err
	}
	if s.Students, err = loadPeople(dir, FileStudents); err != nil {
		return nil, err
	}
	if s.Teachers, err = loadPeople(dir, FileTeachers); err != nil {
		return nil, err
	}
	if s.Lessons, err = loadLessons(dir); err != nil {
		return nil, err
	}
	if s.Fleet, err = loadFleet(dir); err != nil {
		return nil, err
	}
	if s.Repairs, err = loadRepairs(dir); err != nil {
		return nil, err
	}

	if err := s.index(); err != nil {
		return nil, err
	}
	if err := s.checkReferences(); err != nil {
		return nil, err
	}

	return s, nil
}

// checkDir verifies the dataset directory exists.
func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return errors.DatasetError(errors.ErrCodeDatasetMissing, dir, "dataset directory not found", err)
	}
	if !info.IsDir() {
		return errors.DatasetError(errors.ErrCodeDatasetMissing, dir, "not a directory", nil)
	}
	return nil
}

// index builds the lookup maps and rejects duplicate keys.
func (s *Set) index() error {
	s.cycles = make(map[cycleKey]DayCycleEntry, len(s.DayCycles))
	for _, e := range s.DayCycles {
		key := cycleKey{area: e.Area, date: e.Date}
		if _, dup := s.cycles[key]; dup {
			return duplicateError(FileDayCycle, fmt.Sprintf("area %s on %s", e.Area, e.Date))
		}
		s.cycles[key] = e
	}

	s.rules = make(map[ruleKey]MinimumsRule, len(s.Minimums))
	for _, r := range s.Minimums {
		key := ruleKey{area: r.Area, cycle: r.Cycle, filed: r.Filed}
		if _, dup := s.rules[key]; dup {
			return duplicateError(FileMinimums, fmt.Sprintf("rule for %s %s %s", r.Area, r.Cycle, r.Filed))
		}
		s.rules[key] = r
	}

	s.weatherByArea = make(map[string][]WeatherObservation)
	for _, o := range s.Weather {
		s.weatherByArea[o.Area] = append(s.weatherByArea[o.Area], o)
	}
	for _, obs := range s.weatherByArea {
		sort.SliceStable(obs, func(i, j int) bool {
			return obs[i].Timestamp.Before(obs[j].Timestamp)
		})
	}

	var err error
	if s.students, err = indexPeople(FileStudents, s.Students); err != nil {
		return err
	}
	if s.teachers, err = indexPeople(FileTeachers, s.Teachers); err != nil {
		return err
	}

	s.airplanes = make(map[string]Airplane, len(s.Fleet))
	for _, a := range s.Fleet {
		if _, dup := s.airplanes[a.TailNo]; dup {
			return duplicateError(FileFleet, "airplane "+a.TailNo)
		}
		s.airplanes[a.TailNo] = a
	}

	s.repairsByTail = make(map[string][]Repair)
	for _, r := range s.Repairs {
		s.repairsByTail[r.TailNo] = append(s.repairsByTail[r.TailNo], r)
	}

	return nil
}

func indexPeople(file string, people []Person) (map[string]Person, error) {
	byID := make(map[string]Person, len(people))
	for _, p := range people {
		if _, dup := byID[p.ID]; dup {
			return nil, duplicateError(file, "id "+p.ID)
		}
		byID[p.ID] = p
	}
	return byID, nil
}

type lessonKey struct {
	student  string
	airplane string
	takeoff  int64
}

// checkReferences verifies every lesson points at known people and airplanes
// and that no two lessons share the same identity.
func (s *Set) checkReferences() error {
	seen := make(map[lessonKey]int, len(s.Lessons))
	for _, l := range s.Lessons {
		key := lessonKey{student: l.StudentID, airplane: l.AirplaneID, takeoff: l.Takeoff.UnixNano()}
		if first, dup := seen[key]; dup {
			return referenceError(l, fmt.Sprintf("duplicates the lesson on line %d", first))
		}
		seen[key] = l.Line

		if _, ok := s.students[l.StudentID]; !ok {
			return referenceError(l, fmt.Sprintf("unknown student %s (not in %s)", l.StudentID, FileStudents))
		}
		if !l.Solo() {
			if _, ok := s.teachers[l.InstructorID]; !ok {
				return referenceError(l, fmt.Sprintf("unknown instructor %s (not in %s)", l.InstructorID, FileTeachers))
			}
		}
		if _, ok := s.airplanes[l.AirplaneID]; !ok {
			return referenceError(l, fmt.Sprintf("unknown airplane %s (not in %s)", l.AirplaneID, FileFleet))
		}
	}

	for _, r := range s.Repairs {
		if _, ok := s.airplanes[r.TailNo]; !ok {
			return errors.DatasetError(errors.ErrCodeDatasetReference, FileRepairs,
				fmt.Sprintf("unknown airplane %s (not in %s)", r.TailNo, FileFleet), nil)
		}
	}
	return nil
}

func duplicateError(file, what string) error {
	return errors.DatasetError(errors.ErrCodeDatasetReference, file, "duplicate "+what, nil)
}

func referenceError(l Lesson, msg string) error {
	return errors.DatasetError(errors.ErrCodeDatasetReference, FileLessons,
		fmt.Sprintf("line %d: %s", l.Line, msg), nil)
}
