package dataset

// FileReport is the outcome of parsing one dataset file on its own.
type FileReport struct {
	File string `json:"file"`
	Rows int    `json:"rows"`
	Err  error  `json:"-"`
}

// OK reports whether the file parsed cleanly.
func (r FileReport) OK() bool {
	return r.Err == nil
}

// Inspect parses every dataset file independently so that all problems are
// reported at once, then runs the cross-file checks if every file parsed.
// The returned error is the cross-file error, or the directory error; per-file
// errors are in the reports.
func Inspect(dir string) ([]FileReport, error) {
	if err := checkDir(dir); err != nil {
		return nil, err
	}

	s := &Set{Dir: dir}
	reports := make([]FileReport, 0, len(Files))
	add := func(file string, rows int, err error) {
		reports = append(reports, FileReport{File: file, Rows: rows, Err: err})
	}

	var err error
	s.DayCycles, err = loadDayCycles(dir)
	add(FileDayCycle, len(s.DayCycles), err)
	s.Weather, err = loadWeather(dir)
	add(FileWeather, len(s.Weather), err)
	s.Minimums, err = loadMinimums(dir)
	add(FileMinimums, len(s.Minimums), err)
	s.Students, err = loadPeople(dir, FileStudents)
	add(FileStudents, len(s.Students), err)
	s.Teachers, err = loadPeople(dir, FileTeachers)
	add(FileTeachers, len(s.Teachers), err)
	s.Lessons, err = loadLessons(dir)
	add(FileLessons, len(s.Lessons), err)
	s.Fleet, err = loadFleet(dir)
	add(FileFleet, len(s.Fleet), err)
	s.Repairs, err = loadRepairs(dir)
	add(FileRepairs, len(s.Repairs), err)

	for _, r := range reports {
		if !r.OK() {
			return reports, nil
		}
	}

	if err := s.index(); err != nil {
		return reports, err
	}
	return reports, s.checkReferences()
}
