package dataset

import (
	"strconv"
	"strings"
)

func loadPeople(dir, file string) ([]Person, error) {
	records, err := readTable(dir, file, "ID", "LAST", "FIRST")
	if err != nil {
		return nil, err
	}

	people := make([]Person, 0, len(records))
	for _, r := range records {
		p := Person{ID: r.get("ID"), Last: r.get("LAST"), First: r.get("FIRST")}
		if p.ID == "" {
			return nil, r.errorf("empty ID")
		}
		people = append(people, p)
	}
	return people, nil
}

func loadLessons(dir string) ([]Lesson, error) {
	records, err := readTable(dir, FileLessons,
		"STUDENT", "AIRPLANE", "INSTRUCTOR", "TAKEOFF", "LANDING", "FILED", "AREA")
	if err != nil {
		return nil, err
	}

	lessons := make([]Lesson, 0, len(records))
	for _, r := range records {
		l := Lesson{
			StudentID:    r.get("STUDENT"),
			AirplaneID:   r.get("AIRPLANE"),
			InstructorID: r.get("INSTRUCTOR"),
			Filed:        strings.ToUpper(r.get("FILED")),
			Area:         r.get("AREA"),
			Line:         r.line,
		}
		switch {
		case l.StudentID == "":
			return nil, r.errorf("empty STUDENT")
		case l.AirplaneID == "":
			return nil, r.errorf("empty AIRPLANE")
		case l.Filed == "":
			return nil, r.errorf("empty FILED")
		case l.Area == "":
			return nil, r.errorf("empty AREA")
		}

		if l.Takeoff, err = parseTimestamp(r.get("TAKEOFF")); err != nil {
			return nil, r.errorf("TAKEOFF: %v", err)
		}
		if l.Landing, err = parseTimestamp(r.get("LANDING")); err != nil {
			return nil, r.errorf("LANDING: %v", err)
		}
		if l.Landing.Before(l.Takeoff) {
			return nil, r.errorf("LANDING is before TAKEOFF")
		}
		lessons = append(lessons, l)
	}
	return lessons, nil
}

func loadMinimums(dir string) ([]MinimumsRule, error) {
	records, err := readTable(dir, FileMinimums, "AREA", "TIME", "FILED", "VISIBILITY", "CEILING")
	if err != nil {
		return nil, err
	}

	rules := make([]MinimumsRule, 0, len(records))
	for _, r := range records {
		rule := MinimumsRule{
			Area:  r.get("AREA"),
			Filed: strings.ToUpper(r.get("FILED")),
		}
		if rule.Area == "" {
			return nil, r.errorf("empty AREA")
		}
		if rule.Filed == "" {
			return nil, r.errorf("empty FILED")
		}
		if rule.Cycle, err = ParseCycle(r.get("TIME")); err != nil {
			return nil, r.errorf("TIME: %v", err)
		}
		if rule.MinVisibility, err = ParseVisibility(r.get("VISIBILITY")); err != nil {
			return nil, r.errorf("VISIBILITY: %v", err)
		}
		if text := r.get("CEILING"); text != "" {
			ceiling, err := strconv.Atoi(text)
			if err != nil || ceiling < 0 {
				return nil, r.errorf("CEILING: invalid value %q", text)
			}
			rule.MinCeiling = &ceiling
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func loadFleet(dir string) ([]Airplane, error) {
	records, err := readTable(dir, FileFleet, "TAILNO", "TYPE")
	if err != nil {
		return nil, err
	}

	fleet := make([]Airplane, 0, len(records))
	for _, r := range records {
		a := Airplane{TailNo: r.get("TAILNO"), Type: r.get("TYPE")}
		if a.TailNo == "" {
			return nil, r.errorf("empty TAILNO")
		}
		fleet = append(fleet, a)
	}
	return fleet, nil
}

func loadRepairs(dir string) ([]Repair, error) {
	records, err := readTable(dir, FileRepairs, "TAILNO", "IN", "OUT", "DESCRIPTION")
	if err != nil {
		return nil, err
	}

	repairs := make([]Repair, 0, len(records))
	for _, r := range records {
		rep := Repair{TailNo: r.get("TAILNO"), Description: r.get("DESCRIPTION")}
		if rep.TailNo == "" {
			return nil, r.errorf("empty TAILNO")
		}
		if rep.In, err = parseTimestamp(r.get("IN")); err != nil {
			return nil, r.errorf("IN: %v", err)
		}
		if rep.Out, err = parseTimestamp(r.get("OUT")); err != nil {
			return nil, r.errorf("OUT: %v", err)
		}
		if rep.Out.Before(rep.In) {
			return nil, r.errorf("OUT is before IN")
		}
		repairs = append(repairs, rep)
	}
	return repairs, nil
}
