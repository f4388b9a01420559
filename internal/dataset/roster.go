package dataset

import (
	"fmt"

	"github.com/flightschool/auditor/internal/errors"
)

// Student resolves a student by id.
func (s *Set) Student(id string) (Person, error) {
	p, ok := s.students[id]
	if !ok {
		return Person{}, unresolved(FileStudents, "student", id)
	}
	return p, nil
}

// Teacher resolves an instructor by id.
func (s *Set) Teacher(id string) (Person, error) {
	p, ok := s.teachers[id]
	if !ok {
		return Person{}, unresolved(FileTeachers, "instructor", id)
	}
	return p, nil
}

// RepairsFor returns the repair windows of one airplane in file order.
func (s *Set) RepairsFor(tail string) []Repair {
	return s.repairsByTail[tail]
}

// Names resolves the student and instructor display names for a lesson.
// A solo lesson has an empty instructor name.
func (s *Set) Names(l Lesson) (student, instructor string, err error) {
	st, err := s.Student(l.StudentID)
	if err != nil {
		return "", "", err
	}
	if l.Solo() {
		return st.Name(), "", nil
	}
	t, err := s.Teacher(l.InstructorID)
	if err != nil {
		return "", "", err
	}
	return st.Name(), t.Name(), nil
}

func unresolved(file, kind, id string) error {
	return errors.DatasetError(errors.ErrCodeDatasetReference, file,
		fmt.Sprintf("unknown %s %s", kind, id), nil)
}
