package inmemdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/academics"
	"github.com/trezcool/academia/core/identity"
)

func TestIdentityConstraints(t *testing.T) {
	ctx := context.Background()
	db := Open()
	teachers := NewTeacherRepository(db)
	students := NewStudentRepository(db)

	tch, err := teachers.CreateTeacher(ctx, identity.Teacher{Name: null.StringFrom("Ana"), Email: null.StringFrom("ana@x.ro")})
	require.NoError(t, err)
	assert.Equal(t, 1, tch.ID)

	_, err = teachers.CreateTeacher(ctx, identity.Teacher{Name: null.StringFrom("Ana 2"), Email: null.StringFrom("ana@x.ro")})
	assert.True(t, core.IsConstraint(err), "duplicate email")

	_, err = teachers.CreateTeacher(ctx, identity.Teacher{Email: null.StringFrom("noname@x.ro")})
	assert.True(t, core.IsConstraint(err), "missing name")

	// same email in another class is fine
	_, err = students.CreateStudent(ctx, identity.Student{Name: null.StringFrom("Ana"), Email: null.StringFrom("ana@x.ro")})
	assert.NoError(t, err)

	got, err := teachers.GetTeacher(ctx, identity.GetFilter{Email: "ana@x.ro"})
	require.NoError(t, err)
	assert.Equal(t, tch.ID, got.ID)

	_, err = teachers.GetTeacher(ctx, identity.GetFilter{})
	assert.Equal(t, core.ErrNotFound, err)
}

func TestPartialUpdate(t *testing.T) {
	ctx := context.Background()
	db := Open()
	students := NewStudentRepository(db)

	std, err := students.CreateStudent(ctx, identity.Student{
		Name:   null.StringFrom("Ion"),
		Domain: null.StringFrom("Informatica"),
		Group:  null.IntFrom(311),
		Email:  null.StringFrom("ion@x.ro"),
	})
	require.NoError(t, err)

	upd, err := students.UpdateStudent(ctx, std.ID, identity.UpdateStudent{Group: null.IntFrom(312)})
	require.NoError(t, err)
	assert.Equal(t, "Ion", upd.Name.String)
	assert.Equal(t, "Informatica", upd.Domain.String)
	assert.Equal(t, 312, upd.Group.Int)

	_, err = students.UpdateStudent(ctx, 99, identity.UpdateStudent{Group: null.IntFrom(1)})
	assert.Equal(t, core.ErrNotFound, err)
	assert.Equal(t, core.ErrNotFound, students.DeleteStudent(ctx, 99))
}

func TestForeignKeysAndRestrict(t *testing.T) {
	ctx := context.Background()
	db := Open()
	teachers := NewTeacherRepository(db)
	courses := NewCourseRepository(db)
	contracts := NewContractRepository(db)
	grades := NewGradeRepository(db)

	_, err := contracts.CreateContract(ctx, academics.Contract{TeacherID: null.IntFrom(1), CourseID: null.IntFrom(1)})
	assert.True(t, core.IsConstraint(err), "dangling foreign key")

	tch, err := teachers.CreateTeacher(ctx, identity.Teacher{Name: null.StringFrom("Ana"), Email: null.StringFrom("ana@x.ro")})
	require.NoError(t, err)
	crs, err := courses.CreateCourse(ctx, academics.Course{Name: null.StringFrom("Algebra")})
	require.NoError(t, err)

	_, err = contracts.CreateContract(ctx, academics.Contract{TeacherID: null.IntFrom(tch.ID)})
	assert.True(t, core.IsConstraint(err), "null foreign key")

	_, err = contracts.CreateContract(ctx, academics.Contract{TeacherID: null.IntFrom(tch.ID), CourseID: null.IntFrom(crs.ID)})
	require.NoError(t, err)

	assert.True(t, core.IsConstraint(teachers.DeleteTeacher(ctx, tch.ID)))
	assert.True(t, core.IsConstraint(courses.DeleteCourse(ctx, crs.ID)))

	_, err = grades.CreateGrade(ctx, academics.Grade{StudentID: null.IntFrom(1), TestID: null.IntFrom(1), Value: null.IntFrom(9)})
	assert.True(t, core.IsConstraint(err))
}

func TestIDFilters(t *testing.T) {
	ctx := context.Background()
	db := Open()
	courses := NewCourseRepository(db)
	for _, name := range []string{"Algebra", "Geometrie", "Analiza"} {
		_, err := courses.CreateCourse(ctx, academics.Course{Name: null.StringFrom(name)})
		require.NoError(t, err)
	}

	tests := []struct {
		name    string
		ids     []int
		wantIDs []int
	}{
		{name: "nil is unrestricted", ids: nil, wantIDs: []int{1, 2, 3}},
		{name: "empty matches nothing", ids: []int{}, wantIDs: []int{}},
		{name: "subset", ids: []int{3, 1, 7}, wantIDs: []int{1, 3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := courses.QueryCourses(ctx, academics.CourseFilter{IDs: tc.ids})
			require.NoError(t, err)
			ids := make([]int, 0, len(got))
			for _, crs := range got {
				ids = append(ids, crs.ID)
			}
			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}
