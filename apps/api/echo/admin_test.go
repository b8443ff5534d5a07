package echoapi

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/academia/core/academics"
	"github.com/trezcool/academia/core/identity"
)

func TestAdminTeachers(t *testing.T) {
	a := setup(t)

	rec := a.do(http.MethodPost, "/admin/profesori", a.adminToken,
		[]byte(`{"name": "Dan", "domain": "Fizica", "email": "DAN@uni.ro", "password": "pwd"}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var dan identity.Teacher
	decode(t, rec, &dan)
	assert.Equal(t, "dan@uni.ro", dan.Email.String)
	assert.NotContains(t, rec.Body.String(), "password")

	path := "/admin/profesori/" + strconv.Itoa(dan.ID)
	tests := []httpTest{
		{
			name:     "duplicate email",
			method:   http.MethodPost,
			path:     "/admin/profesori",
			body:     []byte(`{"name": "Dan 2", "email": "dan@uni.ro", "password": "pwd"}`),
			wantCode: http.StatusInternalServerError,
		},
		{
			name:     "missing name",
			method:   http.MethodPost,
			path:     "/admin/profesori",
			body:     []byte(`{"email": "x@uni.ro", "password": "pwd"}`),
			wantCode: http.StatusInternalServerError,
		},
		{
			name:     "partial update",
			method:   http.MethodPatch,
			path:     path,
			body:     []byte(`{"domain": "Chimie"}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"id": ` + strconv.Itoa(dan.ID) + `, "name": "Dan", "domain": "Chimie", "email": "dan@uni.ro"}`),
		},
		{
			name:     "update missing",
			method:   http.MethodPatch,
			path:     "/admin/profesori/404",
			body:     []byte(`{"domain": "Chimie"}`),
			wantCode: http.StatusInternalServerError,
		},
		{
			name:     "non-numeric id",
			method:   http.MethodDelete,
			path:     "/admin/profesori/abc",
			wantCode: http.StatusInternalServerError,
		},
		{
			name:     "delete",
			method:   http.MethodDelete,
			path:     path,
			wantCode: http.StatusNoContent,
		},
		{
			name:     "delete again",
			method:   http.MethodDelete,
			path:     path,
			wantCode: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.token = a.adminToken
			checkCodeAndData(t, tt, a.do(tt.method, tt.path, tt.token, tt.body))
		})
	}

	rec = a.do(http.MethodGet, "/admin/profesori", a.adminToken)
	var teachers []identity.Teacher
	decode(t, rec, &teachers)
	require.Len(t, teachers, 1)
	assert.Equal(t, a.teacherID, teachers[0].ID)
}

func TestAdminServerErrorBody(t *testing.T) {
	a := setup(t)

	rec := a.do(http.MethodDelete, "/admin/studenti/404", a.adminToken)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]interface{}
	decode(t, rec, &body)
	assert.Equal(t, "internal server error", body["message"])
	assert.Contains(t, body["error"], "record not found")
}

func TestAdminStudents(t *testing.T) {
	a := setup(t)

	rec := a.do(http.MethodPost, "/admin/studenti", a.adminToken,
		[]byte(`{"name": "Maria", "domain": "Informatica", "group": 312, "email": "maria@uni.ro", "password": "pwd"}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var maria identity.Student
	decode(t, rec, &maria)
	assert.Equal(t, 312, maria.Group.Int)

	rec = a.do(http.MethodPatch, "/admin/studenti/"+strconv.Itoa(maria.ID), a.adminToken, []byte(`{"group": 313}`))
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &maria)
	assert.Equal(t, 313, maria.Group.Int)
	assert.Equal(t, "Maria", maria.Name.String)

	rec = a.do(http.MethodPost, "/auth/login", "", []byte(`{"email": "maria@uni.ro", "password": "pwd"}`))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(http.MethodGet, "/admin/studenti", a.adminToken)
	var students []identity.Student
	decode(t, rec, &students)
	assert.Len(t, students, 2)
}

func TestAdminAcademics(t *testing.T) {
	a := setup(t)

	rec := a.do(http.MethodPost, "/admin/discipline", a.adminToken, []byte(`{"name": "Algebra", "domain": "Matematica"}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var crs academics.Course
	decode(t, rec, &crs)
	coursePath := "/admin/discipline/" + strconv.Itoa(crs.ID)

	rec = a.do(http.MethodPatch, coursePath, a.adminToken, []byte(`{"name": "Algebra I"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: []byte(`{"id": ` + strconv.Itoa(crs.ID) + `, "name": "Algebra I", "domain": "Matematica"}`),
	}, rec)

	rec = a.do(http.MethodPost, "/admin/contracte", a.adminToken,
		[]byte(`{"teacher_id": `+strconv.Itoa(a.teacherID)+`, "course_id": `+strconv.Itoa(crs.ID)+`, "description": "2024"}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPost, "/admin/contracte", a.adminToken, []byte(`{"teacher_id": 404, "course_id": 404}`))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = a.do(http.MethodPost, "/admin/inscrieri", a.adminToken,
		[]byte(`{"student_id": `+strconv.Itoa(a.studentID)+`, "course_id": `+strconv.Itoa(crs.ID)+`}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	for path, want := range map[string]int{"/admin/contracte": 1, "/admin/inscrieri": 1, "/admin/discipline": 1, "/admin/testari": 0, "/admin/note": 0} {
		rec = a.do(http.MethodGet, path, a.adminToken)
		require.Equal(t, http.StatusOK, rec.Code, path)
		var rows []map[string]interface{}
		decode(t, rec, &rows)
		assert.Len(t, rows, want, path)
	}

	// referenced by a contract and an enrollment
	rec = a.do(http.MethodDelete, coursePath, a.adminToken)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = a.do(http.MethodPost, "/admin/discipline", a.adminToken, []byte(`{"name": "Optional"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	decode(t, rec, &crs)
	rec = a.do(http.MethodDelete, "/admin/discipline/"+strconv.Itoa(crs.ID), a.adminToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestAdminGrades(t *testing.T) {
	a := setup(t)
	crs := a.env.CreateCourse(t, "Algebra")
	tst := a.env.CreateTest(t, crs.ID, "partial")
	grd := a.env.CreateGrade(t, a.studentID, tst.ID, 6)

	rec := a.do(http.MethodGet, "/admin/note", a.adminToken)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t, grd)}, rec)

	rec = a.do(http.MethodDelete, "/admin/note/"+strconv.Itoa(grd.ID), a.adminToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(http.MethodGet, "/admin/note", a.adminToken)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallList(t)}, rec)
}

func TestAdminStudentLifecycle(t *testing.T) {
	a := setup(t)

	rec := a.do(http.MethodPost, "/admin/studenti", a.adminToken,
		[]byte(`{"name": "Maria", "group": 312, "email": "maria@uni.ro", "password": "p1"}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var maria identity.Student
	decode(t, rec, &maria)

	tests := []httpTest{
		{
			name:     "login with another password",
			method:   http.MethodPost,
			path:     "/auth/login",
			body:     []byte(`{"email": "maria@uni.ro", "password": "p2"}`),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Message: identity.ErrWrongPassword.Error()}),
		},
		{
			name:     "login",
			method:   http.MethodPost,
			path:     "/auth/login",
			body:     []byte(`{"email": "maria@uni.ro", "password": "p1"}`),
			wantCode: http.StatusOK,
		},
		{
			name:     "delete",
			method:   http.MethodDelete,
			path:     "/admin/studenti/" + strconv.Itoa(maria.ID),
			token:    a.adminToken,
			wantCode: http.StatusNoContent,
		},
		{
			name:     "login after delete",
			method:   http.MethodPost,
			path:     "/auth/login",
			body:     []byte(`{"email": "maria@uni.ro", "password": "p1"}`),
			wantCode: http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, a.do(tt.method, tt.path, tt.token, tt.body))
		})
	}

	rec = a.do(http.MethodGet, "/admin/studenti", a.adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var students []identity.Student
	decode(t, rec, &students)
	for _, std := range students {
		assert.NotEqual(t, maria.ID, std.ID, "deleted student is still listed")
	}
	require.Len(t, students, 1)
	assert.Equal(t, a.studentID, students[0].ID)
}
