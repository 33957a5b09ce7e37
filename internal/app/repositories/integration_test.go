package repositories

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edukit/registrar/internal/app/models"
	"github.com/edukit/registrar/internal/pkg/apperrors"
)

// The tests below run against a throwaway PostgreSQL database named by
// TEST_DATABASE_URL and are skipped when it is unset. Each test recreates
// the schema, so point the URL at a database you do not care about.
//
// Reads intentionally run as two sequential queries without a shared
// snapshot (see FindWith... methods); these tests run writers and readers
// sequentially, so that relaxation is not visible here.

const testSchema = `
	DROP TABLE IF EXISTS student_courses;
	DROP TABLE IF EXISTS student;
	DROP TABLE IF EXISTS course;
	DROP TABLE IF EXISTS coordinator;

	CREATE TABLE coordinator (
		coordinator_id bigint GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name           text NOT NULL
	);

	CREATE TABLE course (
		course_id bigint GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name      text NOT NULL
	);

	CREATE TABLE student (
		student_id     bigint GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name           text NOT NULL,
		coordinator_id bigint REFERENCES coordinator (coordinator_id) ON DELETE SET NULL
	);

	CREATE TABLE student_courses (
		student_id bigint NOT NULL REFERENCES student (student_id) ON DELETE CASCADE,
		course_id  bigint NOT NULL REFERENCES course (course_id) ON DELETE CASCADE,
		PRIMARY KEY (student_id, course_id)
	);
`

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping repository integration tests")
	}

	pool, err := pgxpool.New(context.Background(), url)
	if err != nil {
		t.Fatalf("connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(context.Background(), testSchema); err != nil {
		t.Fatalf("create test schema: %v", err)
	}

	return pool
}

func mustInsertCourse(t *testing.T, repo *CourseRepository, name string) *models.Course {
	t.Helper()
	course := &models.Course{Name: name}
	if err := repo.Insert(context.Background(), course); err != nil {
		t.Fatalf("insert course %q: %v", name, err)
	}
	return course
}

func mustInsertStudent(t *testing.T, repo *StudentRepository, student *models.Student) *models.Student {
	t.Helper()
	if err := repo.Insert(context.Background(), student); err != nil {
		t.Fatalf("insert student %q: %v", student.Name, err)
	}
	return student
}

func junctionPairs(t *testing.T, pool *pgxpool.Pool) map[[2]int64]bool {
	t.Helper()
	rows, err := pool.Query(context.Background(), `SELECT student_id, course_id FROM student_courses`)
	if err != nil {
		t.Fatalf("read junction: %v", err)
	}
	defer rows.Close()

	pairs := make(map[[2]int64]bool)
	for rows.Next() {
		var studentID, courseID int64
		if err := rows.Scan(&studentID, &courseID); err != nil {
			t.Fatalf("scan junction: %v", err)
		}
		pairs[[2]int64{studentID, courseID}] = true
	}
	return pairs
}

func TestStudentInsertEnrollsCourses(t *testing.T) {
	pool := newTestPool(t)
	repos := NewRepositories(pool)

	math := mustInsertCourse(t, repos.CourseRepository, "Mathematics")
	physics := mustInsertCourse(t, repos.CourseRepository, "Physics")

	student := mustInsertStudent(t, repos.StudentRepository, &models.Student{
		Name:      "Ada",
		CourseIDs: []int64{math.ID, physics.ID},
	})
	if student.ID == 0 {
		t.Fatal("student id was not assigned")
	}

	pairs := junctionPairs(t, pool)
	if len(pairs) != 2 || !pairs[[2]int64{student.ID, math.ID}] || !pairs[[2]int64{student.ID, physics.ID}] {
		t.Errorf("junction = %v, want exactly (%d,%d) and (%d,%d)", pairs, student.ID, math.ID, student.ID, physics.ID)
	}
}

func TestStudentInsertUnknownCourseRollsBackEverything(t *testing.T) {
	pool := newTestPool(t)
	repos := NewRepositories(pool)

	math := mustInsertCourse(t, repos.CourseRepository, "Mathematics")

	err := repos.StudentRepository.Insert(context.Background(), &models.Student{
		Name:      "Ghost",
		CourseIDs: []int64{math.ID, 999},
	})
	if !errors.Is(err, apperrors.ErrDataConsistency) {
		t.Fatalf("err = %v, want data consistency violation", err)
	}

	var studentCount int
	if err := pool.QueryRow(context.Background(), `SELECT count(*) FROM student`).Scan(&studentCount); err != nil {
		t.Fatalf("count students: %v", err)
	}
	if studentCount != 0 {
		t.Errorf("student count = %d, want 0 (own insert must roll back too)", studentCount)
	}
	if pairs := junctionPairs(t, pool); len(pairs) != 0 {
		t.Errorf("junction = %v, want empty", pairs)
	}
}

func TestStudentUpdateReconcilesEnrollment(t *testing.T) {
	pool := newTestPool(t)
	repos := NewRepositories(pool)

	c1 := mustInsertCourse(t, repos.CourseRepository, "Algebra")
	c2 := mustInsertCourse(t, repos.CourseRepository, "Geometry")
	c3 := mustInsertCourse(t, repos.CourseRepository, "Topology")

	student := mustInsertStudent(t, repos.StudentRepository, &models.Student{
		Name:      "Emmy",
		CourseIDs: []int64{c1.ID, c2.ID},
	})

	student.CourseIDs = []int64{c1.ID, c3.ID}
	if err := repos.StudentRepository.Update(context.Background(), student); err != nil {
		t.Fatalf("update student: %v", err)
	}

	pairs := junctionPairs(t, pool)
	want := map[[2]int64]bool{
		{student.ID, c1.ID}: true,
		{student.ID, c3.ID}: true,
	}
	if len(pairs) != len(want) || !pairs[[2]int64{student.ID, c1.ID}] || !pairs[[2]int64{student.ID, c3.ID}] {
		t.Errorf("junction = %v, want %v", pairs, want)
	}
}

func TestStudentUpdateUnknownCourseRollsBackScalarWrite(t *testing.T) {
	pool := newTestPool(t)
	repos := NewRepositories(pool)

	student := mustInsertStudent(t, repos.StudentRepository, &models.Student{Name: "Alan"})

	student.Name = "Renamed"
	student.CourseIDs = []int64{12345}
	err := repos.StudentRepository.Update(context.Background(), student)
	if !errors.Is(err, apperrors.ErrDataConsistency) {
		t.Fatalf("err = %v, want data consistency violation", err)
	}

	var name string
	if err := pool.QueryRow(context.Background(),
		`SELECT name FROM student WHERE student_id = $1`, student.ID).Scan(&name); err != nil {
		t.Fatalf("read student: %v", err)
	}
	if name != "Alan" {
		t.Errorf("name = %q, want scalar update rolled back to %q", name, "Alan")
	}
}

func TestCourseUpdateReconcilesEnrollmentWithoutTouchingOtherCourses(t *testing.T) {
	pool := newTestPool(t)
	repos := NewRepositories(pool)

	course := mustInsertCourse(t, repos.CourseRepository, "Databases")
	other := mustInsertCourse(t, repos.CourseRepository, "Networks")

	s1 := mustInsertStudent(t, repos.StudentRepository, &models.Student{Name: "S1", CourseIDs: []int64{course.ID, other.ID}})
	s2 := mustInsertStudent(t, repos.StudentRepository, &models.Student{Name: "S2", CourseIDs: []int64{course.ID}})
	s3 := mustInsertStudent(t, repos.StudentRepository, &models.Student{Name: "S3"})

	course.StudentIDs = []int64{s1.ID, s3.ID}
	if err := repos.CourseRepository.Update(context.Background(), course); err != nil {
		t.Fatalf("update course: %v", err)
	}

	pairs := junctionPairs(t, pool)
	if !pairs[[2]int64{s1.ID, course.ID}] || !pairs[[2]int64{s3.ID, course.ID}] {
		t.Errorf("junction %v missing desired course enrollments", pairs)
	}
	if pairs[[2]int64{s2.ID, course.ID}] {
		t.Errorf("junction %v still contains removed enrollment (s2)", pairs)
	}
	// s1's enrollment in the other course must be untouched.
	if !pairs[[2]int64{s1.ID, other.ID}] {
		t.Errorf("junction %v lost an enrollment belonging to another course", pairs)
	}
}

func TestCoordinatorInsertSkipsUnknownStudents(t *testing.T) {
	pool := newTestPool(t)
	repos := NewRepositories(pool)

	s1 := mustInsertStudent(t, repos.StudentRepository, &models.Student{Name: "Known"})

	coordinator := &models.Coordinator{
		Name:       "Dr. Grace",
		StudentIDs: []int64{s1.ID, 424242},
	}
	if err := repos.CoordinatorRepository.Insert(context.Background(), coordinator); err != nil {
		t.Fatalf("insert coordinator: %v (unknown student ids must be ignored)", err)
	}

	view, err := repos.CoordinatorRepository.FindWithStudentsByID(context.Background(), coordinator.ID)
	if err != nil {
		t.Fatalf("find coordinator: %v", err)
	}
	if view == nil {
		t.Fatal("coordinator not found after insert")
	}
	if len(view.Students) != 1 || view.Students[0].ID != s1.ID {
		t.Errorf("students = %v, want exactly the known student %d", view.Students, s1.ID)
	}
}

func TestCoordinatorUpdateReassignsStudents(t *testing.T) {
	pool := newTestPool(t)
	repos := NewRepositories(pool)

	coordinator := &models.Coordinator{Name: "C"}
	if err := repos.CoordinatorRepository.Insert(context.Background(), coordinator); err != nil {
		t.Fatalf("insert coordinator: %v", err)
	}

	s1 := mustInsertStudent(t, repos.StudentRepository, &models.Student{Name: "S1", CoordinatorID: &coordinator.ID})
	s2 := mustInsertStudent(t, repos.StudentRepository, &models.Student{Name: "S2", CoordinatorID: &coordinator.ID})
	s3 := mustInsertStudent(t, repos.StudentRepository, &models.Student{Name: "S3"})

	coordinator.StudentIDs = []int64{s2.ID, s3.ID}
	if err := repos.CoordinatorRepository.Update(context.Background(), coordinator); err != nil {
		t.Fatalf("update coordinator: %v", err)
	}

	assigned := func(studentID int64) *int64 {
		var id *int64
		if err := pool.QueryRow(context.Background(),
			`SELECT coordinator_id FROM student WHERE student_id = $1`, studentID).Scan(&id); err != nil {
			t.Fatalf("read student %d: %v", studentID, err)
		}
		return id
	}

	if id := assigned(s1.ID); id != nil {
		t.Errorf("s1 coordinator = %v, want detached", *id)
	}
	for _, sid := range []int64{s2.ID, s3.ID} {
		if id := assigned(sid); id == nil || *id != coordinator.ID {
			t.Errorf("student %d coordinator = %v, want %d", sid, id, coordinator.ID)
		}
	}
}

func TestCoordinatorDeleteDetachesStudents(t *testing.T) {
	pool := newTestPool(t)
	repos := NewRepositories(pool)

	coordinator := &models.Coordinator{Name: "Leaving"}
	if err := repos.CoordinatorRepository.Insert(context.Background(), coordinator); err != nil {
		t.Fatalf("insert coordinator: %v", err)
	}
	student := mustInsertStudent(t, repos.StudentRepository, &models.Student{Name: "Orphan", CoordinatorID: &coordinator.ID})

	if err := repos.CoordinatorRepository.DeleteByID(context.Background(), coordinator.ID); err != nil {
		t.Fatalf("delete coordinator: %v", err)
	}

	var coordinatorID *int64
	if err := pool.QueryRow(context.Background(),
		`SELECT coordinator_id FROM student WHERE student_id = $1`, student.ID).Scan(&coordinatorID); err != nil {
		t.Fatalf("student disappeared with its coordinator: %v", err)
	}
	if coordinatorID != nil {
		t.Errorf("coordinator_id = %v, want NULL after coordinator delete", *coordinatorID)
	}
}

func TestDeleteCascadesJunctionRows(t *testing.T) {
	pool := newTestPool(t)
	repos := NewRepositories(pool)

	course := mustInsertCourse(t, repos.CourseRepository, "Compilers")
	keep := mustInsertCourse(t, repos.CourseRepository, "Operating Systems")
	student := mustInsertStudent(t, repos.StudentRepository, &models.Student{
		Name:      "Enrolled",
		CourseIDs: []int64{course.ID, keep.ID},
	})

	if err := repos.CourseRepository.DeleteByID(context.Background(), course.ID); err != nil {
		t.Fatalf("delete course: %v", err)
	}

	pairs := junctionPairs(t, pool)
	if pairs[[2]int64{student.ID, course.ID}] {
		t.Errorf("junction still references deleted course: %v", pairs)
	}
	if !pairs[[2]int64{student.ID, keep.ID}] {
		t.Errorf("unrelated enrollment lost on course delete: %v", pairs)
	}

	if err := repos.StudentRepository.DeleteByID(context.Background(), student.ID); err != nil {
		t.Fatalf("delete student: %v", err)
	}
	if pairs := junctionPairs(t, pool); len(pairs) != 0 {
		t.Errorf("junction = %v, want empty after student delete", pairs)
	}

	// The surviving course row itself must be unaffected.
	view, err := repos.CourseRepository.FindWithStudentsByID(context.Background(), keep.ID)
	if err != nil || view == nil {
		t.Fatalf("surviving course lookup: view=%v err=%v", view, err)
	}
	if len(view.Students) != 0 {
		t.Errorf("surviving course students = %v, want none", view.Students)
	}
}

func TestFindStudentReturnsCompositeView(t *testing.T) {
	pool := newTestPool(t)
	repos := NewRepositories(pool)

	coordinator := &models.Coordinator{Name: "Advisor"}
	if err := repos.CoordinatorRepository.Insert(context.Background(), coordinator); err != nil {
		t.Fatalf("insert coordinator: %v", err)
	}
	course := mustInsertCourse(t, repos.CourseRepository, "Ethics")

	student := mustInsertStudent(t, repos.StudentRepository, &models.Student{
		Name:          "Hypatia",
		CoordinatorID: &coordinator.ID,
		CourseIDs:     []int64{course.ID},
	})

	view, err := repos.StudentRepository.FindWithCoordinatorAndCoursesByID(context.Background(), student.ID)
	if err != nil {
		t.Fatalf("find student: %v", err)
	}
	if view == nil {
		t.Fatal("student not found")
	}
	if view.Name != "Hypatia" {
		t.Errorf("name = %q", view.Name)
	}
	if view.Coordinator == nil || view.Coordinator.ID != coordinator.ID || view.Coordinator.Name != "Advisor" {
		t.Errorf("coordinator = %+v, want id=%d name=Advisor", view.Coordinator, coordinator.ID)
	}
	if len(view.Courses) != 1 || view.Courses[0].ID != course.ID {
		t.Errorf("courses = %v, want [%d]", view.Courses, course.ID)
	}
}

func TestFindAbsentEntitiesReportNilNotError(t *testing.T) {
	pool := newTestPool(t)
	repos := NewRepositories(pool)

	if view, err := repos.StudentRepository.FindWithCoordinatorAndCoursesByID(context.Background(), 404); err != nil || view != nil {
		t.Errorf("student lookup: view=%v err=%v, want nil, nil", view, err)
	}
	if view, err := repos.CourseRepository.FindWithStudentsByID(context.Background(), 404); err != nil || view != nil {
		t.Errorf("course lookup: view=%v err=%v, want nil, nil", view, err)
	}
	if view, err := repos.CoordinatorRepository.FindWithStudentsByID(context.Background(), 404); err != nil || view != nil {
		t.Errorf("coordinator lookup: view=%v err=%v, want nil, nil", view, err)
	}
}

func TestListStudentsFilters(t *testing.T) {
	pool := newTestPool(t)
	repos := NewRepositories(pool)

	coordinator := &models.Coordinator{Name: "C"}
	if err := repos.CoordinatorRepository.Insert(context.Background(), coordinator); err != nil {
		t.Fatalf("insert coordinator: %v", err)
	}
	course := mustInsertCourse(t, repos.CourseRepository, "Logic")

	mustInsertStudent(t, repos.StudentRepository, &models.Student{Name: "A", CoordinatorID: &coordinator.ID})
	enrolled := mustInsertStudent(t, repos.StudentRepository, &models.Student{Name: "B", CourseIDs: []int64{course.ID}})

	all, err := repos.StudentRepository.List(context.Background(), StudentFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("list all = %d students, want 2", len(all))
	}

	byCoordinator, err := repos.StudentRepository.List(context.Background(), StudentFilter{CoordinatorID: &coordinator.ID})
	if err != nil {
		t.Fatalf("list by coordinator: %v", err)
	}
	if len(byCoordinator) != 1 || byCoordinator[0].Name != "A" {
		t.Errorf("list by coordinator = %v, want [A]", byCoordinator)
	}

	byCourse, err := repos.StudentRepository.List(context.Background(), StudentFilter{CourseID: &course.ID})
	if err != nil {
		t.Fatalf("list by course: %v", err)
	}
	if len(byCourse) != 1 || byCourse[0].ID != enrolled.ID {
		t.Errorf("list by course = %v, want [%d]", byCourse, enrolled.ID)
	}
}
