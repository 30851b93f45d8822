package users

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/coachplan-backend/internal/data/repos/testutil"
	types "github.com/yungbote/coachplan-backend/internal/domain"
)

func seedStudent(t *testing.T, repo UserRepo, name, email string) *types.User {
	t.Helper()
	created, err := repo.Create(context.Background(), nil, &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
		Name:     name,
		Role:     types.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Create(%s): %v", name, err)
	}
	return created
}

func TestUserRepoCreateAndGet(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created := seedStudent(t, repo, "Maria Silva", "maria@example.com")

	byID, err := repo.GetByID(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID == nil || byID.ID != created.ID {
		t.Fatalf("GetByID: unexpected result: %+v", byID)
	}

	byEmail, err := repo.GetByEmail(ctx, nil, "maria@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail == nil || byEmail.Email != "maria@example.com" {
		t.Fatalf("GetByEmail: unexpected result: %+v", byEmail)
	}

	missing, err := repo.GetByID(ctx, nil, uuid.New())
	if err != nil {
		t.Fatalf("GetByID (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID (missing): expected nil, got %+v", missing)
	}

	exists, err := repo.EmailExists(ctx, nil, "maria@example.com")
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if !exists {
		t.Fatalf("EmailExists: expected true")
	}
}

func TestUserRepoListStudents(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	seedStudent(t, repo, "Bruno", "bruno@example.com")
	seedStudent(t, repo, "Ana", "ana@example.com")

	// Coaches never appear in the student directory.
	if _, err := repo.Create(ctx, nil, &types.User{
		ID:       uuid.New(),
		Email:    "coach@example.com",
		Password: "pw",
		Name:     "Carlos",
		Role:     types.RoleCoach,
	}); err != nil {
		t.Fatalf("Create coach: %v", err)
	}

	students, err := repo.ListStudents(ctx, nil)
	if err != nil {
		t.Fatalf("ListStudents: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("ListStudents: expected 2, got %d", len(students))
	}
	if students[0].Name != "Ana" || students[1].Name != "Bruno" {
		t.Fatalf("ListStudents: expected name order, got %s then %s", students[0].Name, students[1].Name)
	}
}

func TestUserRepoSearchStudents(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	seedStudent(t, repo, "Maria Silva", "maria@example.com")
	seedStudent(t, repo, "Mariana Costa", "mariana@example.com")
	seedStudent(t, repo, "Pedro Souza", "pedro@example.com")

	matches, err := repo.SearchStudents(ctx, nil, "maria")
	if err != nil {
		t.Fatalf("SearchStudents: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("SearchStudents(maria): expected 2, got %d", len(matches))
	}

	matches, err = repo.SearchStudents(ctx, nil, "SOUZA")
	if err != nil {
		t.Fatalf("SearchStudents: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "Pedro Souza" {
		t.Fatalf("SearchStudents(SOUZA): unexpected result: %+v", matches)
	}
}

func TestUserRepoUpdateProfileAndDelete(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created := seedStudent(t, repo, "Maria Silva", "maria@example.com")

	if err := repo.UpdateProfile(ctx, nil, created.ID, map[string]any{
		"name":      "Maria S.",
		"weight_kg": 62.5,
		"age":       29,
	}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	updated, err := repo.GetByID(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.Name != "Maria S." || updated.WeightKg == nil || *updated.WeightKg != 62.5 || updated.Age == nil || *updated.Age != 29 {
		t.Fatalf("UpdateProfile: fields not applied: %+v", updated)
	}

	if err := repo.Delete(ctx, nil, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, err := repo.GetByID(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("GetByID (deleted): %v", err)
	}
	if gone != nil {
		t.Fatalf("Delete: expected soft-deleted user to be hidden, got %+v", gone)
	}
}
