package service

import (
	"context"
	"errors"
	"testing"

	"SkillSphere/internal/repository/mysql"
	"SkillSphere/internal/testutil"
)

func TestSkillAddValidatesInput(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := &SkillService{repo: &mysql.SkillRepository{DB: db}}
	ctx := context.Background()
	owner := testutil.SeedUser(t, db, "owner", "Owner")

	cases := []struct {
		name string
		in   SkillInput
	}{
		{"missing name", SkillInput{Category: "backend", ProficiencyLevel: 3}},
		{"missing category", SkillInput{Name: "Go", ProficiencyLevel: 3}},
		{"level too low", SkillInput{Name: "Go", Category: "backend", ProficiencyLevel: 0}},
		{"level too high", SkillInput{Name: "Go", Category: "backend", ProficiencyLevel: 6}},
		{"negative years", SkillInput{Name: "Go", Category: "backend", ProficiencyLevel: 3, YearsExperience: -1}},
	}
	for _, tc := range cases {
		if _, err := svc.Add(ctx, owner.ID, tc.in); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestSkillAddNormalizesCategoryAndRejectsDuplicate(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := &SkillService{repo: &mysql.SkillRepository{DB: db}}
	ctx := context.Background()
	owner := testutil.SeedUser(t, db, "owner", "Owner")

	skill, err := svc.Add(ctx, owner.ID, SkillInput{Name: "Go", Category: "Backend", ProficiencyLevel: 4})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if skill.Category != "backend" {
		t.Fatalf("category=%q, want lowercased", skill.Category)
	}
	if skill.Verified {
		t.Fatal("new skill must not be verified")
	}

	_, err = svc.Add(ctx, owner.ID, SkillInput{Name: "Go", Category: "backend", ProficiencyLevel: 2})
	if !errors.Is(err, ErrSkillExists) {
		t.Fatalf("err=%v, want ErrSkillExists", err)
	}

	// 别的用户可以有同名技能
	other := testutil.SeedUser(t, db, "other", "Other")
	if _, err := svc.Add(ctx, other.ID, SkillInput{Name: "Go", Category: "backend", ProficiencyLevel: 2}); err != nil {
		t.Fatalf("other user add: %v", err)
	}
}

func TestSkillUpdateFiltersFields(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := &SkillService{repo: &mysql.SkillRepository{DB: db}}
	ctx := context.Background()
	owner := testutil.SeedUser(t, db, "owner", "Owner")
	skill := testutil.SeedSkill(t, db, owner.ID, "Go")

	// 只有不允许的字段 -> 报错
	if _, err := svc.Update(ctx, owner.ID, skill.ID, map[string]any{"verified": true, "user_id": 99}); err == nil {
		t.Fatal("expected error when no valid fields remain")
	}

	got, err := svc.Update(ctx, owner.ID, skill.ID, map[string]any{
		"description": "rewritten",
		"category":    "Infra",
		"verified":    true,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Description != "rewritten" || got.Category != "infra" {
		t.Fatalf("got=%+v", got)
	}
	if got.Verified {
		t.Fatal("verified must stay derived")
	}

	// 非所有者改不动
	if _, err := svc.Update(ctx, owner.ID+100, skill.ID, map[string]any{"description": "x"}); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("err=%v, want ErrSkillNotFound", err)
	}
}

func TestSkillDeleteOwnerOnly(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := &SkillService{repo: &mysql.SkillRepository{DB: db}}
	ctx := context.Background()
	owner := testutil.SeedUser(t, db, "owner", "Owner")
	skill := testutil.SeedSkill(t, db, owner.ID, "Go")

	if err := svc.Delete(ctx, owner.ID+1, skill.ID); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("foreign delete err=%v, want ErrSkillNotFound", err)
	}
	if err := svc.Delete(ctx, owner.ID, skill.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.Get(ctx, skill.ID); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("get after delete err=%v, want ErrSkillNotFound", err)
	}
}
