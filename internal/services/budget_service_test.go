package services

import (
	"testing"

	"onepocket/internal/testutil"
)

func TestCreateBudget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		budget, err := svc.CreateBudget(user.ID, "Groceries", 500, "2025-03")
		testutil.AssertNoError(t, err)

		if budget.ID == "" {
			t.Fatal("expected non-empty budget ID")
		}
		if budget.Category != "Groceries" {
			t.Errorf("expected category Groceries, got %s", budget.Category)
		}
		if budget.Amount != 500 {
			t.Errorf("expected amount 500, got %v", budget.Amount)
		}
		if budget.Month != "2025-03" {
			t.Errorf("expected month 2025-03, got %s", budget.Month)
		}
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateBudget(user.ID, "", 500, "2025-03")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateBudget(user.ID, "Groceries", 500, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		for _, month := range []string{"2025-3", "202503", "2025-13", "march"} {
			_, err := svc.CreateBudget(user.ID, "Groceries", 500, month)
			testutil.AssertAppError(t, err, "INVALID_MONTH")
		}
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateBudget(user.ID, "Groceries", 0, "2025-03")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateBudget(user.ID, "Groceries", -10, "2025-03")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_category_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateBudget(user.ID, "Groceries", 500, "2025-03")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateBudget(user.ID, "Groceries", 600, "2025-03")
		testutil.AssertAppError(t, err, "BUDGET_EXISTS")
	})

	t.Run("same_category_different_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateBudget(user.ID, "Groceries", 500, "2025-03")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateBudget(user.ID, "Groceries", 500, "2025-04")
		testutil.AssertNoError(t, err)
	})

	t.Run("same_slot_different_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		_, err := svc.CreateBudget(user1.ID, "Groceries", 500, "2025-03")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateBudget(user2.ID, "Groceries", 500, "2025-03")
		testutil.AssertNoError(t, err)
	})
}

func TestGetUserBudgets(t *testing.T) {
	t.Run("newest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestBudget(t, db, user.ID, "Rent", 1200, "2025-03")
		testutil.CreateTestBudget(t, db, user.ID, "Food", 400, "2025-03")

		budgets, err := svc.GetUserBudgets(user.ID, "")
		testutil.AssertNoError(t, err)

		if len(budgets) != 2 {
			t.Fatalf("expected 2 budgets, got %d", len(budgets))
		}
		if budgets[0].CreatedAt.Before(budgets[1].CreatedAt) {
			t.Error("expected newest-created budget first")
		}
	})

	t.Run("month_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestBudget(t, db, user.ID, "Rent", 1200, "2025-03")
		testutil.CreateTestBudget(t, db, user.ID, "Rent", 1250, "2025-04")

		budgets, err := svc.GetUserBudgets(user.ID, "2025-04")
		testutil.AssertNoError(t, err)

		if len(budgets) != 1 {
			t.Fatalf("expected 1 budget, got %d", len(budgets))
		}
		if budgets[0].Month != "2025-04" {
			t.Errorf("expected month 2025-04, got %s", budgets[0].Month)
		}
	})

	t.Run("invalid_month_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetUserBudgets(user.ID, "2025/03")
		testutil.AssertAppError(t, err, "INVALID_MONTH")
	})

	t.Run("scoped_to_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestBudget(t, db, user1.ID, "Rent", 1200, "2025-03")
		testutil.CreateTestBudget(t, db, user2.ID, "Rent", 900, "2025-03")

		budgets, err := svc.GetUserBudgets(user1.ID, "")
		testutil.AssertNoError(t, err)
		if len(budgets) != 1 {
			t.Fatalf("expected 1 budget, got %d", len(budgets))
		}
	})
}

func TestUpdateBudget(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	floatPtr := func(f float64) *float64 { return &f }

	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, "Food", 400, "2025-03")

		updated, err := svc.UpdateBudget(user.ID, budget.ID, BudgetUpdate{Amount: floatPtr(450)})
		testutil.AssertNoError(t, err)

		if updated.Amount != 450 {
			t.Errorf("expected amount 450, got %v", updated.Amount)
		}
		if updated.Category != "Food" || updated.Month != "2025-03" {
			t.Errorf("expected untouched fields to remain, got %s %s", updated.Category, updated.Month)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateBudget(user.ID, "00000000-0000-0000-0000-000000000000", BudgetUpdate{Amount: floatPtr(450)})
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("foreign_budget_is_forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, owner.ID, "Food", 400, "2025-03")

		_, err := svc.UpdateBudget(intruder.ID, budget.ID, BudgetUpdate{Amount: floatPtr(450)})
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, "Food", 400, "2025-03")

		_, err := svc.UpdateBudget(user.ID, budget.ID, BudgetUpdate{Month: strPtr("2025-3")})
		testutil.AssertAppError(t, err, "INVALID_MONTH")
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, "Food", 400, "2025-03")

		_, err := svc.UpdateBudget(user.ID, budget.ID, BudgetUpdate{Amount: floatPtr(0)})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("collision_with_other_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestBudget(t, db, user.ID, "Food", 400, "2025-03")
		other := testutil.CreateTestBudget(t, db, user.ID, "Food", 420, "2025-04")

		// Moving the April budget onto the March slot collides.
		_, err := svc.UpdateBudget(user.ID, other.ID, BudgetUpdate{Month: strPtr("2025-03")})
		testutil.AssertAppError(t, err, "BUDGET_EXISTS")
	})

	t.Run("self_collision_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, "Food", 400, "2025-03")

		// Re-stating the budget's own slot is not a conflict.
		_, err := svc.UpdateBudget(user.ID, budget.ID, BudgetUpdate{Category: strPtr("Food"), Month: strPtr("2025-03")})
		testutil.AssertNoError(t, err)
	})
}

func TestDeleteBudget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, "Food", 400, "2025-03")

		testutil.AssertNoError(t, svc.DeleteBudget(user.ID, budget.ID))

		budgets, err := svc.GetUserBudgets(user.ID, "")
		testutil.AssertNoError(t, err)
		if len(budgets) != 0 {
			t.Errorf("expected budget to be deleted, found %d", len(budgets))
		}
	})

	t.Run("recreate_after_delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		budget, err := svc.CreateBudget(user.ID, "Food", 400, "2025-03")
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.DeleteBudget(user.ID, budget.ID))

		_, err = svc.CreateBudget(user.ID, "Food", 400, "2025-03")
		testutil.AssertNoError(t, err)
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteBudget(user.ID, "00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("foreign_budget_is_forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, owner.ID, "Food", 400, "2025-03")

		err := svc.DeleteBudget(intruder.ID, budget.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}
